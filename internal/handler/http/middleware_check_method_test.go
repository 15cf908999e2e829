// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/user/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("me"))
	})
	router.Post("/api/user/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Patch("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "registered GET passes", method: http.MethodGet, path: "/api/user/me", expectedStatus: http.StatusOK},
		{name: "registered POST passes", method: http.MethodPost, path: "/api/user/login", expectedStatus: http.StatusOK},
		{name: "second method on same path", method: http.MethodGet, path: "/api/user/profile", expectedStatus: http.StatusOK},
		{name: "DELETE on GET route", method: http.MethodDelete, path: "/api/user/me", expectedStatus: http.StatusNotFound},
		{name: "GET on POST route", method: http.MethodGet, path: "/api/user/login", expectedStatus: http.StatusNotFound},
		{name: "PUT on PATCH route", method: http.MethodPut, path: "/api/user/profile", expectedStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/api/nothing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCheckHTTPMethod_NeverAnswers405(t *testing.T) {
	router := buildRouter()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/api/user/me", nil))
		assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			method := http.MethodGet
			want := http.StatusOK
			if i%2 == 0 {
				method = http.MethodDelete
				want = http.StatusNotFound
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(method, "/api/user/me", nil))
			assert.Equal(t, want, rec.Code)
		})
	}
	wg.Wait()
}
