package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a", time.Second)
	client2 := NewHTTPClient("http://b", time.Second)

	if client1.Client == client2.Client {
		t.Fatal("expected independent resty clients")
	}
	if client1.BaseURL != "http://a" {
		t.Errorf("unexpected base url %q", client1.BaseURL)
	}
}

func TestHTTPClient_PostsToBaseURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	resp, err := client.R().SetBody(map[string]string{"a": "b"}).Post("/send")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusAccepted {
		t.Errorf("expected 202, got %d", resp.StatusCode())
	}
	if gotPath != "/send" {
		t.Errorf("expected /send, got %q", gotPath)
	}
}
