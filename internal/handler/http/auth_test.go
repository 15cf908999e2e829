package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/service"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func adaToken(signed string) models.Token {
	return models.Token{
		SignedString: signed,
		Claims:       adaClaims,
		ExpiresAt:    time.Date(2025, 11, 15, 9, 30, 0, 0, time.UTC),
	}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h, mocks, _ := newTestHandler(t)

	mocks.auth.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "correct horse",
		}).
		Return(adaToken("signed.jwt.token"), nil)

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/register",
		`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var got models.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, adaClaims.PlayerID, got.Claims.PlayerID)
	assert.Equal(t, adaClaims.UserID, got.Claims.UserID)
	assert.Empty(t, got.SignedString, "signed string travels only in the header")
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/register", `{"name":`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrInvalidJSON.Error(), decodeErrorResponse(t, rec).Error)
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   models.ErrorResponse
	}{
		{
			name:       "duplicate email",
			err:        codedError(service.CodeDuplicateIdentifier, "email"),
			wantStatus: http.StatusConflict,
			wantBody:   models.ErrorResponse{Error: msgDuplicateIdentifier, Field: "email"},
		},
		{
			name:       "duplicate phone",
			err:        codedError(service.CodeDuplicateIdentifier, "phone"),
			wantStatus: http.StatusConflict,
			wantBody:   models.ErrorResponse{Error: msgDuplicateIdentifier, Field: "phone"},
		},
		{
			name:       "weak password",
			err:        codedError(service.CodeInvalidInput, "password"),
			wantStatus: http.StatusBadRequest,
			wantBody:   models.ErrorResponse{Error: msgInvalidInput, Field: "password"},
		},
		{
			name:       "sequence exhausted",
			err:        codedError(service.CodeSequenceOverflow, ""),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   models.ErrorResponse{Error: msgSequenceExhausted},
		},
		{
			name:       "storage down",
			err:        codedError(service.CodeStorageUnavailable, ""),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   models.ErrorResponse{Error: msgServiceUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks, _ := newTestHandler(t)
			mocks.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.Token{}, tt.err)

			rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/register",
				`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`, nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decodeErrorResponse(t, rec))
			assert.Empty(t, rec.Header().Get("Authorization"))
			assert.NotContains(t, rec.Body.String(), "row 42")
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h, mocks, _ := newTestHandler(t)

	gomock.InOrder(
		mocks.auth.EXPECT().Authenticate(gomock.Any(), "GGF-GSC-25-11-00007", "correct horse").Return(adaClaims, nil),
		mocks.sessions.EXPECT().Issue(gomock.Any(), adaClaims).Return(adaToken("login.jwt.token"), nil),
	)

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/login",
		`{"identifier":"GGF-GSC-25-11-00007","password":"correct horse"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer login.jwt.token", rec.Header().Get("Authorization"))
}

// Unknown identifier and wrong secret must be indistinguishable.
func TestLogin_FailuresLookAlike(t *testing.T) {
	bodies := make([]string, 0, 2)

	for _, cause := range []error{service.ErrUnknownIdentifier, service.ErrInvalidSecret} {
		h, mocks, _ := newTestHandler(t)
		mocks.auth.EXPECT().
			Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SessionClaims{}, oops.Code(service.CodeAuthenticationFailed).Wrap(cause))

		rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/login",
			`{"identifier":"ada@example.com","password":"wrong"}`, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgInvalidCredentials, decodeErrorResponse(t, rec).Error)
		bodies = append(bodies, rec.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
}

func TestLogin_InvalidJSON(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/login", `not json`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_IssueFailure(t *testing.T) {
	h, mocks, _ := newTestHandler(t)
	mocks.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(adaClaims, nil)
	mocks.sessions.EXPECT().Issue(gomock.Any(), adaClaims).Return(models.Token{}, assert.AnError)

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/user/login",
		`{"identifier":"ada@example.com","password":"correct horse"}`, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternalServerError, decodeErrorResponse(t, rec).Error)
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_ReturnsSessionClaims(t *testing.T) {
	h, mocks, _ := newTestHandler(t)
	mocks.sessions.EXPECT().Parse(gomock.Any(), validSession).Return(adaClaims, nil)

	rec := doRequest(t, h.Init(), http.MethodGet, "/api/user/me", "", bearer(validSession))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.SessionClaims
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, adaClaims, got)
}

func TestMe_WithoutClaimsInContext(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, http.HandlerFunc(h.me), http.MethodGet, "/api/user/me", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// updateProfile
// ─────────────────────────────────────────────

func TestUpdateProfile_Success(t *testing.T) {
	h, mocks, _ := newTestHandler(t)
	photo := "photos/new.png"

	mocks.sessions.EXPECT().Parse(gomock.Any(), validSession).Return(adaClaims, nil)
	updated := adaToken("refreshed.jwt.token")
	updated.Claims.Photo = photo
	mocks.profiles.EXPECT().
		UpdateProfile(gomock.Any(), adaClaims, models.ClaimsPatch{Photo: &photo}).
		Return(updated, nil)

	rec := doRequest(t, h.Init(), http.MethodPatch, "/api/user/profile",
		`{"photo":"photos/new.png"}`, bearer(validSession))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer refreshed.jwt.token", rec.Header().Get("Authorization"))

	var got models.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, photo, got.Claims.Photo)
}

func TestUpdateProfile_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted account", err: codedError(service.CodeInvalidSession, ""), wantStatus: http.StatusUnauthorized},
		{name: "phone taken", err: codedError(service.CodeDuplicateIdentifier, "phone"), wantStatus: http.StatusConflict},
		{name: "empty patch", err: codedError(service.CodeInvalidInput, "patch"), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks, _ := newTestHandler(t)
			mocks.sessions.EXPECT().Parse(gomock.Any(), validSession).Return(adaClaims, nil)
			mocks.profiles.EXPECT().UpdateProfile(gomock.Any(), adaClaims, gomock.Any()).Return(models.Token{}, tt.err)

			rec := doRequest(t, h.Init(), http.MethodPatch, "/api/user/profile", `{}`, bearer(validSession))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h.Init(), http.MethodPatch, "/api/user/profile", `{"name":"Eve"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
