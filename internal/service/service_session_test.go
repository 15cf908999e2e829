package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClaims() models.SessionClaims {
	return models.SessionClaims{
		UserID:   7,
		Name:     "Ada",
		Email:    "ada@example.com",
		Phone:    "+15551234567",
		Role:     models.RoleOrganizer,
		Photo:    "photos/old.png",
		Gender:   "female",
		PlayerID: "GGF-GSC-25-11-00007",
	}
}

func TestSessionService_IssueAndParse(t *testing.T) {
	clk := clock.NewManual(testNow)
	svc := NewSessionService(testAppConfig(), clk, logger.Nop())
	ctx := context.Background()

	token, err := svc.Issue(ctx, sampleClaims())
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(24*time.Hour), token.ExpiresAt)

	clk.Advance(23 * time.Hour)
	claims, err := svc.Parse(ctx, token.SignedString)
	require.NoError(t, err)

	assert.Equal(t, sampleClaims().PlayerID, claims.PlayerID)
	assert.Equal(t, models.RoleOrganizer, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestSessionService_ParseRejectsExpiredAndForeignTokens(t *testing.T) {
	clk := clock.NewManual(testNow)
	svc := NewSessionService(testAppConfig(), clk, logger.Nop())
	ctx := context.Background()

	token, err := svc.Issue(ctx, sampleClaims())
	require.NoError(t, err)

	foreignCfg := testAppConfig()
	foreignCfg.TokenSignKey = "someone-else"
	foreign, err := NewSessionService(foreignCfg, clk, logger.Nop()).Issue(ctx, sampleClaims())
	require.NoError(t, err)

	_, err = svc.Parse(ctx, foreign.SignedString)
	assert.Equal(t, CodeInvalidSession, ErrorCode(err))

	_, err = svc.Parse(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)

	clk.Advance(24 * time.Hour)
	_, err = svc.Parse(ctx, token.SignedString)
	assert.Equal(t, CodeInvalidSession, ErrorCode(err))
}

func TestSessionService_RefreshClaimsOnlyChangesPatchedFields(t *testing.T) {
	clk := clock.NewManual(testNow)
	svc := NewSessionService(testAppConfig(), clk, logger.Nop())
	ctx := context.Background()

	current := sampleClaims()
	photo := "X"

	clk.Advance(time.Hour)
	token, err := svc.RefreshClaims(ctx, current, models.ClaimsPatch{Photo: &photo})
	require.NoError(t, err)

	parsed, err := svc.Parse(ctx, token.SignedString)
	require.NoError(t, err)

	want := current
	want.Photo = "X"
	parsed.RegisteredClaims = want.RegisteredClaims
	assert.Equal(t, want, parsed)
	assert.Equal(t, testNow.Add(25*time.Hour), token.ExpiresAt, "refreshed token gets a fresh expiry")
}

func TestSessionService_RefreshClaimsCancelled(t *testing.T) {
	svc := NewSessionService(testAppConfig(), clock.NewManual(testNow), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RefreshClaims(ctx, sampleClaims(), models.ClaimsPatch{})
	assert.ErrorIs(t, err, context.Canceled)
}
