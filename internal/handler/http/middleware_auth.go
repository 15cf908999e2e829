package http

import (
	"net/http"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/models"
)

// auth verifies the bearer token and stores its claims in the request
// context under [utils.ClaimsCtxKey]. Claims are trusted as signed until
// they expire; the store is not consulted.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeMessage(w, msgInvalidSession, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeMessage(w, msgInvalidSession, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		claims, err := h.services.SessionService.Parse(ctx, tokenString)
		if err != nil {
			writeError(w, r, "Handler.auth", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(ctx, claims)))
	})
}

// requireRole lets the request through only when the session role is
// one of roles. It must run after auth.
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.GetClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, "requireRole", ErrNoSessionInContext)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.FromRequest(r).Warn().
				Err(ErrInsufficientRole).
				Int64("user_id", claims.UserID).
				Str("role", string(claims.Role)).
				Send()
			writeMessage(w, msgInsufficientRole, http.StatusForbidden)
		})
	}
}
