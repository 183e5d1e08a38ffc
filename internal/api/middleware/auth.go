package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/thrones-api/internal/api/shared"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/service/auth"
)

// CredentialsErrorMessage is the single message for every authentication failure.
const CredentialsErrorMessage = "Could not validate credentials"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the user ID to the request context. Every failure produces the same
// 401 response, so clients cannot tell a missing token from an expired one.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug("rejected request", slog.String("reason", err.Error()))
			unauthorized(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				reason = "expired token"
			}
			log.Debug("rejected request", slog.String("reason", reason))
			unauthorized(w, r)
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		ctx = logger.WithLogger(ctx, log.With(slog.Int64("user_id", claims.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the credentials of a "Bearer" Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", auth.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithError(w, r, http.StatusUnauthorized, CredentialsErrorMessage)
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (int64, bool) {
	return shared.UserIDFromContext(r.Context())
}
