package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/thrones-api/internal/api/shared"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/service"
	"github.com/phrazzld/thrones-api/internal/service/auth"
)

// TokenType is the token_type reported with every access token.
const TokenType = "bearer"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidation(w, r, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgPasswordsDoNotMatch,
			shared.WithDetails(map[string]string{"confirm_password": msgPasswordsDoNotMatch}))
		return
	}

	if _, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, msgUserRegistered)
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidation(w, r, err)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgInvalidCredentials,
				shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate token", slog.Int64("user_id", user.ID))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
	})
}
