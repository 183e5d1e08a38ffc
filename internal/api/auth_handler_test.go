package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/mocks"
	"github.com/phrazzld/thrones-api/internal/service"
	"github.com/phrazzld/thrones-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(users *mocks.MockUserService, jwt *mocks.MockJWTService) http.Handler {
	h := NewAuthHandler(users, jwt, discardLogger())
	r := chi.NewRouter()
	r.Post("/auth/register", h.Register)
	r.Post("/auth/token", h.Token)
	return r
}

func TestRegister(t *testing.T) {
	const valid = `{"name":"Ygritte","email":"ygritte@freefolk.org",` +
		`"password":"Winter1s@Coming","confirm_password":"Winter1s@Coming"}`

	t.Run("registered", func(t *testing.T) {
		var gotName, gotEmail, gotPassword string
		users := &mocks.MockUserService{
			RegisterFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
				gotName, gotEmail, gotPassword = name, email, password
				return &domain.User{ID: 1, Name: name, Email: email}, nil
			},
		}

		rr := doRequest(t, newAuthRouter(users, &mocks.MockJWTService{}), http.MethodPost, "/auth/register", valid)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.JSONEq(t, `{"message":"User registered successfully"}`, rr.Body.String())
		assert.Equal(t, "Ygritte", gotName)
		assert.Equal(t, "ygritte@freefolk.org", gotEmail)
		assert.Equal(t, "Winter1s@Coming", gotPassword)
	})

	t.Run("email taken", func(t *testing.T) {
		users := &mocks.MockUserService{
			RegisterFn: func(context.Context, string, string, string) (*domain.User, error) {
				return nil, store.ErrEmailExists
			},
		}

		rr := doRequest(t, newAuthRouter(users, &mocks.MockJWTService{}), http.MethodPost, "/auth/register", valid)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email is already registered", decodeError(t, rr).Error)
	})

	tests := []struct {
		name    string
		body    string
		message string
		field   string
	}{
		{
			name: "passwords differ",
			body: `{"name":"Y","email":"y@freefolk.org","password":"Winter1s@Coming",` +
				`"confirm_password":"Winter1s@Going"}`,
			message: "Passwords do not match",
			field:   "confirm_password",
		},
		{
			name: "weak password",
			body: `{"name":"Y","email":"y@freefolk.org","password":"wintercoming",` +
				`"confirm_password":"wintercoming"}`,
			message: "Validation error",
			field:   "password",
		},
		{
			name: "short password",
			body: `{"name":"Y","email":"y@freefolk.org","password":"W1@a",` +
				`"confirm_password":"W1@a"}`,
			message: "Validation error",
			field:   "password",
		},
		{
			name: "bad email",
			body: `{"name":"Y","email":"freefolk","password":"Winter1s@Coming",` +
				`"confirm_password":"Winter1s@Coming"}`,
			message: "Validation error",
			field:   "email",
		},
		{
			name:    "missing name",
			body:    `{"email":"y@freefolk.org","password":"Winter1s@Coming","confirm_password":"Winter1s@Coming"}`,
			message: "Validation error",
			field:   "name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.MockUserService{
				RegisterFn: func(context.Context, string, string, string) (*domain.User, error) {
					t.Fatal("service must not be called")
					return nil, nil
				},
			}

			rr := doRequest(t, newAuthRouter(users, &mocks.MockJWTService{}), http.MethodPost, "/auth/register", tt.body)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeError(t, rr)
			assert.Equal(t, tt.message, resp.Error)
			assert.Contains(t, resp.Details, tt.field)
		})
	}
}

func TestToken(t *testing.T) {
	const body = `{"email":"ygritte@freefolk.org","password":"Winter1s@Coming"}`

	t.Run("issues bearer token", func(t *testing.T) {
		users := &mocks.MockUserService{
			AuthenticateFn: func(_ context.Context, email, _ string) (*domain.User, error) {
				return &domain.User{ID: 9, Email: email}, nil
			},
		}
		var tokenFor int64
		jwt := &mocks.MockJWTService{
			GenerateTokenFn: func(_ context.Context, userID int64) (string, error) {
				tokenFor = userID
				return "signed.jwt.token", nil
			},
		}

		rr := doRequest(t, newAuthRouter(users, jwt), http.MethodPost, "/auth/token", body)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed.jwt.token", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, int64(9), tokenFor)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		rr := doRequest(t, newAuthRouter(&mocks.MockUserService{}, &mocks.MockJWTService{}),
			http.MethodPost, "/auth/token", body)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid email or password", decodeError(t, rr).Error)
	})

	t.Run("token generation failure", func(t *testing.T) {
		users := &mocks.MockUserService{
			AuthenticateFn: func(context.Context, string, string) (*domain.User, error) {
				return &domain.User{ID: 9}, nil
			},
		}
		jwt := &mocks.MockJWTService{Err: errors.New("signing failed")}

		rr := doRequest(t, newAuthRouter(users, jwt), http.MethodPost, "/auth/token", body)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		rr := doRequest(t, newAuthRouter(&mocks.MockUserService{}, &mocks.MockJWTService{}),
			http.MethodPost, "/auth/token", `{"email":"ygritte@freefolk.org"}`)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Details, "password")
	})
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("age", "bad"), http.StatusBadRequest},
		{"not found", store.ErrCharacterNotFound, http.StatusNotFound},
		{"duplicate", store.ErrEmailExists, http.StatusBadRequest},
		{"wrapped duplicate", store.NewStoreError("user", "create", store.ErrDuplicate), http.StatusBadRequest},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped not found", service.NewCharacterServiceError("get", "x", store.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
		})
	}
}
