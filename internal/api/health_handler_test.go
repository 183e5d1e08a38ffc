package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	t.Run("home", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewHealthHandler(nil).Home(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, WelcomeMessage, rr.Body.String())
	})

	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }))
		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("refused") }))
		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
