package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/redact"
)

// WelcomeMessage is served at the root path.
const WelcomeMessage = "Welcome to the Game of Thrones API!"

// healthCheckTimeout bounds the database ping of a health check.
const healthCheckTimeout = 2 * time.Second

// Pinger is implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the root and health routes.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler that checks db.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Home handles GET /.
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(WelcomeMessage))
}

// Health handles GET /health. It reports 503 when the database is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.db.PingContext(ctx); err != nil {
		logger.FromContext(r.Context()).Error("health check failed",
			slog.String("error", redact.Error(err)))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
