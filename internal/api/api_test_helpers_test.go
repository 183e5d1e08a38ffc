package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/thrones-api/internal/api/shared"
	"github.com/phrazzld/thrones-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newCharacterRouter mounts the character routes without authentication.
func newCharacterRouter(svc *mocks.MockCharacterService) http.Handler {
	h := NewCharacterHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Get("/list-characters", h.ListCharacters)
	r.Get("/get-characters-id/{id}", h.GetCharacter)
	r.Get("/filter-characters", h.FilterCharacters)
	r.Post("/characters-sort", h.SortCharacters)
	r.Post("/add/create-new-characters", h.CreateCharacter)
	r.Put("/update-character/{id}", h.UpdateCharacter)
	r.Delete("/delete-characters/{id}", h.DeleteCharacter)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}
