package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/thrones-api/internal/api/middleware"
	"github.com/phrazzld/thrones-api/internal/api/shared"
	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/service"
	"github.com/phrazzld/thrones-api/internal/store"
)

// CharacterHandler handles character-related HTTP requests.
type CharacterHandler struct {
	characterService service.CharacterService
	logger           *slog.Logger
}

// NewCharacterHandler creates a new CharacterHandler
func NewCharacterHandler(characterService service.CharacterService, logger *slog.Logger) *CharacterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CharacterHandler{
		characterService: characterService,
		logger:           logger.With(slog.String("component", "character_handler")),
	}
}

// ListCharacters handles GET /list-characters.
func (h *CharacterHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	query := ListCharactersQuery{Limit: service.DefaultListLimit}
	if err := decodeQuery(r, &query); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(query); err != nil {
		respondValidation(w, r, err)
		return
	}

	page, err := h.characterService.List(r.Context(), query.Limit, query.Skip)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCharacterListResponse(page))
}

// GetCharacter handles GET /get-characters-id/{id}.
func (h *CharacterHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var query GetCharacterQuery
	if err := decodeQuery(r, &query); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	character, err := h.characterService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, character)
}

// FilterCharacters handles GET /filter-characters.
func (h *CharacterHandler) FilterCharacters(w http.ResponseWriter, r *http.Request) {
	var query FilterCharactersQuery
	if err := decodeQuery(r, &query); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(query); err != nil {
		respondValidation(w, r, err)
		return
	}

	characters, err := h.characterService.Filter(r.Context(), store.CharacterFilter{
		Name:   query.Name,
		House:  query.House,
		Role:   query.Role,
		AgeMin: query.AgeMin,
		AgeMax: query.AgeMax,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCharacterCollectionResponse(characters))
}

// SortCharacters handles POST /characters-sort. An empty body sorts by name ascending.
func (h *CharacterHandler) SortCharacters(w http.ResponseWriter, r *http.Request) {
	var req SortCharactersRequest
	if err := shared.DecodeStrictJSON(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		respondDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidation(w, r, err)
		return
	}

	field, err := domain.ParseSortField(req.SortBy)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	order, err := domain.ParseSortOrder(req.SortOrder)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	characters, err := h.characterService.Sort(r.Context(), field, order)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCharacterCollectionResponse(characters))
}

// CreateCharacter handles POST /add/create-new-characters.
func (h *CharacterHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req CreateCharacterRequest
	if err := shared.DecodeStrictJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidation(w, r, err)
		return
	}

	character, err := h.characterService.Create(r.Context(), req.Character())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.auditLog(r).Info("character created",
		slog.Int64("character_id", character.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, character)
}

// UpdateCharacter handles PUT /update-character/{id}. Only fields present in
// the body are changed; an empty body changes nothing.
func (h *CharacterHandler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var patch domain.CharacterPatch
	if err := shared.DecodeStrictJSON(w, r, &patch); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		respondDecodeError(w, r, err)
		return
	}

	character, err := h.characterService.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, notFoundByID(err, id))
		return
	}

	h.auditLog(r).Info("character updated",
		slog.Int64("character_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, character)
}

// DeleteCharacter handles DELETE /delete-characters/{id}.
func (h *CharacterHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.characterService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, notFoundByID(err, id))
		return
	}

	h.auditLog(r).Info("character deleted",
		slog.Int64("character_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK,
		fmt.Sprintf("Character with ID %d deleted successfully", id))
}

// notFoundByID names the missing character in the message of a failed
// update or delete. Other errors keep their default message.
func notFoundByID(err error, id int64) string {
	if errors.Is(err, store.ErrCharacterNotFound) {
		return fmt.Sprintf("Character with ID %d not found", id)
	}
	return ""
}

// auditLog returns the request logger tagged with the authenticated user, if any.
func (h *CharacterHandler) auditLog(r *http.Request) *slog.Logger {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	if userID, ok := middleware.GetUserID(r); ok {
		log = log.With(slog.Int64("user_id", userID))
	}
	return log
}
