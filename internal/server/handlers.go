package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"cinedex/internal/api"
	"cinedex/internal/logging"
	"cinedex/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// StatusFunc reports the daemon status for GET /api/status.
type StatusFunc func(ctx context.Context) (api.Status, error)

type handlers struct {
	productions *api.ProductionService
	media       *api.MediaService
	status      StatusFunc
	logger      *slog.Logger
}

func (h *handlers) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/productions", h.handleList)
	mux.HandleFunc("GET /api/productions/search", h.handleSearch)
	mux.HandleFunc("POST /api/productions", h.handleCreate)
	mux.HandleFunc("PUT /api/productions/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/productions/{id}", h.handleDelete)
	mux.HandleFunc("GET /api/search-media", h.handleSearchMedia)
	mux.HandleFunc("GET /api/hello", h.handleHello)
	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("/api/", h.handleUnknown)
}

func (h *handlers) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.productions.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := api.ParseFilter(q.Get("query"), q.Get("type"), q.Get("page"), q.Get("limit"))
	page, err := h.productions.Search(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	created, err := h.productions.Create(r.Context(), body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, api.MessageInvalidID)
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	updated, err := h.productions.Update(r.Context(), id, body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, api.MessageInvalidID)
		return
	}
	if err := h.productions.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, api.Message{Message: api.MessageDeleted})
}

func (h *handlers) handleSearchMedia(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := h.media.Search(r.Context(), q.Get("query"), q.Get("language"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

func (h *handlers) handleHello(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, api.Message{Message: api.MessageHello})
}

func (h *handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	if h.status == nil {
		h.writeError(w, http.StatusNotFound, "status unavailable")
		return
	}
	status, err := h.status(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

func (h *handlers) handleUnknown(w http.ResponseWriter, _ *http.Request) {
	h.writeError(w, http.StatusNotFound, "rota não encontrada")
}

func (h *handlers) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, api.MessageInvalidBody)
			return nil, false
		}
		h.writeError(w, http.StatusBadRequest, api.MessageInvalidBody)
		return nil, false
	}
	return body, true
}

func (h *handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.WithContext(r.Context(), h.logger)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, http.StatusNotFound, api.MessageNotFound)
	case errors.Is(err, api.ErrInvalidInput):
		logger.Debug("rejected malformed request", logging.Error(err))
		h.writeError(w, http.StatusBadRequest, api.MessageInvalidBody)
	case errors.Is(err, api.ErrUpstream):
		h.writeError(w, http.StatusInternalServerError, api.MessageMediaSearchFailed)
	default:
		logging.ErrorWithContext(logger, "request failed", "http_request_failed",
			logging.Error(err),
			logging.String("path", r.URL.Path),
			logging.String(logging.FieldErrorHint, "check the storage backend"),
		)
		h.writeError(w, http.StatusInternalServerError, api.MessageInternal)
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, api.Message{Message: message})
}
