package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

// Envelope is the wrapper shape used by every Content API response.
// Success is authoritative; Data is present only on success (DELETE carries
// no data); Error is a human-readable message.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ContentHandler handles HTTP requests for content items
type ContentHandler struct {
	service sitecontent.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(service sitecontent.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// Routes returns the routes for content, mounted under /api/content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateContent)
	r.Post("/bulk", h.BulkCreateContent)
	r.Get("/", h.ListContent)
	r.Get("/slug/{slug}", h.GetContentBySlug)
	r.Get("/{id}", h.GetContent)
	r.Put("/{id}", h.UpdateContent)
	r.Delete("/{id}", h.DeleteContent)

	return r
}

// CreateContent creates a new content item
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req sitecontent.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.CreateContent(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create content", "slug", req.Slug, "error", err)
		respondServiceError(w, r, err)
		return
	}

	slog.Info("Content created", "content_id", item.ID, "type", item.Type, "slug", item.Slug)
	respond(w, r, http.StatusCreated, item)
}

// BulkCreateContent creates several content items in one call. The batch is
// best-effort: a failure partway leaves earlier items committed.
func (h *ContentHandler) BulkCreateContent(w http.ResponseWriter, r *http.Request) {
	var req sitecontent.BulkCreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, r, http.StatusBadRequest, "items is required")
		return
	}

	items, err := h.service.BulkCreateContent(r.Context(), req)
	if err != nil {
		slog.Error("Bulk create failed", "requested", len(req.Items), "committed", len(items), "error", err)
		respondServiceError(w, r, err)
		return
	}

	slog.Info("Bulk content created", "count", len(items))
	respond(w, r, http.StatusCreated, items)
}

// ListContent lists content items with optional type and status filters
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	var filters sitecontent.ListFilters
	if v := r.URL.Query().Get("type"); v != "" {
		filters = filters.WithType(sitecontent.ContentType(v))
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filters = filters.WithStatus(sitecontent.ContentStatus(v))
	}

	items, err := h.service.ListContent(r.Context(), filters)
	if err != nil {
		slog.Error("Failed to list content", "error", err)
		respondServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []*sitecontent.ContentItem{}
	}

	respond(w, r, http.StatusOK, items)
}

// GetContent retrieves a content item by ID
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.service.GetContent(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sitecontent.ErrContentNotFound) {
			slog.Error("Failed to get content", "content_id", id, "error", err)
		}
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, item)
}

// GetContentBySlug retrieves a content item by slug, optionally narrowed by
// a type query parameter when duplicate slugs exist across types.
func (h *ContentHandler) GetContentBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var contentType *sitecontent.ContentType
	if v := r.URL.Query().Get("type"); v != "" {
		t := sitecontent.ContentType(v)
		contentType = &t
	}

	item, err := h.service.GetContentBySlug(r.Context(), slug, contentType)
	if err != nil {
		if !errors.Is(err, sitecontent.ErrContentNotFound) {
			slog.Error("Failed to get content by slug", "slug", slug, "error", err)
		}
		respondServiceError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, item)
}

// UpdateContent applies a partial update to a content item
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req sitecontent.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.UpdateContent(r.Context(), id, req)
	if err != nil {
		slog.Error("Failed to update content", "content_id", id, "error", err)
		respondServiceError(w, r, err)
		return
	}

	slog.Info("Content updated", "content_id", id)
	respond(w, r, http.StatusOK, item)
}

// DeleteContent deletes a content item by ID. The delete is hard; there is
// no tombstone.
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteContent(r.Context(), id); err != nil {
		slog.Error("Failed to delete content", "content_id", id, "error", err)
		respondServiceError(w, r, err)
		return
	}

	slog.Info("Content deleted", "content_id", id)
	respond(w, r, http.StatusOK, nil)
}

func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: false, Error: message})
}

// respondServiceError maps service errors onto HTTP statuses. Absence is
// signaled structurally by 404; the "content not found" body text is kept for
// clients still matching on the legacy message convention.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sitecontent.ErrContentNotFound):
		respondError(w, r, http.StatusNotFound, sitecontent.ErrContentNotFound.Error())
	case errors.Is(err, sitecontent.ErrInvalidContentType),
		errors.Is(err, sitecontent.ErrInvalidContentStatus),
		errors.Is(err, sitecontent.ErrInvalidPayload),
		errors.Is(err, sitecontent.ErrSlugRequired),
		errors.Is(err, sitecontent.ErrTitleRequired):
		respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		respondError(w, r, http.StatusInternalServerError, err.Error())
	}
}
