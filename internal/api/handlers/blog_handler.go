package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/chroniclex-be/internal/auth"
	"github.com/isdelr/chroniclex-be/internal/models"
	"github.com/isdelr/chroniclex-be/internal/services"
)

// BlogHandler handles HTTP requests related to blog posts.
type BlogHandler struct {
	service services.BlogServiceProvider
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service services.BlogServiceProvider) *BlogHandler {
	return &BlogHandler{service: service}
}

// GetAll lists posts, newest first. ?username= narrows to one author.
func (h *BlogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var filter models.BlogFilter
	if query := r.URL.Query(); query.Has("username") {
		filter = models.ByUsername(query.Get("username"))
	}
	blogs, err := h.service.List(r.Context(), auth.ActorFromContext(r.Context()), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, blogs)
}

// Get returns a single post.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.service.Get(r.Context(), auth.ActorFromContext(r.Context()), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, blog)
}

// Create stores a new post authored by the caller. Client-supplied author,
// id and publication_date fields are ignored.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	// Rejects anonymous callers before the body is decoded, so they get 401
	// rather than a 400 for a malformed body. BlogService.Create checks again.
	if !actor.Authenticated() {
		WriteError(w, r, auth.Authorize(actor, auth.ActionCreate, ""))
		return
	}

	var input models.BlogInput
	if err := decodeJSON(w, r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	blog, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, blog)
}

// Update replaces title and content (PUT).
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Update)
}

// PartialUpdate changes the supplied fields only (PATCH).
func (h *BlogHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.PartialUpdate)
}

// updateFunc is the service operation behind PUT or PATCH.
type updateFunc func(ctx context.Context, actor *auth.Actor, id string, input models.BlogInput) (models.Blog, error)

func (h *BlogHandler) update(w http.ResponseWriter, r *http.Request, apply updateFunc) {
	actor := auth.ActorFromContext(r.Context())
	// Same early 401 as Create; the service still authorizes against the author.
	if !actor.Authenticated() {
		WriteError(w, r, auth.Authorize(actor, auth.ActionUpdate, ""))
		return
	}

	var input models.BlogInput
	if err := decodeJSON(w, r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	blog, err := apply(r.Context(), actor, id, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, blog)
}

// Delete removes a post (author only).
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), auth.ActorFromContext(r.Context()), id); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
