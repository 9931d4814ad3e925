package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/dto"
	"github.com/pribylovaa/go-blog-service/internal/http/middleware"
	"github.com/pribylovaa/go-blog-service/internal/models"
)

// ListContents — публичная лента: ?tag=&category=&search=&page=&limit=.
func (h *Handlers) ListContents(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	f := models.ContentFilter{
		Tag:      q.Get("tag"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}

	page, err := h.svc.ListContent(r.Context(), f, p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writePage(w, dto.ContentsFromDomain(page.Items), page.PageInfo)
}

func (h *Handlers) ListFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListFeatured(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.ContentsFromDomain(items))
}

func (h *Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.ListMyContent(r.Context(), uid, p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writePage(w, dto.ContentsFromDomain(page.Items), page.PageInfo)
}

func (h *Handlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.ContentBySlug(r.Context(), middleware.UserIDFrom(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.ContentFromDomain(item))
}

// GetByID — чтение для редактирования, только автору.
func (h *Handlers) GetByID(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item, err := h.svc.ContentByID(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.ContentFromDomain(item))
}

func (h *Handlers) CreateContent(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.CreateContentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item, err := h.svc.CreateContent(r.Context(), in.ToInput(uid))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, dto.ContentFromDomain(item))
}

func (h *Handlers) UpdateContent(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.UpdateContentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item, err := h.svc.UpdateContent(r.Context(), uid, id, in.ToInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.ContentFromDomain(item))
}

func (h *Handlers) DeleteContent(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteContent(r.Context(), uid, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

func (h *Handlers) LikeContent(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	st, err := h.svc.ToggleContentLike(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.LikeFromDomain(st))
}
