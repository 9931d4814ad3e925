package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/dto"
)

func (h *Handlers) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
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

	st, err := h.svc.ToggleBookmark(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.BookmarkResponse{Bookmarked: st.Bookmarked})
}

func (h *Handlers) IsBookmarked(w http.ResponseWriter, r *http.Request) {
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

	ok, err := h.svc.IsBookmarked(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.BookmarkResponse{Bookmarked: ok})
}

func (h *Handlers) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.RemoveBookmark(r.Context(), uid, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.BookmarkResponse{Bookmarked: false})
}

func (h *Handlers) ListBookmarks(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.svc.ListBookmarks(r.Context(), uid, p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writePage(w, dto.BookmarksFromDomain(page.Items), page.PageInfo)
}
