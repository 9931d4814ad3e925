package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/dto"
	"github.com/pribylovaa/go-blog-service/internal/http/middleware"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

// ListComments — ветки комментариев материала: ?limit=&pageToken=.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	contentID, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit, err := queryInt32(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.ListComments(r.Context(), middleware.UserIDFrom(r.Context()), contentID, models.ListParams{
		PageSize:  limit,
		PageToken: r.URL.Query().Get("pageToken"),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeCursorPage(w, dto.ThreadsFromDomain(page.Items), page.PageSize, page.NextPageToken)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	contentID, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.CreateCommentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateComment(r.Context(), service.CreateCommentInput{
		ContentID: contentID,
		ParentID:  in.ParentID,
		AuthorID:  uid,
		Text:      in.Text,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, dto.CommentFromDomain(c))
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CommentByID(r.Context(), middleware.UserIDFrom(r.Context()), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.CommentFromDomain(c))
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
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

	var in dto.UpdateCommentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.svc.UpdateComment(r.Context(), uid, id, in.Text)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.CommentFromDomain(c))
}

// DeleteComment — мягкое удаление; в ответе надгробие комментария.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.svc.DeleteComment(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.CommentFromDomain(c))
}

func (h *Handlers) LikeComment(w http.ResponseWriter, r *http.Request) {
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

	st, err := h.svc.ToggleCommentLike(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.LikeFromDomain(st))
}
