package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/dto"
	"github.com/pribylovaa/go-blog-service/internal/http/middleware"
	"github.com/pribylovaa/go-blog-service/internal/models"
)

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	profile, err := h.svc.UserByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	self := middleware.UserIDFrom(r.Context()) == id
	writeOK(w, http.StatusOK, dto.ProfileFromDomain(profile, self))
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.UpdateProfileRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), uid, in.ToInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.UserFromDomain(user, true))
}

func (h *Handlers) Followers(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, h.svc.Followers)
}

func (h *Handlers) Following(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, h.svc.Following)
}

func (h *Handlers) edgeList(
	w http.ResponseWriter,
	r *http.Request,
	list func(context.Context, uuid.UUID, models.PageParams) (*models.UserPage, error),
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := list(r.Context(), id, p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writePage(w, dto.UsersFromDomain(page.Items), page.PageInfo)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	h.followEdge(w, r, true)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.followEdge(w, r, false)
}

func (h *Handlers) followEdge(w http.ResponseWriter, r *http.Request, follow bool) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	target, err := pathUUID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var counts *models.FollowCounts
	if follow {
		counts, err = h.svc.Follow(r.Context(), uid, target)
	} else {
		counts, err = h.svc.Unfollow(r.Context(), uid, target)
	}
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.FollowFromDomain(follow, counts))
}

func (h *Handlers) IsFollowing(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	target, err := pathUUID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ok, err := h.svc.IsFollowing(r.Context(), uid, target)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.IsFollowingResponse{Following: ok})
}
