package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/dto"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in dto.RegisterRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, token, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    in.Email,
		Name:     in.Name,
		Password: in.Password,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, dto.AuthFromDomain(user, token))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, token, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.AuthFromDomain(user, token))
}

// Me — профиль текущего пользователя (с email).
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	profile, err := h.svc.UserByID(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.ProfileFromDomain(profile, true))
}

// UpdatePassword меняет пароль и возвращает новый токен.
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.UpdatePasswordRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, token, err := h.svc.UpdatePassword(r.Context(), uid, in.CurrentPassword, in.NewPassword)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, dto.AuthFromDomain(user, token))
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), uid); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, nil)
}
