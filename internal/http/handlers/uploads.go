package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/dto"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

const (
	maxImageBytes   = 5 << 20
	maxImagesPerReq = 10
)

var (
	errTooLarge   = errors.New("file too large")
	errUnreadable = errors.New("file unreadable")
)

// UploadImage принимает multipart-поле "image" или JSON {"image": "<data URI | base64>"}.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var payload string
	if isMultipart(r) {
		var payloads []string
		payloads, err = h.multipartImages(w, r, "image", 1)
		if err == nil {
			payload = payloads[0]
		}
	} else {
		var in dto.UploadImageRequest
		err = h.decodeStrict(w, r, &in)
		payload = in.Image
	}
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	m, err := h.svc.UploadImage(r.Context(), uid, payload)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, dto.MediaFromDomain(m))
}

// UploadImages — пакетная загрузка до 10 файлов из multipart-поля "images".
// Загрузки независимы: первая ошибка прерывает пакет, уже загруженное остаётся.
func (h *Handlers) UploadImages(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if !isMultipart(r) {
		apierrors.WriteError(w, r, &service.FieldError{Field: "images", Reason: "multipart/form-data expected"})
		return
	}

	payloads, err := h.multipartImages(w, r, "images", maxImagesPerReq)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]*dto.Media, 0, len(payloads))
	for _, payload := range payloads {
		m, err := h.svc.UploadImage(r.Context(), uid, payload)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		out = append(out, dto.MediaFromDomain(m))
	}

	writeOK(w, http.StatusCreated, out)
}

// DeleteImage удаляет загруженный объект; id — остаток пути после /uploads/image/.
func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	uid, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteImage(r.Context(), uid, chi.URLParam(r, "*")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// multipartImages читает до limit файлов поля field и возвращает их в base64.
func (h *Handlers) multipartImages(w http.ResponseWriter, r *http.Request, field string, limit int) ([]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(limit)*maxImageBytes+1<<20)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, &service.FieldError{Field: field, Reason: "malformed multipart form"}
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, &service.FieldError{Field: field, Reason: "is required"}
	}

	if len(files) > limit {
		return nil, &service.FieldError{Field: field, Reason: "too many files"}
	}

	encoded := make([]string, 0, len(files))
	for _, fh := range files {
		data, err := readPart(fh)
		if err != nil {
			return nil, &service.FieldError{Field: field, Reason: err.Error()}
		}

		encoded = append(encoded, base64.StdEncoding.EncodeToString(data))
	}

	return encoded, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxImageBytes {
		return nil, errTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errUnreadable
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, errUnreadable
	}

	if len(data) > maxImageBytes {
		return nil, errTooLarge
	}

	return data, nil
}
