package handlers

import (
	"net/http"
	"strings"

	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/service"
)

type UploadHandler struct {
	S3       *service.S3Service // nil when no bucket is configured
	MaxBytes int64
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Cover accepts a multipart image upload and returns the stored URL,
// which the book form submits as coverImage.
func (h *UploadHandler) Cover(w http.ResponseWriter, r *http.Request) {
	if _, authed := middleware.UserFromContext(r.Context()); !authed {
		fail(w, ErrUnauthenticated, "Authentication required.")
		return
	}
	if h.S3 == nil {
		writeJSON(w, http.StatusServiceUnavailable, Result{Success: false, Message: "Uploads are not configured."})
		return
	}

	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		fail(w, ErrValidation, "Failed to parse upload.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, ErrValidation, "Missing file.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		fail(w, ErrValidation, "Cover must be an image.")
		return
	}

	url, err := h.S3.UploadCover(r.Context(), header.Filename, file, contentType)
	if err != nil {
		internalError(w, "upload cover", err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}
