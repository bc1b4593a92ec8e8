package books

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Omkar-Hajare/IP-practical/internal/apperr"
	"github.com/Omkar-Hajare/IP-practical/internal/models"
	"github.com/Omkar-Hajare/IP-practical/internal/respond"
)

const maxCoverBytes = 5 << 20

// CoverStore defines the interface for cover image storage.
type CoverStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

func coverKey(bookID string) string { return "covers/" + bookID }

// CoversEnabled reports whether a CoverStore was configured.
func (h *Handler) CoversEnabled() bool { return h.covers != nil }

// PutCover stores the raw request body as the book's cover image.
func (h *Handler) PutCover(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		h.fail(w, apperr.New(apperr.Validation, "cover must have an image/* content type"))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCoverBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, apperr.New(apperr.Validation, "cover exceeds 5 MiB"))
			return
		}
		h.fail(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if len(data) == 0 {
		h.fail(w, apperr.New(apperr.Validation, "cover is empty"))
		return
	}

	if err := h.covers.Upload(r.Context(), coverKey(book.ID.Hex()), data, ct); err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, models.MessageResponse{Message: "Cover uploaded"})
}

// GetCover streams the stored cover image.
func (h *Handler) GetCover(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	data, ct, err := h.covers.Download(r.Context(), coverKey(book.ID.Hex()))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.fail(w, apperr.Wrap(apperr.NotFound, "Cover not found", err))
			return
		}
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Write(data)
}
