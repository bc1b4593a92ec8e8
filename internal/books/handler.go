package books

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Omkar-Hajare/IP-practical/internal/activity"
	"github.com/Omkar-Hajare/IP-practical/internal/apperr"
	"github.com/Omkar-Hajare/IP-practical/internal/models"
	"github.com/Omkar-Hajare/IP-practical/internal/respond"
)

// BookStore defines the interface for catalog persistence.
type BookStore interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	InsertBook(ctx context.Context, b *models.Book) error
	UpdateBook(ctx context.Context, id string, fields map[string]interface{}) (*models.Book, error)
	SaveBook(ctx context.Context, b *models.Book) error
	DeleteBook(ctx context.Context, id string) error
}

// Recorder receives circulation events.
type Recorder interface {
	Record(ctx context.Context, ev activity.Event) error
}

// Handler holds catalog HTTP handlers.
type Handler struct {
	books  BookStore
	events Recorder
	covers CoverStore
	log    logrus.FieldLogger
}

// NewHandler wires the catalog handlers. covers may be nil, in which case
// the cover routes are not mounted.
func NewHandler(books BookStore, events Recorder, covers CoverStore, log logrus.FieldLogger) *Handler {
	return &Handler{books: books, events: events, covers: covers, log: log}
}

// storeErr classifies storage sentinels; anything else stays Internal.
func storeErr(err error) error {
	var classified *apperr.Error
	switch {
	case errors.As(err, &classified):
		return err
	case errors.Is(err, models.ErrInvalidID):
		return apperr.Wrap(apperr.Validation, "invalid book id", err)
	case errors.Is(err, models.ErrNotFound):
		return apperr.Wrap(apperr.NotFound, "Book not found", err)
	case errors.Is(err, models.ErrDuplicate):
		return apperr.Wrap(apperr.Conflict, "A book with this isbn already exists", err)
	}
	return err
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	err = storeErr(err)
	if apperr.KindOf(err) == apperr.Internal {
		h.log.WithError(err).Error("books request failed")
	}
	respond.Error(w, err)
}

// List returns every book.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListBooks(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	respond.JSON(w, http.StatusOK, books)
}

// Create adds a book. available defaults to true, borrowedBy to null.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.fail(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if in.Title == "" || in.Author == "" || in.ISBN == "" {
		h.fail(w, apperr.New(apperr.Validation, "title, author, and isbn are required"))
		return
	}

	book := in.Book()
	if err := h.books.InsertBook(r.Context(), &book); err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, book)
}

// Update applies the given fields. An unknown but well-formed id answers
// 200 with a null body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := ParsePatch(r.Body)
	if err != nil {
		h.fail(w, err)
		return
	}

	book, err := h.books.UpdateBook(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, book)
}

// Delete removes a book. Deleting an id that matches nothing still succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.books.DeleteBook(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}

	if h.covers != nil {
		if err := h.covers.Remove(r.Context(), coverKey(id)); err != nil {
			h.log.WithError(err).WithField("book_id", id).Warn("cover cleanup failed")
		}
	}

	respond.JSON(w, http.StatusOK, models.MessageResponse{Message: "Book deleted"})
}

// Borrow marks an available book as lent to the borrower in the body.
// Find and save are separate calls; two concurrent borrows can both succeed.
func (h *Handler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req models.BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	book, err := h.books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if !book.Available {
		h.fail(w, apperr.New(apperr.Conflict, "Book not available"))
		return
	}

	book.Available = false
	book.BorrowedBy = req.Borrower
	if err := h.books.SaveBook(r.Context(), book); err != nil {
		h.fail(w, err)
		return
	}

	h.record(r.Context(), activity.TypeBorrow, book, req.Borrower)
	respond.JSON(w, http.StatusOK, book)
}

// Return puts a book back on the shelf whether or not it was borrowed.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	previous := book.BorrowedBy
	book.Available = true
	book.BorrowedBy = nil
	if err := h.books.SaveBook(r.Context(), book); err != nil {
		h.fail(w, err)
		return
	}

	h.record(r.Context(), activity.TypeReturn, book, previous)
	respond.JSON(w, http.StatusOK, book)
}

func (h *Handler) record(ctx context.Context, typ string, b *models.Book, borrower *string) {
	if h.events == nil {
		return
	}
	err := h.events.Record(ctx, activity.Event{
		Type:     typ,
		BookID:   b.ID.Hex(),
		ISBN:     b.ISBN,
		Title:    b.Title,
		Borrower: borrower,
	})
	if err != nil {
		h.log.WithError(err).WithField("book_id", b.ID.Hex()).Warn("activity record failed")
	}
}
