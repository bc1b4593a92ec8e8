package books

import (
	"context"
	"fmt"

	"github.com/Omkar-Hajare/IP-practical/internal/models"
)

// Seeder is the storage needed to bootstrap an empty catalog.
type Seeder interface {
	CountBooks(ctx context.Context) (int64, error)
	InsertBooks(ctx context.Context, books []models.Book) error
}

func strPtr(s string) *string { return &s }

// SampleBooks returns a fresh copy of the bootstrap catalog.
func SampleBooks() []models.Book {
	return []models.Book{
		{Title: "The Lean Startup", Author: "Eric Ries", ISBN: "978-0307887894", Available: true},
		{Title: "Zero to One", Author: "Peter Thiel", ISBN: "978-0804139298", Available: false, BorrowedBy: strPtr("John Doe")},
		{Title: "The Innovators Dilemma", Author: "Clayton Christensen", ISBN: "978-1633691780", Available: true},
		{Title: "Thinking Fast and Slow", Author: "Daniel Kahneman", ISBN: "978-0374533557", Available: true},
		{Title: "The Black Swan", Author: "Nassim Taleb", ISBN: "978-0812973815", Available: false, BorrowedBy: strPtr("Jane Smith")},
		{Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "978-0062316097", Available: true},
	}
}

// Seed inserts SampleBooks in one batch when the catalog is empty and
// returns how many books were written.
func Seed(ctx context.Context, s Seeder) (int, error) {
	n, err := s.CountBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	books := SampleBooks()
	if err := s.InsertBooks(ctx, books); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	return len(books), nil
}
