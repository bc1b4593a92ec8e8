package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Book is a catalog entry stored in the books collection.
// BorrowedBy is nil while the book is on the shelf.
type Book struct {
	ID         primitive.ObjectID `json:"_id"        bson:"_id,omitempty"`
	Title      string             `json:"title"      bson:"title"`
	Author     string             `json:"author"     bson:"author"`
	ISBN       string             `json:"isbn"       bson:"isbn"`
	Available  bool               `json:"available"  bson:"available"`
	BorrowedBy *string            `json:"borrowedBy" bson:"borrowedBy"`
}

// BookInput is the JSON body for POST /api/books. Available is a pointer so
// an omitted field can default to true.
type BookInput struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	ISBN       string  `json:"isbn"`
	Available  *bool   `json:"available"`
	BorrowedBy *string `json:"borrowedBy"`
}

// Book applies the schema defaults.
func (in BookInput) Book() Book {
	b := Book{
		Title:      in.Title,
		Author:     in.Author,
		ISBN:       in.ISBN,
		Available:  true,
		BorrowedBy: in.BorrowedBy,
	}
	if in.Available != nil {
		b.Available = *in.Available
	}
	return b
}

// BorrowRequest is the JSON body for POST /api/books/{id}/borrow.
type BorrowRequest struct {
	Borrower *string `json:"borrower"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
