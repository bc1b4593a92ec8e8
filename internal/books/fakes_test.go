package books

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Omkar-Hajare/IP-practical/internal/activity"
	"github.com/Omkar-Hajare/IP-practical/internal/models"
)

// memBooks mirrors the MongoStore contract: ObjectID ids, unique isbn,
// ErrInvalidID for malformed ids.
type memBooks struct {
	mu      sync.Mutex
	order   []primitive.ObjectID
	books   map[primitive.ObjectID]models.Book
	listErr error
	inserts int
}

func newMemBooks() *memBooks {
	return &memBooks{books: map[primitive.ObjectID]models.Book{}}
}

func (m *memBooks) isbnTaken(isbn string, except primitive.ObjectID) bool {
	for id, b := range m.books {
		if id != except && b.ISBN == isbn {
			return true
		}
	}
	return false
}

func (m *memBooks) ListBooks(context.Context) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []models.Book{}
	for _, id := range m.order {
		if b, ok := m.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBooks) GetBook(_ context.Context, id string) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[oid]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

func (m *memBooks) InsertBook(_ context.Context, b *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isbnTaken(b.ISBN, primitive.NilObjectID) {
		return models.ErrDuplicate
	}
	b.ID = primitive.NewObjectID()
	m.books[b.ID] = *b
	m.order = append(m.order, b.ID)
	m.inserts++
	return nil
}

func (m *memBooks) UpdateBook(_ context.Context, id string, fields map[string]interface{}) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[oid]
	if !ok {
		return nil, nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			b.Title = v.(string)
		case "author":
			b.Author = v.(string)
		case "isbn":
			if m.isbnTaken(v.(string), oid) {
				return nil, models.ErrDuplicate
			}
			b.ISBN = v.(string)
		case "available":
			b.Available = v.(bool)
		case "borrowedBy":
			if v == nil {
				b.BorrowedBy = nil
			} else {
				s := v.(string)
				b.BorrowedBy = &s
			}
		}
	}
	m.books[oid] = b
	return &b, nil
}

func (m *memBooks) SaveBook(_ context.Context, b *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return models.ErrNotFound
	}
	m.books[b.ID] = *b
	return nil
}

func (m *memBooks) DeleteBook(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, oid)
	return nil
}

func (m *memBooks) CountBooks(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.books)), nil
}

func (m *memBooks) InsertBooks(ctx context.Context, books []models.Book) error {
	for i := range books {
		if err := m.InsertBook(ctx, &books[i]); err != nil {
			return err
		}
	}
	return nil
}

type recorded struct {
	mu     sync.Mutex
	events []activity.Event
}

func (r *recorded) Record(_ context.Context, ev activity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

type memCovers struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemCovers() *memCovers {
	return &memCovers{objects: map[string][]byte{}, types: map[string]string{}}
}

func (c *memCovers) Upload(_ context.Context, key string, data []byte, contentType string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[key] = data
	c.types[key] = contentType
	return nil
}

func (c *memCovers) Download(_ context.Context, key string) ([]byte, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[key]
	if !ok {
		return nil, "", models.ErrNotFound
	}
	return data, c.types[key], nil
}

func (c *memCovers) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, key)
	delete(c.types, key)
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
