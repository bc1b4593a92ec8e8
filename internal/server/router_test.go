package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Omkar-Hajare/IP-practical/internal/activity"
	"github.com/Omkar-Hajare/IP-practical/internal/auth"
	"github.com/Omkar-Hajare/IP-practical/internal/books"
	"github.com/Omkar-Hajare/IP-practical/internal/models"
)

// memory implements both user and book storage for end-to-end route tests.
type memory struct {
	mu    sync.Mutex
	users map[string]models.User
	books []models.Book
}

func (m *memory) CreateUser(_ context.Context, name, email, hashedPw string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return nil, models.ErrDuplicate
	}
	u := models.User{Name: name, Email: email, Password: hashedPw}
	m.users[email] = u
	return &u, nil
}

func (m *memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m *memory) find(id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1, models.ErrInvalidID
	}
	for i := range m.books {
		if m.books[i].ID == oid {
			return i, nil
		}
	}
	return -1, models.ErrNotFound
}

func (m *memory) ListBooks(context.Context) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Book{}, m.books...), nil
}

func (m *memory) GetBook(_ context.Context, id string) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	b := m.books[i]
	return &b, nil
}

func (m *memory) InsertBook(_ context.Context, b *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.books {
		if existing.ISBN == b.ISBN {
			return models.ErrDuplicate
		}
	}
	b.ID = primitive.NewObjectID()
	m.books = append(m.books, *b)
	return nil
}

func (m *memory) UpdateBook(_ context.Context, id string, fields map[string]interface{}) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.find(id)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if t, ok := fields["title"].(string); ok {
		m.books[i].Title = t
	}
	b := m.books[i]
	return &b, nil
}

func (m *memory) SaveBook(_ context.Context, b *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.find(b.ID.Hex())
	if err != nil {
		return err
	}
	m.books[i] = *b
	return nil
}

func (m *memory) DeleteBook(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.find(id)
	if err == models.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	m.books = append(m.books[:i], m.books[i+1:]...)
	return nil
}

func (m *memory) CountBooks(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.books)), nil
}

func (m *memory) InsertBooks(ctx context.Context, bs []models.Book) error {
	for i := range bs {
		if err := m.InsertBook(ctx, &bs[i]); err != nil {
			return err
		}
	}
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memory) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mem := &memory{users: map[string]models.User{}}
	if _, err := books.Seed(context.Background(), mem); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var events *activity.Log
	router := NewRouter(Handlers{
		Auth:     auth.NewHandler(mem, logger),
		Books:    books.NewHandler(mem, events, nil, logger),
		Activity: activity.NewHandler(events),
	}, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mem
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestRouteTable(t *testing.T) {
	srv, mem := newTestServer(t)
	id := mem.books[0].ID.Hex()

	tests := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"ann@example.com","password":"pw"}`, http.StatusCreated},
		{http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"ann@example.com","password":"pw"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"pw"}`, http.StatusOK},
		{http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"nope"}`, http.StatusUnauthorized},
		{http.MethodGet, "/api/books", "", http.StatusOK},
		{http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert","isbn":"978-0441013593"}`, http.StatusCreated},
		{http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert","isbn":"978-0441013593"}`, http.StatusBadRequest},
		{http.MethodPut, "/api/books/" + id, `{"title":"Lean"}`, http.StatusOK},
		{http.MethodPost, "/api/books/" + id + "/borrow", `{"borrower":"Ann"}`, http.StatusOK},
		{http.MethodPost, "/api/books/" + id + "/borrow", `{"borrower":"Bob"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/books/" + id + "/return", "", http.StatusOK},
		{http.MethodPost, "/api/books/" + id + "/return", "", http.StatusOK},
		{http.MethodDelete, "/api/books/" + id, "", http.StatusOK},
		{http.MethodDelete, "/api/books/" + id, "", http.StatusOK},
		{http.MethodGet, "/api/activity", "", http.StatusOK},
		{http.MethodGet, "/api/books/" + id + "/cover", "", http.StatusNotFound},
	}
	for _, tc := range tests {
		resp, body := call(t, srv, tc.method, tc.path, tc.body)
		if resp.StatusCode != tc.status {
			t.Errorf("%s %s: status = %d, want %d (body %s)", tc.method, tc.path, resp.StatusCode, tc.status, body)
		}
	}
}

func TestListAfterSeed(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := call(t, srv, http.MethodGet, "/api/books", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var got []models.Book
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("want 6 books, got %d", len(got))
	}
	if got[4].Title != "The Black Swan" || got[4].BorrowedBy == nil || *got[4].BorrowedBy != "Jane Smith" {
		t.Fatalf("book 4 = %+v", got[4])
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/books", nil)
	req.Header.Set("Origin", "http://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/books", nil)
	req.Header.Set("Origin", "http://another.example")
	resp, err = srv.Client().Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
}
