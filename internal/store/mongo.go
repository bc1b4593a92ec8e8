package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Omkar-Hajare/IP-practical/internal/models"
)

// MongoStore holds the books and users collections.
type MongoStore struct {
	books *mongo.Collection
	users *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		books: db.Collection("books"),
		users: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique indexes on books.isbn and users.email.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	if _, err := s.books.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "isbn", Value: 1}}, Options: unique,
	}); err != nil {
		return fmt.Errorf("books isbn index: %w", err)
	}
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	}); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", models.ErrInvalidID, id)
	}
	return oid, nil
}

func mapWriteErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %v", op, models.ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ── Books ───────────────────────────────────────────────────

func (s *MongoStore) ListBooks(ctx context.Context) ([]models.Book, error) {
	cur, err := s.books.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo find books: %w", err)
	}
	defer cur.Close(ctx)

	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("mongo decode books: %w", err)
	}
	return books, nil
}

func (s *MongoStore) GetBook(ctx context.Context, id string) (*models.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var b models.Book
	if err := s.books.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find book: %w", err)
	}
	return &b, nil
}

func (s *MongoStore) InsertBook(ctx context.Context, b *models.Book) error {
	b.ID = primitive.NewObjectID()
	if _, err := s.books.InsertOne(ctx, b); err != nil {
		b.ID = primitive.NilObjectID
		return mapWriteErr("mongo insert book", err)
	}
	return nil
}

// InsertBooks writes the batch in one insertMany call.
func (s *MongoStore) InsertBooks(ctx context.Context, books []models.Book) error {
	docs := make([]interface{}, len(books))
	for i := range books {
		books[i].ID = primitive.NewObjectID()
		docs[i] = books[i]
	}
	if _, err := s.books.InsertMany(ctx, docs); err != nil {
		return mapWriteErr("mongo insert books", err)
	}
	return nil
}

// UpdateBook applies fields with $set and returns the updated document.
// A well-formed id that matches nothing yields (nil, nil).
func (s *MongoStore) UpdateBook(ctx context.Context, id string, fields map[string]interface{}) (*models.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		b, err := s.GetBook(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return b, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Book
	err = s.books.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapWriteErr("mongo update book", err)
	}
	return &b, nil
}

// SaveBook replaces the stored document with b.
func (s *MongoStore) SaveBook(ctx context.Context, b *models.Book) error {
	res, err := s.books.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return mapWriteErr("mongo save book", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteBook(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.books.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo delete book: %w", err)
	}
	return nil
}

func (s *MongoStore) CountBooks(ctx context.Context) (int64, error) {
	n, err := s.books.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo count books: %w", err)
	}
	return n, nil
}

// ── Users ───────────────────────────────────────────────────

func (s *MongoStore) CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error) {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hashedPw,
		CreatedAt: time.Now(),
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return nil, mapWriteErr("mongo insert user", err)
	}
	return u, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return &u, nil
}
