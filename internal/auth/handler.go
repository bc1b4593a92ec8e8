package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Omkar-Hajare/IP-practical/internal/apperr"
	"github.com/Omkar-Hajare/IP-practical/internal/models"
	"github.com/Omkar-Hajare/IP-practical/internal/respond"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users UserStore
	log   logrus.FieldLogger
}

func NewHandler(users UserStore, log logrus.FieldLogger) *Handler {
	return &Handler{users: users, log: log}
}

var errInvalidCredentials = apperr.New(apperr.Unauthorized, "Invalid credentials")

// Signup creates a new account. The stored password is a bcrypt hash.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	user, err := h.signup(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, models.AuthResponse{Message: "User created", User: user.Public()})
}

func (h *Handler) signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperr.New(apperr.Validation, "name, email, and password are required")
	}

	existing, err := h.users.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.New(apperr.Conflict, "Email already exists")
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.Wrap(apperr.Validation, "password must be at most 72 bytes", err)
		}
		return nil, err
	}

	user, err := h.users.CreateUser(ctx, req.Name, req.Email, string(hashed))
	if err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, models.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "Email already exists", err)
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials. No session or token is issued.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respond.Error(w, errInvalidCredentials)
			return
		}
		h.fail(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.Error(w, errInvalidCredentials)
		return
	}

	respond.JSON(w, http.StatusOK, models.AuthResponse{Message: "Login successful", User: user.Public()})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if apperr.KindOf(err) == apperr.Internal {
		h.log.WithError(err).Error("auth request failed")
	}
	respond.Error(w, err)
}
