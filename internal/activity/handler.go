package activity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Omkar-Hajare/IP-practical/internal/apperr"
	"github.com/Omkar-Hajare/IP-practical/internal/respond"
)

const defaultLimit = 50

// Feed is the read side of the circulation log.
type Feed interface {
	Recent(ctx context.Context, n int) ([]Event, error)
}

type Handler struct {
	feed Feed
}

func NewHandler(feed Feed) *Handler {
	return &Handler{feed: feed}
}

// List serves GET /api/activity?limit=n.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.Error(w, apperr.New(apperr.Validation, "limit must be a positive integer"))
			return
		}
		limit = min(n, MaxEvents)
	}

	events, err := h.feed.Recent(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, events)
}
