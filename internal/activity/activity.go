// Package activity keeps a short circulation history (borrows and returns)
// in a capped Redis list, newest first.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "library:activity"
	MaxEvents  = 500
)

const (
	TypeBorrow = "borrow"
	TypeReturn = "return"
)

// Event is one circulation change.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	BookID   string    `json:"bookId"`
	ISBN     string    `json:"isbn"`
	Title    string    `json:"title"`
	Borrower *string   `json:"borrower"`
	At       time.Time `json:"at"`
}

// Log wraps Redis for the circulation history. A nil *Log is valid and
// records nothing, which is how the service runs without Redis.
type Log struct {
	rdb *redis.Client
	key string
}

func NewLog(rdb *redis.Client) *Log {
	return &Log{rdb: rdb, key: DefaultKey}
}

// Record stamps ev with an id and time and pushes it onto the list.
func (l *Log) Record(ctx context.Context, ev Event) error {
	if l == nil {
		return nil
	}
	ev.ID = uuid.New().String()
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, err = l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, l.key, raw)
		p.LTrim(ctx, l.key, 0, MaxEvents-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis record %s: %w", ev.Type, err)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (l *Log) Recent(ctx context.Context, n int) ([]Event, error) {
	events := []Event{}
	if l == nil || n <= 0 {
		return events, nil
	}
	vals, err := l.rdb.LRange(ctx, l.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis recent: %w", err)
	}
	for _, v := range vals {
		var ev Event
		if err := json.Unmarshal([]byte(v), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
