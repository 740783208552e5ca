// Package session keeps a snapshot of the buyer's session in Redis while they
// are away at the payment provider, so it can be restored when they return.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session snapshot not found")

const keyPrefix = "payment_session:"

type Snapshot struct {
	BookingReference  string    `json:"booking_reference"`
	UserID            string    `json:"user_id,omitempty"`
	GuestEmail        string    `json:"guest_email,omitempty"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func Key(reference string) string {
	return keyPrefix + reference
}

func (s *Store) Save(ctx context.Context, snap Snapshot, ttl time.Duration) error {
	const op = "session.Store.Save"

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.client.Set(ctx, Key(snap.BookingReference), b, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Restore(ctx context.Context, reference string) (*Snapshot, error) {
	const op = "session.Store.Restore"

	b, err := s.client.Get(ctx, Key(reference)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snap Snapshot
	if err = json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &snap, nil
}
