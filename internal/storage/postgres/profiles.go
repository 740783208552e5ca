package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"provaa/internal/models"
	"provaa/internal/storage"

	"github.com/lib/pq"
)

func (s *Storage) GetHostProfile(ctx context.Context, id string) (*models.HostProfile, error) {
	query := `
		SELECT id, display_name, rating, review_count, bio, story, languages, photo_url
		FROM profiles
		WHERE id = $1`

	var (
		host      models.HostProfile
		bio       sql.NullString
		story     sql.NullString
		photoURL  sql.NullString
		languages []string
	)

	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&host.ID,
		&host.DisplayName,
		&host.Rating,
		&host.ReviewCount,
		&bio,
		&story,
		pq.Array(&languages),
		&photoURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrHostNotFound
		}
		return nil, fmt.Errorf("failed to get host profile: %w", err)
	}

	host.Bio = bio.String
	host.Story = story.String
	host.PhotoURL = photoURL.String
	host.Languages = languages
	if host.Languages == nil {
		host.Languages = []string{}
	}

	return &host, nil
}
