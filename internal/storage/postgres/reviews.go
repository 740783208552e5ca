package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"provaa/internal/models"

	"github.com/lib/pq"
)

func (s *Storage) GetReviewsByBookings(ctx context.Context, bookingIDs []int) ([]models.Review, error) {
	reviews := []models.Review{}
	if len(bookingIDs) == 0 {
		return reviews, nil
	}

	ids := make([]int64, len(bookingIDs))
	for i, id := range bookingIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT id, booking_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE booking_id = ANY($1)
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			review  models.Review
			comment sql.NullString
		)

		err = rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.UserID,
			&review.Rating,
			&comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		if comment.Valid {
			review.Comment = &comment.String
		}

		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

func (s *Storage) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (booking_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	created := review
	err := s.DB.QueryRowContext(ctx, query,
		review.BookingID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &created, nil
}
