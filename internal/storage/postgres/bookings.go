package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"provaa/internal/models"
	"provaa/internal/storage"
)

const bookingColumns = `id, reference, event_id, user_id, guest_name, guest_email, guest_phone,
		number_of_tickets, price_per_ticket, total_amount, status, payment_method,
		payment_session_id, created_at, cancelled_at,
		event_title, event_date, event_time, event_location, event_image, host_id`

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		booking     models.Booking
		userID      sql.NullString
		sessionID   sql.NullString
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.EventID,
		&userID,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&booking.NumberOfTickets,
		&booking.PricePerTicket,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentMethod,
		&sessionID,
		&booking.CreatedAt,
		&cancelledAt,
		&booking.Event.Title,
		&booking.Event.Date,
		&booking.Event.Time,
		&booking.Event.Location,
		&booking.Event.Image,
		&booking.Event.HostID,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		booking.UserID = &userID.String
	}
	booking.PaymentSessionID = sessionID.String
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	return &booking, nil
}

// CreateBooking stores a pending booking. Spots are only taken on confirmation,
// but a checkout cannot start for more tickets than are currently left.
func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var spotsRemaining int
	spotsQuery := `
		SELECT spots_remaining
		FROM events
		WHERE id = $1
		FOR UPDATE`

	err = tx.QueryRowContext(ctx, spotsQuery, booking.EventID).Scan(&spotsRemaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event spots: %w", err)
	}

	if spotsRemaining < booking.NumberOfTickets {
		return nil, storage.ErrNotEnoughSpots
	}

	insertQuery := `
		INSERT INTO bookings (reference, event_id, user_id, guest_name, guest_email, guest_phone,
			number_of_tickets, price_per_ticket, total_amount, status, payment_method,
			event_title, event_date, event_time, event_location, event_image, host_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	created := *booking
	created.Status = models.BookingStatusPending

	err = tx.QueryRowContext(ctx, insertQuery,
		created.Reference,
		created.EventID,
		created.UserID,
		created.GuestName,
		created.GuestEmail,
		created.GuestPhone,
		created.NumberOfTickets,
		created.PricePerTicket,
		created.TotalAmount,
		created.Status,
		created.PaymentMethod,
		created.Event.Title,
		created.Event.Date,
		created.Event.Time,
		created.Event.Location,
		created.Event.Image,
		created.Event.HostID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE reference = $1`

	booking, err := scanBooking(s.DB.QueryRowContext(ctx, query, ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (s *Storage) GetBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		bookings = append(bookings, *booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// SetPaymentSession records the provider checkout session on a pending
// booking together with the time the session stops accepting payment.
func (s *Storage) SetPaymentSession(ctx context.Context, ref, sessionID string, expiresAt time.Time) error {
	query := `
		UPDATE bookings
		SET payment_session_id = $2, payment_expires_at = $3
		WHERE reference = $1 AND status = 'pending'`

	result, err := s.DB.ExecContext(ctx, query, ref, sessionID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set payment session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set payment session: %w", err)
	}

	if affected == 0 {
		return storage.ErrBookingNotPending
	}

	return nil
}

type lockedBooking struct {
	id      int
	eventID int
	tickets int
	status  models.BookingStatus
}

func lockBooking(ctx context.Context, tx *sql.Tx, ref string) (*lockedBooking, error) {
	query := `
		SELECT id, event_id, number_of_tickets, status
		FROM bookings
		WHERE reference = $1
		FOR UPDATE`

	var b lockedBooking
	err := tx.QueryRowContext(ctx, query, ref).Scan(&b.id, &b.eventID, &b.tickets, &b.status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}

	return &b, nil
}

// ConfirmBooking moves a pending booking to confirmed and takes its spots.
// Confirming an already confirmed booking is a no-op.
func (s *Storage) ConfirmBooking(ctx context.Context, ref, paymentMethod string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	b, err := lockBooking(ctx, tx, ref)
	if err != nil {
		return err
	}

	switch b.status {
	case models.BookingStatusConfirmed:
		return tx.Commit()
	case models.BookingStatusCancelled:
		return storage.ErrBookingNotPending
	}

	spotsQuery := `
		UPDATE events
		SET spots_remaining = spots_remaining - $2
		WHERE id = $1 AND spots_remaining >= $2`

	result, err := tx.ExecContext(ctx, spotsQuery, b.eventID, b.tickets)
	if err != nil {
		return fmt.Errorf("failed to take event spots: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to take event spots: %w", err)
	}

	if affected == 0 {
		return storage.ErrNotEnoughSpots
	}

	updateQuery := `
		UPDATE bookings
		SET status = 'confirmed', payment_method = COALESCE(NULLIF($2, ''), payment_method)
		WHERE id = $1`

	if _, err = tx.ExecContext(ctx, updateQuery, b.id, paymentMethod); err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	return tx.Commit()
}

// CancelBooking cancels a pending or confirmed booking, giving confirmed spots back.
func (s *Storage) CancelBooking(ctx context.Context, ref string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	b, err := lockBooking(ctx, tx, ref)
	if err != nil {
		return err
	}

	if b.status == models.BookingStatusCancelled {
		return storage.ErrBookingNotPending
	}

	if b.status == models.BookingStatusConfirmed {
		spotsQuery := `
			UPDATE events
			SET spots_remaining = spots_remaining + $2
			WHERE id = $1`

		if _, err = tx.ExecContext(ctx, spotsQuery, b.eventID, b.tickets); err != nil {
			return fmt.Errorf("failed to release event spots: %w", err)
		}
	}

	updateQuery := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1`

	if _, err = tx.ExecContext(ctx, updateQuery, b.id); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return tx.Commit()
}

// CancelPendingBooking cancels a booking that has not been paid, under the
// same row lock ConfirmBooking takes. Confirmed bookings give
// storage.ErrBookingNotPending. Cancelling a cancelled booking is a no-op.
func (s *Storage) CancelPendingBooking(ctx context.Context, ref string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	b, err := lockBooking(ctx, tx, ref)
	if err != nil {
		return err
	}

	switch b.status {
	case models.BookingStatusCancelled:
		return tx.Commit()
	case models.BookingStatusConfirmed:
		return storage.ErrBookingNotPending
	}

	updateQuery := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1`

	if _, err = tx.ExecContext(ctx, updateQuery, b.id); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return tx.Commit()
}

// DeleteExpiredBookings removes unpaid bookings created before olderThan.
// A booking whose checkout session can still take payment is kept until the
// session expires.
func (s *Storage) DeleteExpiredBookings(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		DELETE FROM bookings
		WHERE status = 'pending'
		AND created_at < $1
		AND (payment_expires_at IS NULL OR payment_expires_at < NOW())`

	result, err := s.DB.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired bookings: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted bookings: %w", err)
	}

	return deleted, nil
}
