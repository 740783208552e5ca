package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"provaa/internal/config"
	"provaa/internal/models"
	"provaa/internal/storage"

	"github.com/gosimple/slug"
	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

const eventColumns = `id, title, start_date, end_date, start_time, venue, city, price,
		capacity, spots_remaining, host_id, category, image`

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event   models.Event
		endDate sql.NullTime
		price   sql.NullFloat64
	)

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.StartDate,
		&endDate,
		&event.StartTime,
		&event.Venue,
		&event.City,
		&price,
		&event.Capacity,
		&event.SpotsRemaining,
		&event.HostID,
		&event.Category,
		&event.Image,
	)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		event.EndDate = &endDate.Time
	}
	if price.Valid {
		event.Price = &price.Float64
	}
	event.Slug = slug.Make(event.Title)

	return &event, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (s *Storage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY start_date ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
