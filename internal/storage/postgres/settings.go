package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// GetAdminSettings returns the stored values for keys. Keys without a row are
// absent from the result.
func (s *Storage) GetAdminSettings(ctx context.Context, keys []string) (map[string]string, error) {
	query := `
		SELECT key, value
		FROM admin_settings
		WHERE key = ANY($1)`

	rows, err := s.DB.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("failed to get admin settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan admin setting: %w", err)
		}

		settings[key] = value
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin settings: %w", err)
	}

	return settings, nil
}
