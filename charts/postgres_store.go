package charts

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/liamcoop/chartgen/inference"
	_ "github.com/lib/pq"
)

// PostgresChartStore implements ChartStore backed by PostgreSQL. The full
// chart description is stored as JSONB alongside a few indexed columns.
type PostgresChartStore struct {
	db *sql.DB
}

// NewPostgresChartStore creates a new PostgreSQL-backed ChartStore.
func NewPostgresChartStore(db *sql.DB) *PostgresChartStore {
	return &PostgresChartStore{db: db}
}

// Save inserts a new chart into the database.
func (s *PostgresChartStore) Save(chart *SavedChart) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM charts WHERE id = $1)
	`, chart.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check chart existence: %w", err)
	}
	if exists {
		return fmt.Errorf("chart with ID %s already exists", chart.ID)
	}

	specJSON, err := json.Marshal(chart.Spec)
	if err != nil {
		return fmt.Errorf("failed to marshal chart spec: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO charts (id, title, chart_type, spec, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`, chart.ID, chart.Title, chart.ChartType, specJSON).Scan(&chart.CreatedAt, &chart.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert chart: %w", err)
	}

	return nil
}

// Get retrieves a chart by ID.
func (s *PostgresChartStore) Get(id string) (*SavedChart, error) {
	var chart SavedChart
	var specJSON []byte
	err := s.db.QueryRow(`
		SELECT id, title, chart_type, spec, created_at, updated_at
		FROM charts
		WHERE id = $1
	`, id).Scan(
		&chart.ID,
		&chart.Title,
		&chart.ChartType,
		&specJSON,
		&chart.CreatedAt,
		&chart.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chart %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chart: %w", err)
	}

	chart.Spec = &inference.ChartSpec{}
	if err := json.Unmarshal(specJSON, chart.Spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart spec: %w", err)
	}

	return &chart, nil
}

// ListRecent returns up to limit charts, newest first.
func (s *PostgresChartStore) ListRecent(limit int) ([]*SavedChart, error) {
	rows, err := s.db.Query(`
		SELECT id, title, chart_type, spec, created_at, updated_at
		FROM charts
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	defer rows.Close()

	var recent []*SavedChart
	for rows.Next() {
		var chart SavedChart
		var specJSON []byte
		if err := rows.Scan(&chart.ID, &chart.Title, &chart.ChartType,
			&specJSON, &chart.CreatedAt, &chart.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chart: %w", err)
		}
		chart.Spec = &inference.ChartSpec{}
		if err := json.Unmarshal(specJSON, chart.Spec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chart spec: %w", err)
		}
		recent = append(recent, &chart)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating charts: %w", err)
	}

	return recent, nil
}

// Delete removes a chart from the database.
func (s *PostgresChartStore) Delete(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM charts
		WHERE id = $1
	`, id)

	if err != nil {
		return fmt.Errorf("failed to delete chart: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("chart %s not found", id)
	}

	return nil
}
