package hierarchy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads supervisor edges from the warehouse's staff master table
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a source reading from the given table
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = "staff_master_list"
	}
	return &PostgresSource{pool: pool, table: table}
}

// DirectReports implements Source. Only staff still employed (active or on
// leave) appear in a downline.
func (s *PostgresSource) DirectReports(ctx context.Context, supervisorEmail string) ([]string, error) {
	query := fmt.Sprintf(`
        SELECT LOWER(email)
        FROM %s
        WHERE LOWER(supervisor_email) = LOWER($1)
        AND employment_status IN ('Active', 'Leave of absence')`, s.table)

	rows, err := s.pool.Query(ctx, query, supervisorEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var reports []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		reports = append(reports, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return reports, nil
}
