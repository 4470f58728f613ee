package acl

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads explicit grants from the externally managed ACL table
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a source reading from the given table
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = "dashboard_acl"
	}
	return &PostgresSource{pool: pool, table: table}
}

// GrantsFor implements Source
func (s *PostgresSource) GrantsFor(ctx context.Context, email string) ([]Grant, error) {
	query := fmt.Sprintf(`
        SELECT DISTINCT dashboard, COALESCE(school, '')
        FROM %s
        WHERE LOWER(email) = LOWER($1)`, s.table)

	rows, err := s.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var grant Grant
		if err := rows.Scan(&grant.Dashboard, &grant.School); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return grants, nil
}
