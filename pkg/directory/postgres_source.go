package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource loads staff records from the warehouse's staff master table
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a source reading from the given table. The table
// name comes from deployment configuration, not user input.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = "staff_master_list"
	}
	return &PostgresSource{pool: pool, table: table}
}

// LoadStaff implements Source
func (s *PostgresSource) LoadStaff(ctx context.Context, email string) (*StaffRecord, error) {
	query := fmt.Sprintf(`
        SELECT email, display_name, job_title, location, employment_status,
               COALESCE(supervisor_email, ''), COALESCE(employee_number, '')
        FROM %s
        WHERE LOWER(email) = LOWER($1)
        LIMIT 1`, s.table)

	var record StaffRecord
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&record.Email,
		&record.DisplayName,
		&record.JobTitle,
		&record.Location,
		&record.Status,
		&record.SupervisorEmail,
		&record.EmployeeNumber,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &record, nil
}
