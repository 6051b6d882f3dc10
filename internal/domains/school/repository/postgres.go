package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-directory/internal/domains/school/model"
)

// postgresRepository implements Repository over a pgx connection pool.
// The pool is the connection provider: acquire, use, release per query.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// List returns all records, newest first. ID is the tiebreak so records
// created within the same timestamp tick keep insertion order reversed.
func (r *postgresRepository) List(ctx context.Context) ([]model.School, error) {
	query := `
    SELECT id, name, address, city, state, contact, image, email_id, students, created_at
    FROM schools
    ORDER BY created_at DESC, id DESC
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	schools := []model.School{}
	for rows.Next() {
		var s model.School
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Address,
			&s.City,
			&s.State,
			&s.Contact,
			&s.Image,
			&s.Email,
			&s.Students,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan school row: %w", err)
		}
		schools = append(schools, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating school rows: %w", err)
	}

	return schools, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.School, error) {
	query := `
    SELECT id, name, address, city, state, contact, image, email_id, students, created_at
    FROM schools
    WHERE id = $1
  `

	var s model.School
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.City,
		&s.State,
		&s.Contact,
		&s.Image,
		&s.Email,
		&s.Students,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school by id: %w", err)
	}

	return &s, nil
}

func (r *postgresRepository) Create(ctx context.Context, school *model.School) error {
	query := `
    INSERT INTO schools (name, address, city, state, contact, image, email_id, students)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id, created_at
  `

	err := r.pool.QueryRow(ctx, query,
		school.Name,
		school.Address,
		school.City,
		school.State,
		school.Contact,
		school.Image,
		school.Email,
		school.Students,
	).Scan(&school.ID, &school.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}

	return nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.AggregateStats, error) {
	query := `
    SELECT COUNT(*), COUNT(DISTINCT city), COALESCE(SUM(students), 0)
    FROM schools
  `

	var stats model.AggregateStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalSchools,
		&stats.TotalCities,
		&stats.TotalStudents,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &stats, nil
}
