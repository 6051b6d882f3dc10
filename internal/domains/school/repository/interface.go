package repository

import (
	"context"

	"school-directory/internal/domains/school/model"
)

// Repository is the record store contract.
type Repository interface {
	// List returns all records ordered by descending creation time.
	List(ctx context.Context) ([]model.School, error)

	// GetByID returns one record or model.ErrSchoolNotFound.
	GetByID(ctx context.Context, id int64) (*model.School, error)

	// Create inserts a record and fills in the assigned ID and CreatedAt.
	Create(ctx context.Context, school *model.School) error

	// Stats computes the aggregates over all records at query time.
	Stats(ctx context.Context) (*model.AggregateStats, error)
}
