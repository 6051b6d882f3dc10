package service

import (
	"context"
	"mime/multipart"

	"github.com/xuri/excelize/v2"

	"school-directory/internal/domains/school/model"
)

// Service is the school domain business logic.
type Service interface {
	ListSchools(ctx context.Context) ([]model.School, error)
	GetSchool(ctx context.Context, id int64) (*model.School, error)

	// CreateSchool validates the submission, stores the optional image and
	// inserts the record. file may be nil.
	CreateSchool(ctx context.Context, req *model.CreateSchoolRequest, file *multipart.FileHeader) (*model.CreateSchoolResponse, error)

	// Stats returns display-ready aggregates for the landing page.
	Stats(ctx context.Context) (*model.StatsResponse, error)

	// ExportSchools builds a spreadsheet of all records.
	ExportSchools(ctx context.Context) (*excelize.File, error)
}
