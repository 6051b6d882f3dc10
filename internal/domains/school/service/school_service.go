package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"school-directory/internal/domains/school/model"
	"school-directory/internal/domains/school/repository"
	"school-directory/internal/upload"
	"school-directory/pkg/cache"
	"school-directory/pkg/logger"
)

const (
	statsCacheKey = "schools:stats"
	statsCacheTTL = 30 * time.Second
)

// SchoolService implements Service.
type SchoolService struct {
	repo    repository.Repository
	uploads *upload.Handler
	cache   cache.Cache
}

func NewSchoolService(repo repository.Repository, uploads *upload.Handler, c cache.Cache) *SchoolService {
	return &SchoolService{
		repo:    repo,
		uploads: uploads,
		cache:   c,
	}
}

func (s *SchoolService) ListSchools(ctx context.Context) ([]model.School, error) {
	return s.repo.List(ctx)
}

func (s *SchoolService) GetSchool(ctx context.Context, id int64) (*model.School, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateSchool runs the full submission transaction: validate, store the
// optional image, insert. Validation failure never leaves a partial insert
// because nothing is written before validation passes.
func (s *SchoolService) CreateSchool(ctx context.Context, req *model.CreateSchoolRequest, file *multipart.FileHeader) (*model.CreateSchoolResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	students, err := req.StudentsCount()
	if err != nil {
		return nil, fmt.Errorf("parse students count: %w", err)
	}

	var image *string
	if file != nil {
		ref, err := s.uploads.Store(ctx, file)
		if err != nil {
			return nil, err
		}
		image = &ref
	}

	school := &model.School{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Contact:  req.Contact,
		Email:    req.Email,
		Students: &students,
		Image:    image,
	}

	if err := s.repo.Create(ctx, school); err != nil {
		return nil, err
	}

	// A new record changes every aggregate; drop the cached stats.
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		logger.Warn("failed to invalidate stats cache", err)
	}

	return &model.CreateSchoolResponse{
		Message: "School added successfully",
		ID:      school.ID,
		Image:   school.Image,
	}, nil
}

// Stats serves cached aggregates when available; the cache is best effort
// and misses fall through to the store.
func (s *SchoolService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	var cached model.StatsResponse
	found, err := s.cache.Get(ctx, statsCacheKey, &cached)
	if found {
		return &cached, nil
	}
	if err != nil {
		logger.Warn("stats cache read failed", err)
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.StatsResponse{
		TotalSchools:  stats.TotalSchools,
		TotalStudents: FormatStudentTotal(stats.TotalStudents),
		TotalCities:   stats.TotalCities,
	}

	if err := s.cache.Set(ctx, statsCacheKey, resp, statsCacheTTL); err != nil {
		logger.Warn("stats cache write failed", err)
	}

	return resp, nil
}

// FormatStudentTotal abbreviates thousands for display: 1500 -> "1.5K+",
// 999 -> "999".
func FormatStudentTotal(total int64) string {
	if total >= 1000 {
		return fmt.Sprintf("%.1fK+", float64(total)/1000)
	}
	return strconv.FormatInt(total, 10)
}

// ExportSchools builds an xlsx workbook with one row per record.
func (s *SchoolService) ExportSchools(ctx context.Context) (*excelize.File, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Schools"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Name", "Address", "City", "State", "Contact", "Email", "Students", "Image", "Created At"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "J1", headerStyle)
	}

	for i, school := range schools {
		rowNum := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, rowNum)
			return name
		}

		f.SetCellValue(sheetName, cell(1), school.ID)
		f.SetCellValue(sheetName, cell(2), school.Name)
		f.SetCellValue(sheetName, cell(3), school.Address)
		f.SetCellValue(sheetName, cell(4), school.City)
		f.SetCellValue(sheetName, cell(5), school.State)
		f.SetCellValue(sheetName, cell(6), school.Contact)
		f.SetCellValue(sheetName, cell(7), school.Email)
		if school.Students != nil {
			f.SetCellValue(sheetName, cell(8), *school.Students)
		}
		if school.Image != nil {
			f.SetCellValue(sheetName, cell(9), *school.Image)
		}
		f.SetCellValue(sheetName, cell(10), school.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return f, nil
}
