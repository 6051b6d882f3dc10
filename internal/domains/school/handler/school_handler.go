package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"school-directory/internal/domains/school/model"
	"school-directory/internal/domains/school/service"
	"school-directory/internal/shared/response"
	"school-directory/internal/upload"
	"school-directory/pkg/logger"
)

// imageFieldName is the only multipart field a file is accepted under.
const imageFieldName = "image"

// SchoolHandler handles HTTP requests for the school domain.
type SchoolHandler struct {
	service service.Service
}

func NewSchoolHandler(service service.Service) *SchoolHandler {
	return &SchoolHandler{service: service}
}

// ListSchools handles GET /api/schools
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	schools, err := h.service.ListSchools(c.Request.Context())
	if err != nil {
		logger.Error("failed to fetch schools", err)
		response.InternalServerError(c, "Failed to fetch schools")
		return
	}

	c.JSON(http.StatusOK, schools)
}

// CreateSchool handles POST /api/schools (multipart form)
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req model.CreateSchoolRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	// At most one optional image; absence is not an error.
	file, err := c.FormFile(imageFieldName)
	if err != nil {
		file = nil
	}

	result, err := h.service.CreateSchool(c.Request.Context(), &req, file)
	if err != nil {
		var fieldErrs validation.Errors
		switch {
		case errors.As(err, &fieldErrs):
			response.ValidationError(c, fieldErrs)
		case errors.Is(err, upload.ErrUnsupportedType),
			errors.Is(err, upload.ErrFileTooLarge):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("failed to add school", err)
			response.InternalServerError(c, "Failed to add school")
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetSchool handles GET /api/schools/:id
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, model.ErrInvalidSchoolID.Message)
		return
	}

	school, err := h.service.GetSchool(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrSchoolNotFound) {
			response.NotFound(c, "School not found")
			return
		}
		logger.Error("failed to fetch school", err)
		response.InternalServerError(c, "Failed to fetch school")
		return
	}

	c.JSON(http.StatusOK, school)
}

// Stats handles GET /api/stats
func (h *SchoolHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		logger.Error("failed to fetch stats", err)
		response.InternalServerError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportSchools handles GET /api/schools/export
func (h *SchoolHandler) ExportSchools(c *gin.Context) {
	f, err := h.service.ExportSchools(c.Request.Context())
	if err != nil {
		logger.Error("failed to export schools", err)
		response.InternalServerError(c, "Failed to export schools")
		return
	}

	filename := fmt.Sprintf("schools-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("failed to write export", err)
	}
}
