package web

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"school-directory/internal/domains/school/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService serves a fixed school list to the page handlers.
type stubService struct {
	schools []model.School
	err     error
}

func (s *stubService) ListSchools(ctx context.Context) ([]model.School, error) {
	return s.schools, s.err
}

func (s *stubService) GetSchool(ctx context.Context, id int64) (*model.School, error) {
	return nil, model.ErrSchoolNotFound
}

func (s *stubService) CreateSchool(ctx context.Context, req *model.CreateSchoolRequest, file *multipart.FileHeader) (*model.CreateSchoolResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	return &model.StatsResponse{}, nil
}

func (s *stubService) ExportSchools(ctx context.Context) (*excelize.File, error) {
	return nil, errors.New("not implemented")
}

func newTestServer(t *testing.T, svc *stubService) *gin.Engine {
	t.Helper()

	h, err := NewHandler(svc)
	require.NoError(t, err)

	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLandingPage(t *testing.T) {
	router := newTestServer(t, &stubService{})

	w := get(router, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Find the Right School")
	assert.Contains(t, w.Body.String(), "/static/js/landing.js")
}

func TestListingPage_RendersSchools(t *testing.T) {
	router := newTestServer(t, &stubService{schools: sampleSchools()})

	w := get(router, "/schools")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Greenwood High School")
	assert.Contains(t, body, "Delhi Public School")
	assert.NotContains(t, body, `data-degraded`)
}

func TestListingPage_QueryFiltersServerSide(t *testing.T) {
	router := newTestServer(t, &stubService{schools: sampleSchools()})

	w := get(router, "/schools?q=mum")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Mumbai")
	assert.NotContains(t, body, "Kolkata")
	assert.NotContains(t, body, "Delhi Public School")
}

func TestListingPage_DegradedWhenStoreUnavailable(t *testing.T) {
	router := newTestServer(t, &stubService{err: errors.New("connection refused")})

	w := get(router, "/schools")

	// The shell still renders; the client script shows sample data.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-degraded="true"`)
}

func TestListingPage_PlaceholderForMissingImage(t *testing.T) {
	router := newTestServer(t, &stubService{schools: sampleSchools()})

	w := get(router, "/schools")

	assert.Contains(t, w.Body.String(), "/static/img/placeholder.svg")
}

func TestAddSchoolPage(t *testing.T) {
	router := newTestServer(t, &stubService{})

	w := get(router, "/add-school")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="school-form"`)
	assert.Contains(t, body, `name="email_id"`)
	assert.Contains(t, body, "/static/js/add-school.js")
}

func TestStaticAssetsServed(t *testing.T) {
	router := newTestServer(t, &stubService{})

	w := get(router, "/static/css/style.css")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".school-grid")
}
