package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-directory/internal/domains/school/model"
	"school-directory/internal/domains/school/service"
	"school-directory/internal/infrastructure/storage"
	"school-directory/internal/upload"
	"school-directory/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memRepo is an in-memory Repository; records are kept newest first.
type memRepo struct {
	schools []model.School
	nextID  int64
	failing error
}

func newMemRepo() *memRepo { return &memRepo{nextID: 1} }

func (r *memRepo) List(ctx context.Context) ([]model.School, error) {
	if r.failing != nil {
		return nil, r.failing
	}
	out := make([]model.School, len(r.schools))
	copy(out, r.schools)
	return out, nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*model.School, error) {
	if r.failing != nil {
		return nil, r.failing
	}
	for i := range r.schools {
		if r.schools[i].ID == id {
			s := r.schools[i]
			return &s, nil
		}
	}
	return nil, model.ErrSchoolNotFound
}

func (r *memRepo) Create(ctx context.Context, school *model.School) error {
	if r.failing != nil {
		return r.failing
	}
	school.ID = r.nextID
	r.nextID++
	school.CreatedAt = time.Now()
	r.schools = append([]model.School{*school}, r.schools...)
	return nil
}

func (r *memRepo) Stats(ctx context.Context) (*model.AggregateStats, error) {
	if r.failing != nil {
		return nil, r.failing
	}
	stats := &model.AggregateStats{TotalSchools: len(r.schools)}
	cities := map[string]struct{}{}
	for _, s := range r.schools {
		cities[s.City] = struct{}{}
		if s.Students != nil {
			stats.TotalStudents += int64(*s.Students)
		}
	}
	stats.TotalCities = len(cities)
	return stats, nil
}

// newTestRouter wires the real service and upload pipeline over an
// in-memory repository and a temp upload directory.
func newTestRouter(t *testing.T, repo *memRepo) *gin.Engine {
	t.Helper()

	uploads := upload.NewHandler(storage.NewLocalStorage(t.TempDir(), "/uploads/schoolImages"), 5<<20)
	svc := service.NewSchoolService(repo, uploads, cache.NewNoop())
	h := NewSchoolHandler(svc)

	router := gin.New()
	router.GET("/api/schools", h.ListSchools)
	router.POST("/api/schools", h.CreateSchool)
	router.GET("/api/schools/export", h.ExportSchools)
	router.GET("/api/schools/:id", h.GetSchool)
	router.GET("/api/stats", h.Stats)
	return router
}

type fileUpload struct {
	filename    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, fields map[string]string, file *fileUpload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+file.filename+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/schools", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"name":     "Greenwood High School",
		"address":  "12 Hill Road, Bandra West",
		"city":     "Mumbai",
		"state":    "Maharashtra",
		"contact":  "9876543210",
		"email_id": "info@greenwood.edu",
		"students": "1200",
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListSchools_EmptyArray(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListSchools_StoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.failing = errors.New("connection refused")
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch schools", decodeBody(t, w)["error"])
}

func TestCreateSchool_WithoutImage(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), nil))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "School added successfully", body["message"])
	assert.Equal(t, float64(1), body["id"])
	assert.Nil(t, body["image"])
}

func TestCreateSchool_NewestListedFirst(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), nil))
	require.Equal(t, http.StatusCreated, w.Code)

	second := validFields()
	second["name"] = "St. Xavier's Academy"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, second, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var schools []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schools))
	require.Len(t, schools, 2)
	assert.Equal(t, "St. Xavier's Academy", schools[0]["name"])
	assert.Nil(t, schools[0]["image"])
}

func TestCreateSchool_MissingField(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	fields := validFields()
	delete(fields, "name")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, fields, nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	fieldErrs, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "Name")
}

func TestCreateSchool_WhitespaceOnlyField(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	fields := validFields()
	fields["city"] = "   "

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, fields, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSchool_InvalidStudents(t *testing.T) {
	for _, students := range []string{"0", "-3", "abc"} {
		t.Run(students, func(t *testing.T) {
			router := newTestRouter(t, newMemRepo())

			fields := validFields()
			fields["students"] = students

			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest(t, fields, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateSchool_WithImage(t *testing.T) {
	repo := newMemRepo()
	router := newTestRouter(t, repo)

	file := &fileUpload{filename: "campus.png", contentType: "image/png", content: []byte("png-bytes")}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), file))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	image, ok := body["image"].(string)
	require.True(t, ok)
	assert.Contains(t, image, "/uploads/schoolImages/school-")
}

func TestCreateSchool_RejectsPdfRegardlessOfDeclaredType(t *testing.T) {
	repo := newMemRepo()
	router := newTestRouter(t, repo)

	file := &fileUpload{filename: "prospectus.pdf", contentType: "image/png", content: []byte("%PDF-1.4")}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), file))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// No partial insert: the record never reached the store.
	assert.Empty(t, repo.schools)
}

func TestCreateSchool_RejectsOversizedImage(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	file := &fileUpload{
		filename:    "campus.png",
		contentType: "image/png",
		content:     bytes.Repeat([]byte("x"), (5<<20)+1),
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), file))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSchool_Found(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Greenwood High School", body["name"])
	assert.Equal(t, "info@greenwood.edu", body["email_id"])
}

func TestGetSchool_UnknownID(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/42", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "School not found", decodeBody(t, w)["error"])
}

func TestGetSchool_MalformedID(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["totalSchools"])
	assert.Equal(t, "1.2K+", body["totalStudents"])
	assert.Equal(t, float64(1), body["totalCities"])
}

func TestExportSchools(t *testing.T) {
	router := newTestRouter(t, newMemRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, validFields(), nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}
