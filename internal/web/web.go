package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-directory/internal/domains/school/model"
	"school-directory/internal/domains/school/service"
	"school-directory/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pages are rendered as base layout + one content template each.
var pages = []string{"landing", "schools", "add_school"}

// Handler serves the server-rendered frontend pages.
type Handler struct {
	service   service.Service
	templates map[string]*template.Template
}

func NewHandler(service service.Service) (*Handler, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFS,
			"templates/base.html",
			fmt.Sprintf("templates/%s.html", page))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Handler{service: service, templates: templates}, nil
}

// RegisterRoutes mounts the frontend pages and static assets.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Landing)
	router.GET("/schools", h.Listing)
	router.GET("/add-school", h.AddSchool)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("static assets missing from binary: %v", err))
	}
	router.StaticFS("/static", http.FS(static))
}

type pageData struct {
	Title  string
	Active string

	// listing page
	Schools  []model.School
	Query    string
	Degraded bool
}

func (h *Handler) render(c *gin.Context, page string, data pageData) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[page].ExecuteTemplate(c.Writer, "base", data); err != nil {
		logger.Error("failed to render page", err)
	}
}

// Landing serves GET /
func (h *Handler) Landing(c *gin.Context) {
	h.render(c, "landing", pageData{Title: "School Directory", Active: "home"})
}

// Listing serves GET /schools with an optional ?q= search filter.
// The page is rendered with the current records; client-side script
// refreshes them and keeps filtering on every keystroke.
func (h *Handler) Listing(c *gin.Context) {
	query := c.Query("q")
	data := pageData{Title: "Browse Schools", Active: "schools", Query: query}

	schools, err := h.service.ListSchools(c.Request.Context())
	if err != nil {
		// Render the shell anyway; the client script falls back to
		// sample data and shows a warning banner.
		logger.Error("failed to list schools for page render", err)
		data.Degraded = true
	} else {
		data.Schools = Filter(schools, query)
	}

	h.render(c, "schools", data)
}

// AddSchool serves GET /add-school
func (h *Handler) AddSchool(c *gin.Context) {
	h.render(c, "add_school", pageData{Title: "Add School", Active: "add"})
}
