package handlers

import (
	"net/http"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxCatalogCourses caps the public catalog listing.
const maxCatalogCourses = 50

// CoursesHandler serves the public course catalog
type CoursesHandler struct {
	content database.SiteContentRepositoryInterface
	logger  *zap.Logger
}

// NewCoursesHandler creates a new courses handler
func NewCoursesHandler(content database.SiteContentRepositoryInterface, logger *zap.Logger) *CoursesHandler {
	return &CoursesHandler{content: content, logger: logger}
}

// RegisterRoutes registers course routes
func (h *CoursesHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/courses", h.ListCourses).Methods("GET")
}

// ListCourses returns the public course catalog
func (h *CoursesHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.content.ListCourses(r.Context(), maxCatalogCourses)
	if err != nil {
		h.logger.Error("failed_to_list_courses", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list courses")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"courses": courses,
		"count":   len(courses),
	})
}
