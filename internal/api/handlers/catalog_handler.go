package handlers

import (
	"net/http"
	"strconv"

	"course-finder/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves course lookups and program listings
type CatalogHandler struct {
	store catalog.CourseStore
	repo  catalog.CatalogRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store catalog.CourseStore, repo catalog.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		store: store,
		repo:  repo,
	}
}

// CourseResponse describes a single course. Known is false for dangling references,
// in which case Metadata holds the placeholder record.
type CourseResponse struct {
	CourseID      string                 `json:"course_id"`
	Known         bool                   `json:"known"`
	Metadata      catalog.CourseMeta     `json:"metadata"`
	Prerequisites []string               `json:"prerequisites"`
	Meetings      []*catalog.TermMeeting `json:"meetings"`
}

// TermCoursesResponse lists the courses offered in a term
type TermCoursesResponse struct {
	Term      string   `json:"term"`
	Count     int      `json:"count"`
	CourseIDs []string `json:"course_ids"`
}

// termQuery reads the optional year and quarter query parameters. It writes a 400
// response and returns false when either is malformed.
func termQuery(c *gin.Context) (catalog.TermFilter, bool) {
	var filter catalog.TermFilter

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "Invalid year format", err.Error())
			return filter, false
		}
		filter.Year = year
	}

	if raw := c.Query("quarter"); raw != "" {
		q, err := catalog.ParseQuarter(raw)
		if err != nil {
			badRequest(c, "Invalid quarter", err.Error())
			return filter, false
		}
		filter.Quarter = q
	}

	return filter, true
}

// GetCourse handles GET /api/v1/courses/:course_id
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	courseID := c.Param("course_id")
	ctx := c.Request.Context()

	course, err := h.repo.GetCourse(ctx, courseID)
	if err != nil {
		internalError(c, "Failed to get course", err)
		return
	}

	meta, err := h.store.MetadataOf(ctx, courseID)
	if err != nil {
		internalError(c, "Failed to get course metadata", err)
		return
	}

	prereqs, err := h.store.PrerequisitesOf(ctx, courseID)
	if err != nil {
		internalError(c, "Failed to get prerequisites", err)
		return
	}

	filter, ok := termQuery(c)
	if !ok {
		return
	}

	meetings, err := h.repo.ListTermMeetings(ctx, courseID, filter)
	if err != nil {
		internalError(c, "Failed to get meetings", err)
		return
	}
	if meetings == nil {
		meetings = []*catalog.TermMeeting{}
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: CourseResponse{
			CourseID:      courseID,
			Known:         course != nil,
			Metadata:      meta,
			Prerequisites: prereqs.Sorted(),
			Meetings:      meetings,
		},
	})
}

// TermCourses handles GET /api/v1/terms/courses?year=&quarter=
func (h *CatalogHandler) TermCourses(c *gin.Context) {
	filter, ok := termQuery(c)
	if !ok {
		return
	}

	courses, err := h.store.CoursesOfferedInTerm(c.Request.Context(), filter)
	if err != nil {
		internalError(c, "Failed to get term courses", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: TermCoursesResponse{
			Term:      filter.String(),
			Count:     courses.Len(),
			CourseIDs: courses.Sorted(),
		},
	})
}

// ListMajors handles GET /api/v1/majors
func (h *CatalogHandler) ListMajors(c *gin.Context) {
	majors, err := h.repo.ListMajors(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to list majors", err)
		return
	}
	if majors == nil {
		majors = []*catalog.Major{}
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    majors,
	})
}

// ListSpecializations handles GET /api/v1/majors/:major_id/specializations
func (h *CatalogHandler) ListSpecializations(c *gin.Context) {
	specs, err := h.repo.ListSpecializations(c.Request.Context(), c.Param("major_id"))
	if err != nil {
		internalError(c, "Failed to list specializations", err)
		return
	}
	if specs == nil {
		specs = []*catalog.Specialization{}
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    specs,
	})
}

// ListMinors handles GET /api/v1/minors
func (h *CatalogHandler) ListMinors(c *gin.Context) {
	minors, err := h.repo.ListMinors(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to list minors", err)
		return
	}
	if minors == nil {
		minors = []*catalog.Minor{}
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    minors,
	})
}
