package handlers

import (
	"net/http"

	"course-finder/internal/domain/catalog"
	"course-finder/internal/service/eligibility"
	"course-finder/pkg/validator"

	"github.com/gin-gonic/gin"
)

// SearchRequest is the body of POST /api/v1/search
type SearchRequest struct {
	eligibility.ProfileRequest
	Year    int    `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Quarter string `json:"quarter" validate:"omitempty,quarter"`
	Ranked  bool   `json:"ranked"`
	Limit   int    `json:"limit" validate:"gte=0,lte=100"`
}

// SearchResponse is the unranked answer: eligible course ids in ascending order
type SearchResponse struct {
	Term      string   `json:"term"`
	Count     int      `json:"count"`
	CourseIDs []string `json:"course_ids"`
}

type RankedSearchResponse struct {
	Term    string                     `json:"term"`
	Count   int                        `json:"count"`
	Results []eligibility.ScoredCourse `json:"results"`
}

// SearchHandler handles eligibility search requests
type SearchHandler struct {
	engine       *eligibility.Engine
	defaultLimit int
	maxLimit     int
}

// NewSearchHandler creates a new search handler. Non-positive limits fall back to the engine defaults.
func NewSearchHandler(engine *eligibility.Engine, defaultLimit, maxLimit int) *SearchHandler {
	if defaultLimit <= 0 {
		defaultLimit = eligibility.DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &SearchHandler{
		engine:       engine,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest

	// Bind JSON request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	// Validate request
	if err := validator.ValidateStruct(&req); err != nil {
		validationFailed(c, err)
		return
	}

	profile := req.Profile()
	filter := catalog.NewTermFilter(req.Year, req.Quarter)
	ctx := c.Request.Context()

	var data interface{}

	if req.Ranked {
		limit := req.Limit
		if limit == 0 {
			limit = h.defaultLimit
		}
		if limit > h.maxLimit {
			limit = h.maxLimit
		}

		results, err := h.engine.SearchRanked(ctx, profile, filter, limit)
		if err != nil {
			internalError(c, "Search failed", err)
			return
		}
		data = RankedSearchResponse{
			Term:    filter.String(),
			Count:   len(results),
			Results: results,
		}
	} else {
		courses, err := h.engine.Search(ctx, profile, filter)
		if err != nil {
			internalError(c, "Search failed", err)
			return
		}
		data = SearchResponse{
			Term:      filter.String(),
			Count:     courses.Len(),
			CourseIDs: courses.Sorted(),
		}
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Search completed successfully",
		Data:    data,
	})
}
