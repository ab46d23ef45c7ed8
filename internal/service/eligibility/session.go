package eligibility

import (
	"context"

	"course-finder/internal/domain/catalog"
)

// Session pairs an engine with one mutable profile, for callers that build a
// query step by step between searches. Not safe for concurrent use.
type Session struct {
	*Profile
	engine *Engine
}

func NewSession(engine *Engine) *Session {
	return &Session{
		Profile: NewProfile(),
		engine:  engine,
	}
}

func (s *Session) Search(ctx context.Context, year int, quarter string) (catalog.CourseSet, error) {
	return s.engine.Search(ctx, s.Profile, catalog.NewTermFilter(year, quarter))
}

func (s *Session) SearchRanked(ctx context.Context, year int, quarter string, limit int) ([]ScoredCourse, error) {
	return s.engine.SearchRanked(ctx, s.Profile, catalog.NewTermFilter(year, quarter), limit)
}
