package eligibility

import (
	"context"
	"fmt"
	"sort"

	"course-finder/internal/domain/catalog"
	"course-finder/pkg/logger"
)

const (
	DefaultLimit = 10
	MaxReasons   = 3

	WeightMajor    = 4.0
	WeightMinor    = 2.0
	WeightNoPrereq = 0.5

	ReasonMajor    = "Required for your major"
	ReasonMinor    = "Counts toward your minor"
	ReasonNoPrereq = "No prerequisites"
)

// ScoredCourse is one ranked search result
type ScoredCourse struct {
	CourseID string   `json:"course_id"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
	catalog.CourseMeta
}

// Engine computes eligible courses for a profile against a course store
type Engine struct {
	store catalog.CourseStore
}

func NewEngine(store catalog.CourseStore) *Engine {
	return &Engine{
		store: store,
	}
}

// requiredPool unions the requirement sets of every declared major and minor
func (e *Engine) requiredPool(ctx context.Context, profile *Profile) (catalog.CourseSet, error) {
	pool := catalog.NewCourseSet()

	for id := range profile.majors {
		courses, err := e.store.CoursesRequiredByMajor(ctx, id)
		if err != nil {
			return nil, err
		}
		pool.Union(courses)
	}

	for id := range profile.minors {
		courses, err := e.store.CoursesRequiredByMinor(ctx, id)
		if err != nil {
			return nil, err
		}
		pool.Union(courses)
	}

	return pool, nil
}

// prerequisitesMet reports whether every prerequisite of courseID is completed
func (e *Engine) prerequisitesMet(ctx context.Context, profile *Profile, courseID string) (bool, error) {
	prereqs, err := e.store.PrerequisitesOf(ctx, courseID)
	if err != nil {
		return false, err
	}
	return prereqs.Subset(profile.completed), nil
}

// Search returns the courses offered in the filtered term that the profile can take.
// With no declared major the whole term is browsed; otherwise only term courses
// required by a declared major or minor are considered. Completed courses are
// never returned and every result has all prerequisites completed.
func (e *Engine) Search(ctx context.Context, profile *Profile, filter catalog.TermFilter) (catalog.CourseSet, error) {
	filter = filter.Normalized()

	required, err := e.requiredPool(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build requirement pool: %w", err)
	}
	for id := range profile.completed {
		required.Remove(id)
	}

	termPool, err := e.store.CoursesOfferedInTerm(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get term offerings: %w", err)
	}

	base := termPool
	if len(profile.majors) > 0 {
		base = termPool.Intersect(required)
	}

	results := catalog.NewCourseSet()
	for _, id := range base.Sorted() {
		if profile.completed.Has(id) {
			continue
		}

		ok, err := e.prerequisitesMet(ctx, profile, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check prerequisites of %s: %w", id, err)
		}
		if ok {
			results.Add(id)
		}
	}

	logger.Debug("Search %s for %s: %d candidates, %d eligible", filter, profile, base.Len(), results.Len())
	return results, nil
}

// SearchRanked scores the eligible courses, orders them by score (ties by course
// id ascending) and returns at most limit results. A non-positive limit yields
// no results.
func (e *Engine) SearchRanked(ctx context.Context, profile *Profile, filter catalog.TermFilter, limit int) ([]ScoredCourse, error) {
	if limit <= 0 {
		return []ScoredCourse{}, nil
	}

	eligible, err := e.Search(ctx, profile, filter)
	if err != nil {
		return nil, err
	}

	ranked := make([]ScoredCourse, 0, eligible.Len())
	for _, id := range eligible.Sorted() {
		scored, err := e.score(ctx, profile, id)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, scored)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].CourseID < ranked[j].CourseID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// score applies each rule once: the first matching major and the first matching
// minor count, additional matches do not accumulate.
func (e *Engine) score(ctx context.Context, profile *Profile, courseID string) (ScoredCourse, error) {
	result := ScoredCourse{CourseID: courseID, Reasons: []string{}}

	for _, majorID := range profile.Majors() {
		hit, err := e.store.IsMajorCourse(ctx, courseID, majorID)
		if err != nil {
			return ScoredCourse{}, fmt.Errorf("failed to score %s: %w", courseID, err)
		}
		if hit {
			result.Score += WeightMajor
			result.Reasons = append(result.Reasons, ReasonMajor)
			break
		}
	}

	for _, minorID := range profile.Minors() {
		hit, err := e.store.IsMinorCourse(ctx, courseID, minorID)
		if err != nil {
			return ScoredCourse{}, fmt.Errorf("failed to score %s: %w", courseID, err)
		}
		if hit {
			result.Score += WeightMinor
			result.Reasons = append(result.Reasons, ReasonMinor)
			break
		}
	}

	prereqs, err := e.store.PrerequisitesOf(ctx, courseID)
	if err != nil {
		return ScoredCourse{}, fmt.Errorf("failed to score %s: %w", courseID, err)
	}
	if prereqs.Len() == 0 {
		result.Score += WeightNoPrereq
		result.Reasons = append(result.Reasons, ReasonNoPrereq)
	}

	if len(result.Reasons) > MaxReasons {
		result.Reasons = result.Reasons[:MaxReasons]
	}

	meta, err := e.store.MetadataOf(ctx, courseID)
	if err != nil {
		return ScoredCourse{}, fmt.Errorf("failed to get metadata of %s: %w", courseID, err)
	}
	result.CourseMeta = meta

	return result, nil
}
