package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"course-finder/internal/domain/catalog"

	"github.com/jmoiron/sqlx"
)

const (
	selectMajorCourses = `SELECT course_id FROM major_courses WHERE major_id = ?`
	selectMinorCourses = `SELECT course_id FROM minor_courses WHERE minor_id = ?`

	selectTermCoursesByYearQuarter = `SELECT DISTINCT course_id FROM terms WHERE year = ? AND quarter = ?`
	selectTermCoursesByQuarter     = `SELECT DISTINCT course_id FROM terms WHERE quarter = ?`
	selectTermCoursesByYear        = `SELECT DISTINCT course_id FROM terms WHERE year = ?`
	selectTermCoursesAll           = `SELECT DISTINCT course_id FROM terms`

	selectPrerequisites = `SELECT prereq_id FROM prerequisites WHERE course_id = ?`

	selectCourseMeta = `SELECT department, course_number, course_title, min_units, max_units FROM courses WHERE course_id = ?`

	existsMajorCourse = `SELECT 1 FROM major_courses WHERE major_id = ? AND course_id = ? LIMIT 1`
	existsMinorCourse = `SELECT 1 FROM minor_courses WHERE minor_id = ? AND course_id = ? LIMIT 1`
)

var _ catalog.CourseStore = (*CourseStore)(nil)

// CourseStore answers catalog lookups with plain SQL over a shared, pooled handle.
// Every call is an independent read; nothing here writes.
type CourseStore struct {
	db *sqlx.DB
}

func NewCourseStore(db *sqlx.DB) *CourseStore {
	return &CourseStore{
		db: db,
	}
}

func (s *CourseStore) selectSet(ctx context.Context, query string, args ...any) (catalog.CourseSet, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return catalog.NewCourseSet(ids...), nil
}

func (s *CourseStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var hit int
	err := s.db.GetContext(ctx, &hit, s.db.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *CourseStore) CoursesRequiredByMajor(ctx context.Context, majorID string) (catalog.CourseSet, error) {
	courses, err := s.selectSet(ctx, selectMajorCourses, majorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses for major %s: %w", majorID, err)
	}
	return courses, nil
}

func (s *CourseStore) CoursesRequiredByMinor(ctx context.Context, minorID string) (catalog.CourseSet, error) {
	courses, err := s.selectSet(ctx, selectMinorCourses, minorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses for minor %s: %w", minorID, err)
	}
	return courses, nil
}

// CoursesOfferedInTerm picks its query from whichever of year and quarter are set
func (s *CourseStore) CoursesOfferedInTerm(ctx context.Context, filter catalog.TermFilter) (catalog.CourseSet, error) {
	filter = filter.Normalized()

	var (
		courses catalog.CourseSet
		err     error
	)
	switch {
	case filter.HasYear() && filter.HasQuarter():
		courses, err = s.selectSet(ctx, selectTermCoursesByYearQuarter, filter.Year, string(filter.Quarter))
	case filter.HasQuarter():
		courses, err = s.selectSet(ctx, selectTermCoursesByQuarter, string(filter.Quarter))
	case filter.HasYear():
		courses, err = s.selectSet(ctx, selectTermCoursesByYear, filter.Year)
	default:
		courses, err = s.selectSet(ctx, selectTermCoursesAll)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get courses offered in %s: %w", filter, err)
	}
	return courses, nil
}

func (s *CourseStore) PrerequisitesOf(ctx context.Context, courseID string) (catalog.CourseSet, error) {
	prereqs, err := s.selectSet(ctx, selectPrerequisites, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prerequisites of %s: %w", courseID, err)
	}
	return prereqs, nil
}

type courseMetaRow struct {
	Department   string `db:"department"`
	CourseNumber string `db:"course_number"`
	CourseTitle  string `db:"course_title"`
	MinUnits     int    `db:"min_units"`
	MaxUnits     int    `db:"max_units"`
}

// MetadataOf falls back to catalog.UnknownCourseMeta for identifiers not in the catalog
func (s *CourseStore) MetadataOf(ctx context.Context, courseID string) (catalog.CourseMeta, error) {
	var row courseMetaRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(selectCourseMeta), courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.UnknownCourseMeta(courseID), nil
		}
		return catalog.CourseMeta{}, fmt.Errorf("failed to get metadata of %s: %w", courseID, err)
	}

	minUnits, maxUnits := row.MinUnits, row.MaxUnits
	return catalog.CourseMeta{
		Department: row.Department,
		Code:       fmt.Sprintf("%s %s", row.Department, row.CourseNumber),
		Title:      row.CourseTitle,
		MinUnits:   &minUnits,
		MaxUnits:   &maxUnits,
	}, nil
}

func (s *CourseStore) IsMajorCourse(ctx context.Context, courseID, majorID string) (bool, error) {
	hit, err := s.exists(ctx, existsMajorCourse, majorID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to check major %s for %s: %w", majorID, courseID, err)
	}
	return hit, nil
}

func (s *CourseStore) IsMinorCourse(ctx context.Context, courseID, minorID string) (bool, error) {
	hit, err := s.exists(ctx, existsMinorCourse, minorID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to check minor %s for %s: %w", minorID, courseID, err)
	}
	return hit, nil
}

// IsRequiredFor checks programID against both majors and minors
func (s *CourseStore) IsRequiredFor(ctx context.Context, courseID, programID string) (bool, error) {
	hit, err := s.IsMajorCourse(ctx, courseID, programID)
	if err != nil || hit {
		return hit, err
	}
	return s.IsMinorCourse(ctx, courseID, programID)
}
