package eligibility

import (
	"context"
	"errors"
	"fmt"

	"course-finder/internal/domain/catalog"
)

type offering struct {
	courseID string
	year     int
	quarter  catalog.Quarter
}

// memStore is an in-memory catalog.CourseStore for engine tests
type memStore struct {
	courses       map[string]catalog.Course
	majorCourses  map[string]catalog.CourseSet
	minorCourses  map[string]catalog.CourseSet
	prerequisites map[string]catalog.CourseSet
	offerings     []offering
	failOn        string
}

func newMemStore() *memStore {
	return &memStore{
		courses:       make(map[string]catalog.Course),
		majorCourses:  make(map[string]catalog.CourseSet),
		minorCourses:  make(map[string]catalog.CourseSet),
		prerequisites: make(map[string]catalog.CourseSet),
	}
}

var errStoreDown = errors.New("store unavailable")

func (m *memStore) addCourse(id, dept, number, title string, minUnits, maxUnits int) *memStore {
	m.courses[id] = catalog.Course{
		CourseID:     id,
		Department:   dept,
		CourseNumber: number,
		CourseTitle:  title,
		MinUnits:     minUnits,
		MaxUnits:     maxUnits,
	}
	return m
}

func (m *memStore) offer(courseID string, year int, quarter catalog.Quarter) *memStore {
	m.offerings = append(m.offerings, offering{courseID: courseID, year: year, quarter: quarter})
	return m
}

func (m *memStore) requireForMajor(majorID string, courseIDs ...string) *memStore {
	if m.majorCourses[majorID] == nil {
		m.majorCourses[majorID] = catalog.NewCourseSet()
	}
	for _, id := range courseIDs {
		m.majorCourses[majorID].Add(id)
	}
	return m
}

func (m *memStore) requireForMinor(minorID string, courseIDs ...string) *memStore {
	if m.minorCourses[minorID] == nil {
		m.minorCourses[minorID] = catalog.NewCourseSet()
	}
	for _, id := range courseIDs {
		m.minorCourses[minorID].Add(id)
	}
	return m
}

func (m *memStore) requirePrereqs(courseID string, prereqIDs ...string) *memStore {
	if m.prerequisites[courseID] == nil {
		m.prerequisites[courseID] = catalog.NewCourseSet()
	}
	for _, id := range prereqIDs {
		m.prerequisites[courseID].Add(id)
	}
	return m
}

func (m *memStore) check(op string) error {
	if m.failOn == op {
		return fmt.Errorf("%s: %w", op, errStoreDown)
	}
	return nil
}

func (m *memStore) CoursesRequiredByMajor(ctx context.Context, majorID string) (catalog.CourseSet, error) {
	if err := m.check("major"); err != nil {
		return nil, err
	}
	return m.majorCourses[majorID].Clone(), nil
}

func (m *memStore) CoursesRequiredByMinor(ctx context.Context, minorID string) (catalog.CourseSet, error) {
	if err := m.check("minor"); err != nil {
		return nil, err
	}
	return m.minorCourses[minorID].Clone(), nil
}

func (m *memStore) CoursesOfferedInTerm(ctx context.Context, filter catalog.TermFilter) (catalog.CourseSet, error) {
	if err := m.check("term"); err != nil {
		return nil, err
	}
	filter = filter.Normalized()
	out := catalog.NewCourseSet()
	for _, o := range m.offerings {
		if filter.HasYear() && o.year != filter.Year {
			continue
		}
		if filter.HasQuarter() && o.quarter != filter.Quarter {
			continue
		}
		out.Add(o.courseID)
	}
	return out, nil
}

func (m *memStore) PrerequisitesOf(ctx context.Context, courseID string) (catalog.CourseSet, error) {
	if err := m.check("prereq"); err != nil {
		return nil, err
	}
	return m.prerequisites[courseID].Clone(), nil
}

func (m *memStore) MetadataOf(ctx context.Context, courseID string) (catalog.CourseMeta, error) {
	if err := m.check("meta"); err != nil {
		return catalog.CourseMeta{}, err
	}
	c, ok := m.courses[courseID]
	if !ok {
		return catalog.UnknownCourseMeta(courseID), nil
	}
	minUnits, maxUnits := c.MinUnits, c.MaxUnits
	return catalog.CourseMeta{
		Department: c.Department,
		Code:       c.Department + " " + c.CourseNumber,
		Title:      c.CourseTitle,
		MinUnits:   &minUnits,
		MaxUnits:   &maxUnits,
	}, nil
}

func (m *memStore) IsMajorCourse(ctx context.Context, courseID, majorID string) (bool, error) {
	return m.majorCourses[majorID].Has(courseID), nil
}

func (m *memStore) IsMinorCourse(ctx context.Context, courseID, minorID string) (bool, error) {
	return m.minorCourses[minorID].Has(courseID), nil
}

func (m *memStore) IsRequiredFor(ctx context.Context, courseID, programID string) (bool, error) {
	return m.majorCourses[programID].Has(courseID) || m.minorCourses[programID].Has(courseID), nil
}

var _ catalog.CourseStore = (*memStore)(nil)
