package loader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"course-finder/internal/domain/catalog"
	"course-finder/pkg/validator"
)

var (
	ErrInvalidRecord     = errors.New("invalid record")
	ErrDuplicateCourse   = errors.New("duplicate course id")
	ErrPrerequisiteCycle = errors.New("prerequisite cycle")
)

// BuildSnapshot validates the records and converts them into catalog rows.
// Any invalid record, duplicate id or unmapped GE category fails the whole build.
func BuildSnapshot(courses []CourseRecord, programs *ProgramFile) (*catalog.Snapshot, error) {
	snapshot := &catalog.Snapshot{}
	seen := make(map[string]bool, len(courses))

	for i := range courses {
		rec := &courses[i]
		if err := validator.ValidateStruct(rec); err != nil {
			return nil, fmt.Errorf("%w: course #%d (%s): %s", ErrInvalidRecord, i, rec.ID, validator.Summarize(err))
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCourse, rec.ID)
		}
		seen[rec.ID] = true

		if err := appendCourse(snapshot, rec); err != nil {
			return nil, fmt.Errorf("course %s: %w", rec.ID, err)
		}
	}

	if programs != nil {
		if err := validator.ValidateStruct(programs); err != nil {
			return nil, fmt.Errorf("%w: programs: %s", ErrInvalidRecord, validator.Summarize(err))
		}
		appendPrograms(snapshot, programs)
	}

	return snapshot, nil
}

func appendCourse(snapshot *catalog.Snapshot, rec *CourseRecord) error {
	snapshot.Courses = append(snapshot.Courses, catalog.Course{
		CourseID:     rec.ID,
		Department:   rec.Department,
		CourseNumber: rec.CourseNumber,
		CourseTitle:  rec.Title,
		MinUnits:     rec.MinUnits,
		MaxUnits:     rec.MaxUnits,
	})

	geSeen := make(map[string]bool, len(rec.GEList))
	for _, ge := range rec.GEList {
		code, err := catalog.GECode(ge)
		if err != nil {
			return err
		}
		if geSeen[ge] {
			continue
		}
		geSeen[ge] = true
		snapshot.GenEds = append(snapshot.GenEds, catalog.GenEdRequirement{
			CourseID:   rec.ID,
			GECategory: ge,
			GEID:       code,
		})
	}

	prereqSeen := make(map[string]bool, len(rec.Prerequisites))
	for _, p := range rec.Prerequisites {
		if prereqSeen[p.ID] {
			continue
		}
		prereqSeen[p.ID] = true
		snapshot.Prerequisites = append(snapshot.Prerequisites, catalog.Prerequisite{
			CourseID: rec.ID,
			PrereqID: p.ID,
		})
	}

	terms := make(map[string]bool, len(rec.Terms))
	for _, label := range rec.Terms {
		year, quarter, err := parseTerm(label)
		if err != nil {
			return err
		}
		key := termKey(year, quarter)
		if terms[key] {
			continue
		}
		terms[key] = true
		snapshot.Terms = append(snapshot.Terms, catalog.TermOffering{
			CourseID: rec.ID,
			Year:     year,
			Quarter:  quarter,
		})
	}

	for _, m := range rec.Meetings {
		year, quarter, err := parseTerm(m.Term)
		if err != nil {
			return err
		}
		if !terms[termKey(year, quarter)] {
			return fmt.Errorf("%w: meeting %s is in term %q which the course is not offered in", ErrInvalidRecord, m.Section, m.Term)
		}
		snapshot.Meetings = append(snapshot.Meetings, catalog.TermMeeting{
			CourseID:    rec.ID,
			Year:        year,
			Quarter:     quarter,
			SectionCode: m.Section,
			Building:    m.Building,
			Room:        m.Room,
			StartTime:   m.StartTime,
			EndTime:     m.EndTime,
			Days:        m.Days,
		})
	}

	return nil
}

func parseTerm(label string) (int, catalog.Quarter, error) {
	year, quarter, err := catalog.ParseTermLabel(label)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !quarter.Valid() {
		return 0, "", fmt.Errorf("%w: unknown quarter in term %q", ErrInvalidRecord, label)
	}
	return year, quarter, nil
}

func termKey(year int, quarter catalog.Quarter) string {
	return fmt.Sprintf("%d/%s", year, quarter)
}

func appendPrograms(snapshot *catalog.Snapshot, programs *ProgramFile) {
	for _, m := range programs.Majors {
		snapshot.Majors = append(snapshot.Majors, catalog.Major{
			MajorID:   m.ID,
			MajorName: m.Name,
			Type:      m.Type,
			Division:  m.Division,
		})
		for _, id := range dedupe(m.Courses) {
			snapshot.MajorCourses = append(snapshot.MajorCourses, catalog.MajorCourse{MajorID: m.ID, CourseID: id})
		}
	}

	for _, m := range programs.Minors {
		snapshot.Minors = append(snapshot.Minors, catalog.Minor{
			MinorID:   m.ID,
			MinorName: m.Name,
		})
		for _, id := range dedupe(m.Courses) {
			snapshot.MinorCourses = append(snapshot.MinorCourses, catalog.MinorCourse{MinorID: m.ID, CourseID: id})
		}
	}

	for _, s := range programs.Specializations {
		snapshot.Specializations = append(snapshot.Specializations, catalog.Specialization{
			SpecializationID:   s.ID,
			SpecializationName: s.Name,
			MajorID:            s.MajorID,
		})
		for _, id := range dedupe(s.Courses) {
			snapshot.SpecializationCourses = append(snapshot.SpecializationCourses, catalog.SpecializationCourse{SpecializationID: s.ID, CourseID: id})
		}
	}
}

func dedupe(ids []string) []string {
	return catalog.NewCourseSet(ids...).Sorted()
}

// ValidateAcyclic reports the first prerequisite cycle found, if any
func ValidateAcyclic(edges []catalog.Prerequisite) error {
	graph := make(map[string][]string)
	for _, e := range edges {
		graph[e.CourseID] = append(graph[e.CourseID], e.PrereqID)
	}

	nodes := make([]string, 0, len(graph))
	for id := range graph {
		nodes = append(nodes, id)
		sort.Strings(graph[id])
	}
	sort.Strings(nodes)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(graph))
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			start := 0
			for i, p := range path {
				if p == id {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), id)
			return fmt.Errorf("%w: %s", ErrPrerequisiteCycle, strings.Join(cycle, " -> "))
		case done:
			return nil
		}

		state[id] = visiting
		path = append(path, id)
		for _, next := range graph[id] {
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	for _, id := range nodes {
		if state[id] == unvisited {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}
