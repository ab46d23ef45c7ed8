package loader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"course-finder/internal/domain/catalog"
)

const sampleCourses = `[
  {
    "id": "I&CSCI31",
    "department": "I&C SCI",
    "courseNumber": "31",
    "title": "Introduction to Programming",
    "minUnits": 4,
    "maxUnits": 4,
    "geList": ["GE II: Science and Technology", "GE Vb: Formal Reasoning"],
    "prerequisites": [],
    "terms": ["2026 Spring", "2026 Fall"],
    "meetings": [
      {"term": "2026 Spring", "section": "A", "building": "SSL", "room": "140", "days": "MWF"}
    ]
  },
  {
    "id": "I&CSCI32",
    "department": "I&C SCI",
    "courseNumber": "32",
    "title": "Programming with Software Libraries",
    "minUnits": 4,
    "maxUnits": 4,
    "geList": ["GE II: Science and Technology"],
    "prerequisites": [{"id": "I&CSCI31"}],
    "terms": ["2026 Spring"]
  },
  {
    "id": "BIOSCI99",
    "department": "BIO SCI",
    "courseNumber": "99",
    "title": "Molecular Biology",
    "minUnits": 4,
    "maxUnits": 4,
    "geList": [],
    "prerequisites": [],
    "terms": ["2026 Spring"]
  }
]`

const samplePrograms = `
majors:
  - id: BS-201
    name: Computer Science
    type: Major
    division: Undergraduate
    courses: [I&CSCI31, I&CSCI32]
minors:
  - id: MN-10
    name: Biology
    courses: [BIOSCI99]
specializations:
  - id: SP-1
    name: Algorithms
    major: BS-201
    courses: [I&CSCI32]
`

type fakeRepository struct {
	loaded *catalog.Snapshot
	err    error
}

func (f *fakeRepository) Load(ctx context.Context, snapshot *catalog.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = snapshot
	return nil
}

func (f *fakeRepository) GetCourse(ctx context.Context, courseID string) (*catalog.Course, error) {
	return nil, nil
}

func (f *fakeRepository) ListMajors(ctx context.Context) ([]*catalog.Major, error) {
	return nil, nil
}

func (f *fakeRepository) ListMinors(ctx context.Context) ([]*catalog.Minor, error) {
	return nil, nil
}

func (f *fakeRepository) ListSpecializations(ctx context.Context, majorID string) ([]*catalog.Specialization, error) {
	return nil, nil
}

func (f *fakeRepository) ListTermMeetings(ctx context.Context, courseID string, filter catalog.TermFilter) ([]*catalog.TermMeeting, error) {
	return nil, nil
}

func TestLoadBuildsSnapshot(t *testing.T) {
	repo := &fakeRepository{}
	l := NewLoader(repo, true)

	summary, err := l.Load(context.Background(), strings.NewReader(sampleCourses), strings.NewReader(samplePrograms))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Courses != 3 {
		t.Errorf("Expected 3 courses, got %d", summary.Courses)
	}
	if summary.Terms != 4 {
		t.Errorf("Expected 4 term offerings, got %d", summary.Terms)
	}
	if summary.Prerequisites != 1 {
		t.Errorf("Expected 1 prerequisite, got %d", summary.Prerequisites)
	}
	if summary.GenEds != 3 {
		t.Errorf("Expected 3 GE rows, got %d", summary.GenEds)
	}
	if summary.Majors != 1 || summary.Minors != 1 {
		t.Errorf("Expected 1 major and 1 minor, got %d and %d", summary.Majors, summary.Minors)
	}

	snap := repo.loaded
	if snap == nil {
		t.Fatal("Expected snapshot to be handed to the repository")
	}
	if len(snap.Meetings) != 1 || *snap.Meetings[0].Building != "SSL" {
		t.Errorf("Expected one meeting in SSL, got %+v", snap.Meetings)
	}
	if snap.Terms[0].Quarter != catalog.Spring || snap.Terms[0].Year != 2026 {
		t.Errorf("Expected first term spring 2026, got %s %d", snap.Terms[0].Quarter, snap.Terms[0].Year)
	}
	if len(snap.MajorCourses) != 2 {
		t.Errorf("Expected 2 major courses, got %d", len(snap.MajorCourses))
	}
	if len(snap.SpecializationCourses) != 1 || snap.Specializations[0].MajorID != "BS-201" {
		t.Errorf("Expected specialization under BS-201, got %+v", snap.Specializations)
	}
	if *snap.Majors[0].Division != "Undergraduate" {
		t.Errorf("Expected division Undergraduate, got %s", *snap.Majors[0].Division)
	}

	geIDs := map[string]bool{}
	for _, ge := range snap.GenEds {
		geIDs[ge.GEID] = true
	}
	if !geIDs["2"] || !geIDs["5B"] {
		t.Errorf("Expected GE codes 2 and 5B, got %v", geIDs)
	}
}

func TestLoadWithoutPrograms(t *testing.T) {
	repo := &fakeRepository{}
	l := NewLoader(repo, false)

	summary, err := l.Load(context.Background(), strings.NewReader(sampleCourses), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary.Majors != 0 {
		t.Errorf("Expected no majors, got %d", summary.Majors)
	}
}

func TestLoadUnknownGECategory(t *testing.T) {
	repo := &fakeRepository{}
	l := NewLoader(repo, false)

	input := strings.Replace(sampleCourses, "GE Vb: Formal Reasoning", "GE XII: Underwater Basketry", 1)
	_, err := l.Load(context.Background(), strings.NewReader(input), nil)
	if !errors.Is(err, catalog.ErrUnknownGECategory) {
		t.Fatalf("Expected ErrUnknownGECategory, got %v", err)
	}
	if repo.loaded != nil {
		t.Error("Expected nothing to be written after a failed build")
	}
}

func TestLoadRepositoryError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("disk full")}
	l := NewLoader(repo, false)

	_, err := l.Load(context.Background(), strings.NewReader(sampleCourses), nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Expected repository error to propagate, got %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	l := NewLoader(&fakeRepository{}, false)

	if _, err := l.Load(context.Background(), strings.NewReader("{not json"), nil); err == nil {
		t.Fatal("Expected decode error")
	}
}

func TestBuildSnapshotRejectsDuplicates(t *testing.T) {
	records := []CourseRecord{
		validRecord("MATH2A"),
		validRecord("MATH2A"),
	}

	_, err := BuildSnapshot(records, nil)
	if !errors.Is(err, ErrDuplicateCourse) {
		t.Fatalf("Expected ErrDuplicateCourse, got %v", err)
	}
}

func TestBuildSnapshotValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CourseRecord)
	}{
		{"missing id", func(r *CourseRecord) { r.ID = "" }},
		{"units inverted", func(r *CourseRecord) { r.MinUnits, r.MaxUnits = 5, 2 }},
		{"negative units", func(r *CourseRecord) { r.MinUnits = -1 }},
		{"bad term label", func(r *CourseRecord) { r.Terms = []string{"Spring"} }},
		{"unknown quarter", func(r *CourseRecord) { r.Terms = []string{"2026 Autumn"} }},
		{"empty prerequisite", func(r *CourseRecord) { r.Prerequisites = []PrerequisiteRef{{ID: ""}} }},
		{"meeting outside offered terms", func(r *CourseRecord) {
			r.Meetings = []MeetingRecord{{Term: "2027 Fall", Section: "A"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord("MATH2A")
			tt.mutate(&rec)

			if _, err := BuildSnapshot([]CourseRecord{rec}, nil); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestBuildSnapshotDeduplicatesRows(t *testing.T) {
	rec := validRecord("MATH2B")
	rec.Terms = []string{"2026 Fall", "2026 fall"}
	rec.Prerequisites = []PrerequisiteRef{{ID: "MATH2A"}, {ID: "MATH2A"}}

	snap, err := BuildSnapshot([]CourseRecord{rec}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snap.Terms) != 1 {
		t.Errorf("Expected 1 term row, got %d", len(snap.Terms))
	}
	if len(snap.Prerequisites) != 1 {
		t.Errorf("Expected 1 prerequisite row, got %d", len(snap.Prerequisites))
	}
}

func TestBuildSnapshotAllowsDanglingPrerequisite(t *testing.T) {
	rec := validRecord("MATH2B")
	rec.Prerequisites = []PrerequisiteRef{{ID: "MATH1"}}

	snap, err := BuildSnapshot([]CourseRecord{rec}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snap.Prerequisites[0].PrereqID != "MATH1" {
		t.Errorf("Expected prerequisite MATH1, got %s", snap.Prerequisites[0].PrereqID)
	}
}

func TestValidateAcyclic(t *testing.T) {
	acyclic := []catalog.Prerequisite{
		{CourseID: "C", PrereqID: "B"},
		{CourseID: "B", PrereqID: "A"},
		{CourseID: "C", PrereqID: "A"},
	}
	if err := ValidateAcyclic(acyclic); err != nil {
		t.Errorf("Expected no cycle, got %v", err)
	}

	cyclic := append(acyclic, catalog.Prerequisite{CourseID: "A", PrereqID: "C"})
	err := ValidateAcyclic(cyclic)
	if !errors.Is(err, ErrPrerequisiteCycle) {
		t.Fatalf("Expected ErrPrerequisiteCycle, got %v", err)
	}
	if !strings.Contains(err.Error(), "A -> C") {
		t.Errorf("Expected cycle path in message, got %v", err)
	}
}

func TestLoadRejectsCycleWhenChecking(t *testing.T) {
	input := `[
	  {"id": "A", "department": "X", "courseNumber": "1", "title": "A", "minUnits": 1, "maxUnits": 1,
	   "prerequisites": [{"id": "B"}], "terms": ["2026 Fall"]},
	  {"id": "B", "department": "X", "courseNumber": "2", "title": "B", "minUnits": 1, "maxUnits": 1,
	   "prerequisites": [{"id": "A"}], "terms": ["2026 Fall"]}
	]`

	repo := &fakeRepository{}
	if _, err := NewLoader(repo, true).Load(context.Background(), strings.NewReader(input), nil); !errors.Is(err, ErrPrerequisiteCycle) {
		t.Fatalf("Expected ErrPrerequisiteCycle, got %v", err)
	}

	if _, err := NewLoader(repo, false).Load(context.Background(), strings.NewReader(input), nil); err != nil {
		t.Fatalf("Expected cycles to be accepted without checking, got %v", err)
	}
}

func TestReadProgramsEmpty(t *testing.T) {
	programs, err := ReadPrograms(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(programs.Majors) != 0 {
		t.Errorf("Expected no majors, got %d", len(programs.Majors))
	}
}

func validRecord(id string) CourseRecord {
	return CourseRecord{
		ID:           id,
		Department:   "MATH",
		CourseNumber: strings.TrimPrefix(id, "MATH"),
		Title:        "Calculus",
		MinUnits:     4,
		MaxUnits:     4,
		Terms:        []string{"2026 Fall"},
	}
}
