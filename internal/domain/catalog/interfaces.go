package catalog

import "context"

// CourseStore is the read side of the catalog used by the eligibility engine.
// Unknown identifiers yield empty results; errors are reserved for storage failures.
type CourseStore interface {
	CoursesRequiredByMajor(ctx context.Context, majorID string) (CourseSet, error)
	CoursesRequiredByMinor(ctx context.Context, minorID string) (CourseSet, error)
	CoursesOfferedInTerm(ctx context.Context, filter TermFilter) (CourseSet, error)
	PrerequisitesOf(ctx context.Context, courseID string) (CourseSet, error)
	MetadataOf(ctx context.Context, courseID string) (CourseMeta, error)
	IsRequiredFor(ctx context.Context, courseID, programID string) (bool, error)
	IsMajorCourse(ctx context.Context, courseID, majorID string) (bool, error)
	IsMinorCourse(ctx context.Context, courseID, minorID string) (bool, error)
}

// CatalogRepository is the write and browse side of the catalog
type CatalogRepository interface {
	Load(ctx context.Context, snapshot *Snapshot) error
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	ListMajors(ctx context.Context) ([]*Major, error)
	ListMinors(ctx context.Context) ([]*Minor, error)
	ListSpecializations(ctx context.Context, majorID string) ([]*Specialization, error)
	ListTermMeetings(ctx context.Context, courseID string, filter TermFilter) ([]*TermMeeting, error)
}
