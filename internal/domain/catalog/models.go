package catalog

// Course represents a catalog course keyed by its institution-wide identifier
type Course struct {
	CourseID     string `json:"course_id" gorm:"column:course_id;primaryKey"`
	Department   string `json:"department" gorm:"column:department;not null"`
	CourseNumber string `json:"course_number" gorm:"column:course_number;not null"`
	CourseTitle  string `json:"course_title" gorm:"column:course_title;not null"`
	MinUnits     int    `json:"min_units" gorm:"column:min_units;not null"`
	MaxUnits     int    `json:"max_units" gorm:"column:max_units;not null"`
}

func (Course) TableName() string { return "courses" }

// TermOffering records that a course is offered in a given year and quarter
type TermOffering struct {
	CourseID string  `json:"course_id" gorm:"column:course_id;primaryKey"`
	Year     int     `json:"year" gorm:"column:year;primaryKey"`
	Quarter  Quarter `json:"quarter" gorm:"column:quarter;primaryKey"`
	Format   *string `json:"format,omitempty" gorm:"column:format"`
}

func (TermOffering) TableName() string { return "terms" }

// TermMeeting holds section/meeting details attached to a term offering
type TermMeeting struct {
	CourseID    string  `json:"course_id" gorm:"column:course_id;primaryKey"`
	Year        int     `json:"year" gorm:"column:year;primaryKey"`
	Quarter     Quarter `json:"quarter" gorm:"column:quarter;primaryKey"`
	SectionCode string  `json:"section_code" gorm:"column:section_code;primaryKey"`
	Building    *string `json:"building,omitempty" gorm:"column:building"`
	Room        *string `json:"room,omitempty" gorm:"column:room"`
	StartTime   *string `json:"start_time,omitempty" gorm:"column:start_time"`
	EndTime     *string `json:"end_time,omitempty" gorm:"column:end_time"`
	Days        *string `json:"days,omitempty" gorm:"column:days"`
}

func (TermMeeting) TableName() string { return "term_meetings" }

// Prerequisite is a directed edge: CourseID requires PrereqID
type Prerequisite struct {
	CourseID string `json:"course_id" gorm:"column:course_id;primaryKey"`
	PrereqID string `json:"prereq_id" gorm:"column:prereq_id;primaryKey"`
}

func (Prerequisite) TableName() string { return "prerequisites" }

// GenEdRequirement tags a course with a GE category
type GenEdRequirement struct {
	CourseID   string `json:"course_id" gorm:"column:course_id;primaryKey"`
	GECategory string `json:"ge_category" gorm:"column:ge_category;primaryKey"`
	GEID       string `json:"ge_id" gorm:"column:ge_id;primaryKey"`
}

func (GenEdRequirement) TableName() string { return "gen_ed_requirements" }

// Major represents a degree program
type Major struct {
	MajorID   string  `json:"major_id" gorm:"column:major_id;primaryKey"`
	MajorName string  `json:"major_name" gorm:"column:major_name;not null"`
	Type      *string `json:"type,omitempty" gorm:"column:type"`
	Division  *string `json:"division,omitempty" gorm:"column:division"`
}

func (Major) TableName() string { return "majors" }

type MajorCourse struct {
	MajorID  string `json:"major_id" gorm:"column:major_id;primaryKey"`
	CourseID string `json:"course_id" gorm:"column:course_id;primaryKey"`
}

func (MajorCourse) TableName() string { return "major_courses" }

// Minor represents a minor program
type Minor struct {
	MinorID   string `json:"minor_id" gorm:"column:minor_id;primaryKey"`
	MinorName string `json:"minor_name" gorm:"column:minor_name;not null"`
}

func (Minor) TableName() string { return "minors" }

type MinorCourse struct {
	MinorID  string `json:"minor_id" gorm:"column:minor_id;primaryKey"`
	CourseID string `json:"course_id" gorm:"column:course_id;primaryKey"`
}

func (MinorCourse) TableName() string { return "minor_courses" }

// Specialization is a concentration inside a major
type Specialization struct {
	SpecializationID   string `json:"specialization_id" gorm:"column:specialization_id;primaryKey"`
	SpecializationName string `json:"specialization_name" gorm:"column:specialization_name;not null"`
	MajorID            string `json:"major_id" gorm:"column:major_id;not null"`
}

func (Specialization) TableName() string { return "specializations" }

type SpecializationCourse struct {
	SpecializationID string `json:"specialization_id" gorm:"column:specialization_id;primaryKey"`
	CourseID         string `json:"course_id" gorm:"column:course_id;primaryKey"`
}

func (SpecializationCourse) TableName() string { return "specialization_courses" }

// Snapshot is a complete, validated catalog ready for bulk load
type Snapshot struct {
	Courses               []Course
	Terms                 []TermOffering
	Meetings              []TermMeeting
	Prerequisites         []Prerequisite
	GenEds                []GenEdRequirement
	Majors                []Major
	MajorCourses          []MajorCourse
	Minors                []Minor
	MinorCourses          []MinorCourse
	Specializations       []Specialization
	SpecializationCourses []SpecializationCourse
}

// CourseMeta is the display record attached to ranked results.
// MinUnits and MaxUnits are nil when the course is unknown.
type CourseMeta struct {
	Department string `json:"dept"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	MinUnits   *int   `json:"min_units"`
	MaxUnits   *int   `json:"max_units"`
}

// UnknownCourseMeta is the fallback record for a dangling course reference
func UnknownCourseMeta(courseID string) CourseMeta {
	return CourseMeta{
		Department: "",
		Code:       courseID,
		Title:      courseID,
	}
}
