package eligibility

import (
	"strings"

	"course-finder/internal/domain/catalog"
)

// Profile is the per-session student state a search runs against. It is owned
// by a single caller and is not safe for concurrent mutation; use Clone to hand
// a copy to another goroutine.
type Profile struct {
	majors          catalog.CourseSet
	minors          catalog.CourseSet
	specializations catalog.CourseSet
	completed       catalog.CourseSet
}

func NewProfile() *Profile {
	return &Profile{
		majors:          catalog.NewCourseSet(),
		minors:          catalog.NewCourseSet(),
		specializations: catalog.NewCourseSet(),
		completed:       catalog.NewCourseSet(),
	}
}

func (p *Profile) AddMajor(majorID string)    { p.majors.Add(majorID) }
func (p *Profile) RemoveMajor(majorID string) { p.majors.Remove(majorID) }
func (p *Profile) AddMinor(minorID string)    { p.minors.Add(minorID) }
func (p *Profile) RemoveMinor(minorID string) { p.minors.Remove(minorID) }

func (p *Profile) AddSpecialization(specID string)    { p.specializations.Add(specID) }
func (p *Profile) RemoveSpecialization(specID string) { p.specializations.Remove(specID) }

// AddPrerequisite marks courseID as completed
func (p *Profile) AddPrerequisite(courseID string) {
	p.completed.Add(courseID)
}

// AddPrerequisiteRow marks a course completed from a single-column result row.
// Only the first column is used; an empty row is ignored.
func (p *Profile) AddPrerequisiteRow(row []string) {
	if len(row) == 0 {
		return
	}
	p.completed.Add(row[0])
}

func (p *Profile) RemoveCompleted(courseID string) {
	p.completed.Remove(courseID)
}

func (p *Profile) Majors() []string          { return p.majors.Sorted() }
func (p *Profile) Minors() []string          { return p.minors.Sorted() }
func (p *Profile) Specializations() []string { return p.specializations.Sorted() }
func (p *Profile) Completed() []string       { return p.completed.Sorted() }

func (p *Profile) HasCompleted(courseID string) bool {
	return p.completed.Has(courseID)
}

// Clone returns an independent copy of the profile
func (p *Profile) Clone() *Profile {
	return &Profile{
		majors:          p.majors.Clone(),
		minors:          p.minors.Clone(),
		specializations: p.specializations.Clone(),
		completed:       p.completed.Clone(),
	}
}

func (p *Profile) String() string {
	return "majors=[" + strings.Join(p.Majors(), ",") +
		"] minors=[" + strings.Join(p.Minors(), ",") +
		"] completed=" + strings.Join(p.Completed(), ",")
}

// ProfileRequest is the wire form of a profile
type ProfileRequest struct {
	Majors          []string `json:"majors" yaml:"majors" validate:"omitempty,dive,required"`
	Minors          []string `json:"minors" yaml:"minors" validate:"omitempty,dive,required"`
	Specializations []string `json:"specializations" yaml:"specializations" validate:"omitempty,dive,required"`
	Completed       []string `json:"completed" yaml:"completed" validate:"omitempty,dive,required"`
}

// Profile builds a fresh profile from the request
func (r ProfileRequest) Profile() *Profile {
	p := NewProfile()
	for _, id := range r.Majors {
		p.AddMajor(id)
	}
	for _, id := range r.Minors {
		p.AddMinor(id)
	}
	for _, id := range r.Specializations {
		p.AddSpecialization(id)
	}
	for _, id := range r.Completed {
		p.AddPrerequisite(id)
	}
	return p
}
