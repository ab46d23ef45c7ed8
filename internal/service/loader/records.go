package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// CourseRecord is one course from the collected catalog dump
type CourseRecord struct {
	ID            string            `json:"id" validate:"required"`
	Department    string            `json:"department" validate:"required"`
	CourseNumber  string            `json:"courseNumber" validate:"required"`
	Title         string            `json:"title" validate:"required"`
	MinUnits      int               `json:"minUnits" validate:"gte=0"`
	MaxUnits      int               `json:"maxUnits" validate:"gte=0,gtefield=MinUnits"`
	GEList        []string          `json:"geList"`
	Prerequisites []PrerequisiteRef `json:"prerequisites" validate:"dive"`
	Terms         []string          `json:"terms" validate:"dive,required"`
	Meetings      []MeetingRecord   `json:"meetings,omitempty" validate:"dive"`
}

type PrerequisiteRef struct {
	ID string `json:"id" validate:"required"`
}

// MeetingRecord is an optional section/meeting attached to one of the course's terms
type MeetingRecord struct {
	Term      string  `json:"term" validate:"required"`
	Section   string  `json:"section" validate:"required"`
	Building  *string `json:"building,omitempty"`
	Room      *string `json:"room,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Days      *string `json:"days,omitempty"`
}

// ProgramFile lists the majors, minors and specializations with their required courses
type ProgramFile struct {
	Majors          []MajorRecord          `yaml:"majors" validate:"dive"`
	Minors          []MinorRecord          `yaml:"minors" validate:"dive"`
	Specializations []SpecializationRecord `yaml:"specializations" validate:"dive"`
}

type MajorRecord struct {
	ID       string   `yaml:"id" validate:"required"`
	Name     string   `yaml:"name" validate:"required"`
	Type     *string  `yaml:"type,omitempty"`
	Division *string  `yaml:"division,omitempty"`
	Courses  []string `yaml:"courses" validate:"dive,required"`
}

type MinorRecord struct {
	ID      string   `yaml:"id" validate:"required"`
	Name    string   `yaml:"name" validate:"required"`
	Courses []string `yaml:"courses" validate:"dive,required"`
}

type SpecializationRecord struct {
	ID      string   `yaml:"id" validate:"required"`
	Name    string   `yaml:"name" validate:"required"`
	MajorID string   `yaml:"major" validate:"required"`
	Courses []string `yaml:"courses" validate:"dive,required"`
}

// ReadCourses decodes a JSON array of course records
func ReadCourses(r io.Reader) ([]CourseRecord, error) {
	var records []CourseRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode course records: %w", err)
	}
	return records, nil
}

// ReadPrograms decodes a YAML program file. An empty document yields an empty file.
func ReadPrograms(r io.Reader) (*ProgramFile, error) {
	var programs ProgramFile
	if err := yaml.NewDecoder(r).Decode(&programs); err != nil {
		if err == io.EOF {
			return &ProgramFile{}, nil
		}
		return nil, fmt.Errorf("failed to decode program file: %w", err)
	}
	return &programs, nil
}
