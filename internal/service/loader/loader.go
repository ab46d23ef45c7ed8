package loader

import (
	"context"
	"fmt"
	"io"
	"time"

	"course-finder/internal/domain/catalog"
	"course-finder/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Summary describes what a load wrote
type Summary struct {
	Courses       int           `json:"courses"`
	Terms         int           `json:"terms"`
	Meetings      int           `json:"meetings"`
	Prerequisites int           `json:"prerequisites"`
	GenEds        int           `json:"gen_eds"`
	Majors        int           `json:"majors"`
	Minors        int           `json:"minors"`
	Duration      time.Duration `json:"duration"`
}

// Loader turns collected catalog files into stored catalog rows
type Loader struct {
	repo        catalog.CatalogRepository
	checkCycles bool
}

func NewLoader(repo catalog.CatalogRepository, checkCycles bool) *Loader {
	return &Loader{
		repo:        repo,
		checkCycles: checkCycles,
	}
}

// Load reads courses (JSON) and, when non-nil, programs (YAML), validates them and
// writes them in one transaction. Nothing is written if validation fails.
func (l *Loader) Load(ctx context.Context, courses io.Reader, programs io.Reader) (*Summary, error) {
	start := time.Now()

	records, err := ReadCourses(courses)
	if err != nil {
		return nil, err
	}

	var programFile *ProgramFile
	if programs != nil {
		programFile, err = ReadPrograms(programs)
		if err != nil {
			return nil, err
		}
	}

	snapshot, err := BuildSnapshot(records, programFile)
	if err != nil {
		return nil, err
	}

	if l.checkCycles {
		if err := ValidateAcyclic(snapshot.Prerequisites); err != nil {
			return nil, err
		}
	}

	if err := l.repo.Load(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}

	summary := &Summary{
		Courses:       len(snapshot.Courses),
		Terms:         len(snapshot.Terms),
		Meetings:      len(snapshot.Meetings),
		Prerequisites: len(snapshot.Prerequisites),
		GenEds:        len(snapshot.GenEds),
		Majors:        len(snapshot.Majors),
		Minors:        len(snapshot.Minors),
		Duration:      time.Since(start),
	}

	logger.WithFields(logrus.Fields{
		"courses":       summary.Courses,
		"terms":         summary.Terms,
		"prerequisites": summary.Prerequisites,
		"majors":        summary.Majors,
		"minors":        summary.Minors,
		"duration":      summary.Duration,
	}).Info("Catalog loaded")

	return summary, nil
}
