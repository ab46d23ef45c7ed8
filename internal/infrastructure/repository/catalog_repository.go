package repository

import (
	"context"
	"errors"
	"fmt"

	"course-finder/internal/domain/catalog"
	"course-finder/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const loadBatchSize = 100

var _ catalog.CatalogRepository = (*CatalogRepository)(nil)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// Load writes a snapshot in a single transaction. Course and program rows are
// upserted; relation rows already present are left alone.
func (r *CatalogRepository) Load(ctx context.Context, snapshot *catalog.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name   string
			rows   any
			count  int
			upsert bool
		}{
			{"courses", &snapshot.Courses, len(snapshot.Courses), true},
			{"terms", &snapshot.Terms, len(snapshot.Terms), true},
			{"term meetings", &snapshot.Meetings, len(snapshot.Meetings), true},
			{"prerequisites", &snapshot.Prerequisites, len(snapshot.Prerequisites), false},
			{"GE requirements", &snapshot.GenEds, len(snapshot.GenEds), false},
			{"majors", &snapshot.Majors, len(snapshot.Majors), true},
			{"major courses", &snapshot.MajorCourses, len(snapshot.MajorCourses), false},
			{"minors", &snapshot.Minors, len(snapshot.Minors), true},
			{"minor courses", &snapshot.MinorCourses, len(snapshot.MinorCourses), false},
			{"specializations", &snapshot.Specializations, len(snapshot.Specializations), true},
			{"specialization courses", &snapshot.SpecializationCourses, len(snapshot.SpecializationCourses), false},
		}

		for _, step := range steps {
			if step.count == 0 {
				continue
			}

			onConflict := clause.OnConflict{DoNothing: true}
			if step.upsert {
				onConflict = clause.OnConflict{UpdateAll: true}
			}

			if err := tx.Clauses(onConflict).CreateInBatches(step.rows, loadBatchSize).Error; err != nil {
				return fmt.Errorf("failed to load %s: %w", step.name, err)
			}
			logger.Debug("Loaded %d %s", step.count, step.name)
		}

		return nil
	})
}

func (r *CatalogRepository) GetCourse(ctx context.Context, courseID string) (*catalog.Course, error) {
	var course catalog.Course
	err := r.db.WithContext(ctx).First(&course, "course_id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepository) ListMajors(ctx context.Context) ([]*catalog.Major, error) {
	var majors []*catalog.Major
	if err := r.db.WithContext(ctx).Order("major_id").Find(&majors).Error; err != nil {
		return nil, err
	}
	return majors, nil
}

func (r *CatalogRepository) ListMinors(ctx context.Context) ([]*catalog.Minor, error) {
	var minors []*catalog.Minor
	if err := r.db.WithContext(ctx).Order("minor_id").Find(&minors).Error; err != nil {
		return nil, err
	}
	return minors, nil
}

// ListSpecializations returns every specialization, or only those of majorID when set
func (r *CatalogRepository) ListSpecializations(ctx context.Context, majorID string) ([]*catalog.Specialization, error) {
	var specs []*catalog.Specialization
	query := r.db.WithContext(ctx).Order("specialization_id")
	if majorID != "" {
		query = query.Where("major_id = ?", majorID)
	}
	if err := query.Find(&specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

func (r *CatalogRepository) ListTermMeetings(ctx context.Context, courseID string, filter catalog.TermFilter) ([]*catalog.TermMeeting, error) {
	filter = filter.Normalized()

	var meetings []*catalog.TermMeeting
	query := r.db.WithContext(ctx).Where("course_id = ?", courseID)
	if filter.HasYear() {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.HasQuarter() {
		query = query.Where("quarter = ?", filter.Quarter)
	}
	if err := query.Order("year, quarter, section_code").Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
