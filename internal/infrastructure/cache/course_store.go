package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"course-finder/internal/domain/catalog"
	interfaces "course-finder/internal/interfaces/infrastructure"
	"course-finder/pkg/logger"
)

const (
	KeyPrefix  = "course-finder:"
	DefaultTTL = 30 * time.Minute

	majorKeyPrefix  = KeyPrefix + "major:"
	minorKeyPrefix  = KeyPrefix + "minor:"
	termKeyPrefix   = KeyPrefix + "term:"
	prereqKeyPrefix = KeyPrefix + "prereq:"
	metaKeyPrefix   = KeyPrefix + "meta:"
)

// CachedCourseStore is a read-through cache in front of another CourseStore.
// A failing cache is logged and bypassed, never surfaced to the caller.
type CachedCourseStore struct {
	store catalog.CourseStore
	cache interfaces.CacheService
	ttl   time.Duration
}

func NewCachedCourseStore(store catalog.CourseStore, cache interfaces.CacheService, ttl time.Duration) *CachedCourseStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedCourseStore{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

func termKey(filter catalog.TermFilter) string {
	filter = filter.Normalized()
	quarter := string(filter.Quarter)
	if quarter == "" {
		quarter = "any"
	}
	return fmt.Sprintf("%s%d:%s", termKeyPrefix, filter.Year, quarter)
}

// lookup returns the cached value for key or calls load and caches its result
func lookup[T any](ctx context.Context, s *CachedCourseStore, key string, load func() (T, error)) (T, error) {
	var value T

	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(raw), &value); jsonErr == nil {
			return value, nil
		}
		logger.Warn("Discarding malformed cache entry %s", key)
	case !errors.Is(err, interfaces.ErrCacheMiss):
		logger.Warn("Cache read failed for %s: %v", key, err)
	}

	value, err = load()
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to encode cache entry %s: %v", key, err)
		return value, nil
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Warn("Cache write failed for %s: %v", key, err)
	}

	return value, nil
}

func (s *CachedCourseStore) cachedSet(ctx context.Context, key string, load func() (catalog.CourseSet, error)) (catalog.CourseSet, error) {
	ids, err := lookup(ctx, s, key, func() ([]string, error) {
		set, err := load()
		if err != nil {
			return nil, err
		}
		return set.Sorted(), nil
	})
	if err != nil {
		return nil, err
	}
	return catalog.NewCourseSet(ids...), nil
}

func (s *CachedCourseStore) CoursesRequiredByMajor(ctx context.Context, majorID string) (catalog.CourseSet, error) {
	return s.cachedSet(ctx, majorKeyPrefix+majorID, func() (catalog.CourseSet, error) {
		return s.store.CoursesRequiredByMajor(ctx, majorID)
	})
}

func (s *CachedCourseStore) CoursesRequiredByMinor(ctx context.Context, minorID string) (catalog.CourseSet, error) {
	return s.cachedSet(ctx, minorKeyPrefix+minorID, func() (catalog.CourseSet, error) {
		return s.store.CoursesRequiredByMinor(ctx, minorID)
	})
}

func (s *CachedCourseStore) CoursesOfferedInTerm(ctx context.Context, filter catalog.TermFilter) (catalog.CourseSet, error) {
	return s.cachedSet(ctx, termKey(filter), func() (catalog.CourseSet, error) {
		return s.store.CoursesOfferedInTerm(ctx, filter)
	})
}

func (s *CachedCourseStore) PrerequisitesOf(ctx context.Context, courseID string) (catalog.CourseSet, error) {
	return s.cachedSet(ctx, prereqKeyPrefix+courseID, func() (catalog.CourseSet, error) {
		return s.store.PrerequisitesOf(ctx, courseID)
	})
}

func (s *CachedCourseStore) MetadataOf(ctx context.Context, courseID string) (catalog.CourseMeta, error) {
	return lookup(ctx, s, metaKeyPrefix+courseID, func() (catalog.CourseMeta, error) {
		return s.store.MetadataOf(ctx, courseID)
	})
}

// IsMajorCourse answers from the cached requirement set of the major
func (s *CachedCourseStore) IsMajorCourse(ctx context.Context, courseID, majorID string) (bool, error) {
	required, err := s.CoursesRequiredByMajor(ctx, majorID)
	if err != nil {
		return false, err
	}
	return required.Has(courseID), nil
}

func (s *CachedCourseStore) IsMinorCourse(ctx context.Context, courseID, minorID string) (bool, error) {
	required, err := s.CoursesRequiredByMinor(ctx, minorID)
	if err != nil {
		return false, err
	}
	return required.Has(courseID), nil
}

func (s *CachedCourseStore) IsRequiredFor(ctx context.Context, courseID, programID string) (bool, error) {
	ok, err := s.IsMajorCourse(ctx, courseID, programID)
	if err != nil || ok {
		return ok, err
	}
	return s.IsMinorCourse(ctx, courseID, programID)
}

// Invalidate drops every cached lookup, used after a catalog reload
func (s *CachedCourseStore) Invalidate(ctx context.Context) error {
	return InvalidateCatalog(ctx, s.cache)
}

// InvalidateCatalog clears every course lookup held in cache
func InvalidateCatalog(ctx context.Context, cache interfaces.CacheService) error {
	if err := cache.Clear(ctx, KeyPrefix+"*"); err != nil {
		return fmt.Errorf("failed to invalidate course cache: %w", err)
	}
	logger.Info("Course cache invalidated")
	return nil
}

var _ catalog.CourseStore = (*CachedCourseStore)(nil)
