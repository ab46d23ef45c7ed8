package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"course-finder/internal/domain/catalog"
	interfaces "course-finder/internal/interfaces/infrastructure"
)

// memCache is an in-memory CacheService; fail makes every call return an error
type memCache struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	fail   bool
}

func newMemCache() *memCache {
	return &memCache{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

var errCacheDown = errors.New("cache unavailable")

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", errCacheDown
	}
	v, ok := m.values[key]
	if !ok {
		return "", interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *memCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errCacheDown
	}
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memCache) Clear(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errCacheDown
	}
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
		}
	}
	return nil
}

func (m *memCache) Health(ctx context.Context) error { return nil }
func (m *memCache) Close() error                     { return nil }

func (m *memCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// countingStore records how often each lookup reaches the underlying store
type countingStore struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
}

func newCountingStore() *countingStore {
	return &countingStore{calls: make(map[string]int)}
}

func (c *countingStore) hit(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	if c.fail {
		return errors.New("store unavailable")
	}
	return nil
}

func (c *countingStore) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *countingStore) CoursesRequiredByMajor(ctx context.Context, majorID string) (catalog.CourseSet, error) {
	if err := c.hit("major"); err != nil {
		return nil, err
	}
	if majorID == "BS-201" {
		return catalog.NewCourseSet("I&CSCI31", "I&CSCI32"), nil
	}
	return catalog.NewCourseSet(), nil
}

func (c *countingStore) CoursesRequiredByMinor(ctx context.Context, minorID string) (catalog.CourseSet, error) {
	if err := c.hit("minor"); err != nil {
		return nil, err
	}
	if minorID == "MN-10" {
		return catalog.NewCourseSet("BIOSCI99"), nil
	}
	return catalog.NewCourseSet(), nil
}

func (c *countingStore) CoursesOfferedInTerm(ctx context.Context, filter catalog.TermFilter) (catalog.CourseSet, error) {
	if err := c.hit("term"); err != nil {
		return nil, err
	}
	return catalog.NewCourseSet("I&CSCI31", "BIOSCI99"), nil
}

func (c *countingStore) PrerequisitesOf(ctx context.Context, courseID string) (catalog.CourseSet, error) {
	if err := c.hit("prereq"); err != nil {
		return nil, err
	}
	return catalog.NewCourseSet(), nil
}

func (c *countingStore) MetadataOf(ctx context.Context, courseID string) (catalog.CourseMeta, error) {
	if err := c.hit("meta"); err != nil {
		return catalog.CourseMeta{}, err
	}
	units := 4
	return catalog.CourseMeta{Department: "I&C SCI", Code: "I&C SCI 31", Title: "Intro", MinUnits: &units, MaxUnits: &units}, nil
}

func (c *countingStore) IsMajorCourse(ctx context.Context, courseID, majorID string) (bool, error) {
	return false, errors.New("not expected to be called")
}

func (c *countingStore) IsMinorCourse(ctx context.Context, courseID, minorID string) (bool, error) {
	return false, errors.New("not expected to be called")
}

func (c *countingStore) IsRequiredFor(ctx context.Context, courseID, programID string) (bool, error) {
	return false, errors.New("not expected to be called")
}

func TestCachedCourseStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache := newMemCache()
	cached := NewCachedCourseStore(store, cache, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := cached.CoursesRequiredByMajor(ctx, "BS-201")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !got.Equal(catalog.NewCourseSet("I&CSCI31", "I&CSCI32")) {
			t.Errorf("Expected major courses, got %v", got.Sorted())
		}
	}

	if store.count("major") != 1 {
		t.Errorf("Expected 1 store call, got %d", store.count("major"))
	}
	if ttl := cache.ttls[majorKeyPrefix+"BS-201"]; ttl != time.Minute {
		t.Errorf("Expected ttl of 1m, got %v", ttl)
	}
}

func TestCachedCourseStore_EmptySetIsCached(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cached := NewCachedCourseStore(store, newMemCache(), 0)

	for i := 0; i < 2; i++ {
		got, err := cached.CoursesRequiredByMajor(ctx, "UNKNOWN")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Len() != 0 {
			t.Errorf("Expected empty set, got %v", got.Sorted())
		}
	}
	if store.count("major") != 1 {
		t.Errorf("Expected 1 store call, got %d", store.count("major"))
	}
}

func TestCachedCourseStore_TermKeyNormalizesQuarter(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cached := NewCachedCourseStore(store, newMemCache(), time.Minute)

	if _, err := cached.CoursesOfferedInTerm(ctx, catalog.TermFilter{Year: 2026, Quarter: "Spring"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := cached.CoursesOfferedInTerm(ctx, catalog.TermFilter{Year: 2026, Quarter: "spring"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if store.count("term") != 1 {
		t.Errorf("Expected 1 store call for equivalent filters, got %d", store.count("term"))
	}

	if _, err := cached.CoursesOfferedInTerm(ctx, catalog.TermFilter{Year: 2026}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if store.count("term") != 2 {
		t.Errorf("Expected a distinct entry for year-only filter, got %d calls", store.count("term"))
	}
}

func TestCachedCourseStore_Metadata(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cached := NewCachedCourseStore(store, newMemCache(), time.Minute)

	first, err := cached.MetadataOf(ctx, "I&CSCI31")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := cached.MetadataOf(ctx, "I&CSCI31")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if store.count("meta") != 1 {
		t.Errorf("Expected 1 store call, got %d", store.count("meta"))
	}
	if second.Code != first.Code || second.MinUnits == nil || *second.MinUnits != 4 {
		t.Errorf("Expected cached metadata to round-trip, got %+v", second)
	}
}

func TestCachedCourseStore_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache := newMemCache()
	cache.fail = true
	cached := NewCachedCourseStore(store, cache, time.Minute)

	got, err := cached.CoursesRequiredByMinor(ctx, "MN-10")
	if err != nil {
		t.Fatalf("Expected cache errors to be swallowed, got %v", err)
	}
	if !got.Has("BIOSCI99") {
		t.Errorf("Expected BIOSCI99, got %v", got.Sorted())
	}
}

func TestCachedCourseStore_MalformedEntryReloads(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache := newMemCache()
	cache.values[prereqKeyPrefix+"X"] = "{not json"
	cached := NewCachedCourseStore(store, cache, time.Minute)

	if _, err := cached.PrerequisitesOf(ctx, "X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if store.count("prereq") != 1 {
		t.Errorf("Expected the store to be consulted, got %d calls", store.count("prereq"))
	}
}

func TestCachedCourseStore_StoreErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	store.fail = true
	cache := newMemCache()
	cached := NewCachedCourseStore(store, cache, time.Minute)

	if _, err := cached.CoursesRequiredByMajor(ctx, "BS-201"); err == nil {
		t.Fatal("Expected store error to propagate")
	}
	if cache.size() != 0 {
		t.Errorf("Expected nothing cached after a failure, got %d entries", cache.size())
	}
}

func TestCachedCourseStore_Membership(t *testing.T) {
	ctx := context.Background()
	cached := NewCachedCourseStore(newCountingStore(), newMemCache(), time.Minute)

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"major member", func() (bool, error) { return cached.IsMajorCourse(ctx, "I&CSCI31", "BS-201") }, true},
		{"major non-member", func() (bool, error) { return cached.IsMajorCourse(ctx, "BIOSCI99", "BS-201") }, false},
		{"minor member", func() (bool, error) { return cached.IsMinorCourse(ctx, "BIOSCI99", "MN-10") }, true},
		{"required via major", func() (bool, error) { return cached.IsRequiredFor(ctx, "I&CSCI32", "BS-201") }, true},
		{"required via minor", func() (bool, error) { return cached.IsRequiredFor(ctx, "BIOSCI99", "MN-10") }, true},
		{"not required", func() (bool, error) { return cached.IsRequiredFor(ctx, "BIOSCI99", "BS-201") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCachedCourseStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache := newMemCache()
	cache.values["other-app:key"] = "keep"
	cached := NewCachedCourseStore(store, cache, time.Minute)

	if _, err := cached.CoursesRequiredByMajor(ctx, "BS-201"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := cached.Invalidate(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cache.size() != 1 {
		t.Errorf("Expected only the foreign key to survive, got %d entries", cache.size())
	}

	if _, err := cached.CoursesRequiredByMajor(ctx, "BS-201"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if store.count("major") != 2 {
		t.Errorf("Expected a reload after invalidation, got %d calls", store.count("major"))
	}
}
