package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"course-finder/internal/domain/catalog"
	"course-finder/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const DefaultWarmConcurrency = 8

// Warmer preloads the program and term lookups that every search touches
type Warmer struct {
	store       catalog.CourseStore
	repo        catalog.CatalogRepository
	concurrency int
}

func NewWarmer(store catalog.CourseStore, repo catalog.CatalogRepository, concurrency int) *Warmer {
	if concurrency <= 0 {
		concurrency = DefaultWarmConcurrency
	}
	return &Warmer{
		store:       store,
		repo:        repo,
		concurrency: concurrency,
	}
}

// Warm returns the number of lookups performed. The first failing lookup cancels the rest.
func (w *Warmer) Warm(ctx context.Context) (int, error) {
	start := time.Now()

	majors, err := w.repo.ListMajors(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list majors: %w", err)
	}
	minors, err := w.repo.ListMinors(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list minors: %w", err)
	}

	var warmed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	run := func(fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gctx); err != nil {
				return err
			}
			atomic.AddInt64(&warmed, 1)
			return nil
		})
	}

	for _, m := range majors {
		majorID := m.MajorID
		run(func(ctx context.Context) error {
			_, err := w.store.CoursesRequiredByMajor(ctx, majorID)
			return err
		})
	}
	for _, m := range minors {
		minorID := m.MinorID
		run(func(ctx context.Context) error {
			_, err := w.store.CoursesRequiredByMinor(ctx, minorID)
			return err
		})
	}

	filters := []catalog.TermFilter{{}}
	for _, q := range catalog.Quarters {
		filters = append(filters, catalog.TermFilter{Quarter: q})
	}
	for _, f := range filters {
		filter := f
		run(func(ctx context.Context) error {
			_, err := w.store.CoursesOfferedInTerm(ctx, filter)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return int(atomic.LoadInt64(&warmed)), fmt.Errorf("failed to warm cache: %w", err)
	}

	logger.Info("Cache warmed with %d lookups in %v", warmed, time.Since(start))
	return int(warmed), nil
}
