package router

import (
	"context"
	"fmt"
	"time"

	"course-finder/internal/config"
	"course-finder/internal/domain/catalog"
	"course-finder/internal/infrastructure/cache"
	"course-finder/internal/infrastructure/database"
	"course-finder/internal/infrastructure/repository"
	interfaces "course-finder/internal/interfaces/infrastructure"
	"course-finder/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouterComponents struct {
	Router *gin.Engine
	Cache  interfaces.CacheService
}

// Close releases the cache connection, if one was opened
func (rc *RouterComponents) Close() error {
	if rc.Cache == nil {
		return nil
	}
	return rc.Cache.Close()
}

// NewCatalogRouter wires stores, the optional Redis cache and the HTTP router from configuration
func NewCatalogRouter(db *gorm.DB, cfg *config.Config) (*RouterComponents, error) {
	reader, err := database.NewReader(db, cfg.DatabaseOptions())
	if err != nil {
		return nil, err
	}

	repo := repository.NewCatalogRepository(db)
	var store catalog.CourseStore = repository.NewCourseStore(reader)

	var cacheService interfaces.CacheService
	if cfg.Cache.Enabled {
		redisCache := cache.NewRedisCacheWithOptions(cfg.CacheOptions())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Health(ctx)
		cancel()

		if err != nil {
			logger.Warn("Redis unavailable, serving without cache: %v", err)
			_ = redisCache.Close()
		} else {
			cacheService = redisCache
			store = cache.NewCachedCourseStore(store, redisCache, cfg.Cache.TTL)
			logger.Info("Using Redis lookup cache at %s:%d", cfg.Cache.Host, cfg.Cache.Port)

			if cfg.Cache.WarmOnStart {
				if err := warmCache(store, repo, cfg.Cache.WarmConcurrency); err != nil {
					logger.Warn("Failed to warm cache: %v", err)
				}
			}
		}
	}

	r := NewRouter(Dependencies{
		DB:           db,
		Store:        store,
		Repo:         repo,
		Cache:        cacheService,
		Version:      cfg.App.Version,
		AllowOrigins: cfg.Server.AllowOrigins,
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
	})

	return &RouterComponents{
		Router: r,
		Cache:  cacheService,
	}, nil
}

func warmCache(store catalog.CourseStore, repo catalog.CatalogRepository, concurrency int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := cache.NewWarmer(store, repo, concurrency).Warm(ctx); err != nil {
		return fmt.Errorf("cache warmup: %w", err)
	}
	return nil
}
