package router

import (
	"course-finder/internal/api/handlers"
	"course-finder/internal/api/middleware"
	"course-finder/internal/domain/catalog"
	interfaces "course-finder/internal/interfaces/infrastructure"
	"course-finder/internal/service/eligibility"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the components the HTTP layer is built on. Cache is nil when caching is disabled.
type Dependencies struct {
	DB           *gorm.DB
	Store        catalog.CourseStore
	Repo         catalog.CatalogRepository
	Cache        interfaces.CacheService
	Version      string
	AllowOrigins []string
	DefaultLimit int
	MaxLimit     int
}

func NewRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(cors.New(corsConfig(deps.AllowOrigins)))
	r.Use(gin.Recovery())

	engine := eligibility.NewEngine(deps.Store)

	searchHandler := handlers.NewSearchHandler(engine, deps.DefaultLimit, deps.MaxLimit)
	catalogHandler := handlers.NewCatalogHandler(deps.Store, deps.Repo)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache, deps.Version)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/search", searchHandler.Search)

		v1.GET("/courses/:course_id", catalogHandler.GetCourse)
		v1.GET("/terms/courses", catalogHandler.TermCourses)

		majors := v1.Group("/majors")
		{
			majors.GET("", catalogHandler.ListMajors)
			majors.GET("/:major_id/specializations", catalogHandler.ListSpecializations)
		}
		v1.GET("/minors", catalogHandler.ListMinors)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders(middleware.RequestIDHeader)
	cfg.AddExposeHeaders(middleware.RequestIDHeader)
	return cfg
}
