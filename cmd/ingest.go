package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"course-finder/internal/config"
	"course-finder/internal/infrastructure/cache"
	"course-finder/internal/infrastructure/repository"
	"course-finder/internal/service/loader"
	"course-finder/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	coursesFile  string
	programsFile string
	checkCycles  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a collected course catalog into the database",
	Long: `Read the collected course dump (JSON) and an optional program definition
file (YAML), validate every record, map GE categories and write the whole
catalog in a single transaction. Nothing is written if any record is invalid.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runIngest(cmd); err != nil {
			logger.Error("Ingestion failed: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&coursesFile, "courses", "", "Course dump JSON file (default from ingest.courses_file)")
	ingestCmd.Flags().StringVar(&programsFile, "programs", "", "Program definition YAML file (default from ingest.programs_file)")
	ingestCmd.Flags().BoolVar(&checkCycles, "check-cycles", false, "Reject catalogs whose prerequisite graph has a cycle")
}

func runIngest(cmd *cobra.Command) error {
	cfg := config.Get()

	if coursesFile == "" {
		coursesFile = cfg.Ingest.CoursesFile
	}
	if programsFile == "" {
		programsFile = cfg.Ingest.ProgramsFile
	}
	if !cmd.Flags().Changed("check-cycles") {
		checkCycles = cfg.Ingest.CheckCycles
	}

	courses, err := os.Open(coursesFile)
	if err != nil {
		return fmt.Errorf("failed to open course file: %w", err)
	}
	defer courses.Close()

	var programs io.Reader
	if programsFile != "" {
		f, err := os.Open(programsFile)
		if err != nil {
			return fmt.Errorf("failed to open program file: %w", err)
		}
		defer f.Close()
		programs = f
	}

	db, err := openDatabase(cfg, true)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeDatabase(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := loader.NewLoader(repository.NewCatalogRepository(db), checkCycles).Load(ctx, courses, programs)
	if err != nil {
		return err
	}

	if cfg.Cache.Enabled {
		redisCache := cache.NewRedisCacheWithOptions(cfg.CacheOptions())
		if err := cache.InvalidateCatalog(ctx, redisCache); err != nil {
			logger.Warn("Catalog loaded but cached lookups may be stale: %v", err)
		}
		redisCache.Close()
	}

	fmt.Printf("Loaded %d courses, %d term offerings, %d prerequisites, %d GE tags, %d majors, %d minors in %v\n",
		summary.Courses, summary.Terms, summary.Prerequisites, summary.GenEds, summary.Majors, summary.Minors,
		summary.Duration.Round(time.Millisecond))
	return nil
}
