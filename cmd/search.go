package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"course-finder/internal/config"
	"course-finder/internal/domain/catalog"
	"course-finder/internal/infrastructure/database"
	"course-finder/internal/infrastructure/repository"
	"course-finder/internal/service/eligibility"
	"course-finder/pkg/logger"
	"course-finder/pkg/validator"

	"github.com/spf13/cobra"
)

var (
	searchMajors    []string
	searchMinors    []string
	searchCompleted []string
	searchYear      int
	searchQuarter   string
	searchRanked    bool
	searchLimit     int
	searchJSON      bool
)

// searchArgs is validated with the same rules as the HTTP search request
type searchArgs struct {
	eligibility.ProfileRequest
	Year    int    `validate:"omitempty,gte=1900,lte=2200"`
	Quarter string `validate:"omitempty,quarter"`
	Limit   int    `validate:"gte=0"`
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the courses a student can take in a term",
	Long: `Run an eligibility search directly against the catalog database.
Courses are eligible when they are offered in the term, required by a declared
major or minor (or any course when no major is declared), not yet completed,
and have every prerequisite completed.`,
	Example: `  course-finder search --major BS-201 --major BS-540 --completed I&CSCI31 --year 2026 --quarter spring
  course-finder search --minor MN-25 --quarter fall --ranked --limit 5`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSearch(); err != nil {
			logger.Error("Search failed: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceVar(&searchMajors, "major", nil, "Declared major id (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchMinors, "minor", nil, "Declared minor id (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchCompleted, "completed", nil, "Completed course id (repeatable)")
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "Academic year (0 for any)")
	searchCmd.Flags().StringVar(&searchQuarter, "quarter", "", "fall, winter, spring or summer (empty for any)")
	searchCmd.Flags().BoolVar(&searchRanked, "ranked", false, "Score and order the results")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum ranked results (default from search.default_limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}

func runSearch() error {
	cfg := config.Get()

	args := searchArgs{
		ProfileRequest: eligibility.ProfileRequest{
			Majors:    searchMajors,
			Minors:    searchMinors,
			Completed: searchCompleted,
		},
		Year:    searchYear,
		Quarter: searchQuarter,
		Limit:   searchLimit,
	}
	if err := validator.ValidateStruct(&args); err != nil {
		return fmt.Errorf("invalid search: %s", validator.Summarize(err))
	}

	db, err := openDatabase(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeDatabase(db)

	reader, err := database.NewReader(db, cfg.DatabaseOptions())
	if err != nil {
		return fmt.Errorf("failed to open reader: %w", err)
	}

	engine := eligibility.NewEngine(repository.NewCourseStore(reader))
	profile := args.Profile()
	filter := catalog.NewTermFilter(args.Year, args.Quarter)
	ctx := context.Background()

	if !searchRanked {
		courses, err := engine.Search(ctx, profile, filter)
		if err != nil {
			return err
		}
		return printCourseIDs(filter, courses.Sorted())
	}

	limit := args.Limit
	if limit == 0 {
		limit = cfg.Search.DefaultLimit
	}
	results, err := engine.SearchRanked(ctx, profile, filter, limit)
	if err != nil {
		return err
	}
	return printRanked(filter, results)
}

func printCourseIDs(filter catalog.TermFilter, ids []string) error {
	if searchJSON {
		return writeJSON(map[string]interface{}{"term": filter.String(), "course_ids": ids})
	}

	fmt.Printf("%d eligible courses for %s\n", len(ids), filter)
	for _, id := range ids {
		fmt.Println(" ", id)
	}
	return nil
}

func printRanked(filter catalog.TermFilter, results []eligibility.ScoredCourse) error {
	if searchJSON {
		return writeJSON(map[string]interface{}{"term": filter.String(), "results": results})
	}

	fmt.Printf("Top %d courses for %s\n", len(results), filter)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tCOURSE\tTITLE\tREASONS")
	for _, r := range results {
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n", r.Score, r.Code, r.Title, strings.Join(r.Reasons, "; "))
	}
	return w.Flush()
}

func writeJSON(v interface{}) error {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
