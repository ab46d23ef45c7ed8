package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"course-finder/internal/api/handlers"
	"course-finder/internal/api/middleware"
	"course-finder/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	BaseURL         string
	Majors          []string
	Minors          []string
	Year            int
	ConcurrentUsers int
	RequestsPerUser int
	RankedShare     int
}

// LoadTestResult holds the results of load testing
type LoadTestResult struct {
	TotalRequests     int
	SuccessfulReqs    int
	FailedReqs        int
	AvgResponseTimeMs float64
	MaxResponseTimeMs int64
	MinResponseTimeMs int64
	P95ResponseTimeMs int64
	ThroughputRPS     float64
	ErrorsByType      map[string]int
}

// LoadTester drives concurrent eligibility searches against a running server
type LoadTester struct {
	config    LoadTestConfig
	client    *http.Client
	results   LoadTestResult
	latencies []int64
	mutex     sync.Mutex
	startTime time.Time
}

// NewLoadTester creates a new load tester
func NewLoadTester(config LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		results: LoadTestResult{
			ErrorsByType: make(map[string]int),
		},
	}
}

// buildRequest varies the profile and term by request number so the cache sees a realistic key mix
func (lt *LoadTester) buildRequest(requestID int) handlers.SearchRequest {
	req := handlers.SearchRequest{
		Year:    lt.config.Year,
		Quarter: string(catalog.Quarters[requestID%len(catalog.Quarters)]),
	}

	if len(lt.config.Majors) > 0 {
		req.Majors = []string{lt.config.Majors[requestID%len(lt.config.Majors)]}
		// every third request is a double major
		if requestID%3 == 0 && len(lt.config.Majors) > 1 {
			req.Majors = append(req.Majors, lt.config.Majors[(requestID+1)%len(lt.config.Majors)])
		}
	}
	if len(lt.config.Minors) > 0 && requestID%2 == 0 {
		req.Minors = []string{lt.config.Minors[requestID%len(lt.config.Minors)]}
	}
	if lt.config.RankedShare > 0 && requestID%100 < lt.config.RankedShare {
		req.Ranked = true
	}

	return req
}

// RunLoadTest executes the load test
func (lt *LoadTester) RunLoadTest() {
	fmt.Printf("Starting load test with %d concurrent users...\n", lt.config.ConcurrentUsers)

	lt.startTime = time.Now()
	var wg sync.WaitGroup

	// Create semaphore to limit concurrent requests
	semaphore := make(chan struct{}, lt.config.ConcurrentUsers)

	totalRequests := lt.config.ConcurrentUsers * lt.config.RequestsPerUser

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)

		go func(requestID int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			lt.simulateSearch(requestID)
		}(i)
	}

	wg.Wait()

	lt.calculateMetrics()
	lt.printResults()
}

// simulateSearch issues one search request and records its outcome
func (lt *LoadTester) simulateSearch(requestID int) {
	startTime := time.Now()

	jsonData, err := json.Marshal(lt.buildRequest(requestID))
	if err != nil {
		lt.recordError("json_marshal")
		return
	}

	url := fmt.Sprintf("%s/api/v1/search", lt.config.BaseURL)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		lt.recordError("build_request")
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(middleware.RequestIDHeader, uuid.NewString())

	resp, err := lt.client.Do(httpReq)
	responseTime := time.Since(startTime)
	if err != nil {
		lt.recordError("http_request")
		return
	}
	defer resp.Body.Close()

	lt.recordResponse(resp.StatusCode, responseTime)
}

// recordResponse records the response metrics
func (lt *LoadTester) recordResponse(statusCode int, responseTime time.Duration) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	responseTimeMs := responseTime.Milliseconds()
	lt.latencies = append(lt.latencies, responseTimeMs)

	if lt.results.MaxResponseTimeMs < responseTimeMs {
		lt.results.MaxResponseTimeMs = responseTimeMs
	}

	if lt.results.MinResponseTimeMs == 0 || lt.results.MinResponseTimeMs > responseTimeMs {
		lt.results.MinResponseTimeMs = responseTimeMs
	}

	// Calculate running average
	currentAvg := lt.results.AvgResponseTimeMs
	currentCount := float64(lt.results.TotalRequests)
	lt.results.AvgResponseTimeMs = (currentAvg*(currentCount-1) + float64(responseTimeMs)) / currentCount

	if statusCode >= 200 && statusCode < 300 {
		lt.results.SuccessfulReqs++
	} else {
		lt.results.FailedReqs++
		lt.results.ErrorsByType[fmt.Sprintf("http_%d", statusCode)]++
	}
}

// recordError records an error that occurred before a response arrived
func (lt *LoadTester) recordError(errorType string) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	lt.results.ErrorsByType[errorType]++
}

// calculateMetrics calculates final test metrics
func (lt *LoadTester) calculateMetrics() {
	totalDuration := time.Since(lt.startTime)
	lt.results.ThroughputRPS = float64(lt.results.TotalRequests) / totalDuration.Seconds()

	if len(lt.latencies) > 0 {
		sorted := append([]int64(nil), lt.latencies...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		lt.results.P95ResponseTimeMs = sorted[(len(sorted)*95)/100]
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// printResults displays the load test results
func (lt *LoadTester) printResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))

	fmt.Printf("Test Configuration:\n")
	fmt.Printf("  - Concurrent Users: %d\n", lt.config.ConcurrentUsers)
	fmt.Printf("  - Requests per User: %d\n", lt.config.RequestsPerUser)
	fmt.Printf("  - Majors: %s\n", strings.Join(lt.config.Majors, ", "))
	fmt.Printf("  - Minors: %s\n", strings.Join(lt.config.Minors, ", "))
	fmt.Printf("  - Ranked share: %d%%\n", lt.config.RankedShare)

	fmt.Printf("\nOverall Performance:\n")
	fmt.Printf("  - Total Requests: %d\n", lt.results.TotalRequests)
	fmt.Printf("  - Successful: %d (%.2f%%)\n", lt.results.SuccessfulReqs, percent(lt.results.SuccessfulReqs, lt.results.TotalRequests))
	fmt.Printf("  - Failed: %d (%.2f%%)\n", lt.results.FailedReqs, percent(lt.results.FailedReqs, lt.results.TotalRequests))

	fmt.Printf("\nResponse Time Metrics:\n")
	fmt.Printf("  - Average: %.2f ms\n", lt.results.AvgResponseTimeMs)
	fmt.Printf("  - Minimum: %d ms\n", lt.results.MinResponseTimeMs)
	fmt.Printf("  - p95: %d ms\n", lt.results.P95ResponseTimeMs)
	fmt.Printf("  - Maximum: %d ms\n", lt.results.MaxResponseTimeMs)

	fmt.Printf("\nThroughput:\n")
	fmt.Printf("  - Requests per Second: %.2f\n", lt.results.ThroughputRPS)

	if len(lt.results.ErrorsByType) > 0 {
		fmt.Printf("\nError Breakdown:\n")
		for errorType, count := range lt.results.ErrorsByType {
			fmt.Printf("  - %s: %d\n", errorType, count)
		}
	}
}

// RunConcurrencyStressTest repeats the run at increasing concurrency
func (lt *LoadTester) RunConcurrencyStressTest() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("CONCURRENCY STRESS TEST")
	fmt.Println(strings.Repeat("=", 80))

	concurrencyLevels := []int{10, 50, 100, 200, 500}

	for _, concurrency := range concurrencyLevels {
		fmt.Printf("\nTesting with %d concurrent users...\n", concurrency)

		originalConfig := lt.config
		lt.config.ConcurrentUsers = concurrency
		lt.config.RequestsPerUser = 5

		lt.results = LoadTestResult{
			ErrorsByType: make(map[string]int),
		}
		lt.latencies = nil

		lt.RunLoadTest()

		time.Sleep(2 * time.Second)

		lt.config = originalConfig
	}
}

// loadtestCmd represents the loadtest command
var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Run load tests against the eligibility search API",
	Long: `Run concurrent eligibility searches against a running course-finder server.
Profiles rotate through the given majors and minors and across all quarters,
with a configurable share of ranked searches.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLoadTest()
	},
}

var (
	baseURL         string
	loadMajors      []string
	loadMinors      []string
	loadYear        int
	concurrentUsers int
	requestsPerUser int
	rankedShare     int
	stressTest      bool
)

func init() {
	rootCmd.AddCommand(loadtestCmd)

	loadtestCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the course-finder API")
	loadtestCmd.Flags().StringSliceVar(&loadMajors, "majors", []string{"BS-201", "BS-540"}, "Major ids to rotate through")
	loadtestCmd.Flags().StringSliceVar(&loadMinors, "minors", nil, "Minor ids to rotate through")
	loadtestCmd.Flags().IntVar(&loadYear, "year", 0, "Academic year to search (0 for any)")
	loadtestCmd.Flags().IntVar(&concurrentUsers, "concurrent", 100, "Number of concurrent users")
	loadtestCmd.Flags().IntVar(&requestsPerUser, "requests", 10, "Number of requests per user")
	loadtestCmd.Flags().IntVar(&rankedShare, "ranked", 50, "Percentage of requests asking for ranked results")
	loadtestCmd.Flags().BoolVar(&stressTest, "stress", false, "Run concurrency stress test")
}

func runLoadTest() {
	config := LoadTestConfig{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		Majors:          loadMajors,
		Minors:          loadMinors,
		Year:            loadYear,
		ConcurrentUsers: concurrentUsers,
		RequestsPerUser: requestsPerUser,
		RankedShare:     rankedShare,
	}

	loadTester := NewLoadTester(config)

	fmt.Println("Course Finder Search Load Test")
	fmt.Println("==============================")

	loadTester.RunLoadTest()

	if stressTest {
		loadTester.RunConcurrencyStressTest()
	}
}
