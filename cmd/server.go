package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-finder/internal/api/router"
	"course-finder/internal/config"
	"course-finder/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	port        string
	autoMigrate bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the eligibility search HTTP server",
	Long: `Start the HTTP server exposing eligibility search, course lookups and
program listings over the loaded catalog. When caching is enabled the
program and term lookups are served from Redis and warmed at startup.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags for serve command
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port for the server to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply pending migrations before serving")
}

func startServer() {
	cfg := config.Get()

	// Override port if flag is provided
	if port != "" {
		cfg.Server.Port = port
	}

	db, err := openDatabase(cfg, autoMigrate)
	if err != nil {
		logger.Error("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer closeDatabase(db)

	components, err := router.NewCatalogRouter(db, cfg)
	if err != nil {
		logger.Error("Failed to build router: %v", err)
		os.Exit(1)
	}
	defer components.Close()

	srv := &http.Server{
		Addr:           cfg.ServerAddr(),
		Handler:        components.Router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting course-finder on %s", srv.Addr)
		logger.Info("  POST /api/v1/search - Eligibility search")
		logger.Info("  GET  /api/v1/courses/{id} - Course metadata and prerequisites")
		logger.Info("  GET  /api/v1/terms/courses - Courses offered in a term")
		logger.Info("  GET  /api/v1/majors, /api/v1/minors - Program listings")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
