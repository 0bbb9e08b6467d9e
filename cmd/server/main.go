/*
main.go - Application entry point

PURPOSE:
  Command-line entry for the workforce engine: runs the HTTP server, seeds
  demo data, and exports monthly reports without going through HTTP.

COMMANDS:
  serve    Start the HTTP API
  seed     Reset the database and load a scenario
  export   Write a monthly report to a file or stdout

STARTUP SEQUENCE (serve):
  1. Load configuration (defaults, config file, .env, environment, flags)
  2. Initialize SQLite store
  3. Apply a configured work schedule, if one was given
  4. Create API handler with dependencies
  5. Start the auto-attendance scheduler
  6. Start server with graceful shutdown

GLOBAL FLAGS:
  --db      SQLite database path (default: workforce.db)
            Use ":memory:" for in-memory database
  --config  Config file path (YAML/JSON/TOML)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./workforce serve --db=./data/workforce.db

  # Demo data in memory on a different port
  WORKFORCE_PORT=3000 ./workforce serve --db=":memory:" --seed=demo

  # January payroll as a spreadsheet
  ./workforce export --type=payroll --month=2026-01 --format=xlsx --out=payroll.xlsx

ENVIRONMENT:
  Every config key can be set as WORKFORCE_<KEY>, see config/config.go.

SEE ALSO:
  - config/config.go: Configuration keys
  - api/server.go: Router configuration
  - api/scheduler.go: Auto-attendance scheduler
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/warp/workforce/api"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/config"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/report"
	"github.com/warp/workforce/store/sqlite"
	"github.com/warp/workforce/vacation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:          "workforce",
		Short:        "Payroll, attendance and vacation management server",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("db", "workforce.db", "SQLite database path")
	root.PersistentFlags().String("config", "", "Config file path")
	v.BindPFlag("db", root.PersistentFlags().Lookup("db"))
	v.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(newServeCmd(v), newSeedCmd(v), newExportCmd(v))
	return root
}

func openStore(cfg *config.Config) (*sqlite.Store, error) {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// =============================================================================
// SERVE
// =============================================================================

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetString("seed")
			return runServer(v, seed)
		},
	}
	cmd.Flags().Int("port", 8080, "HTTP server port")
	cmd.Flags().String("seed", "", "Load a scenario before serving (demo, empty)")
	v.BindPFlag("port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServer(v *viper.Viper, seed string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// Initialize store
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if seed != "" {
		if err := api.LoadScenario(ctx, store, seed); err != nil {
			return fmt.Errorf("failed to load scenario %s: %w", seed, err)
		}
		log.Printf("[Seed] Loaded scenario %q", seed)
	}

	// A schedule from config or env wins over the stored one.
	if scheduleConfigured(v) {
		if err := store.SaveWorkSchedule(ctx, cfg.Schedule); err != nil {
			return fmt.Errorf("failed to save work schedule: %w", err)
		}
		log.Printf("[Config] Work schedule %s-%s applied", cfg.Schedule.EntryTime, cfg.Schedule.ExitTime)
	}

	// Initialize handler
	handler := api.NewHandler(store, api.Options{
		Policy: vacation.Policy{AnnualAllowance: cfg.AnnualAllowance},
		Rules:  attendance.Rules{MaxExtraHours: cfg.MaxExtraHours},
	})
	if seed != "" {
		handler.SetCurrentScenario(seed)
	}

	scheduler := api.NewAutoAttendanceScheduler(handler.Attendance)
	scheduler.CheckInterval = cfg.AutoAttendanceInterval
	scheduler.Enabled = cfg.AutoAttendance
	scheduler.Start()

	// Create router
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Port)
		log.Printf("API available at http://localhost:%d/api", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	scheduler.Stop()

	log.Println("Server stopped")
	return nil
}

// scheduleConfigured reports whether any schedule key came from a config
// file or the environment rather than the defaults.
func scheduleConfigured(v *viper.Viper) bool {
	for _, key := range []string{"schedule.entry", "schedule.exit", "schedule.break_minutes", "schedule.grace_minutes"} {
		if v.IsSet(key) {
			return true
		}
	}
	return false
}

// =============================================================================
// SEED
// =============================================================================

func newSeedCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, _ := cmd.Flags().GetString("scenario")

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := api.LoadScenario(cmd.Context(), store, scenario); err != nil {
				return err
			}
			log.Printf("[Seed] Loaded scenario %q into %s", scenario, cfg.DBPath)
			return nil
		},
	}
	cmd.Flags().String("scenario", "demo", fmt.Sprintf("Scenario to load %v", api.Scenarios()))
	return cmd
}

// =============================================================================
// EXPORT
// =============================================================================

func newExportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a monthly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("type")
			monthStr, _ := cmd.Flags().GetString("month")
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			month := core.DateOf(time.Now()).Month()
			if monthStr != "" {
				m, err := core.ParseMonth(monthStr)
				if err != nil {
					return fmt.Errorf("invalid --month %q: want YYYY-MM", monthStr)
				}
				month = m
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := report.NewService(store, vacation.Policy{AnnualAllowance: cfg.AnnualAllowance})
			rep, err := svc.Build(cmd.Context(), report.Kind(kind), month)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := report.Export(w, rep, report.Format(format)); err != nil {
				return err
			}
			if out != "" {
				log.Printf("[Export] %s: %d rows written to %s", rep.Title, rep.Len(), out)
			}
			return nil
		},
	}
	cmd.Flags().String("type", string(report.KindPayroll), "Report type (payroll, attendance, employee)")
	cmd.Flags().String("month", "", "Month as YYYY-MM (default: current month)")
	cmd.Flags().String("format", string(report.FormatCSV), "Output format (csv, xlsx, json)")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}
