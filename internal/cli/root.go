// Package cli provides the command-line interface for planwright.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/avelisek/planwright/internal/config"
	"github.com/avelisek/planwright/internal/db"
	"github.com/avelisek/planwright/internal/faultmap"
	"github.com/avelisek/planwright/internal/llm"
	"github.com/avelisek/planwright/internal/metrics"
	"github.com/avelisek/planwright/internal/planner"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, logging, and db client
	cfg       config.Config
	dbClient  *db.Client
	collector *metrics.Collector
	logClose  func() error

	// Lazy-initialized planning agent
	agent *llm.Agent
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "planwright",
	Short: "Fault-to-work-order planning for plant maintenance",
	Long: `Planwright turns diagnosed equipment faults into repair work orders.

For each fault it gathers technicians and spare-part inventory from the
document store, asks a generative planning agent for a structured repair
plan, normalizes the response, assigns the best-matching technician, and
persists the resulting work order.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load config
		cfg = config.Load()
		collector = metrics.NewCollector()

		logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		logClose = cleanup
		slog.SetDefault(logger)

		// Connect to database
		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, logger, collector)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		// Initialize schema
		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Close database connection
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logClose != nil {
			_ = logClose()
		}
	},
}

// getPlanner creates the planning pipeline with lazy agent initialization.
func getPlanner() (*planner.Planner, error) {
	if agent == nil {
		var err error
		agent, err = llm.NewAgent(cfg, collector)
		if err != nil {
			return nil, fmt.Errorf("init planning agent: %w", err)
		}
	}

	faults, err := faultmap.Load(cfg.FaultMapFile)
	if err != nil {
		return nil, fmt.Errorf("load fault map: %w", err)
	}

	return planner.New(dbClient, agent, faults, nil,
		planner.WithCollector(collector)), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deductCmd)
}
