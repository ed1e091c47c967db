// Package cmd provides the CLI commands for premium-quote.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"premium-quote/core/engine"
	"premium-quote/internal/config"
	"premium-quote/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "premium-quote",
	Short: "Explainable insurance premium quotes",
	Long: `premium-quote prices insurance applicants through a four-stage pipeline
(normalize, risk, pricing, market adjustment) and explains every step.

Examples:
  premium-quote quote --age 30 --vehicle-type car --credit-score 800
  premium-quote quote --interactive
  premium-quote batch applicants.csv --limit 5
  premium-quote serve --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logging.Sync()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.premium-quote.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	logging.Debug("config loaded", zap.String("path", path), zap.String("format", cfg.Quote.Format))
	return nil
}

// newPipeline builds the quoting pipeline used by CLI commands. Advisories
// go to the global logger at warn level.
func newPipeline() *engine.Pipeline {
	return engine.New(
		engine.WithLogger(logging.Logger),
		engine.WithDiagnostics(logging.NewAdvisorySink(nil)),
	)
}

// versionCmd prints version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "premium-quote version %s\n", Version)
		},
	}
}
