package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"premium-quote/adapters/records"
	"premium-quote/core/output"
	"premium-quote/core/ui"
	"premium-quote/internal/config"
	"premium-quote/internal/logging"
)

// batchCmd quotes every record of a file
func batchCmd() *cobra.Command {
	var (
		limit      int
		outPath    string
		format     string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Quote every applicant in a CSV, JSON, YAML or HCL file",
		Long: `Load applicants from a file and quote each one. Records that cannot be
read are reported and skipped; the rest of the batch continues. All quotes
are saved to the output file, separated by dashed lines.

Examples:
  premium-quote batch "data/insurance dataset.csv"
  premium-quote batch applicants.yaml --limit 5
  premium-quote batch applicants.hcl --out quotes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Batch.Limit
			}
			if outPath == "" {
				outPath = cfg.Batch.OutputPath
			}
			if format == "" {
				format = cfg.Quote.Format
			}

			formatter, err := output.DefaultRegistry(cfg.Quote.CurrencySymbol).Get(format)
			if err != nil {
				return err
			}

			rows, err := records.Load(args[0])
			if err != nil {
				return err
			}

			out := ui.NewWriter(cmd.OutOrStdout(), noColor)
			status := ui.NewWriter(cmd.ErrOrStderr(), noColor)
			status.Info("Loaded %d applicant records.", len(rows))

			runner := ui.NewBatchRunner(out, status, newPipeline(), formatter, logging.Logger)
			runner.Limit = limit
			runner.ShowProgress = cfg.Batch.Progress && !noProgress

			result, err := runner.Run(cmd.Context(), rows)
			if err != nil {
				return err
			}

			saved := ""
			if len(result.Quotes) > 0 {
				if err := saveQuotes(outPath, formatter, result.Quotes); err != nil {
					return err
				}
				saved = outPath
				status.Success("Quotes saved to %s", outPath)
			}
			runner.Summary(result, cfg.Quote.CurrencySymbol, saved)
			logging.Info("batch finished",
				zap.String("file", args[0]),
				zap.Int("quoted", len(result.Quotes)),
				zap.Int("failed", len(result.Failures)),
				zap.Duration("duration", result.Duration))

			if len(result.Quotes) == 0 && len(result.Failures) > 0 {
				return fmt.Errorf("no applicants could be quoted")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "quote at most n records (0 = all)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "file to save quotes to (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}
