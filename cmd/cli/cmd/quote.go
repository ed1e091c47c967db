package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"premium-quote/core/output"
	"premium-quote/core/types"
	"premium-quote/core/ui"
	"premium-quote/internal/config"
)

// quoteCmd quotes one applicant from flags or interactive entry
func quoteCmd() *cobra.Command {
	var (
		format      string
		interactive bool
		save        bool
	)
	fields := make(map[string]*string, len(ui.ApplicantQuestions))

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a single applicant",
		Long: `Quote one applicant. Every field is optional: unset flags are treated
as missing and replaced by their defaults with an advisory.

Examples:
  premium-quote quote --name Asha --age 30 --bmi 22 --vehicle-type car --credit-score 800
  premium-quote quote --interactive
  premium-quote quote --age 45 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if format == "" {
				format = cfg.Quote.Format
			}
			formatter, err := output.DefaultRegistry(cfg.Quote.CurrencySymbol).Get(format)
			if err != nil {
				return err
			}

			var raw types.RawRecord
			if interactive {
				prompter := ui.NewPrompter(cmd.InOrStdin(), ui.NewWriter(cmd.OutOrStdout(), noColor))
				if raw, err = prompter.Applicant(cmd.Context()); err != nil {
					return fmt.Errorf("invalid input: %w", err)
				}
			} else {
				raw = make(types.RawRecord)
				for field, value := range fields {
					if cmd.Flags().Changed(flagName(field)) {
						raw[field] = *value
					}
				}
			}

			res, err := newPipeline().Run(raw)
			if err != nil {
				return err
			}
			q := output.NewQuote(res)
			if err := formatter.Render(cmd.OutOrStdout(), q); err != nil {
				return err
			}

			if save {
				return saveQuotes(cfg.Batch.OutputPath, formatter, []*output.Quote{q})
			}
			return nil
		},
	}

	for _, q := range ui.ApplicantQuestions {
		fields[q.Field] = cmd.Flags().String(flagName(q.Field), "", q.Prompt)
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (text, json, yaml)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for each field on stdin")
	cmd.Flags().BoolVar(&save, "save", false, "also write the quote to the configured output file")

	return cmd
}

// flagName maps a record field to its flag, e.g. credit_score -> credit-score
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// saveQuotes writes quotes to path, separated by dashed lines
func saveQuotes(path string, formatter output.Formatter, quotes []*output.Quote) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := output.WriteQuotes(f, formatter, quotes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
