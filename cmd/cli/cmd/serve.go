package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"premium-quote/api"
	"premium-quote/internal/config"
	"premium-quote/internal/logging"
)

// serveCmd runs the HTTP quote API
func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP quote API",
		Long: `Serve quotes over HTTP.

Endpoints:
  POST /v1/quotes         quote one applicant (?format=text|yaml for rendered output)
  POST /v1/quotes/batch   quote an array of applicants, errors reported per record
  GET  /health            liveness
  GET  /version           build version
  GET  /metrics           Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			server := api.NewServer(Version,
				api.WithLogger(logging.Logger),
				api.WithCurrencySymbol(cfg.Quote.CurrencySymbol),
				api.WithRegistry(reg),
			)
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
