package main

import (
	"io"
	"net/http"
	"scorecard/internal/config"
	"scorecard/internal/lookup"
	"scorecard/pkg/logger"
	"scorecard/pkg/metrics"
	"scorecard/pkg/ratings/securityscorecard"
	"scorecard/pkg/serrors"
	"scorecard/pkg/transport"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const usageLine = "scorecard <company-domain>"

// rootCommand constructs the single 'scorecard <domain>' command. The rating
// is written to stdout; diagnostics are left to the caller.
func rootCommand(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           usageLine,
		Short:         "Prints the SecurityScorecard score and grade of a domain",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return serrors.With(serrors.ErrUsage, "expected exactly one domain, got %d arguments", len(args))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.Load(envFile, cmd.Flags().Changed("env-file"))
			if err != nil {
				return err //nolint: wrapcheck
			}

			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return serrors.Wrap(serrors.ErrConfig, err, "invalid log level")
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = zap.DebugLevel
			}
			logger.Setup(cfg.Environment, level)

			metricsFile := cfg.MetricsFile
			if cmd.Flags().Changed("metrics-file") {
				metricsFile, _ = cmd.Flags().GetString("metrics-file")
			}

			m := metrics.New()
			httpClient := &http.Client{
				Timeout:   cfg.API.Timeout,
				Transport: transport.WithLogger(m.InstrumentRoundTripper(http.DefaultTransport)),
			}
			svc := lookup.New(securityscorecard.New(httpClient, cfg.API.BaseURL, cfg.API.Key))

			start := time.Now()
			rating, err := svc.Lookup(ctx, args[0])
			m.ObserveLookup(outcome(err), time.Since(start))
			if metricsFile != "" {
				if werr := m.WriteTextfile(metricsFile); werr != nil {
					logger.Warn(ctx, "could not write metrics", zap.String("path", metricsFile), zap.Error(werr))
				}
			}
			if err != nil {
				return err //nolint: wrapcheck
			}

			return lookup.Render(stdout, rating) //nolint: wrapcheck
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return serrors.Wrap(serrors.ErrUsage, err, "")
	})
	cmd.Flags().StringP("env-file", "e", config.DefaultEnvFile, "Path of a .env file holding "+config.EnvAPIKey)
	cmd.Flags().BoolP("verbose", "v", false, "Log the upstream request at debug level to stderr")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics of this run to the given textfile")

	return cmd
}
