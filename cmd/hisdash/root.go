package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/config"
	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/metrics"
)

var (
	cfg        config.Config
	configPath string
	envFile    string

	// met is nil unless --metrics-textfile is set.
	met *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "hisdash",
	Short: "Hospital billing analytics from spreadsheet exports",
	Long: "Loads hospital billing rows from a published Google Sheet, CSV/XLSX uploads or a Parquet snapshot, " +
		"normalizes them into canonical records and reports revenue, patient and disease breakdowns.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushMetrics(logging.Setup(cfg.LogFormat, cfg.LogLevel))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&configPath, "config", "", "Optional YAML config file")
	pf.StringVar(&envFile, "env-file", ".env", "Optional .env file loaded before reading the environment")
	pf.StringVar(&cfg.Timezone, "timezone", "", "Timezone for dates without an offset (default "+config.DefaultTimezone+")")
	pf.StringVar(&cfg.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")
}

// setup resolves the configuration: flags, then environment, then the
// config file, then built-in defaults.
func setup(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	if err := config.LoadDotEnv(envFile); err != nil {
		log.Warn().Err(err).Msg("ignoring .env file")
	}
	cfg.ApplyEnv()
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			log.Error().Err(err).Msg("config file")
			os.Exit(exitcode.UsageError)
		}
	}
	cfg.ApplyDefaults()
	if cfg.MetricsTextfile != "" {
		met = metrics.New()
	}
	return nil
}

func flushMetrics(log zerolog.Logger) {
	if err := met.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Warn().Err(err).Msg("metrics textfile not written")
	}
}

// fatal logs err, flushes metrics and exits with code.
func fatal(log zerolog.Logger, code int, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	flushMetrics(log)
	os.Exit(code)
}
