package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fundexplorer/internal/cache"
	"fundexplorer/internal/config"
	"fundexplorer/internal/mfapi"
	"fundexplorer/internal/service"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *service.Service
}

type rootFlags struct {
	configFile string
	logLevel   string
	verbose    bool
}

// NewRootCmd creates the root command of the fundexplorer CLI.
// Configuration, logging and the fund service are set up before any
// subcommand runs.
func NewRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     = &app{}
	)

	cmd := &cobra.Command{
		Use:   "fundexplorer",
		Short: "Browse Indian mutual funds and their NAV history",
		Long: `fundexplorer lists, searches and inspects mutual fund schemes using the
public mfapi.in API. Fund listings are cached in memory for a few minutes and
scheme details for the lifetime of the process.`,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			if flags.logLevel != "" {
				cfg.LogLevel = flags.logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			*a = *newApp(cfg, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if flags.verbose && a.service != nil {
				printCacheStats(cmd.ErrOrStderr(), a.service.CacheStats())
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default ./config.yaml or $HOME/.fundexplorer/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "print cache statistics after the command")

	cmd.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newTopCmd(a),
		newDetailCmd(a),
		newBrowseCmd(a),
	)

	return cmd
}

const rootCmdExample = `  # List every equity scheme
  fundexplorer list --category equity

  # Search by name
  fundexplorer search "mid cap"

  # Show the first 20 schemes from well known fund houses
  fundexplorer top --limit 20

  # NAV statistics of two schemes over the last year
  fundexplorer detail 118989 119551 --range 1Y

  # Interactive browser
  fundexplorer browse`

func newApp(cfg *config.Config, logOutput io.Writer) *app {
	logger := newLogger(logOutput, cfg.LogLevel)
	slog.SetDefault(logger)

	client := mfapi.NewClient(cfg.BaseURL, cfg.HTTPOptions(), cfg.Limiter())
	store := cache.New(cfg.CacheTTL)

	logger.Debug("configured fund service",
		"base_url", cfg.BaseURL,
		"cache_ttl", cfg.CacheTTL,
		"rate_limit", cfg.RateLimit,
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: service.New(client, store, service.WithLogger(logger)),
	}
}

// newLogger returns a text logger at level. Unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func printCacheStats(w io.Writer, s cache.Stats) {
	if !s.HasSnapshot {
		fmt.Fprintf(w, "cache: no fund list, %d scheme details\n", s.Details)
		return
	}
	fmt.Fprintf(w, "cache: %d funds fetched %s ago (fresh: %t), %d scheme details\n",
		s.SnapshotSize, s.SnapshotAge.Round(time.Second), s.SnapshotFresh, s.Details)
}
