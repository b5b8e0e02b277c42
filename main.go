package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nordiskauto/bilvisning/feed"
	"github.com/nordiskauto/bilvisning/internal/config"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/ui"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootFlags struct {
	configPath string
	envFile    string
	feedURL    string
	pageSize   int
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "bilvisning",
		Short:         "Browse Nordisk Auto's cars in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd, flags, true)
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			source := feed.New(cfg.FeedURL, feed.WithLogger(logger))
			model := ui.NewModel(source, ui.Options{
				PageSize:        cfg.PageSize,
				FallbackURL:     cfg.FallbackURL,
				Placeholder:     cfg.PlaceholderImage,
				HeaderThreshold: float64(cfg.HeaderThreshold),
				Logger:          logger,
			})
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bilvisning/config.toml)")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file (default .env)")
	pf.StringVar(&flags.feedURL, "feed", "", "listings feed path or URL")
	pf.IntVar(&flags.pageSize, "page-size", 0, "listings shown per page")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path")

	rootCmd.AddCommand(newPrerenderCmd(flags))
	return rootCmd
}

// setup resolves configuration, applies flag overrides and opens the logger.
// The terminal UI always logs to a file; other commands may log to stderr.
func setup(cmd *cobra.Command, flags *rootFlags, toFile bool) (config.Config, logging.Logger, error) {
	cfg, err := config.Load(config.Options{Path: flags.configPath, EnvFile: flags.envFile})
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if flags.feedURL != "" {
		cfg.FeedURL = flags.feedURL
	}
	if cmd.Flags().Changed("page-size") {
		if flags.pageSize <= 0 {
			return config.Config{}, nil, fmt.Errorf("--page-size must be positive, got %d", flags.pageSize)
		}
		cfg.PageSize = flags.pageSize
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}

	logCfg := logging.Config{Level: cfg.LogLevel, Prefix: "bilvisning"}
	if toFile {
		logCfg.File = cfg.LogFile
	}
	logger, err := logging.Open(logCfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	for _, w := range cfg.Warnings {
		logger.Warn("config value rejected", "detail", w)
	}
	logger.Debug("config loaded", "source", cfg.Source, "feed", cfg.FeedURL, "page_size", cfg.PageSize)
	return cfg, logger, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
