package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nordiskauto/bilvisning/feed"
	"github.com/nordiskauto/bilvisning/internal/config"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/mcpsrv"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "bilvisning-mcp-stdio: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.Options{Path: configPath})
	if err != nil {
		return err
	}
	// stdout carries the protocol; logs go to the configured file.
	logger, err := logging.Open(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer logger.Shutdown()

	source := feed.NewCachedSource(feed.New(cfg.FeedURL, feed.WithLogger(logger)))
	// The admin tool is gated on an API key, which stdio has no way to present.
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		PageSize:    cfg.PageSize,
		FallbackURL: cfg.FallbackURL,
		Placeholder: cfg.PlaceholderImage,
		Logger:      logger,
	})

	if cfg.MCP.CacheClearInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.MCP.CacheClearInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					source.ClearCache()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	logger.Info("serving on stdio", "feed", cfg.FeedURL)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}
