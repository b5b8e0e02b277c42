package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nordiskauto/bilvisning/feed"
	"github.com/nordiskauto/bilvisning/internal/config"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/mcpsrv"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "bilvisning-mcp: %v\n", err)
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
	logger, err := logging.Open(logging.Config{Level: cfg.LogLevel, Prefix: "bilvisning-mcp"})
	if err != nil {
		return err
	}
	defer logger.Shutdown()
	for _, w := range cfg.Warnings {
		logger.Warn("config value rejected", "detail", w)
	}

	source := feed.NewCachedSource(feed.New(cfg.FeedURL, feed.WithLogger(logger)))
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		EnableAdmin: cfg.MCP.EnableAdmin,
		APIKey:      cfg.MCP.APIKey,
		PageSize:    cfg.PageSize,
		FallbackURL: cfg.FallbackURL,
		Placeholder: cfg.PlaceholderImage,
		Logger:      logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mcpHandler := mcpsrv.NewHandler(server, mcpsrv.StreamableOptions(cfg.MCP))
	mux.Handle("/mcp", mcpsrv.WrapMCPHandler(mcpHandler, cfg.MCP, logger))

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.MCP.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", httpServer.Addr, "feed", cfg.FeedURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if cfg.MCP.CacheClearInterval > 0 {
		g.Go(func() error {
			clearCachePeriodically(ctx, source, cfg.MCP.CacheClearInterval, logger)
			return nil
		})
	}
	return g.Wait()
}

func clearCachePeriodically(ctx context.Context, source *feed.CachedSource, every time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			source.ClearCache()
			logger.Debug("feed cache cleared")
		case <-ctx.Done():
			return
		}
	}
}
