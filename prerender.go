package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nordiskauto/bilvisning/controller"
	"github.com/nordiskauto/bilvisning/feed"
	"github.com/nordiskauto/bilvisning/page"
	"github.com/spf13/cobra"
)

func newPrerenderCmd(flags *rootFlags) *cobra.Command {
	var (
		output   string
		filter   string
		pages    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "prerender <template.html>",
		Short: "Render the listings section into a page template",
		Long: `Load the feed once, render the listings section into the given page
template and print the resulting HTML. Stat counters in view are run to
completion before the page is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, flags, false)
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open template: %w", err)
			}
			doc, err := page.Parse(f)
			f.Close()
			if err != nil {
				return err
			}

			host := page.NewHost(doc, page.Options{
				PageSize:        cfg.PageSize,
				FallbackURL:     cfg.FallbackURL,
				Placeholder:     cfg.PlaceholderImage,
				HeaderThreshold: float64(cfg.HeaderThreshold),
				CounterInterval: interval,
				Logger:          logger,
			})
			defer host.Close()

			session := host.Mount(cmd.Context(), feed.New(cfg.FeedURL, feed.WithLogger(logger)))
			if session.State != controller.StateReady {
				logger.Warn("listings not ready", "state", session.State.String())
			} else if filter != "" {
				if err := host.ClickFilter(filter); err != nil {
					return err
				}
			}
			for i := 1; i < pages && session.State == controller.StateReady; i++ {
				more, err := host.ClickLoadMore()
				if err != nil {
					return err
				}
				if !more {
					break
				}
			}
			if err := host.WaitCounters(); err != nil {
				return err
			}

			html, err := doc.HTML()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			return os.WriteFile(output, []byte(html+"\n"), 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&filter, "filter", "", "activate a category filter: all, el, hybrid, bensin, diesel")
	cmd.Flags().IntVar(&pages, "pages", 1, "pages to reveal, as if load more was used pages-1 times")
	cmd.Flags().DurationVar(&interval, "counter-interval", time.Millisecond, "tick interval for stat counters")
	return cmd
}
