package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nordiskauto/bilvisning/controller"
	"github.com/nordiskauto/bilvisning/feed"
	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/mcpsrv/dto"
	"github.com/nordiskauto/bilvisning/render"
	"github.com/nordiskauto/bilvisning/types"
)

const maxPages = 100

type listingsListArgs struct {
	Filter string `json:"filter,omitempty" jsonschema:"Category filter: all, el, hybrid, bensin, diesel"`
	Pages  int    `json:"pages,omitempty" jsonschema:"Number of pages to show, as if load more was used pages-1 times (default 1)"`
}

type listingsListOutput struct {
	Filter   string        `json:"filter"`
	Filtered int           `json:"filtered"`
	Visible  int           `json:"visible"`
	Total    int           `json:"total"`
	Filters  []dto.Filter  `json:"filters"`
	LoadMore dto.LoadMore  `json:"load_more"`
	Items    []dto.Listing `json:"items"`
}

type listingsStatsOutput struct {
	Stats      dto.Stats `json:"stats"`
	Derived    dto.Stats `json:"derived"`
	Consistent bool      `json:"consistent"`
	LoadedAt   string    `json:"loaded_at,omitempty"`
}

type feedReloadOutput struct {
	Status string `json:"status"`
	Cars   int    `json:"cars"`
}

type ServerOptions struct {
	EnableAdmin bool
	APIKey      string
	PageSize    int
	FallbackURL string
	Placeholder string
	Logger      logging.Logger
}

type cacheClearSource interface {
	ClearCache()
}

type timestampedSource interface {
	LoadedAt() time.Time
}

// windowView captures the fragments a session paints for one request.
type windowView struct {
	grid     render.Grid
	filters  render.FilterBar
	loadMore render.LoadMore
}

func (v *windowView) ShowGrid(g render.Grid)         { v.grid = g }
func (v *windowView) ShowFilters(f render.FilterBar) { v.filters = f }
func (v *windowView) ShowLoadMore(l render.LoadMore) { v.loadMore = l }
func (v *windowView) ShowStats(render.StatsCounter)  {}

func NewServer(source types.ListingSource, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	logger := logging.OrNoop(opts.Logger)

	server := mcp.NewServer(&mcp.Implementation{Name: "bilvisning", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "listings_list",
		Description: "List the cars shown for a filter after a number of load-more pages.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listingsListArgs) (*mcp.CallToolResult, listingsListOutput, error) {
		return listingsListHandler(ctx, req, args, source, opts, logger)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "listings_stats",
		Description: "Get the feed's category counts and whether they match the listings.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, listingsStatsOutput, error) {
		return listingsStatsHandler(ctx, req, source, logger)
	})

	if opts.EnableAdmin && strings.TrimSpace(opts.APIKey) != "" {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "feed_reload",
			Description: "Drop the cached feed and load it again (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, feedReloadOutput, error) {
			return feedReloadHandler(ctx, req, source, logger)
		})
	}

	return server
}

func listingsListHandler(ctx context.Context, _ *mcp.CallToolRequest, args listingsListArgs, source types.ListingSource, opts *ServerOptions, logger logging.Logger) (*mcp.CallToolResult, listingsListOutput, error) {
	logger = logging.OrNoop(logger)
	filter, err := types.ParseFilterType(args.Filter)
	if err != nil {
		return errorToolResult(err.Error()), listingsListOutput{}, nil
	}
	pages := args.Pages
	if pages == 0 {
		pages = 1
	}
	if pages < 1 || pages > maxPages {
		return errorToolResult(fmt.Sprintf("pages must be between 1 and %d", maxPages)), listingsListOutput{}, nil
	}

	fd, err := source.Load(ctx)
	if err != nil {
		logger.Warn("listings_list load failed", "error", err)
		return errorToolResult(loadFailureMessage(err)), listingsListOutput{}, nil
	}

	view := &windowView{}
	session := controller.Start(fd, nil, view, controller.Options{
		PageSize:    opts.PageSize,
		FallbackURL: opts.FallbackURL,
		Placeholder: opts.Placeholder,
	}, logger)
	defer session.Dispose()

	if session.State != controller.StateReady {
		return nil, listingsListOutput{Filter: string(filter), Filters: []dto.Filter{}, Items: []dto.Listing{}}, nil
	}
	if err := session.Filters.OnActivate(filter); err != nil {
		return errorToolResult(err.Error()), listingsListOutput{}, nil
	}
	for i := 1; i < pages; i++ {
		more, err := session.Pager.OnActivate()
		if err != nil || !more {
			break
		}
	}

	st := session.Store
	return nil, listingsListOutput{
		Filter:   string(st.Filter()),
		Filtered: st.FilteredCount(),
		Visible:  len(view.grid.Cards),
		Total:    st.Len(),
		Filters:  dto.FromFilterBar(view.filters),
		LoadMore: dto.FromLoadMore(view.loadMore),
		Items:    dto.FromCards(view.grid.Cards),
	}, nil
}

func listingsStatsHandler(ctx context.Context, _ *mcp.CallToolRequest, source types.ListingSource, logger logging.Logger) (*mcp.CallToolResult, listingsStatsOutput, error) {
	logger = logging.OrNoop(logger)
	fd, err := source.Load(ctx)
	if err != nil {
		logger.Warn("listings_stats load failed", "error", err)
		return errorToolResult(loadFailureMessage(err)), listingsStatsOutput{}, nil
	}

	derived := types.DeriveStats(fd.Cars)
	out := listingsStatsOutput{
		Stats:      dto.FromStats(fd.Stats),
		Derived:    dto.FromStats(derived),
		Consistent: derived == fd.Stats,
	}
	if ts, ok := source.(timestampedSource); ok && !ts.LoadedAt().IsZero() {
		out.LoadedAt = ts.LoadedAt().UTC().Format(time.RFC3339)
	}
	return nil, out, nil
}

func feedReloadHandler(ctx context.Context, _ *mcp.CallToolRequest, source types.ListingSource, logger logging.Logger) (*mcp.CallToolResult, feedReloadOutput, error) {
	logger = logging.OrNoop(logger)
	clearable, ok := source.(cacheClearSource)
	if !ok {
		return errorToolResult("feed reload is not supported by this source"), feedReloadOutput{}, nil
	}
	clearable.ClearCache()

	fd, err := source.Load(ctx)
	if err != nil {
		logger.Warn("feed_reload load failed", "error", err)
		return errorToolResult(loadFailureMessage(err)), feedReloadOutput{}, nil
	}
	logger.Info("feed reloaded", "cars", len(fd.Cars))
	return nil, feedReloadOutput{Status: "ok", Cars: len(fd.Cars)}, nil
}

// loadFailureMessage describes a load error without leaking upstream detail.
func loadFailureMessage(err error) string {
	var netErr *feed.NetworkError
	var parseErr *feed.ParseError
	switch {
	case errors.As(err, &netErr) && netErr.StatusCode != 0:
		return fmt.Sprintf("load listings failed: feed returned HTTP %d", netErr.StatusCode)
	case errors.As(err, &netErr):
		return "load listings failed: feed unreachable"
	case errors.As(err, &parseErr):
		return "load listings failed: feed is malformed"
	default:
		return "load listings failed"
	}
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
