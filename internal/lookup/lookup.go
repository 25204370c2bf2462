// Package lookup turns a typed query into passage markup or search results.
package lookup

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"scripture-tui/internal/api"
	"scripture-tui/internal/logging"

	"golang.org/x/sync/errgroup"
)

// Mode is how a query is resolved.
type Mode int

const (
	ModeReference Mode = iota
	ModeDevotional
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeReference:
		return "reference"
	case ModeDevotional:
		return "devotional"
	default:
		return "search"
	}
}

var (
	digitPattern      = regexp.MustCompile(`\d+`)
	devotionalPattern = regexp.MustCompile(`(?i)roman'?s road`)
)

// RomansRoadTitle heads the devotional passage list.
const RomansRoadTitle = "<h1>Romans Road to Salvation</h1>"

// RomansRoad is the fixed reading order of the devotional lookup.
var RomansRoad = []string{
	"Romans 3:23",
	"Romans 3:12",
	"Romans 5:10",
	"Romans 6:23",
	"Romans 5:8",
	"Romans 10:9-10",
	"Romans 10:13",
	"Romans 10:17",
}

// Classify picks the lookup mode for a raw query.
func Classify(q string) Mode {
	switch {
	case q == "" || digitPattern.MatchString(q):
		return ModeReference
	case devotionalPattern.MatchString(q):
		return ModeDevotional
	default:
		return ModeSearch
	}
}

// Fetcher is the backend the dispatcher talks to.
type Fetcher interface {
	FetchVerse(ctx context.Context, reference string, opts api.PassageOptions) (*api.PassageResponse, error)
	Search(ctx context.Context, query string) (*api.SearchResponse, error)
}

// Result is a completed lookup. Markup is set for reference and devotional
// lookups, Results for searches. HistoryKey is empty when the lookup should
// not be remembered.
type Result struct {
	Mode       Mode
	Query      string
	HistoryKey string
	Markup     string
	Results    []api.SearchResult
}

type Dispatcher struct {
	fetcher Fetcher
}

func NewDispatcher(f Fetcher) *Dispatcher {
	return &Dispatcher{fetcher: f}
}

// Lookup resolves q. Errors are returned untouched by any partial result so
// the caller can keep showing what it had.
func (d *Dispatcher) Lookup(ctx context.Context, q string, opts api.PassageOptions) (*Result, error) {
	mode := Classify(q)
	logging.FromContext(ctx).Info("lookup", "query", q, "mode", mode)

	switch mode {
	case ModeReference:
		resp, err := d.fetcher.FetchVerse(ctx, q, opts)
		if err != nil {
			return nil, fmt.Errorf("fetch %q: %w", q, err)
		}
		return &Result{
			Mode:       mode,
			Query:      q,
			HistoryKey: resp.Query,
			Markup:     strings.Join(resp.Passages, ""),
		}, nil

	case ModeDevotional:
		markup, err := d.fanOut(ctx, RomansRoad, opts)
		if err != nil {
			return nil, err
		}
		return &Result{
			Mode:   mode,
			Query:  q,
			Markup: RomansRoadTitle + markup,
		}, nil

	default:
		resp, err := d.fetcher.Search(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", q, err)
		}
		return &Result{
			Mode:       mode,
			Query:      q,
			HistoryKey: q,
			Results:    resp.Results,
		}, nil
	}
}

// fanOut fetches every reference concurrently and joins the passages in
// list order, whatever order the responses arrive in.
func (d *Dispatcher) fanOut(ctx context.Context, refs []string, opts api.PassageOptions) (string, error) {
	slots := make([]string, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			resp, err := d.fetcher.FetchVerse(gctx, ref, opts)
			if err != nil {
				return fmt.Errorf("fetch %q: %w", ref, err)
			}
			slots[i] = strings.Join(resp.Passages, "")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(slots, ""), nil
}
