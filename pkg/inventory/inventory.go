// Package inventory looks up every coordinate of a dependency list in a
// Maven repository and collects the results into a [Report].
//
// Lookups run concurrently with a fixed limit. A failed lookup does not
// stop the run: the error is recorded on its [Entry] and reported through
// [Options.Logger], and [Report.Failed] tells the caller whether any
// lookup failed.
package inventory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ossinfo/pkg/integrations/maven"
	"github.com/matzehuels/ossinfo/pkg/observability"
)

// DefaultConcurrency is the number of lookups in flight at once.
const DefaultConcurrency = 8

// Fetcher resolves a coordinate to artifact metadata.
// [*maven.Client] satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, coordinate string, refresh bool) (*maven.Artifact, error)
}

// Options configures Collect.
type Options struct {
	Concurrency int                  // Lookups in flight (default: 8)
	Refresh     bool                 // Bypass cached lookups
	Logger      func(string, ...any) // Warning callback (optional)
	OnResult    func(Entry)          // Called once per finished lookup (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnResult == nil {
		opts.OnResult = func(Entry) {}
	}
	return opts
}

// Entry is the lookup result of one input coordinate.
type Entry struct {
	Input      string          `json:"input"`      // coordinate as given
	Dependency string          `json:"dependency"` // group:artifact
	Version    string          `json:"version"`    // input version, may be empty
	Artifact   *maven.Artifact `json:"artifact,omitempty"`
	Err        error           `json:"-"`
}

// OK reports whether the lookup succeeded.
func (e Entry) OK() bool { return e.Err == nil && e.Artifact != nil }

// NewEntry splits a "group:artifact[:version]" coordinate into an Entry.
func NewEntry(coordinate string) Entry {
	parts := strings.SplitN(coordinate, ":", 3)
	e := Entry{Input: coordinate, Dependency: parts[0]}
	if len(parts) > 1 {
		e.Dependency += ":" + parts[1]
	}
	if len(parts) > 2 {
		e.Version = parts[2]
	}
	return e
}

// Report is the result of one Collect run.
type Report struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
}

// Failed returns the number of entries whose lookup failed.
func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Collect looks up every coordinate with f. Entries keep the order of
// coords. Only context cancellation makes Collect fail; lookup errors are
// recorded per entry.
func Collect(ctx context.Context, coords []string, f Fetcher, opts Options) (*Report, error) {
	opts = opts.WithDefaults()
	hooks := observability.Inventory()

	report := &Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Entries:     make([]Entry, len(coords)),
	}

	var mu sync.Mutex // serializes OnResult and Logger
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, coord := range coords {
		report.Entries[i] = NewEntry(coord)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry := &report.Entries[i]
			hooks.OnLookupStart(gctx, coord)
			start := time.Now()
			entry.Artifact, entry.Err = f.Fetch(gctx, coord, opts.Refresh)
			hooks.OnLookupComplete(gctx, coord, time.Since(start), entry.Err)

			if entry.Err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				entry.Artifact = nil
			}

			mu.Lock()
			defer mu.Unlock()
			if entry.Err != nil {
				opts.Logger("failed to request artifact info: %s: %v", coord, entry.Err)
			}
			opts.OnResult(*entry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
