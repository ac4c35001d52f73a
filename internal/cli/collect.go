package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/gradle"
	"github.com/matzehuels/ossinfo/pkg/inventory"
	"github.com/matzehuels/ossinfo/pkg/observability"
	"github.com/matzehuels/ossinfo/pkg/report"
	"github.com/matzehuels/ossinfo/pkg/store"
)

// collectOpts holds the command-line flags for the collect command.
type collectOpts struct {
	input       string // report file ("-" or empty for stdin)
	output      string // output file path (stdout if empty)
	mode        string
	skipPretty  bool // flat input, kept for compatibility
	format      string
	concurrency int
	mongoURI    string
	tui         bool
	cache       cacheFlags
}

// collectCommand creates the collect command, the main entry point: parse a
// dependency report, look every dependency up and write the report.
func (c *CLI) collectCommand() *cobra.Command {
	opts := collectOpts{}

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect OSS information for the dependencies of a Gradle report",
		Long: `Collect reads the output of "gradle dependencies" from stdin (or --input),
looks every direct dependency up in its Maven repository and writes one row
per dependency with its newest version, packaging, name, description and
licenses.

Lookups that fail are logged and left out of the report; the command then
exits with an error after the report was written.`,
		Example: `  ./gradlew app:dependencies --configuration releaseRuntimeClasspath | ossinfo collect
  ossinfo collect --mode flat --format table -i deps.txt
  ossinfo collect -i deps.txt -o licenses.csv --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("concurrency") {
				opts.concurrency = c.config.Concurrency
			}
			if opts.mongoURI == "" {
				opts.mongoURI = c.config.MongoURI
			}
			return c.runCollect(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the report from a file instead of stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&opts.mode, "mode", string(gradle.ModeTree), "input format: "+strings.Join(gradle.ModeNames(), ", "))
	cmd.Flags().BoolVar(&opts.skipPretty, "skip-pretty", false, "input is a flat list of coordinates (same as --mode flat)")
	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatCSV), "output format: "+strings.Join(report.FormatNames(), ", "))
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", inventory.DefaultConcurrency, "lookups in flight")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "also save the results to MongoDB")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show an interactive progress view")
	cmd.Flags().BoolVar(&opts.cache.refresh, "refresh", false, "ignore cached lookups")
	addCacheFlags(cmd, &opts.cache)

	_ = cmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions(gradle.ModeNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(report.FormatNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func addCacheFlags(cmd *cobra.Command, f *cacheFlags) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the lookup cache")
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", "", "use a shared Redis cache (redis://host:6379/0)")
}

func (c *CLI) runCollect(ctx context.Context, stdin io.Reader, stdout io.Writer, opts collectOpts) error {
	logger := loggerFromContext(ctx)

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	mode := gradle.Mode(opts.mode)
	if opts.skipPretty {
		mode = gradle.ModeFlat
	}
	if opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}

	coords, err := c.parseInput(ctx, stdin, opts.input, string(mode))
	if err != nil {
		return err
	}
	logger.Infof("Found %d dependencies", len(coords))

	client, lookupCache, err := c.newMavenClient(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer lookupCache.Close()

	invOpts := inventory.Options{
		Concurrency: opts.concurrency,
		Refresh:     opts.cache.refresh,
		Logger:      logger.Warnf,
	}

	prog := newProgress(logger)
	var rep *inventory.Report
	switch {
	case opts.tui:
		rep, err = runCollectTUI(ctx, coords, client, invOpts)
		if rep != nil {
			for _, e := range rep.Entries {
				if e.Err != nil {
					logger.Warnf("failed to request artifact info: %s: %v", e.Input, e.Err)
				}
			}
		}
	case isTerminal(uiOut):
		rep, err = collectWithSpinner(ctx, coords, client, invOpts)
	default:
		rep, err = inventory.Collect(ctx, coords, client, invOpts)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Collected %d dependencies", len(rep.Entries)-rep.Failed()))

	if err := writeReport(stdout, opts.output, rep, format, logger.Infof); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Wrote %s report", format)
		printFile(opts.output)
		printStats(len(rep.Entries), rep.Failed(), opts.cache.refresh)
	}

	if opts.mongoURI != "" {
		if err := c.saveReport(ctx, opts.mongoURI, rep); err != nil {
			return err
		}
	}

	if n := rep.Failed(); n > 0 {
		printWarning("%d of %d lookups failed", n, len(rep.Entries))
		return errors.New(errors.ErrCodeNetwork, failedLookupsMessage)
	}
	return nil
}

// parseInput reads the report from path (stdin for "" or "-") and extracts
// the dependency coordinates.
func (c *CLI) parseInput(ctx context.Context, stdin io.Reader, path, mode string) ([]string, error) {
	m, err := gradle.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	r := stdin
	if path != "" && path != "-" {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to open input")
		}
		defer f.Close()
		r = f
	}

	start := time.Now()
	coords, err := gradle.Parse(r, m)
	observability.Inventory().OnParseComplete(ctx, string(m), len(coords), time.Since(start), err)
	return coords, err
}

// writeReport writes rep to path, or to stdout when path is empty.
func writeReport(stdout io.Writer, path string, rep *inventory.Report, format report.Format, logf func(string, ...any)) error {
	opts := report.Options{Skipped: func(e inventory.Entry) { logf("skip %s", e.Input) }}
	if path == "" {
		return report.Write(stdout, rep, format, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "failed to create output")
	}
	if err := report.Write(f, rep, format, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *CLI) saveReport(ctx context.Context, uri string, rep *inventory.Report) error {
	s, err := store.NewMongoStore(ctx, uri, c.config.MongoDatabase)
	if err != nil {
		return err
	}
	defer s.Close(context.WithoutCancel(ctx))

	n, err := s.SaveReport(ctx, rep)
	if err != nil {
		return err
	}
	printSuccess("Saved %d artifacts to MongoDB", n)
	return nil
}

// collectWithSpinner runs Collect while a spinner shows the lookup count.
func collectWithSpinner(ctx context.Context, coords []string, f inventory.Fetcher, opts inventory.Options) (*inventory.Report, error) {
	spinner := newLookupSpinner(ctx, len(coords))
	spinner.Start()
	defer spinner.Stop()

	opts.OnResult = func(inventory.Entry) { spinner.Advance() }
	if logf := opts.Logger; logf != nil {
		opts.Logger = func(format string, args ...any) {
			spinner.clearLine()
			logf(format, args...)
		}
	}
	return inventory.Collect(ctx, coords, f, opts)
}

// isTerminal reports whether w is a terminal the spinner can redraw.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
