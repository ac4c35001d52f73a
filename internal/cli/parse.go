package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/gradle"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	input  string // report file (stdin if empty)
	output string // output file path (stdout if empty)
	mode   string
}

// parseCommand creates the parse command. It only runs the extractor and
// prints the direct dependencies, one coordinate per line.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{}

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print the direct dependencies of a Gradle dependency report",
		Long: `Parse reads the output of "gradle dependencies" (or a flat list with
--mode flat) and prints the sorted, deduplicated direct dependencies as
group:artifact:version, one per line. Nothing is looked up.`,
		Example: `  ./gradlew app:dependencies --configuration releaseRuntimeClasspath | ossinfo parse
  ossinfo parse -i deps.txt -o coordinates.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the report from a file instead of stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write coordinates to a file instead of stdout")
	cmd.Flags().StringVar(&opts.mode, "mode", string(gradle.ModeTree), "input format: "+strings.Join(gradle.ModeNames(), ", "))
	_ = cmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions(gradle.ModeNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runParse(ctx context.Context, stdin io.Reader, stdout io.Writer, opts parseOpts) error {
	logger := loggerFromContext(ctx)

	coords, err := c.parseInput(ctx, stdin, opts.input, opts.mode)
	if err != nil {
		return err
	}
	logger.Debugf("parsed %d coordinates", len(coords))

	if opts.output == "" {
		return writeLines(stdout, coords)
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "failed to create output")
	}
	if err := writeLines(f, coords); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printSuccess("Wrote %d coordinates", len(coords))
	printFile(opts.output)
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
