package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/regex"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <file...>",
	Short: "Render every pattern of one or more pattern files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := mustLoadEngine()

		var progress io.Writer
		if isatty.IsTerminal(os.Stderr.Fd()) {
			progress = os.Stderr
		}

		err := runBatch(ctx, logger, os.Stdout, os.Stderr, engine, args, batchOptions{
			workers:  batchWorkers,
			progress: progress,
		})
		cancel()
		exitOnFailure(err)
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Number of concurrent renders (default: one per CPU)")
}

type batchOptions struct {
	workers  int
	progress io.Writer
}

// runBatch renders the pattern files in order. Every failure is reported and
// the remaining patterns are still rendered; errFailed is returned at the end
// when anything failed.
func runBatch(
	ctx context.Context,
	logger *zap.Logger,
	out, errOut io.Writer,
	renderer regex.Renderer,
	paths []string,
	opts batchOptions,
) error {
	failed := false
	for _, path := range paths {
		patterns, err := regex.ReadPatterns(path)
		if err != nil {
			logger.Error("Error reading pattern file", zap.String("file", path), zap.Error(err))
			failed = true
			continue
		}

		results, err := regex.ProcessLines(ctx, logger, renderer, regex.Exprs(patterns), regex.ProcessOptions{
			Workers:     opts.workers,
			Progress:    opts.progress,
			Description: path,
		})
		if err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}

		if printResults(out, errOut, path, patterns, results) {
			failed = true
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

// printResults writes diagrams to out and parse errors to errOut. It reports
// whether any pattern failed.
func printResults(out, errOut io.Writer, path string, patterns []regex.Pattern, results []regex.Result) bool {
	failed := false
	for i, res := range results {
		src := formatter.ErrorSource{Filename: path, Line: patterns[i].Line}
		if res.Err != nil {
			fmt.Fprint(errOut, formatter.FormatParseError(src, res.Expr, res.Err))
			failed = true
			continue
		}
		fmt.Fprintf(out, "%s:%d: %s\n%s\n", src.Filename, src.Line, res.Expr, res.Output)
	}
	return failed
}
