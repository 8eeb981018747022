package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/trex/internal/watch"
	"github.com/gnolang/trex/regex"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a pattern file every time it is saved",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		// unchanged lines are served from the cache on every re-render
		cache := regex.NewCache(mustLoadEngine())
		render := renderFunc(ctx, logger, os.Stdout, os.Stderr, cache)
		render(args[0])

		w, err := watch.New(args[0], logger, func(path string) {
			fmt.Fprintf(os.Stdout, "\n%s changed\n\n", path)
			start := time.Now()
			render(path)
			cache.Prune(start)
		})
		if err != nil {
			logger.Fatal("Failed to watch file", zap.Error(err))
		}
		if err := w.Run(ctx); err != nil {
			logger.Error("Error watching file", zap.String("file", args[0]), zap.Error(err))
			os.Exit(1)
		}
	},
}

// renderFunc returns a callback that renders one pattern file. Pattern
// errors are already printed by runBatch, so only other failures are logged.
func renderFunc(ctx context.Context, logger *zap.Logger, out, errOut io.Writer, renderer regex.Renderer) func(path string) {
	return func(path string) {
		err := runBatch(ctx, logger, out, errOut, renderer, []string{path}, batchOptions{})
		if err != nil && !errors.Is(err, errFailed) {
			logger.Error("Error rendering pattern file", zap.String("file", path), zap.Error(err))
		}
	}
}
