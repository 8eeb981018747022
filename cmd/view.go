package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view <expression>",
	Short: "Explore the diagram of an expression in a scrollable full-screen view",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := mustLoadEngine()
		expr := args[0]

		re, err := engine.Compile(expr)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatParseError(formatter.ErrorSource{Filename: "<arg>", Line: 1}, expr, err))
			os.Exit(1)
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			logger.Fatal("Failed to open terminal", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := viewer.New(screen, engine.Diagram(re), logger).Run(ctx); err != nil {
			logger.Error("Error running viewer", zap.Error(err))
			os.Exit(1)
		}
	},
}
