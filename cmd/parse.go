package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/regex"
)

var (
	ignoreCase bool
	multiline  bool
	parseJSON  bool
	printAST   bool
	outPath    string
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Print the railroad diagram of an expression",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "error: Please provide exactly one expression (quote it to keep spaces)")
			os.Exit(1)
		}

		engine := mustLoadEngine()
		opts := parseOptions{
			ignoreCase: ignoreCase,
			multiline:  multiline,
			json:       parseJSON,
			ast:        printAST,
			colorJSON:  colorJSONOutput(engine, outPath),
		}

		out := io.Writer(os.Stdout)
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				logger.Fatal("Error creating output file", zap.String("file", outPath), zap.Error(err))
			}
			defer f.Close()
			out = f
			opts.plain = !isColorAlways(engine)
		}

		err := runParse(out, os.Stderr, engine, args[0], opts)
		if err == nil && outPath != "" {
			fmt.Printf("Diagram written to %s\n", outPath)
		}
		exitOnFailure(err)
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Record the case-insensitive flag")
	parseCmd.Flags().BoolVarP(&multiline, "multiline", "m", false, "Record the multi-line flag")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the syntax tree as JSON")
	parseCmd.Flags().BoolVar(&printAST, "ast", false, "Print the syntax tree in its debug form")
	parseCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the output to a file")
}

type parseOptions struct {
	ignoreCase bool
	multiline  bool
	json       bool
	ast        bool
	colorJSON  bool
	// plain disables color escapes in diagrams
	plain bool
}

func (o parseOptions) regexOptions() []regex.Option {
	var opts []regex.Option
	if o.ignoreCase {
		opts = append(opts, regex.WithIgnoreCase())
	}
	if o.multiline {
		opts = append(opts, regex.WithMultiline())
	}
	return opts
}

// runParse prints expr to out in the requested form. Parse errors are
// reported on errOut and yield errFailed.
func runParse(out, errOut io.Writer, engine *regex.Engine, expr string, opts parseOptions) error {
	re, err := engine.Compile(expr, opts.regexOptions()...)
	if err != nil {
		fmt.Fprint(errOut, formatter.FormatParseError(formatter.ErrorSource{Filename: "<arg>", Line: 1}, expr, err))
		return errFailed
	}

	switch {
	case opts.json:
		data, err := formatter.MarshalNode(re.Root())
		if err != nil {
			return fmt.Errorf("marshal syntax tree: %w", err)
		}
		if opts.colorJSON {
			data = formatter.ColorizeJSON(data)
		}
		_, err = out.Write(data)
		return err
	case opts.ast:
		_, err := fmt.Fprintln(out, re.Root().String())
		return err
	default:
		style := engine.StyleFunc()
		if opts.plain {
			style = formatter.PlainStyleFunc
		}
		return formatter.Write(out, engine.Diagram(re), style)
	}
}

func isColorAlways(engine *regex.Engine) bool {
	mode, _ := engine.Config().ColorMode()
	return mode == formatter.ColorAlways
}

// colorJSONOutput reports whether JSON output should be highlighted.
func colorJSONOutput(engine *regex.Engine, outPath string) bool {
	mode, _ := engine.Config().ColorMode()
	switch mode {
	case formatter.ColorAlways:
		return true
	case formatter.ColorNever:
		return false
	}
	if outPath != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
