package regex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Renderer turns one expression into printable output. *Engine implements it.
type Renderer interface {
	Render(expr string) (string, error)
}

var _ Renderer = (*Engine)(nil)

// Result is the outcome of rendering one expression. Err is set when the
// expression did not parse.
type Result struct {
	Expr   string
	Output string
	Err    error
}

type ProcessOptions struct {
	// Workers bounds the number of concurrent renders. Zero means one per CPU.
	Workers int
	// Progress receives a progress bar when set.
	Progress    io.Writer
	Description string
}

// ProcessLines renders every expression concurrently and returns the results
// in input order. A failing expression does not stop the others. When ctx is
// canceled the results gathered so far are returned with the context error.
func ProcessLines(
	ctx context.Context,
	logger *zap.Logger,
	renderer Renderer,
	lines []string,
	opts ProcessOptions,
) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = newProgressBar(len(lines), opts)
	}

	results := make([]Result, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, expr := range lines {
		i, expr := i, expr
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := renderer.Render(expr)
			if err != nil {
				logger.Debug("Error rendering expression", zap.Int("index", i), zap.String("expr", expr), zap.Error(err))
			}
			results[i] = Result{Expr: expr, Output: out, Err: err}

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Error("Rendering interrupted", zap.Int("expressions", len(lines)), zap.Error(ctxErr))
		return results, ctxErr
	}
	return results, err
}

func newProgressBar(total int, opts ProcessOptions) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(opts.Progress),
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// Pattern is one expression read from a pattern file.
type Pattern struct {
	Line int // 1-based line number in the file
	Expr string
}

// ReadPatterns reads one expression per line from path.
func ReadPatterns(path string) ([]Pattern, error) {
	return ReadPatternsFS(afero.NewOsFs(), path)
}

// ReadPatternsFS is like ReadPatterns but reads from fs. Blank lines and lines
// starting with '#' are skipped.
func ReadPatternsFS(fs afero.Fs, path string) ([]Pattern, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	defer f.Close()

	var patterns []Pattern
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, Pattern{Line: line, Expr: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return patterns, nil
}

// Exprs returns the expressions of patterns in order.
func Exprs(patterns []Pattern) []string {
	exprs := make([]string, len(patterns))
	for i, p := range patterns {
		exprs[i] = p.Expr
	}
	return exprs
}
