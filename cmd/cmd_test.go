package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/gnolang/trex/regex"
)

func newTestEngine(t *testing.T, color string) *regex.Engine {
	t.Helper()
	config := regex.DefaultConfig()
	config.Color = color
	engine, err := regex.NewEngine(config)
	require.NoError(t, err)
	return engine
}

func TestRunParse(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")

	diagram, err := engine.Render("a+")
	require.NoError(t, err)

	re, err := engine.Compile("a+")
	require.NoError(t, err)

	tests := []struct {
		name     string
		opts     parseOptions
		expected string
	}{
		{name: "diagram", opts: parseOptions{}, expected: diagram},
		{name: "flags do not change the diagram", opts: parseOptions{ignoreCase: true, multiline: true}, expected: diagram},
		{name: "ast", opts: parseOptions{ast: true}, expected: re.Root().String() + "\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			require.NoError(t, runParse(&out, &errOut, engine, "a+", tt.opts))
			assert.Equal(t, tt.expected, out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestRunParseJSON(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")

	var out, errOut bytes.Buffer
	require.NoError(t, runParse(&out, &errOut, engine, "a|b", parseOptions{json: true}))

	require.True(t, gjson.Valid(out.String()))
	assert.Equal(t, "alternation", gjson.Get(out.String(), "type").String())
	assert.Equal(t, "b", gjson.Get(out.String(), "children.1.children.0.char").String())
}

func TestRunParsePlainOutput(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "always")
	plain := newTestEngine(t, "never")

	var colored, uncolored, errOut bytes.Buffer
	require.NoError(t, runParse(&colored, &errOut, engine, `^\d`, parseOptions{}))
	require.NoError(t, runParse(&uncolored, &errOut, engine, `^\d`, parseOptions{plain: true}))

	expected, err := plain.Render(`^\d`)
	require.NoError(t, err)
	assert.Equal(t, expected, uncolored.String())
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestRunParseError(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")

	tests := []struct {
		name     string
		expr     string
		contains string
	}{
		{name: "unexpected character", expr: "A{2,4,6}", contains: "unexpected-character"},
		{name: "unexpected end of input", expr: "(A", contains: "unexpected-end-of-input"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			err := runParse(&out, &errOut, engine, tt.expr, parseOptions{})

			assert.ErrorIs(t, err, errFailed)
			assert.Empty(t, out.String())
			assert.Contains(t, errOut.String(), tt.contains)
			assert.Contains(t, errOut.String(), "<arg>")
		})
	}
}

func writePatternFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunBatch(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")
	path := writePatternFile(t, "# numbers\n\\d+\nx\n")

	var out, errOut bytes.Buffer
	err := runBatch(context.Background(), zap.NewNop(), &out, &errOut, engine, []string{path}, batchOptions{workers: 2})
	require.NoError(t, err)

	digits, err := engine.Render(`\d+`)
	require.NoError(t, err)

	assert.Equal(t, path+":2: \\d+\n"+digits+"\n"+path+":3: x\nx\n\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRunBatchReportsFailures(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")
	path := writePatternFile(t, "a\n(b\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	var out, errOut bytes.Buffer
	err := runBatch(context.Background(), zap.NewNop(), &out, &errOut, engine, []string{missing, path}, batchOptions{})

	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out.String(), path+":1: a")
	assert.NotContains(t, out.String(), "(b")
	assert.Contains(t, errOut.String(), "unexpected-end-of-input")
	assert.Contains(t, errOut.String(), path)
}

func TestRunBatchCanceled(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")
	path := writePatternFile(t, "a\nb\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	err := runBatch(ctx, zap.NewNop(), &out, &errOut, engine, []string{path}, batchOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, errFailed)
}

func TestRenderFunc(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, "never")
	path := writePatternFile(t, "ab\n")

	var out, errOut bytes.Buffer
	renderFunc(context.Background(), zap.NewNop(), &out, &errOut, engine)(path)

	assert.Equal(t, path+":1: ab\nab\n\n", out.String())
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "default path", path: "", expected: regex.DefaultConfigPath},
		{name: "custom path", path: "conf/trex.yaml", expected: "conf/trex.yaml"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()

			path, err := initConfigurationFile(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)

			config, err := regex.LoadConfigFS(fs, path)
			require.NoError(t, err)
			assert.Equal(t, regex.DefaultConfig(), config)
		})
	}
}

// loadEngine switches the global color mode, so these cases do not run in parallel.
func TestLoadEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\ncolor: never\n"), 0o644))

	engine, err := loadEngine(path, "")
	require.NoError(t, err)
	assert.Equal(t, "custom", engine.Config().Name)
	assert.Equal(t, "never", engine.Config().Color)

	_, err = loadEngine(path, "rainbow")
	assert.Error(t, err)

	_, err = loadEngine(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)

	engine, err = loadEngine("", "never")
	require.NoError(t, err)
	assert.Equal(t, "trex", engine.Config().Name)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	for _, verbose := range []bool{false, true} {
		l, err := newLogger(verbose)
		require.NoError(t, err)
		assert.Equal(t, verbose, l.Core().Enabled(zap.DebugLevel))
	}
}
