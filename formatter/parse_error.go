package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/gnolang/trex/internal/pattern"
)

const tabWidth = 8

const (
	RuleUnexpectedCharacter  = "unexpected-character"
	RuleUnexpectedEndOfInput = "unexpected-end-of-input"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// ErrorSource locates a pattern, either on the command line or in a pattern file.
type ErrorSource struct {
	Filename string
	Line     int
}

type parseErrorData struct {
	Rule            string
	Filename        string
	Line            int
	Column          int
	MaxLineNumWidth int
	Padding         string
	Expr            string
	Message         string
}

const parseErrorTemplate = `{{header .Rule .MaxLineNumWidth .Filename .Line .Column}}
{{snippet .Expr .Line .MaxLineNumWidth .Padding}}
{{caret .Message .Padding .Expr .Column}}
`

var parseErrorTmpl = template.Must(template.New("parse-error").Funcs(template.FuncMap{
	"header":  header,
	"snippet": snippet,
	"caret":   caret,
}).Parse(parseErrorTemplate))

// FormatParseError renders err for the pattern expr with a caret under the
// offending character. Errors that did not come from the parser are printed
// on a single line.
func FormatParseError(src ErrorSource, expr string, err error) string {
	data := parseErrorData{
		Filename: src.Filename,
		Line:     max(src.Line, 1),
		Expr:     expr,
		Message:  err.Error(),
	}

	var uc *pattern.UnexpectedCharError
	switch {
	case errors.As(err, &uc):
		data.Rule = RuleUnexpectedCharacter
		data.Column = uc.Pos + 1
	case errors.Is(err, pattern.ErrUnexpectedEndOfInput):
		data.Rule = RuleUnexpectedEndOfInput
		data.Column = len([]rune(expr)) + 1
	default:
		return errorStyle.Sprint("error: ") + messageStyle.Sprintf("%s\n", err)
	}

	data.MaxLineNumWidth = len(fmt.Sprintf("%d", data.Line))
	data.Padding = strings.Repeat(" ", data.MaxLineNumWidth+1)

	var buf bytes.Buffer
	if err := parseErrorTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting parse error: %v", err)
	}
	return buf.String()
}

// utils functions used in the text template

func header(rule string, maxLineNumWidth int, filename string, line, column int) string {
	out := errorStyle.Sprint("error: ")
	out += ruleStyle.Sprintf("%s\n", rule)
	out += lineStyle.Sprintf("%s--> ", strings.Repeat(" ", maxLineNumWidth))
	out += fileStyle.Sprintf("%s:%d:%d", filename, line, column)
	return out
}

func snippet(expr string, line, maxLineNumWidth int, padding string) string {
	out := lineStyle.Sprintf("%s|\n", padding)
	out += lineStyle.Sprintf("%*d | ", maxLineNumWidth, line)
	out += expandTabs(expr)
	return out
}

func caret(message, padding, expr string, column int) string {
	out := lineStyle.Sprintf("%s| ", padding)
	out += strings.Repeat(" ", visualColumn(expr, column))
	out += messageStyle.Sprint("^\n")
	out += lineStyle.Sprintf("%s= ", padding)
	out += messageStyle.Sprint(message)
	return out
}

// visualColumn returns the 0-based screen column of the 1-based character
// column in line, taking tab stops and wide characters into account.
func visualColumn(line string, column int) int {
	visual := 0
	i := 1
	for _, ch := range line {
		if i == column {
			break
		}
		if ch == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual += runewidth.RuneWidth(ch)
		}
		i++
	}
	return visual
}

func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaces := tabWidth - column%tabWidth
			expanded.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		expanded.WriteRune(ch)
		column += runewidth.RuneWidth(ch)
	}
	return expanded.String()
}
