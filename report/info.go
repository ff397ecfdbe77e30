package report

import (
	"fmt"
	"io"
	"strings"
)

type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

type SourceInfo struct {
	ModName     string
	DisplayPath string
	Span        *TextSpan
}

func SpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

/* -------------------------------------------------------------------------- */

// Category classifies a diagnostic by the stage that produced it.
type Category uint8

const (
	CAT_LEX Category = iota
	CAT_PARSE
	CAT_RESOLVE
	CAT_TYPE
	CAT_INTERNAL
)

var categoryNames = map[Category]string{
	CAT_LEX:      "lex",
	CAT_PARSE:    "parse",
	CAT_RESOLVE:  "resolve",
	CAT_TYPE:     "type",
	CAT_INTERNAL: "internal",
}

func (cat Category) String() string {
	return categoryNames[cat]
}

/* -------------------------------------------------------------------------- */

type SourceError struct {
	Category Category
	Message  string
	Info     *SourceInfo
}

func (serr *SourceError) Error() string {
	b := strings.Builder{}
	serr.Dump(&b)
	return b.String()
}

func (serr *SourceError) Dump(w io.Writer) {
	fmt.Fprintf(
		w, "[%s] %s:%d:%d: %s error: %s",
		serr.Info.ModName, serr.Info.DisplayPath,
		serr.Info.Span.StartLine, serr.Info.Span.StartCol,
		serr.Category, serr.Message,
	)
}
