package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type LogLevel uint8

const (
	LOG_LEVEL_SILENT LogLevel = iota
	LOG_LEVEL_ERROR
	LOG_LEVEL_WARN
	LOG_LEVEL_ALL
)

var errorLabel = color.New(color.FgRed).Sprint("error:")
var posStyle = color.New(color.Faint)

type DisplayReporter struct {
	Out   io.Writer
	Level LogLevel
}

func (dr *DisplayReporter) ReportError(err error) {
	if dr.Level < LOG_LEVEL_ERROR {
		return
	}

	if serr, ok := err.(*SourceError); ok {
		fmt.Fprintf(
			dr.Out, "%s %s\n%s\n\n",
			errorLabel, serr.Message,
			posStyle.Sprintf(
				"  --> [%s] %s:%d:%d (%s)",
				serr.Info.ModName, serr.Info.DisplayPath,
				serr.Info.Span.StartLine, serr.Info.Span.StartCol,
				serr.Category,
			),
		)
	} else {
		fmt.Fprintf(dr.Out, "%s %v\n\n", errorLabel, err)
	}
}
