package main

import (
	"fmt"
	"os"
	"strings"

	"minic/cmd"
	"minic/report"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "error: usage: minic <filename> [output]\n")
		os.Exit(1)
	}

	srcFile := os.Args[1]

	outFile := strings.TrimSuffix(srcFile, ".mini") + ".ll"
	if len(os.Args) == 3 {
		outFile = os.Args[2]
	}

	rep := &report.DisplayReporter{Out: os.Stderr, Level: report.LOG_LEVEL_ALL}
	c := cmd.NewCompiler(rep)

	if !c.Compile(srcFile, outFile) {
		os.Exit(1)
	}
}
