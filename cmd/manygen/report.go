package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zoobzio/many/internal/gen"
)

var (
	positionColor = color.New(color.Bold)
	errorColor    = color.New(color.FgRed)
	staleColor    = color.New(color.FgYellow)
)

// report writes err as file:line:col: message lines, one per diagnostic.
func report(w io.Writer, err error) {
	var list *gen.DiagnosticsError
	if errors.As(err, &list) {
		for _, d := range list.Items {
			reportDiagnostic(w, d)
		}
		return
	}
	var one *gen.Diagnostic
	if errors.As(err, &one) {
		reportDiagnostic(w, one)
		return
	}
	fmt.Fprintln(w, errorColor.Sprint(err.Error()))
}

func reportDiagnostic(w io.Writer, d *gen.Diagnostic) {
	if d.Pos.IsValid() {
		fmt.Fprintf(w, "%s: %s\n", positionColor.Sprint(d.Pos.String()), errorColor.Sprint(d.Msg))
		return
	}
	fmt.Fprintln(w, errorColor.Sprint(d.Msg))
}
