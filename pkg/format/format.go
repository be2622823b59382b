// Package format adapts execution results into wire-ready output.
//
// It deliberately implements only the formatter the gateway itself needs
// for snapshotting and SPARQL-results JSON round-tripping. Table, HTML,
// and CSV rendering are left to higher layers (a CLI or UI) that consume
// the gateway as a library.
package format

import (
	"encoding/json"
	"fmt"

	"sparqlgateway/pkg/model"
)

// Format identifies an output encoding for an ExecutionResult.
type Format string

const (
	// FormatJSON renders the SPARQL-results-style JSON document described
	// in spec.md §6 ("Discovery output").
	FormatJSON Format = "json"
)

// Formatter renders an ExecutionResult in a specific wire format.
type Formatter interface {
	Emit(result *model.ExecutionResult, format Format) ([]byte, error)
}

// JSONFormatter renders ExecutionResult as JSON, optionally indented for
// human-facing output (e.g. the CLI's `ask` subcommand).
type JSONFormatter struct {
	Indent bool
}

// Emit implements Formatter.
func (f *JSONFormatter) Emit(result *model.ExecutionResult, format Format) ([]byte, error) {
	if format != "" && format != FormatJSON {
		return nil, fmt.Errorf("format: unsupported output format %q", format)
	}
	if result == nil {
		return nil, fmt.Errorf("format: nil execution result")
	}

	if f.Indent {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// NewFormatter returns the Formatter for the given format. JSON is the
// only format supported today.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatJSON, "":
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, fmt.Errorf("format: unsupported output format %q", format)
	}
}
