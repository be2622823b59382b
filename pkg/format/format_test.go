package format

import (
	"encoding/json"
	"testing"
	"time"

	"sparqlgateway/pkg/model"
)

func sampleResult() *model.ExecutionResult {
	return model.NewExecutionResult(
		[]string{"person", "name"},
		[]model.Row{
			{
				"person": model.IRI("http://dbpedia.org/resource/Alan_Turing"),
				"name":   model.Literal("Alan Turing", "", "en"),
			},
		},
	)
}

func TestJSONFormatterEmitProducesValidJSON(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.Emit(sampleResult(), FormatJSON)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	var decoded model.ExecutionResult
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Emit() produced invalid JSON: %v", err)
	}
	if decoded.TotalRows != 1 {
		t.Errorf("TotalRows = %d, want 1", decoded.TotalRows)
	}
}

func TestJSONFormatterEmitDefaultsToJSON(t *testing.T) {
	f := &JSONFormatter{}
	if _, err := f.Emit(sampleResult(), ""); err != nil {
		t.Errorf("Emit() with empty format error = %v", err)
	}
}

func TestJSONFormatterEmitRejectsUnknownFormat(t *testing.T) {
	f := &JSONFormatter{}
	if _, err := f.Emit(sampleResult(), "csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONFormatterEmitRejectsNilResult(t *testing.T) {
	f := &JSONFormatter{}
	if _, err := f.Emit(nil, FormatJSON); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestJSONFormatterIndentProducesMultilineOutput(t *testing.T) {
	f := &JSONFormatter{Indent: true}
	out, err := f.Emit(sampleResult(), FormatJSON)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !containsNewline(out) {
		t.Error("expected indented output to contain newlines")
	}
}

func containsNewline(b []byte) bool {
	for _, c := range b {
		if c == '\n' {
			return true
		}
	}
	return false
}

func TestNewFormatterReturnsJSONFormatter(t *testing.T) {
	f, err := NewFormatter(FormatJSON)
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	if _, ok := f.(*JSONFormatter); !ok {
		t.Errorf("NewFormatter() returned %T, want *JSONFormatter", f)
	}
}

func TestNewFormatterRejectsUnknownFormat(t *testing.T) {
	if _, err := NewFormatter("html"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONFormatterEmitPreservesTiming(t *testing.T) {
	result := sampleResult()
	result.TotalWallTime = 250 * time.Millisecond

	f := &JSONFormatter{}
	out, err := f.Emit(result, FormatJSON)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	var decoded model.ExecutionResult
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded.TotalWallTime != result.TotalWallTime {
		t.Errorf("TotalWallTime = %v, want %v", decoded.TotalWallTime, result.TotalWallTime)
	}
}
