package ui

import (
	"bytes"
	"strings"
	"testing"

	compilererrors "github.com/mundi-engine/reflectgen/internal/compiler/errors"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "Class", "Parent", "Props")

	table.AddRow("UBillboardComponent", "USceneComponent", "3")
	table.AddRow("ULight", "UActorComponent", "12")

	table.Render()

	want := "Class                Parent           Props\n" +
		"───────────────────  ───────────────  ─────\n" +
		"UBillboardComponent  USceneComponent  3\n" +
		"ULight               UActorComponent  12\n"

	if got := buf.String(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, true).Render()

	if buf.Len() != 0 {
		t.Errorf("Expected no output for a table without headers, got %q", buf.String())
	}
}

func TestTableExtraCellsDropped(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "A")
	table.AddRow("x", "y", "z")
	table.Render()

	if strings.Contains(buf.String(), "y") {
		t.Errorf("Expected extra cells to be dropped, got %q", buf.String())
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Classes", true)

	if got, want := buf.String(), "Classes\n───────\n"; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
		{"─", 3, "─  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestFormatDiagnostic(t *testing.T) {
	d := compilererrors.NewCompilerError(compilererrors.PhaseScan, compilererrors.CodeReadFailed,
		"permission denied", compilererrors.SourceLocation{File: "A.h"}, compilererrors.Error)

	got := FormatDiagnostic(d, true)
	want := "error[RG001]: A.h: RG001: permission denied"
	if got != want {
		t.Errorf("FormatDiagnostic() = %q, want %q", got, want)
	}

	var buf bytes.Buffer
	WriteDiagnostics(&buf, []compilererrors.CompilerError{d, d}, true)
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("Expected one line per diagnostic, got %q", buf.String())
	}
}

func TestFormatSuccess(t *testing.T) {
	if got := FormatSuccess("done", true); got != "✓ done" {
		t.Errorf("FormatSuccess() = %q", got)
	}
}
