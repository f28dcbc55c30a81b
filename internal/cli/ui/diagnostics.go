package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	compilererrors "github.com/mundi-engine/reflectgen/internal/compiler/errors"
)

// FormatDiagnostic renders one diagnostic as a colored single line
func FormatDiagnostic(d compilererrors.CompilerError, noColor bool) string {
	var c *color.Color
	var label string

	switch d.Severity {
	case compilererrors.Error:
		c = color.New(color.FgRed, color.Bold)
		label = "error"
	case compilererrors.Warning:
		c = color.New(color.FgYellow, color.Bold)
		label = "warning"
	default:
		c = color.New(color.FgCyan)
		label = "info"
	}
	if noColor {
		c.DisableColor()
	}

	return fmt.Sprintf("%s %s", c.Sprintf("%s[%s]:", label, d.Code), d.Error())
}

// WriteDiagnostics writes every diagnostic on its own line
func WriteDiagnostics(w io.Writer, diags []compilererrors.CompilerError, noColor bool) {
	for _, d := range diags {
		fmt.Fprintln(w, FormatDiagnostic(d, noColor))
	}
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}
