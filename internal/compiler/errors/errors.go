// Package errors defines the diagnostics reported while scanning headers.
// A diagnostic never aborts a batch: it records why one file contributed
// nothing.
package errors

import (
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Diagnostic phases
const (
	PhaseScan     = "scan"
	PhaseGenerate = "generate"
)

// Diagnostic codes
const (
	CodeReadFailed     = "RG001"
	CodeParsePanic     = "RG002"
	CodeDuplicateClass = "RG003"
)

// SourceLocation represents a location in a header
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// CompilerError is a diagnostic tied to one file
type CompilerError struct {
	Phase    string         `json:"phase"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Location SourceLocation `json:"location"`
	Severity Severity       `json:"severity"`
}

// Error implements the error interface
func (e CompilerError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Location.File, e.Location.Line, e.Location.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Location.File, e.Code, e.Message)
}

// NewCompilerError creates a new CompilerError
func NewCompilerError(phase, code, message string, location SourceLocation, severity Severity) CompilerError {
	return CompilerError{
		Phase:    phase,
		Code:     code,
		Message:  message,
		Location: location,
		Severity: severity,
	}
}

// FileError reports a failure that made a whole file contribute nothing
func FileError(code, file string, err error) CompilerError {
	return NewCompilerError(PhaseScan, code, err.Error(), SourceLocation{File: file}, Error)
}

// IsError returns true if the diagnostic is at Error severity
func (e CompilerError) IsError() bool {
	return e.Severity == Error
}

// IsWarning returns true if the diagnostic is at Warning severity
func (e CompilerError) IsWarning() bool {
	return e.Severity == Warning
}

// CountErrors returns how many diagnostics are at Error severity
func CountErrors(diags []CompilerError) int {
	n := 0
	for _, d := range diags {
		if d.IsError() {
			n++
		}
	}
	return n
}

// JSONOutput represents the JSON structure for diagnostic output
type JSONOutput struct {
	Status   string          `json:"status"`
	Errors   []CompilerError `json:"errors"`
	Warnings []CompilerError `json:"warnings"`
	Summary  Summary         `json:"summary"`
}

// Summary contains error and warning counts
type Summary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	TotalCount   int `json:"total_count"`
}

// FormatErrorsAsJSON formats diagnostics as indented JSON
func FormatErrorsAsJSON(diags []CompilerError) (string, error) {
	errorList := make([]CompilerError, 0)
	warningList := make([]CompilerError, 0)

	for _, d := range diags {
		if d.IsError() {
			errorList = append(errorList, d)
		} else if d.IsWarning() {
			warningList = append(warningList, d)
		}
	}

	status := "success"
	if len(errorList) > 0 {
		status = "error"
	} else if len(warningList) > 0 {
		status = "warning"
	}

	output := JSONOutput{
		Status:   status,
		Errors:   errorList,
		Warnings: warningList,
		Summary: Summary{
			ErrorCount:   len(errorList),
			WarningCount: len(warningList),
			TotalCount:   len(diags),
		},
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
