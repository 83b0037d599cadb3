package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"starter-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeUnsupportedFieldType = "unsupported_field_type"
	CodeInaccessibleField    = "inaccessible_field"
	CodeMalformedMetadata    = "malformed_metadata"
	CodeNameCollision        = "name_collision"
	CodeTooManyOptionals     = "too_many_optionals"
	CodeUnsupportedTarget    = "unsupported_target"
	CodeRenderFailed         = "render_failed"
	CodeGenerated            = "generated"
)

// Sink receives diagnostics. Implementations must be safe for concurrent use
// because independent targets may be compiled in parallel.
type Sink interface {
	Report(d Diagnostic)
}

// Diagnostics holds all diagnostic information from a generation run.
// It implements Sink.
type Diagnostics struct {
	mu sync.Mutex

	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Target identifies the target type (if any).
	Target string
	// Field identifies the argument field (if any).
	Field string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Report files d under its severity.
func (d *Diagnostics) Report(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, target, field string) {
	d.Report(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Target:   target,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, target, field string) {
	d.Report(Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Target:   target,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, target, field string) {
	d.Report(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Target:   target,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	other.mu.Lock()
	errs := append([]Diagnostic(nil), other.Errors...)
	warns := append([]Diagnostic(nil), other.Warnings...)
	infos := append([]Diagnostic(nil), other.Infos...)
	other.mu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.Errors = append(d.Errors, errs...)
	d.Warnings = append(d.Warnings, warns...)
	d.Infos = append(d.Infos, infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.Errors) == 0 {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Target != "" {
		prefix = append(prefix, "["+d.Target+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
