// Package output provides output formatting for engine results.
// This package produces human and machine-readable reports.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCLI, nil
	case FormatCLI, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", errors.Input(fmt.Sprintf("unknown output format %q", s))
	}
}

// Kind is what a report shows
type Kind string

const (
	KindCompute Kind = "compute"
	KindCompare Kind = "compare"
	KindWhatIf  Kind = "whatif"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything a formatter may render. Exactly one of Result,
// Comparison and WhatIf is set, according to Kind.
type Report struct {
	Kind Kind `json:"kind"`

	Result     *engine.Result       `json:"result,omitempty"`
	Comparison *engine.Comparison   `json:"comparison,omitempty"`
	WhatIf     *engine.WhatIfResult `json:"whatif,omitempty"`

	Options  Options  `json:"-"`
	Metadata Metadata `json:"metadata"`
}

// Options control optional report sections
type Options struct {
	ShowFlows   bool
	ShowTariffs bool
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the report was produced
	Timestamp string `json:"timestamp,omitempty"`

	// Version is the tool version
	Version string `json:"version,omitempty"`

	// DataSource is where the reference data was loaded from
	DataSource string `json:"data_source,omitempty"`

	// Currency labels every figure
	Currency types.Currency `json:"currency"`

	// CustomsBase is the final-assembly customs base in effect
	CustomsBase string `json:"customs_base,omitempty"`
}

// Validate checks that the payload matches the kind
func (r *Report) Validate() error {
	ok := false
	switch r.Kind {
	case KindCompute:
		ok = r.Result != nil
	case KindCompare:
		ok = r.Comparison != nil
	case KindWhatIf:
		ok = r.WhatIf != nil
	}
	if !ok {
		return errors.Internal(fmt.Sprintf("report of kind %q has no payload", r.Kind), nil)
	}
	return nil
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	_ = r.Register(&CLIFormatter{NoColor: noColor})
	_ = r.Register(&JSONFormatter{Indent: "  "})
	_ = r.Register(&MarkdownFormatter{})
	return r
}

// Register adds a formatter; formats may only be registered once
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Internal(fmt.Sprintf("formatter %q already registered", f.Format()), nil)
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// All returns all registered formatters ordered by format
func (r *Registry) All() []Formatter {
	out := make([]Formatter, 0, len(r.formatters))
	for _, f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Format() < out[j].Format() })
	return out
}

// Render formats a report with the registered formatter
func (r *Registry) Render(w io.Writer, format Format, report *Report) error {
	f, ok := r.Get(format)
	if !ok {
		return errors.Input(fmt.Sprintf("no formatter for %q", format))
	}
	if err := report.Validate(); err != nil {
		return err
	}
	return f.Render(w, report)
}
