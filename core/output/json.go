package output

import (
	"encoding/json"
	"io"

	"landed-cost/internal/errors"
)

// JSONFormatter renders the report as a JSON document
type JSONFormatter struct {
	Indent string
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the report as JSON
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	if err := enc.Encode(report); err != nil {
		return errors.Internal("encode json report", err)
	}
	return nil
}
