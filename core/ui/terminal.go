// Package ui - Terminal user interface
// Colored CLI output with section headers, aligned tables and summary boxes.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.Color(Blue, "ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a dimmed message at verbosity 2
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.Color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row, padding or truncating cells to the header count
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.Color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, width := range t.widths {
		sep[i] = strings.Repeat("─", width)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = cell + strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

// Summary renders a boxed landed cost summary
type Summary struct {
	w         *Writer
	Title     string
	Total     string
	Margin    string
	MarginPct string
	LeadTime  string
	Negative  bool
	Failures  int
	DataGaps  int
}

// NewSummary creates a summary box
func (w *Writer) NewSummary(title string) *Summary {
	return &Summary{w: w, Title: title}
}

// Render prints the summary
func (s *Summary) Render() {
	s.w.SubHeader(s.Title)

	marginColor := Green
	if s.Negative {
		marginColor = Red
	}

	s.w.Println("%s", s.w.Color(Bold, "╭──────────────────────────────────────────╮"))
	s.w.Println("%s%s%s", s.w.Color(Bold, "│"), fmt.Sprintf("  Landed cost: %-27s", s.Total), s.w.Color(Bold, "│"))
	s.w.Println("%s%s%s", s.w.Color(Bold, "│"), s.w.Color(marginColor, fmt.Sprintf("  Margin:      %-27s", s.Margin+" ("+s.MarginPct+")")), s.w.Color(Bold, "│"))
	s.w.Println("%s%s%s", s.w.Color(Bold, "│"), s.w.Color(Dim, fmt.Sprintf("  Lead time:   %-27s", s.LeadTime)), s.w.Color(Bold, "│"))
	s.w.Println("%s", s.w.Color(Bold, "╰──────────────────────────────────────────╯"))

	if s.DataGaps > 0 {
		s.w.Warning("%d tariff rates missing (priced at 0%%)", s.DataGaps)
	}
	if s.Failures > 0 {
		s.w.Error("%d SKUs could not be computed", s.Failures)
	}
}

// DeltaList shows per-SKU cost changes
type DeltaList struct {
	w           *Writer
	Added       []DeltaItem
	Removed     []DeltaItem
	Changed     []DeltaItem
	TotalChange string
	IsIncrease  bool
}

// DeltaItem is a single change line
type DeltaItem struct {
	Name       string
	OldCost    string
	NewCost    string
	Change     string
	IsIncrease bool
}

// NewDeltaList creates a delta view
func (w *Writer) NewDeltaList() *DeltaList {
	return &DeltaList{w: w}
}

// Render prints the deltas
func (d *DeltaList) Render() {
	d.w.Header("Landed Cost Changes")

	if len(d.Added) > 0 {
		d.w.SubHeader(fmt.Sprintf("Now computable (%d)", len(d.Added)))
		for _, item := range d.Added {
			d.w.Println("%s%s: %s", d.w.Color(Green, "+ "), item.Name, item.NewCost)
		}
		d.w.Println("")
	}

	if len(d.Removed) > 0 {
		d.w.SubHeader(fmt.Sprintf("No longer computable (%d)", len(d.Removed)))
		for _, item := range d.Removed {
			d.w.Println("%s%s: %s", d.w.Color(Red, "- "), item.Name, item.OldCost)
		}
		d.w.Println("")
	}

	if len(d.Changed) > 0 {
		d.w.SubHeader(fmt.Sprintf("Changed (%d)", len(d.Changed)))
		for _, item := range d.Changed {
			arrow := d.w.Color(Yellow, "→")
			change := item.Change
			if item.IsIncrease {
				change = d.w.Color(Red, "+"+change)
			} else {
				change = d.w.Color(Green, change)
			}
			d.w.Println("  %s: %s %s %s (%s)", item.Name, item.OldCost, arrow, item.NewCost, change)
		}
		d.w.Println("")
	}

	d.w.Println("%s", strings.Repeat("─", 40))
	changeColor := Green
	changePrefix := ""
	if d.IsIncrease {
		changeColor = Red
		changePrefix = "+"
	}
	d.w.Println("%s%s", d.w.Color(Bold, "Total change: "), d.w.Color(changeColor, changePrefix+d.TotalChange))
}
