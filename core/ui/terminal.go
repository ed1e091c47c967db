// Package ui - Terminal user interface
// Styled CLI output with progress bars, tables and summaries.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

// Styles for terminal output
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	BoxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)
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

// Out returns the underlying writer
func (w *Writer) Out() io.Writer {
	return w.out
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// style applies a style if color is enabled
func (w *Writer) style(s lipgloss.Style, text string) string {
	if w.noColor {
		return text
	}
	return s.Render(text)
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
	w.Println("%s", w.style(HeaderStyle, "━━━ "+title+" ━━━"))
	w.Println("")
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.style(SuccessStyle, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.style(WarningStyle, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.style(ErrorStyle, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.style(InfoStyle, "ℹ "), fmt.Sprintf(format, args...))
}

// NewProgressBar creates a progress bar on the writer. Quiet writers get a
// bar that renders nothing.
func (w *Writer) NewProgressBar(total int, label string) *progressbar.ProgressBar {
	if w.verbosity < 1 {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w.out),
		progressbar.OptionEnableColorCodes(!w.noColor),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w.out)
		}),
	)
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
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := lipgloss.Width(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, c := range cells {
			padded[i] = c + strings.Repeat(" ", t.widths[i]-lipgloss.Width(c))
		}
		return strings.Join(padded, " │ ")
	}

	t.w.Println("%s", t.w.style(BoldStyle, line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", line(row))
	}
}

// BatchSummary renders the totals of a batch run
type BatchSummary struct {
	w          *Writer
	Processed  int
	Failed     int
	Advisories int
	Total      string
	OutputPath string
}

// NewBatchSummary creates a batch summary
func (w *Writer) NewBatchSummary() *BatchSummary {
	return &BatchSummary{w: w}
}

// Render prints the summary box
func (s *BatchSummary) Render() {
	s.w.Header("Batch Summary")

	lines := []string{
		fmt.Sprintf("Quotes generated: %d", s.Processed),
		fmt.Sprintf("Total premium:    %s", s.Total),
	}
	if s.OutputPath != "" {
		lines = append(lines, fmt.Sprintf("Saved to:         %s", s.OutputPath))
	}
	body := strings.Join(lines, "\n")
	if s.w.noColor {
		s.w.Println("%s", body)
	} else {
		s.w.Println("%s", BoxStyle.Render(body))
	}

	s.w.Println("")
	if s.Failed > 0 {
		s.w.Error("%d records failed", s.Failed)
	}
	if s.Advisories > 0 {
		s.w.Warning("%d advisories raised during normalization", s.Advisories)
	}
}
