// Package observability provides the terminal box printer used by the views
// and the structured logger shared by the client and the reference backend.
package observability

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// MaxItemsToShow is the default number of items to display in lists
	MaxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for the terminal views
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintBox prints a formatted box with a title and content lines
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) PrintBox(title string, lines ...string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, Truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, content := range lines {
		for _, line := range strings.Split(content, "\n") {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, Truncate(line, boxWidth-4))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintNotice prints a single-line box, used for empty states and messages.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) PrintNotice(message string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, Truncate(message, boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

// Bar renders a 0-100 score as a fixed-width bar. An absent score renders as
// an empty dotted bar so it never looks like a zero.
func Bar(score *float64) string {
	if score == nil || math.IsNaN(*score) {
		return strings.Repeat("·", barWidth)
	}
	v := math.Max(0, math.Min(100, *score))
	filled := int(math.Round(v / 100 * barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// More returns the "... and N more" trailer for a list cut at shown items.
func More(total, shown int) string {
	if total <= shown {
		return ""
	}
	return fmt.Sprintf("... and %d more", total-shown)
}
