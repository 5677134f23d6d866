package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Date", "Hour", "Duration", "Species", "Count"},
	}
}

// Format prints one row per species per hour, followed by a Total row.
func (f *TableFormatter) Format(w io.Writer, hours []checklist.Hour) error {
	rows, total := f.rows(hours)
	totalRow := []string{"Total", "", "", "", formatNumber(total)}

	widths := f.calculateColumnWidths(append(rows, totalRow))

	f.printBorder(w, widths, "top")
	f.printRow(w, f.headers, widths)
	f.printBorder(w, widths, "middle")

	for i, row := range rows {
		// Separate hours, not species of the same hour.
		if i > 0 && row[0] != "" {
			f.printBorder(w, widths, "middle")
		}
		f.printRow(w, row, widths)
	}

	f.printBorder(w, widths, "middle")
	f.printRow(w, totalRow, widths)
	_, err := f.printBorder(w, widths, "bottom")
	return err
}

func (f *TableFormatter) rows(hours []checklist.Hour) ([][]string, int) {
	var rows [][]string
	total := 0
	for _, hour := range hours {
		duration := ""
		if hour.DurationKnown {
			duration = strconv.Itoa(hour.Duration)
		}
		for i, count := range hour.Counts {
			row := []string{"", "", "", count.Label(), formatNumber(count.Count)}
			if i == 0 {
				row[0], row[1], row[2] = hour.Date, util.ShortHour(hour.Label), duration
			}
			rows = append(rows, row)
			total += count.Count
		}
	}
	return rows, total
}

// calculateColumnWidths sizes each column to its widest cell.
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	minWidths := []int{8, 5, 8, 8, 5}
	for i, minWidth := range minWidths {
		if widths[i] < minWidth {
			widths[i] = minWidth
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(w io.Writer, widths []int, borderType string) (int, error) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	return fmt.Fprintln(w, b.String())
}

// printRow prints a row; Duration and Count are right-aligned.
func (f *TableFormatter) printRow(w io.Writer, values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		b.WriteString(" ")
		if i == 2 || i == 4 {
			b.WriteString(util.PadLeft(value, widths[i]))
		} else {
			b.WriteString(util.PadRight(value, widths[i]))
		}
		b.WriteString(" │")
	}
	fmt.Fprintln(w, b.String())
}

func formatNumber(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}
	return string(result)
}
