package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatTable   = "table"
	FormatJSON    = "json"
)

// Formatter renders the non-empty hours of a checklist.
type Formatter interface {
	Format(w io.Writer, hours []checklist.Hour) error
}

// New returns the formatter for format.
func New(format string) (Formatter, error) {
	switch format {
	case FormatConsole, "":
		return NewConsoleFormatter(), nil
	case FormatTable:
		return NewTableFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (console, table, json)", format)
	}
}
