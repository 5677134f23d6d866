package util

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Console palette for checklist output.
var (
	DateColor    = color.New(color.FgBlue)
	HourColor    = color.New(color.FgGreen)
	CountColor   = color.New(color.FgWhite)
	SuspectColor = color.New(color.FgRed)
	HeaderColor  = color.New(color.Bold, color.FgMagenta)
)

// ConfigureColor disables colours when requested or when out is not a terminal.
func ConfigureColor(out *os.File, disabled bool) {
	color.NoColor = disabled || out == nil || !term.IsTerminal(int(out.Fd()))
}

// TerminalWidth returns the width of out, or fallback when it is not a terminal.
func TerminalWidth(out *os.File, fallback int) int {
	if out == nil {
		return fallback
	}
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// GetDisplayWidth calculates the display width of text, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to width display cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// PadLeft right-aligns text in width display cells.
func PadLeft(text string, width int) string {
	return runewidth.FillLeft(text, width)
}
