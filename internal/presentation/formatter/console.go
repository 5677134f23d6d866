package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// ConsoleFormatter prints the checklist for reading at the terminal:
// one block per date, one paragraph per hour.
type ConsoleFormatter struct{}

func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

func (f *ConsoleFormatter) Format(w io.Writer, hours []checklist.Hour) error {
	date := ""
	for i, hour := range hours {
		if i == 0 || hour.Date != date {
			date = hour.Date
			fmt.Fprintln(w)
			fmt.Fprintln(w, util.DateColor.Sprintf("Date: %s", date))
		}

		fmt.Fprintf(w, "Hour: %s\n", util.HourColor.Sprint(util.ShortHour(hour.Label)))
		// A zero-minute hour prints no duration line.
		if hour.DurationKnown && hour.Duration != 0 {
			fmt.Fprintf(w, "Duration: %s mins.\n", util.CountColor.Sprint(hour.Duration))
		}
		for _, count := range hour.Counts {
			if count.Suspect() {
				// Usually an "N" (next) keypress recorded as a species.
				fmt.Fprintln(w, util.SuspectColor.Sprintf("%s:\t %d", count.Label(), count.Count))
				continue
			}
			fmt.Fprintf(w, "%s:\t %d\n", count.Label(), count.Count)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
