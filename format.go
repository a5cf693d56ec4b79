package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// weeksRemaining is SeasonWeeks minus the current week, floored at 0.
func weeksRemaining(week int) int {
	remaining := SeasonWeeks - week
	if remaining < 0 {
		return 0
	}
	return remaining
}

// formatWeekCountdown renders "12 weeks until season end" style text for
// the status view.
func formatWeekCountdown(week int) string {
	remaining := weeksRemaining(week)
	return fmt.Sprintf("%s until season end", humanize.Plural(remaining, "week", "weeks"))
}

// formatEventAge renders a log entry's wall-clock timestamp relative to
// now, for the "log [N]" command.
func formatEventAge(unixSeconds int64, now int64) string {
	return humanize.RelTime(time.Unix(unixSeconds, 0), time.Unix(now, 0), "ago", "from now")
}

// formatHarvestWeek renders a zero-based week offset from the start of the
// harvest window as an ordinal, e.g. offset 2 gives "3rd week of the
// harvest window".
func formatHarvestWeek(offsetFromStart int) string {
	return humanize.Ordinal(offsetFromStart+1) + " week of the harvest window"
}

// formatBytes is used by the "save [PATH]" command to report file size.
func formatBytes(n int) string {
	return humanize.Bytes(uint64(n))
}
