package durations

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type unit struct {
	suffix string
	amount func(c Components) uint64
}

// units above seconds, largest first. Once one of these is non-zero every smaller unit is
// printed as well.
var units = []unit{
	{"w", func(c Components) uint64 { return c.Weeks }},
	{"d", func(c Components) uint64 { return c.Days }},
	{"h", func(c Components) uint64 { return c.Hours }},
	{"m", func(c Components) uint64 { return c.Minutes }},
}

func formatSeconds(secs uint64, ms uint32) string {
	if ms == 0 {
		return strconv.FormatUint(secs, 10) + "s"
	}

	return fmt.Sprintf("%d.%03ds", secs, ms)
}

// Format renders c using the largest non-zero unit and every unit below it, e.g.
// "1w 2d 3h 4m 5.006s". Sub-second precision is shown as a three digit fraction of the
// seconds. A whole number of minutes with nothing smaller renders as just "2m".
func Format(c Components) string {
	first := len(units)
	for i, curr := range units {
		if curr.amount(c) > 0 {
			first = i
			break
		}
	}

	// bare minutes
	if first == len(units)-1 && c.Seconds == 0 && c.Milliseconds == 0 {
		return strconv.FormatUint(c.Minutes, 10) + "m"
	}

	var sb strings.Builder
	for _, curr := range units[first:] {
		sb.WriteString(strconv.FormatUint(curr.amount(c), 10))
		sb.WriteString(curr.suffix)
		sb.WriteString(" ")
	}
	sb.WriteString(formatSeconds(c.Seconds, c.Milliseconds))

	return sb.String()
}

// FormatDuration decomposes d and formats it.
func FormatDuration(d time.Duration) string {
	return Format(Decompose(d))
}

// FormatSeconds formats a duration given as whole seconds plus milliseconds. It covers the
// full uint64 range of seconds, which time.Duration cannot.
func FormatSeconds(secs uint64, millis uint32) string {
	return Format(DecomposeSeconds(secs, millis))
}
