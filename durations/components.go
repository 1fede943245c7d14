package durations

import (
	"math"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay

	maxDurationSeconds = uint64(math.MaxInt64 / int64(time.Second))
)

// Components is a duration broken down into non-overlapping units. Days, Hours, Minutes and
// Seconds hold what is left after removing the next larger unit, so Days is always 0-6 and
// Hours 0-23. Milliseconds is the sub-second remainder, truncated.
type Components struct {
	Weeks        uint64 `yaml:"weeks"`
	Days         uint64 `yaml:"days"`
	Hours        uint64 `yaml:"hours"`
	Minutes      uint64 `yaml:"minutes"`
	Seconds      uint64 `yaml:"seconds"`
	Milliseconds uint32 `yaml:"milliseconds"`
}

// Decompose breaks d into Components. Negative durations are treated as zero.
func Decompose(d time.Duration) Components {
	if d <= 0 {
		return Components{}
	}

	secs := uint64(d / time.Second)
	millis := uint32((d % time.Second) / time.Millisecond)

	return DecomposeSeconds(secs, millis)
}

// DecomposeSeconds breaks a duration expressed as whole seconds plus milliseconds into
// Components. Milliseconds of 1000 or more carry into the seconds.
func DecomposeSeconds(secs uint64, millis uint32) Components {
	if carry := uint64(millis / 1000); carry > 0 {
		if secs > math.MaxUint64-carry {
			secs = math.MaxUint64
		} else {
			secs += carry
		}
		millis %= 1000
	}

	hours := secs / secondsPerHour
	days := hours / 24

	return Components{
		Weeks:        days / 7,
		Days:         days % 7,
		Hours:        hours % 24,
		Minutes:      (secs % secondsPerHour) / secondsPerMinute,
		Seconds:      secs % secondsPerMinute,
		Milliseconds: millis,
	}
}

// TotalSeconds reassembles the whole seconds of c.
func (c Components) TotalSeconds() uint64 {
	return c.Weeks*secondsPerWeek +
		c.Days*secondsPerDay +
		c.Hours*secondsPerHour +
		c.Minutes*secondsPerMinute +
		c.Seconds
}

// Duration converts c back to a time.Duration, saturating at the largest value a
// time.Duration can hold.
func (c Components) Duration() time.Duration {
	secs := c.TotalSeconds()
	if c.Weeks > maxDurationSeconds/secondsPerWeek || secs > maxDurationSeconds {
		return time.Duration(math.MaxInt64)
	}

	d := time.Duration(secs) * time.Second
	ms := time.Duration(c.Milliseconds) * time.Millisecond
	if d > time.Duration(math.MaxInt64)-ms {
		return time.Duration(math.MaxInt64)
	}

	return d + ms
}

func (c Components) String() string {
	return Format(c)
}
