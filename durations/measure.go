package durations

import "time"

// Timer is a running stopwatch. Elapsed time is read from the monotonic clock.
type Timer struct {
	start time.Time
}

// Start returns a Timer started now.
func Start() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer was started.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// String formats the time since the timer was started.
func (t Timer) String() string {
	return FormatDuration(t.Elapsed())
}

// Measure runs action once and returns how long it took, formatted with FormatDuration. A
// panic in action is not recovered.
func Measure(action func()) string {
	t := Start()
	action()
	return t.String()
}

// MeasureErr is Measure for actions that can fail. If action returns an error, that error is
// returned as is and no duration is formatted.
func MeasureErr(action func() error) (string, error) {
	t := Start()
	if err := action(); err != nil {
		return "", err
	}
	return t.String(), nil
}
