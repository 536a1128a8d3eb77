package timeline

import "strings"

const (
	// MinDuration is the shortest a cue is ever allowed to be, in seconds.
	MinDuration = 0.1

	// DefaultDuration is the length of a freshly created cue, in seconds,
	// before gap constraints shrink it.
	DefaultDuration = 3.0
)

// ID identifies an interval for its whole lifetime. Zero is never assigned.
type ID int64

// Interval is one subtitle cue: a time span in seconds plus its text.
type Interval struct {
	ID    ID
	Start float64
	End   float64
	Text  string
}

// Duration returns the cue length in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Contains reports whether t falls inside the cue's span.
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Start && t <= iv.End
}

// WordsPerMinute reports the reading speed of the cue text.
// A non-positive duration reports 0 rather than dividing by it.
func (iv Interval) WordsPerMinute() float64 {
	d := iv.Duration()
	if d <= 0 {
		return 0
	}
	words := len(strings.Fields(iv.Text))
	return float64(words) * 60 / d
}
