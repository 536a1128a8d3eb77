package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Timecode formats seconds as HH:MM:SS?mmm where ? is the given sub-second
// separator: ',' for SRT, '.' for WebVTT. Every field is floored, never
// rounded: 1.9996s formats as 00:00:01,999.
func Timecode(t float64, msSep byte) string {
	if t < 0 || math.IsNaN(t) {
		t = 0
	}
	total := int64(math.Floor(t * 1000))
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	seconds := (total % 60000) / 1000
	millis := total % 1000

	return fmt.Sprintf(
		"%02d:%02d:%02d%c%03d",
		hours, minutes, seconds, msSep, millis,
	)
}

// Clock formats seconds as HH:MM:SS for rulers and status lines.
func Clock(t float64) string {
	if t < 0 || math.IsNaN(t) {
		t = 0
	}
	total := int64(math.Floor(t))
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ParseTimecode parses HH:MM:SS,mmm (or with '.' before the milliseconds)
// back to seconds. Malformed input parses to 0 by policy: a wrong segment
// count or a non-numeric segment never fails, it just lands on 0.
func ParseTimecode(s string) float64 {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0
	}

	hours := parseIntSegment(parts[0])
	minutes := parseIntSegment(parts[1])

	secPart := parts[2]
	sep := strings.IndexAny(secPart, ",.")
	millis := int64(0)
	if sep >= 0 {
		millis = parseIntSegment(secPart[sep+1:])
		secPart = secPart[:sep]
	}
	seconds := parseIntSegment(secPart)

	return float64(hours)*3600 +
		float64(minutes)*60 +
		float64(seconds) +
		float64(millis)/1000
}

func parseIntSegment(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
