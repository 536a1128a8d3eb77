package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}\.\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}\.\d{3})`,
	)
)

func parseVTT(path string) ([]Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var (
		cues      []Cue
		current   *Cue
		textLines []string
	)

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}

		// NOTE and STYLE blocks run until a blank line
		if strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") {
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if m := vttTimestampRegex.FindStringSubmatch(line); len(m) == 3 {
			flush()
			current = &Cue{
				Start: parseTimecode(m[1]),
				End:   parseTimecode(m[2]),
			}
			continue
		}
		if m := vttShortTimestampRegex.FindStringSubmatch(line); len(m) == 3 {
			flush()
			current = &Cue{
				Start: parseTimecode("00:" + m[1]),
				End:   parseTimecode("00:" + m[2]),
			}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
		// anything before the first timestamp (cue identifiers included)
		// is ignored
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}
	return cues, nil
}
