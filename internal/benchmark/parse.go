package benchmark

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMarker is the substring the converters print on their timing line.
const DefaultMarker = "Tiempo"

// TimeParser extracts an elapsed time from the raw stdout of one run.
type TimeParser func(output string) (float64, bool)

var numberRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// MarkerParser returns a TimeParser that looks only at lines containing
// marker and yields the last number on the last such line.
func MarkerParser(marker string) TimeParser {
	return func(output string) (float64, bool) {
		var (
			last  float64
			found bool
		)
		scanner := bufio.NewScanner(strings.NewReader(output))
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.Contains(line, marker) {
				continue
			}
			matches := numberRegex.FindAllString(line, -1)
			if len(matches) == 0 {
				continue
			}
			if val, err := strconv.ParseFloat(matches[len(matches)-1], 64); err == nil {
				last = val
				found = true
			}
		}
		return last, found
	}
}

// Mean returns the arithmetic mean of values, or false for an empty slice.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
