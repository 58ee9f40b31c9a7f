package discovery

import "strings"

// featureDir is a specs subdirectory named "<digits>-<rest>".
type featureDir struct {
	name   string
	number string // Digit run with leading zeros removed
}

// parseFeatureDir reports whether name has a numeric prefix followed by a dash.
func parseFeatureDir(name string) (featureDir, bool) {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(name) || name[i] != '-' {
		return featureDir{}, false
	}
	number := strings.TrimLeft(name[:i], "0")
	if number == "" {
		number = "0"
	}
	return featureDir{name: name, number: number}, true
}

// newer reports whether d has a higher numeric prefix than other. Prefixes of
// any length compare numerically. Equal prefixes fall back to the larger name.
func (d featureDir) newer(other featureDir) bool {
	if c := compareDigits(d.number, other.number); c != 0 {
		return c > 0
	}
	return d.name > other.name
}

// compareDigits compares two digit strings without leading zeros as numbers.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
