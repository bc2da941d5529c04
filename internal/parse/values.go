package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	yearRe  = regexp.MustCompile(`^\d{4}$`)
)

// ListSeparator joins multiple media paths inside one table cell.
const ListSeparator = ";"

// Clock parses a wall-clock value written as HH:MM or HH:MM:SS and returns it
// normalized to HH:MM:SS.
func Clock(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid clock value: %q", raw)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || mi > 59 || sec > 59 {
		return "", fmt.Errorf("clock value out of range: %q", raw)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, mi, sec), nil
}

// Minutes parses a non-negative whole number of minutes. Spreadsheet tools
// sometimes write integers as "15.0", which is accepted as long as the
// fractional part is zero.
func Minutes(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty minutes value")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid minutes value: %q", raw)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("minutes must not be negative: %d", n)
	}
	return n, nil
}

// Year parses a four digit year and checks it against [min, max].
func Year(raw string, min, max int) (int, error) {
	s := strings.TrimSpace(raw)
	if !yearRe.MatchString(s) {
		return 0, fmt.Errorf("year must have four digits: %q", raw)
	}
	y, _ := strconv.Atoi(s)
	if y < min || y > max {
		return 0, fmt.Errorf("year %d outside %d-%d", y, min, max)
	}
	return y, nil
}

// Date checks a YYYY-MM-DD calendar date.
func Date(raw string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(raw))
}

// List splits a joined cell back into its values, dropping empty entries.
func List(cell string) []string {
	var out []string
	for _, p := range strings.Split(cell, ListSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of List.
func JoinList(values []string) string {
	return strings.Join(values, ListSeparator)
}
