package skills

import (
	"regexp"
	"strconv"

	"JobAdsMiner/internal/textnorm"
)

var (
	expZero   = regexp.MustCompile(`(?i)بدون\s*سابقه|junior|intern|کارآموز`)
	expRange  = regexp.MustCompile(`(\d{1,2})\s*(?:تا|الی|—|–|-)\s*(\d{1,2})\s*سال`)
	expMin    = regexp.MustCompile(`(?i)(?:حداقل|min)\s*(\d{1,2})\s*سال`)
	expSingle = regexp.MustCompile(`(\d{1,2})\s*سال(?:\s*سابقه)?`)
)

// ParseExperience extracts required years of experience. Checks run in order:
// explicit no-experience markers, ranges, minimums, then a bare year count.
func ParseExperience(text string) (minYears, maxYears *int) {
	t := textnorm.Normalize(text)
	if expZero.MatchString(t) {
		zero := 0
		return &zero, &zero
	}
	if m := expRange.FindStringSubmatch(t); m != nil {
		return atoi(m[1]), atoi(m[2])
	}
	if m := expMin.FindStringSubmatch(t); m != nil {
		return atoi(m[1]), nil
	}
	if m := expSingle.FindStringSubmatch(t); m != nil {
		return atoi(m[1]), nil
	}
	return nil, nil
}

func atoi(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
