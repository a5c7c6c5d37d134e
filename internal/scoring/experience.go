package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// YearsMode selects how total years of experience are estimated.
type YearsMode string

const (
	// YearsByDuration sums the merged date ranges of all employment entries.
	YearsByDuration YearsMode = "duration"
	// YearsByEntryCount counts one year per employment entry. It reproduces
	// scores computed by earlier versions of the service.
	YearsByEntryCount YearsMode = "count"
)

// ParseYearsMode falls back to YearsByDuration for unknown values.
func ParseYearsMode(s string) YearsMode {
	if YearsMode(strings.ToLower(strings.TrimSpace(s))) == YearsByEntryCount {
		return YearsByEntryCount
	}
	return YearsByDuration
}

// ExperienceResult is the output of MatchExperience.
type ExperienceResult struct {
	Score          float64
	CandidateYears float64
	RequiredYears  int
	Assessment     string
}

// MatchExperience scores totalYears against a required years range:
// 100 at or above the preferred years, 70..100 linearly between minimum and
// preferred, 0..70 proportionally below the minimum and 0 without experience.
func MatchExperience(totalYears float64, req ExperienceRequirement) ExperienceResult {
	minYears := float64(req.MinYears)
	preferred := float64(req.PreferredYears)
	if preferred < minYears {
		preferred = minYears
	}

	res := ExperienceResult{
		CandidateYears: totalYears,
		RequiredYears:  req.MinYears,
	}
	years := formatYears(totalYears)

	switch {
	case totalYears >= preferred:
		res.Score = 100
		res.Assessment = fmt.Sprintf("Candidate has %s years, meets or exceeds preferred %d years", years, int(preferred))
	case totalYears >= minYears:
		// preferred > minYears here, otherwise the case above would have matched.
		res.Score = 70 + 30*(totalYears-minYears)/(preferred-minYears)
		res.Assessment = fmt.Sprintf("Candidate has %s years, meets minimum %d years", years, req.MinYears)
	case totalYears > 0:
		// minYears > totalYears > 0 here, so the division is safe.
		res.Score = 70 * totalYears / minYears
		res.Assessment = fmt.Sprintf("Candidate has %s years, below minimum %d years", years, req.MinYears)
	default:
		res.Score = 0
		res.Assessment = fmt.Sprintf("No relevant experience found, requires %d years", req.MinYears)
	}

	return res
}

func formatYears(y float64) string {
	if y == math.Trunc(y) {
		return fmt.Sprintf("%d", int(y))
	}
	return fmt.Sprintf("%.1f", y)
}

// TotalYears estimates years of experience from an employment history.
// Ranges are half open in months: the end month is not counted, so a job
// ending in the month the next one starts adds no overlap.
// In duration mode overlapping ranges are merged so concurrent positions are
// not counted twice; an entry marked current, or with an empty or "present"
// end date, runs until now. Entries without a parseable start date add
// nothing.
func TotalYears(history []EmploymentEntry, mode YearsMode, now time.Time) float64 {
	if mode == YearsByEntryCount {
		return float64(len(history))
	}

	type span struct{ start, end int }

	nowIdx := monthIndex(now)
	spans := make([]span, 0, len(history))
	for _, e := range history {
		start, ok := parseMonth(e.StartDate)
		if !ok {
			continue
		}

		end := nowIdx
		if !e.IsCurrent && !isPresent(e.EndDate) {
			parsed, ok := parseMonth(e.EndDate)
			if !ok {
				continue
			}
			end = parsed
		}

		if end > nowIdx {
			end = nowIdx
		}
		if end <= start {
			continue
		}
		spans = append(spans, span{start: start, end: end})
	}

	if len(spans) == 0 {
		return 0
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	months := 0
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.start <= cur.end {
			if s.end > cur.end {
				cur.end = s.end
			}
			continue
		}
		months += cur.end - cur.start
		cur = s
	}
	months += cur.end - cur.start

	return float64(months) / 12
}

var monthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01",
	"01/2006",
	"01.2006",
	"02.01.2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

func parseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return monthIndex(t), true
		}
	}
	return 0, false
}

func isPresent(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "present", "current", "now", "ongoing", "today":
		return true
	}
	return false
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
