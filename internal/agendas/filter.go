package agendas

import (
	"regexp"
	"strconv"
	"strings"
)

// Display-layer filters over already-fetched rows. The SQL narrows by exact
// category/priority; free-text search and timeline buckets happen here.

func MatchesSearch(a Agenda, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q) ||
		strings.Contains(strings.ToLower(a.Category), q)
}

var timelinePattern = regexp.MustCompile(`(\d+)(?:\s*-\s*\d+)?\s*(week|month|year)`)

// TimelineMonths parses the free-text timeline ("6 months", "1-2 years")
// into a month count, taking the first duration mentioned. Weeks round up
// to one month.
func TimelineMonths(timeline string) (int, bool) {
	m := timelinePattern.FindStringSubmatch(strings.ToLower(timeline))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "week":
		return 1, true
	case "year":
		return n * 12, true
	default:
		return n, true
	}
}

// MatchesTimeline buckets: "short" ≤ 6 months, "medium" 7-18, "long" > 18.
// Rows with unparseable timelines only match the empty (no-op) bucket.
func MatchesTimeline(a Agenda, bucket string) bool {
	if bucket == "" {
		return true
	}
	months, ok := TimelineMonths(a.Timeline)
	if !ok {
		return false
	}
	switch bucket {
	case "short":
		return months <= 6
	case "medium":
		return months > 6 && months <= 18
	case "long":
		return months > 18
	}
	return false
}
