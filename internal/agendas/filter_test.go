package agendas_test

import (
	"testing"

	"github.com/CivicAgenda/CA-Backend/internal/agendas"
)

func TestMatchesSearch(t *testing.T) {
	a := agendas.Agenda{
		Title:       "Electoral Transparency",
		Description: "Publish campaign finance records in open formats",
		Category:    "Governance",
	}

	cases := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"electoral", true},
		{"FINANCE", true},
		{"governance", true},
		{"railways", false},
	}
	for _, c := range cases {
		if got := agendas.MatchesSearch(a, c.query); got != c.want {
			t.Errorf("MatchesSearch(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestTimelineMonths(t *testing.T) {
	cases := []struct {
		timeline string
		months   int
		ok       bool
	}{
		{"6 months", 6, true},
		{"1 year", 12, true},
		{"2-3 years", 24, true}, // first duration mentioned wins
		{"8 weeks", 1, true},
		{"ongoing", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		months, ok := agendas.TimelineMonths(c.timeline)
		if months != c.months || ok != c.ok {
			t.Errorf("TimelineMonths(%q) = (%d, %v), want (%d, %v)",
				c.timeline, months, ok, c.months, c.ok)
		}
	}
}

func TestMatchesTimeline(t *testing.T) {
	short := agendas.Agenda{Timeline: "3 months"}
	medium := agendas.Agenda{Timeline: "1 year"}
	long := agendas.Agenda{Timeline: "5 years"}
	fuzzy := agendas.Agenda{Timeline: "ongoing"}

	if !agendas.MatchesTimeline(short, "short") || agendas.MatchesTimeline(short, "long") {
		t.Error("3 months should be short only")
	}
	if !agendas.MatchesTimeline(medium, "medium") || agendas.MatchesTimeline(medium, "short") {
		t.Error("1 year should be medium only")
	}
	if !agendas.MatchesTimeline(long, "long") {
		t.Error("5 years should be long")
	}
	// Unparseable timelines only match the no-op bucket
	if !agendas.MatchesTimeline(fuzzy, "") {
		t.Error("empty bucket should match everything")
	}
	for _, bucket := range []string{"short", "medium", "long"} {
		if agendas.MatchesTimeline(fuzzy, bucket) {
			t.Errorf("unparseable timeline should not match %q", bucket)
		}
	}
}
