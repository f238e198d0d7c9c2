package search

import (
	"fmt"
	"strings"
	"testing"
)

func TestRank_EmptyQuerySortsByDownloads(t *testing.T) {
	records := []Record{
		{Project: "alpha", DownloadCount: 10},
		{Project: "bravo", DownloadCount: 500},
		{Project: "charlie", DownloadCount: 500},
		{Project: "delta", DownloadCount: 9000},
	}

	got := Rank(records, "", DefaultOptions())

	want := []string{"delta", "bravo", "charlie", "alpha"}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Project != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Project, name)
		}
	}
	// bravo before charlie: equal counts keep original relative order.
	if got[1].Project != "bravo" || got[2].Project != "charlie" {
		t.Error("equal download counts must preserve original order")
	}
}

func TestRank_EmptyQueryEmptyRecords(t *testing.T) {
	if got := Rank(nil, "", DefaultOptions()); len(got) != 0 {
		t.Errorf("expected empty result, got %d candidates", len(got))
	}
}

func TestRank_CapsAt200(t *testing.T) {
	records := make([]Record, 500)
	for i := range records {
		records[i] = Record{Project: fmt.Sprintf("pkg-%03d", i), DownloadCount: int64(i)}
	}

	if got := Rank(records, "", DefaultOptions()); len(got) != 200 {
		t.Errorf("empty query: expected 200 candidates, got %d", len(got))
	}
	if got := Rank(records, "pkg", DefaultOptions()); len(got) != 200 {
		t.Errorf("matching query: expected 200 candidates, got %d", len(got))
	}
	if got := Rank(records, "pkg-00", DefaultOptions()); len(got) != 10 {
		t.Errorf("narrow query: expected 10 candidates, got %d", len(got))
	}
}

func TestRank_NoMatches(t *testing.T) {
	records := []Record{{Project: "requests", DownloadCount: 100}}
	if got := Rank(records, "zzzzzz", DefaultOptions()); got != nil {
		t.Errorf("expected nil result for no matches, got %v", got)
	}
}

func TestRank_ExactMatchRanksFirst(t *testing.T) {
	records := []Record{
		{Project: "flask-login", DownloadCount: 90000000},
		{Project: "flask-cors", DownloadCount: 80000000},
		{Project: "flask", DownloadCount: 60000000},
	}

	got := Rank(records, "flask", DefaultOptions())
	if len(got) == 0 || got[0].Project != "flask" {
		t.Fatalf("exact match should rank first, got order %v", names(got))
	}
}

func TestRank_CaseInsensitive(t *testing.T) {
	records := []Record{{Project: "Django", DownloadCount: 100}}
	got := Rank(records, "django", DefaultOptions())
	if len(got) != 1 || got[0].Project != "Django" {
		t.Fatalf("case-insensitive match failed: %v", names(got))
	}
}

// numpy's download score dominates: both names contain "num" at the same
// similarity tier, so popularity decides.
func TestRank_DownloadsDominateEqualSimilarity(t *testing.T) {
	records := []Record{
		{Project: "num2words", DownloadCount: 500},
		{Project: "numpy", DownloadCount: 1000000},
	}

	got := Rank(records, "num", DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("expected both to match, got %d", len(got))
	}
	if got[0].Project != "numpy" || got[1].Project != "num2words" {
		t.Errorf("expected numpy first, got %v", names(got))
	}
}

func TestSimilarity_Tiers(t *testing.T) {
	tests := []struct {
		query, project string
		want           float64
	}{
		{"flask", "flask", simExact},
		{"flask", "Flask", simExact},
		{"fla", "flask", simPrefix},
		{"login", "flask-login", simToken},
		{"login", "flask_login", simToken},
		{"ask", "flask", simSubstring},
	}
	for _, tt := range tests {
		if got := similarity(tt.query, tt.project); got != tt.want {
			t.Errorf("similarity(%q, %q) = %v, want %v", tt.query, tt.project, got, tt.want)
		}
	}
}

func TestSimilarity_Subsequence(t *testing.T) {
	// "rqs" appears in order within "requests" (r-eq-u-e-s...), 3/8 * 0.1.
	got := similarity("rqs", "requests")
	want := 3.0 / 8.0 * 0.1
	if got != want {
		t.Errorf("subsequence score = %v, want %v", got, want)
	}

	// "xyz" never matches.
	if got := similarity("xyz", "requests"); got != 0 {
		t.Errorf("non-matching subsequence should score 0, got %v", got)
	}
}

func TestRank_ZeroMaxDownloads(t *testing.T) {
	records := []Record{
		{Project: "left-pad-py", DownloadCount: 0},
		{Project: "pad", DownloadCount: 0},
	}

	got := Rank(records, "pad", DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	// With downloads contributing nothing, similarity alone orders: exact
	// match "pad" over token match "pad" in "left-pad-py".
	if got[0].Project != "pad" {
		t.Errorf("expected exact match first when maxD is 0, got %v", names(got))
	}
}

func TestFormatLabel_StripRankPrefix_Inverse(t *testing.T) {
	for _, rank := range []int{1, 9, 42, 100, 200} {
		for _, name := range []string{"requests", "flask-login", "a", "num2words"} {
			label := FormatLabel(rank, name)
			if got := StripRankPrefix(label); got != name {
				t.Errorf("StripRankPrefix(FormatLabel(%d, %q)) = %q", rank, name, got)
			}
		}
	}
}

func TestFormatLabel_ZeroPadding(t *testing.T) {
	if got := FormatLabel(1, "requests"); got != "01. requests" {
		t.Errorf("FormatLabel(1) = %q, want %q", got, "01. requests")
	}
	if got := FormatLabel(150, "requests"); got != "150. requests" {
		t.Errorf("FormatLabel(150) = %q", got)
	}
}

func TestStripRankPrefix_NoPrefix(t *testing.T) {
	for _, label := range []string{"requests", "2fa-tool", "not. a rank"} {
		if got := StripRankPrefix(label); got != label {
			t.Errorf("StripRankPrefix(%q) = %q, want unchanged", label, got)
		}
	}
}

func TestRank_DetailHumanized(t *testing.T) {
	records := []Record{{Project: "requests", DownloadCount: 1234567}}
	got := Rank(records, "", DefaultOptions())
	if len(got) != 1 || !strings.Contains(got[0].Detail, "1,234,567") {
		t.Errorf("expected humanized download count, got %q", got[0].Detail)
	}
}

func names(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Project
	}
	return out
}
