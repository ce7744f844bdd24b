package llm

import (
	"testing"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
)

func testCandidates() []domain.Topic {
	return []domain.Topic{
		{ID: "a", Title: "Best magnesium for sleep?"},
		{ID: "b", Title: "OLED vs IPS for work"},
	}
}

func TestApplyJudgmentSelectsWinner(t *testing.T) {
	t.Parallel()

	raw := `WINNER_INDEX: 1
REASON: clear two-sided comparison
COMPARE_A: OLED
COMPARE_B: IPS
TARGET_KEYWORDS: oled vs ips, oled ips comparison, panel difference`

	selected, ok := applyJudgment(raw, testCandidates())
	if !ok {
		t.Fatalf("expected judgment to apply")
	}

	if selected.ID != "b" {
		t.Fatalf("unexpected winner: %s", selected.ID)
	}
	if selected.CompareA != "OLED" || selected.CompareB != "IPS" {
		t.Fatalf("unexpected comparison pair: %q vs %q", selected.CompareA, selected.CompareB)
	}
	if selected.AnalysisReason != "clear two-sided comparison" {
		t.Fatalf("unexpected reason: %q", selected.AnalysisReason)
	}
	if selected.TargetKeywords == "" {
		t.Fatalf("expected target keywords")
	}
}

func TestApplyJudgmentClampsOutOfRangeIndex(t *testing.T) {
	t.Parallel()

	raw := "WINNER_INDEX: 7\nREASON: judge hallucinated an index"

	candidates := testCandidates()
	selected, ok := applyJudgment(raw, candidates)
	if !ok {
		t.Fatalf("expected judgment to apply")
	}

	if selected.ID != candidates[0].ID {
		t.Fatalf("out-of-range index should clamp to first candidate, got %s", selected.ID)
	}
}

func TestApplyJudgmentMissingWinnerIndex(t *testing.T) {
	t.Parallel()

	if _, ok := applyJudgment("REASON: no index line at all", testCandidates()); ok {
		t.Fatalf("expected judgment to be rejected")
	}
}

func TestApplyJudgmentDefaultsReason(t *testing.T) {
	t.Parallel()

	selected, ok := applyJudgment("WINNER_INDEX: 0", testCandidates())
	if !ok {
		t.Fatalf("expected judgment to apply")
	}
	if selected.AnalysisReason == "" {
		t.Fatalf("expected default analysis reason")
	}
}
