package boxscore

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/mystats/internal/domain/season"
)

func filterFixture() []GameStatLine {
	return []GameStatLine{
		{GameID: "1", SeasonLabel: "2024 Winter", Phase: PhaseRegular},
		{GameID: "2", SeasonLabel: "2024 Winter", Phase: PhasePlayoffs},
		{GameID: "3", SeasonLabel: "2023 Spring", Phase: PhaseRegular},
		{GameID: "4", SeasonLabel: "", Phase: PhaseRegular},
		{GameID: "5", SeasonLabel: "2024 Autumn", Phase: PhasePlayoffs},
	}
}

func gameIDs(lines []GameStatLine) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.GameID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	t.Parallel()

	lines := filterFixture()
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "zero value keeps all", filter: Filter{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "explicit all", filter: Filter{Season: All, Phase: All}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "season only", filter: Filter{Season: "2024 Winter"}, want: []string{"1", "2"}},
		{name: "phase only", filter: Filter{Phase: "playoffs"}, want: []string{"2", "5"}},
		{name: "both criteria", filter: Filter{Season: "2024 Winter", Phase: "playoffs"}, want: []string{"2"}},
		{name: "unknown phase matches nothing", filter: Filter{Phase: "preseason"}, want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := gameIDs(tc.filter.Apply(lines))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected games: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestFilterIsConjunctionOfSingleFilters(t *testing.T) {
	t.Parallel()

	lines := filterFixture()
	bySeason := Filter{Season: "2024 Winter"}
	byPhase := Filter{Phase: "regular"}

	both := gameIDs(Filter{Season: "2024 Winter", Phase: "regular"}.Apply(lines))
	chained := gameIDs(byPhase.Apply(bySeason.Apply(lines)))
	if !reflect.DeepEqual(both, chained) {
		t.Fatalf("conjunction mismatch: both=%v chained=%v", both, chained)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	lines := filterFixture()
	before := gameIDs(lines)
	_ = Filter{Phase: "playoffs"}.Apply(lines)
	if !reflect.DeepEqual(before, gameIDs(lines)) {
		t.Fatalf("input mutated")
	}
}

func TestSeasonLabels(t *testing.T) {
	t.Parallel()

	got := SeasonLabels(filterFixture(), season.DefaultClassifier())
	want := []string{"2023 Spring", "2024 Autumn", "2024 Winter"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected labels: got=%v want=%v", got, want)
	}
}
