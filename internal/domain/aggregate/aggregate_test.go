package aggregate

import (
	"testing"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
)

func TestAggregateTotalsAndAverages(t *testing.T) {
	t.Parallel()

	lines := []boxscore.GameStatLine{
		{Points: 20, ReboundsTotal: 10, Assists: 3, FieldGoals: boxscore.Shooting{Made: 1, Attempted: 2}},
		{Points: 10, ReboundsTotal: 5, Assists: 0, FieldGoals: boxscore.Shooting{Made: 3, Attempted: 10}},
		{Points: 0, Minutes: 0},
	}

	got := Aggregate("p-1", lines)
	if got.EntityID != "p-1" || got.GamesPlayed != 3 {
		t.Fatalf("unexpected identity: %+v", got)
	}
	if got.Totals.Points != 30 || got.Totals.Rebounds != 15 {
		t.Fatalf("unexpected totals: %+v", got.Totals)
	}
	if avg := got.Average(boxscore.StatPoints); avg != 10 {
		t.Fatalf("unexpected points average: %v", avg)
	}
	if per := got.PerGame(); per.Rebounds != 5 || per.Assists != 1 {
		t.Fatalf("unexpected per game: %+v", per)
	}
}

func TestShootingPercentageUsesSummedTotals(t *testing.T) {
	t.Parallel()

	lines := []boxscore.GameStatLine{
		{FieldGoals: boxscore.Shooting{Made: 1, Attempted: 2}},
		{FieldGoals: boxscore.Shooting{Made: 3, Attempted: 10}},
	}

	pct := Aggregate("p", lines).FG.Percentage()
	if !pct.Valid {
		t.Fatalf("expected valid percentage")
	}
	if pct.Rounded() != 33.3 {
		t.Fatalf("expected 33.3 from 4/12, got %v", pct.Rounded())
	}
	if pct.String() != "33.3" {
		t.Fatalf("unexpected display: %s", pct.String())
	}
}

func TestEmptyAggregate(t *testing.T) {
	t.Parallel()

	got := Aggregate("p", nil)
	if got.GamesPlayed != 0 {
		t.Fatalf("expected zero games, got %d", got.GamesPlayed)
	}
	if got.PerGame() != (Totals{}) || got.Average(boxscore.StatAssists) != 0 {
		t.Fatalf("expected zero averages, got %+v", got.PerGame())
	}
	for _, pct := range []Percentage{got.FG.Percentage(), got.ThreePoint.Percentage(), got.FreeThrow.Percentage()} {
		if pct.Valid {
			t.Fatalf("expected no-attempts sentinel, got %+v", pct)
		}
		if pct.String() != "—" {
			t.Fatalf("unexpected sentinel display: %q", pct.String())
		}
	}
}

func TestPercentageZeroMadeIsNotSentinel(t *testing.T) {
	t.Parallel()

	pct := Shooting{Made: 0, Attempted: 4}.Percentage()
	if !pct.Valid || pct.Value != 0 {
		t.Fatalf("0 of 4 must be a valid 0%%, got %+v", pct)
	}
}

func TestPercentageJSON(t *testing.T) {
	t.Parallel()

	payload, err := sonic.Marshal(struct {
		FG Percentage `json:"fg"`
		FT Percentage `json:"ft"`
	}{
		FG: Shooting{Made: 4, Attempted: 12}.Percentage(),
		FT: Shooting{}.Percentage(),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"fg":33.3,"ft":null}` {
		t.Fatalf("unexpected json: %s", payload)
	}
}
