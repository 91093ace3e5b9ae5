package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/roster"
)

func TestDecodePlayers_ArrayAndKeyedObject(t *testing.T) {
	t.Parallel()

	fromArray, err := DecodePlayers([]byte(`[{"slug":"ana","name":"Ana","number":7},{"id":"ben","number":"12"}]`))
	if err != nil {
		t.Fatalf("decode array: %v", err)
	}
	if len(fromArray) != 2 || fromArray[0].Number != "7" || fromArray[1].ID != "ben" || fromArray[1].Number != "12" {
		t.Fatalf("unexpected players: %+v", fromArray)
	}

	fromObject, err := DecodePlayers([]byte(`{"cid":{"name":"Cid"},"ana":{"name":"Ana","position":"G"}}`))
	if err != nil {
		t.Fatalf("decode object: %v", err)
	}
	if len(fromObject) != 2 || fromObject[0].ID != "ana" || fromObject[1].ID != "cid" {
		t.Fatalf("unexpected keyed players: %+v", fromObject)
	}

	if _, err := DecodePlayers([]byte(`[{"name":"no slug"}]`)); err == nil {
		t.Fatalf("expected validation error for missing slug")
	}
	if _, err := DecodePlayers([]byte(`[{"slug":"x","number":true}]`)); err == nil {
		t.Fatalf("expected error for boolean number")
	}
}

func TestDecodeTeams_RejectsDuplicateRosterEntries(t *testing.T) {
	t.Parallel()

	if _, err := DecodeTeams([]byte(`[{"slug":"hawks","roster":["ana","ana"]}]`)); err == nil {
		t.Fatalf("expected duplicate roster error")
	}
}

func TestLoadRosterDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, teamsFile), []byte(`[{"slug":"hawks","name":"Hawks","roster":["ana","ben"]}]`), 0o600); err != nil {
		t.Fatalf("write teams: %v", err)
	}

	teams, players, err := LoadRosterDir(dir)
	if err != nil {
		t.Fatalf("load roster dir: %v", err)
	}
	if len(teams) != 1 || len(players) != 0 {
		t.Fatalf("unexpected load result: teams=%d players=%d", len(teams), len(players))
	}
}

func TestRosterRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRosterRepository(
		[]roster.Team{{ID: "hawks", Roster: []string{"ana"}}},
		[]roster.Player{{ID: "ana", Name: "Ana"}, {ID: "zed", TeamID: "owls"}},
	)

	player, err := repo.GetPlayer(ctx, "ana")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if player.TeamID != "hawks" {
		t.Fatalf("expected team inferred from roster, got %q", player.TeamID)
	}
	if _, err := repo.GetPlayer(ctx, "ghost"); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	team, err := repo.GetTeam(ctx, "hawks")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	team.Roster[0] = "mutated"
	again, _ := repo.GetTeam(ctx, "hawks")
	if again.Roster[0] != "ana" {
		t.Fatalf("returned roster must be a copy")
	}
}

func TestRowRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRowRepository(map[string][]boxscore.RawRow{"ana": {{"pts": "10"}}})

	if _, err := repo.ListRows(ctx, "ben"); !errors.Is(err, boxscore.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}

	rows, err := repo.ListRows(ctx, "ana")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	rows[0]["pts"] = "99"

	if err := repo.ReplaceRows(ctx, "ben", []boxscore.RawRow{{"pts": "3"}}); err != nil {
		t.Fatalf("replace rows: %v", err)
	}
	again, _ := repo.ListRows(ctx, "ana")
	if again[0]["pts"] != "10" {
		t.Fatalf("listed rows must be copies")
	}
	ben, err := repo.ListRows(ctx, "ben")
	if err != nil || len(ben) != 1 {
		t.Fatalf("unexpected ben rows: %v %v", ben, err)
	}
}
