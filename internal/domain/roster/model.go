package roster

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("roster entry not found")

// Player is display metadata of one player. Stats never depend on it.
type Player struct {
	ID       string `json:"slug"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	Position string `json:"position"`
	Image    string `json:"image"`
	TeamID   string `json:"team"`
}

// DisplayName falls back to the id when no name is known.
func (p Player) DisplayName() string {
	if strings.TrimSpace(p.Name) == "" {
		return p.ID
	}
	return p.Name
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	return nil
}

// Team groups players; Roster keeps the display order of player ids.
type Team struct {
	ID     string   `json:"slug"`
	Name   string   `json:"name"`
	Logo   string   `json:"logo"`
	League string   `json:"league"`
	Roster []string `json:"roster"`
}

func (t Team) DisplayName() string {
	if strings.TrimSpace(t.Name) == "" {
		return t.ID
	}
	return t.Name
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	seen := make(map[string]struct{}, len(t.Roster))
	for _, playerID := range t.Roster {
		if strings.TrimSpace(playerID) == "" {
			return fmt.Errorf("team %s has an empty roster entry", t.ID)
		}
		if _, exists := seen[playerID]; exists {
			return fmt.Errorf("team %s lists player %s twice", t.ID, playerID)
		}
		seen[playerID] = struct{}{}
	}
	return nil
}
