package postgres

import "github.com/lib/pq"

type teamTableModel struct {
	Slug      string         `db:"slug"`
	Name      string         `db:"name"`
	Logo      string         `db:"logo"`
	League    string         `db:"league"`
	Roster    pq.StringArray `db:"roster"`
	SortOrder int            `db:"sort_order"`
}

type playerTableModel struct {
	Slug      string `db:"slug"`
	Name      string `db:"name"`
	Number    string `db:"number"`
	Position  string `db:"position"`
	Image     string `db:"image"`
	TeamSlug  string `db:"team_slug"`
	SortOrder int    `db:"sort_order"`
}
