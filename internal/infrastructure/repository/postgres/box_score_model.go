package postgres

import "time"

type boxScoreEntityModel struct {
	EntityID  string    `db:"entity_id"`
	RowCount  int       `db:"row_count"`
	UpdatedAt time.Time `db:"updated_at"`
}

type boxScoreRowTableModel struct {
	RowIndex int    `db:"row_index"`
	Payload  []byte `db:"payload"`
}

// Payload is bound as text: lib/pq would send []byte as bytea.
type boxScoreRowInsertModel struct {
	EntityID string `db:"entity_id"`
	RowIndex int    `db:"row_index"`
	Payload  string `db:"payload"`
}
