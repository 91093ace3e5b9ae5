package boxscore

import "testing"

func TestResolvePriorityAndEmptyCells(t *testing.T) {
	t.Parallel()

	r := NewResolver(DefaultColumnSchema())
	tests := []struct {
		name  string
		row   RawRow
		field Field
		want  string
	}{
		{name: "first synonym wins", row: RawRow{"totrb": "9", "reb": "4"}, field: FieldReboundsTotal, want: "9"},
		{name: "empty first synonym skipped", row: RawRow{"totrb": "  ", "reb": "4"}, field: FieldReboundsTotal, want: "4"},
		{name: "case and spacing in header", row: RawRow{" PTS ": "21"}, field: FieldPoints, want: "21"},
		{name: "byte order mark in header", row: RawRow{"\ufeffdate": "2024-01-01"}, field: FieldDate, want: "2024-01-01"},
		{name: "value trimmed", row: RawRow{"opponent": "  Hawks "}, field: FieldOpponent, want: "Hawks"},
		{name: "missing", row: RawRow{"unknown": "1"}, field: FieldAssists, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Resolve(tc.row, tc.field); got != tc.want {
				t.Fatalf("unexpected value: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestResolveLooseHeaderMatchIsStable(t *testing.T) {
	t.Parallel()

	r := NewResolver(DefaultColumnSchema())
	row := RawRow{"PTS": "", " Pts": "7", "pts ": "9", "Points": "30"}
	for i := 0; i < 50; i++ {
		if got := r.Resolve(row, FieldPoints); got != "7" {
			t.Fatalf("run %d: got=%q want=%q", i, got, "7")
		}
	}

	exact := RawRow{" Pts": "7", "pts": "11"}
	if got := r.Resolve(exact, FieldPoints); got != "11" {
		t.Fatalf("exact key must win over loose matches, got=%q", got)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{raw: "12", want: 12, ok: true},
		{raw: " 12 ", want: 12, ok: true},
		{raw: "7*", want: 7, ok: true},
		{raw: "-3.5", want: -3.5, ok: true},
		{raw: ".5", want: 0.5, ok: true},
		{raw: "1e2", want: 100, ok: true},
		{raw: "4/12", want: 4, ok: true},
		{raw: "DNP"},
		{raw: ""},
		{raw: "-"},
		{raw: "Infinity"},
		{raw: "NaN"},
		{raw: "1e999"},
	}

	for _, tc := range tests {
		got, ok := ParseNumber(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNumberReportsDefaults(t *testing.T) {
	t.Parallel()

	r := NewResolver(DefaultColumnSchema())
	if got := r.Number(RawRow{"pts": "abc"}, FieldPoints); !got.Defaulted || got.Value != 0 {
		t.Fatalf("expected defaulted zero, got %+v", got)
	}
	if got := r.Number(RawRow{"pts": "0"}, FieldPoints); got.Defaulted || got.Value != 0 {
		t.Fatalf("explicit zero must not be defaulted, got %+v", got)
	}
}

func TestNewColumnSchemaOverrides(t *testing.T) {
	t.Parallel()

	schema := NewColumnSchema(map[Field][]string{
		FieldPoints:  {" Puntos ", "PTS", "puntos"},
		FieldAssists: {"  "},
	})

	got := schema.Synonyms(FieldPoints)
	if len(got) != 2 || got[0] != "puntos" || got[1] != "pts" {
		t.Fatalf("unexpected points synonyms: %v", got)
	}
	if got := schema.Synonyms(FieldAssists); len(got) != 3 || got[0] != "ass" {
		t.Fatalf("blank override must keep defaults, got %v", got)
	}

	got[0] = "mutated"
	if schema.Synonyms(FieldPoints)[0] != "puntos" {
		t.Fatalf("schema must not be mutable through Synonyms")
	}
}
