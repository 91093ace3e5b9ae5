package season

import (
	"errors"
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	tests := []struct {
		name    string
		date    string
		label   string
		ordinal int
	}{
		{name: "iso summer january", date: "2024-01-15", label: "2024 Summer", ordinal: 1},
		{name: "december keeps own year", date: "2023-12-30", label: "2023 Summer", ordinal: 1},
		{name: "iso autumn", date: "2024-04-02", label: "2024 Autumn", ordinal: 2},
		{name: "iso winter", date: "2024-07-20", label: "2024 Winter", ordinal: 3},
		{name: "slash day first", date: "5/10/2023", label: "2023 Spring", ordinal: 4},
		{name: "slash padded", date: "01/06/2024", label: "2024 Winter", ordinal: 3},
		{name: "slash rolls over", date: "31/2/2024", label: "2024 Autumn", ordinal: 2},
		{name: "fallback long form", date: "March 3, 2022", label: "2022 Autumn", ordinal: 2},
		{name: "surrounding whitespace", date: "  2024-09-01 ", label: "2024 Spring", ordinal: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.date)
			if !got.OK {
				t.Fatalf("expected %q to classify", tc.date)
			}
			if got.Label != tc.label {
				t.Fatalf("unexpected label for %q: got=%q want=%q", tc.date, got.Label, tc.label)
			}
			if got.Ordinal != tc.ordinal {
				t.Fatalf("unexpected ordinal for %q: got=%d want=%d", tc.date, got.Ordinal, tc.ordinal)
			}
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	for _, date := range []string{"", "   ", "not a date", "2024-13-01", "15/2024", "2024-02-30"} {
		got := c.Classify(date)
		if got != (Classification{}) {
			t.Fatalf("expected zero classification for %q, got %+v", date, got)
		}
	}
}

func TestResolvePrefersDeclared(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()

	got := c.Resolve("2021 winter", "2024-01-01")
	if got.Label != "2021 winter" || got.Year != 2021 || got.Ordinal != 3 {
		t.Fatalf("unexpected declared classification: %+v", got)
	}

	got = c.Resolve("Preseason", "2024-01-01")
	if got.Label != "Preseason" || got.Year != 2024 || got.Ordinal != 0 {
		t.Fatalf("unexpected free-form classification: %+v", got)
	}

	got = c.Resolve(" ", "2024-05-01")
	if got.Label != "2024 Autumn" {
		t.Fatalf("expected derived label, got %+v", got)
	}

	got = c.Resolve("", "garbage")
	if got.OK || got.Label != "" {
		t.Fatalf("expected unknown season, got %+v", got)
	}
}

func TestSortLabels(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	got := c.SortLabels([]string{"2024 Winter", "2023 Spring", "", "2024 Autumn", "Exhibition", "2024 Winter", "2024 Summer", "All-Star"})
	want := []string{"2023 Spring", "2024 Summer", "2024 Autumn", "2024 Winter", "All-Star", "Exhibition"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "default", mutate: func(*Config) {}, ok: true},
		{name: "missing bucket", mutate: func(c *Config) { c.Buckets = c.Buckets[:3] }},
		{name: "overlapping month", mutate: func(c *Config) { c.Buckets[1].Months = []int{2, 3, 4, 5} }},
		{name: "uncovered month", mutate: func(c *Config) { c.Buckets[3].Months = []int{9, 10} }},
		{name: "duplicate ordinal", mutate: func(c *Config) { c.Buckets[3].Ordinal = 1 }},
		{name: "duplicate name", mutate: func(c *Config) { c.Buckets[3].Name = "summer" }},
		{name: "month out of range", mutate: func(c *Config) { c.Buckets[3].Months = []int{9, 10, 13} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCustomBucketsAreHonoured(t *testing.T) {
	t.Parallel()

	c, err := NewClassifier(Config{Buckets: []Bucket{
		{Name: "Winter", Months: []int{12, 1, 2}, Ordinal: 1},
		{Name: "Spring", Months: []int{3, 4, 5}, Ordinal: 2},
		{Name: "Summer", Months: []int{6, 7, 8}, Ordinal: 3},
		{Name: "Autumn", Months: []int{9, 10, 11}, Ordinal: 4},
	}})
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}

	if got := c.Classify("2024-07-01").Label; got != "2024 Summer" {
		t.Fatalf("unexpected label: %s", got)
	}
}
