package season

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	labelPattern     = regexp.MustCompile(`^(\d{4})\s+(\S+)$`)
)

var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"January 2 2006",
}

// Classifier maps dates to season labels. It is immutable and safe for
// concurrent use.
type Classifier struct {
	byMonth [13]Bucket
	byName  map[string]Bucket
}

func NewClassifier(cfg Config) (Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return Classifier{}, err
	}

	c := Classifier{byName: make(map[string]Bucket, len(cfg.Buckets))}
	for _, bucket := range cfg.Buckets {
		bucket.Name = strings.TrimSpace(bucket.Name)
		bucket.Months = append([]int(nil), bucket.Months...)
		c.byName[strings.ToLower(bucket.Name)] = bucket
		for _, month := range bucket.Months {
			c.byMonth[month] = bucket
		}
	}

	return c, nil
}

// DefaultClassifier returns a classifier over DefaultConfig.
func DefaultClassifier() Classifier {
	c, err := NewClassifier(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify derives the season of a date string. Unparsable dates yield the
// zero Classification.
func (c Classifier) Classify(date string) Classification {
	t, ok := ParseDate(date)
	if !ok {
		return Classification{}
	}

	bucket := c.byMonth[int(t.Month())]
	if bucket.Name == "" {
		return Classification{}
	}

	return Classification{
		Year:    t.Year(),
		Name:    bucket.Name,
		Label:   strconv.Itoa(t.Year()) + " " + bucket.Name,
		Ordinal: bucket.Ordinal,
		OK:      true,
	}
}

// Resolve prefers a declared label over the one derived from date. A
// declared label that does not follow the "{year} {name}" shape is kept
// verbatim and carries the year of the date when one is known.
func (c Classifier) Resolve(declared, date string) Classification {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return c.Classify(date)
	}

	out := Classification{Label: declared, OK: true}
	if year, ordinal, ok := c.ParseLabel(declared); ok {
		out.Year = year
		out.Ordinal = ordinal
		out.Name = strings.Fields(declared)[1]
		return out
	}

	if derived := c.Classify(date); derived.OK {
		out.Year = derived.Year
	}
	return out
}

// ParseLabel reads "{year} {name}" labels. Names are matched case-insensitively.
func (c Classifier) ParseLabel(label string) (year, ordinal int, ok bool) {
	m := labelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, 0, false
	}
	bucket, exists := c.byName[strings.ToLower(m[2])]
	if !exists {
		return 0, 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	return year, bucket.Ordinal, true
}

// SortLabels returns the distinct non-empty labels in chronological order.
// Labels that cannot be parsed go last in lexical order.
func (c Classifier) SortLabels(labels []string) []string {
	type keyed struct {
		label   string
		year    int
		ordinal int
		known   bool
	}

	seen := make(map[string]struct{}, len(labels))
	items := make([]keyed, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, exists := seen[label]; exists {
			continue
		}
		seen[label] = struct{}{}

		year, ordinal, ok := c.ParseLabel(label)
		items = append(items, keyed{label: label, year: year, ordinal: ordinal, known: ok})
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.known != b.known {
			return a.known
		}
		if !a.known {
			return a.label < b.label
		}
		if a.year != b.year {
			return a.year < b.year
		}
		if a.ordinal != b.ordinal {
			return a.ordinal < b.ordinal
		}
		return a.label < b.label
	})

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.label)
	}
	return out
}

// ParseDate accepts ISO dates, day-first slash dates and a handful of
// spreadsheet export shapes. Slash dates roll over out-of-range days the
// way calendar arithmetic does (31/2/2024 is 2 March 2024).
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if isoDatePattern.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
