package boxscore

import (
	"strings"

	"github.com/riskibarqy/mystats/internal/domain/season"
)

// All is the filter value that matches every line.
const All = "all"

// Filter narrows lines by season label and phase. Empty fields behave like All.
type Filter struct {
	Season string `json:"season"`
	Phase  string `json:"phase"`
}

func (f Filter) normalized() Filter {
	out := Filter{Season: strings.TrimSpace(f.Season), Phase: strings.TrimSpace(f.Phase)}
	if out.Season == "" {
		out.Season = All
	}
	if out.Phase == "" {
		out.Phase = All
	}
	return out
}

// IsAll reports whether the filter keeps every line.
func (f Filter) IsAll() bool {
	n := f.normalized()
	return n.Season == All && n.Phase == All
}

// Match reports whether a single line passes both criteria.
func (f Filter) Match(line GameStatLine) bool {
	return f.normalized().match(line)
}

func (f Filter) match(line GameStatLine) bool {
	if f.Season != All && line.SeasonLabel != f.Season {
		return false
	}
	if f.Phase != All && string(line.Phase) != f.Phase {
		return false
	}
	return true
}

// Apply returns the matching lines in their original order. The input is
// left untouched.
func (f Filter) Apply(lines []GameStatLine) []GameStatLine {
	n := f.normalized()
	out := make([]GameStatLine, 0, len(lines))
	for _, line := range lines {
		if n.match(line) {
			out = append(out, line)
		}
	}
	return out
}

// SeasonLabels returns the distinct season labels of lines in chronological order.
func SeasonLabels(lines []GameStatLine, classifier season.Classifier) []string {
	labels := make([]string, 0, len(lines))
	for _, line := range lines {
		labels = append(labels, line.SeasonLabel)
	}
	return classifier.SortLabels(labels)
}
