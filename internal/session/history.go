package session

import "slices"

// Default history settings.
const (
	DefaultHistoryLimit = 10
	DefaultMinOpacity   = 0.2
)

// Entry is one resolved answer as shown in the history list.
type Entry struct {
	Text    string
	Correct bool
}

// Line is an Entry with its display opacity.
type Line struct {
	Entry
	Opacity float64
}

// History keeps the most recent answers, newest first. Older entries are
// evicted once the limit is reached.
type History struct {
	limit      int
	minOpacity float64
	entries    []Entry
}

// NewHistory creates a history capped at limit entries whose oldest entry
// fades to minOpacity. Non-positive values fall back to the defaults.
func NewHistory(limit int, minOpacity float64) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if minOpacity <= 0 || minOpacity > 1 {
		minOpacity = DefaultMinOpacity
	}
	return &History{limit: limit, minOpacity: minOpacity}
}

// Add prepends e and evicts the oldest entries past the limit.
func (h *History) Add(e Entry) {
	h.entries = slices.Insert(h.entries, 0, e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Reset drops all entries.
func (h *History) Reset() { h.entries = nil }

// Lines returns the entries newest first with opacity graded linearly from
// 1.0 for the newest to the minimum for the oldest.
func (h *History) Lines() []Line {
	n := len(h.entries)
	lines := make([]Line, n)
	for i, e := range h.entries {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		lines[i] = Line{Entry: e, Opacity: 1 - (1-h.minOpacity)*t}
	}
	return lines
}
