package comparison

import "time"

const DEFAULT_HISTORY_LIMIT = 4

type HistoryEntry struct {
	Country   string    `json:"country"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// History keeps the most recent comparisons, newest first, one entry per
// country.
type History struct {
	limit   int
	entries []HistoryEntry
}

func (h *History) Add(entry HistoryEntry) {
	entries := make([]HistoryEntry, 0, h.limit)
	entries = append(entries, entry)
	for _, existing := range h.entries {
		if len(entries) >= h.limit {
			break
		}
		if existing.Country == entry.Country {
			continue
		}
		entries = append(entries, existing)
	}
	h.entries = entries
}

func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DEFAULT_HISTORY_LIMIT
	}
	return &History{limit: limit}
}
