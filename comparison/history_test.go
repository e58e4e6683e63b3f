package comparison

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countries(entries []HistoryEntry) []string {
	names := make([]string, len(entries))
	for idx, entry := range entries {
		names[idx] = entry.Country
	}
	return names
}

func TestHistory(t *testing.T) {
	h := NewHistory(4)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for idx, country := range []string{"A", "B", "C", "D", "E"} {
		h.Add(HistoryEntry{Country: country, Timestamp: base.Add(time.Duration(idx) * time.Minute)})
	}
	assert.Equal(t, []string{"E", "D", "C", "B"}, countries(h.Entries()))

	// re-selecting moves the country to the front instead of duplicating it
	h.Add(HistoryEntry{Country: "C", Detail: "again"})
	assert.Equal(t, []string{"C", "E", "D", "B"}, countries(h.Entries()))
	assert.Equal(t, "again", h.Entries()[0].Detail)
	assert.Equal(t, 4, h.Len())

	// callers get a copy
	entries := h.Entries()
	entries[0].Country = "Z"
	assert.Equal(t, "C", h.Entries()[0].Country)
}

func TestHistoryDefaultLimit(t *testing.T) {
	h := NewHistory(0)
	for _, country := range []string{"A", "B", "C", "D", "E", "F"} {
		h.Add(HistoryEntry{Country: country})
	}
	assert.Equal(t, DEFAULT_HISTORY_LIMIT, h.Len())
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, Style{FillColor: "#ff4444", FillOpacity: 0.7, Color: "#000000", Weight: 1, Opacity: 0.8}, BaselineStyle(true))
	assert.Equal(t, Style{FillColor: "#ffffff", FillOpacity: 0.3, Color: "#000000", Weight: 1, Opacity: 0.8}, BaselineStyle(false))

	hovered := StyleFor(false, true, false)
	assert.Equal(t, 0.6, hovered.FillOpacity)
	assert.Equal(t, 2, hovered.Weight)

	highlighted := StyleFor(false, false, true)
	assert.Equal(t, 0.5, highlighted.FillOpacity)
	assert.Equal(t, 2, highlighted.Weight)

	assert.Equal(t, hovered, StyleFor(false, true, true))
	assert.Equal(t, "#ff4444", StyleFor(true, true, false).FillColor)
}
