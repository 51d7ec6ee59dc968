package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-turrets/internal/games/turrets"
	"github.com/vovakirdan/tui-turrets/internal/storage"
)

func TestResultText(t *testing.T) {
	tests := []struct {
		rec  storage.GameRecord
		want string
	}{
		{storage.GameRecord{EndReason: storage.EndCompleted, Winner: "white"}, "White won"},
		{storage.GameRecord{EndReason: storage.EndCompleted, Winner: "black"}, "Black won"},
		{storage.GameRecord{EndReason: storage.EndCompleted}, "draw"},
		{storage.GameRecord{EndReason: storage.EndAbandoned, Winner: "white"}, "abandoned"},
	}
	for _, tc := range tests {
		if got := ResultText(tc.rec); got != tc.want {
			t.Errorf("ResultText(%+v) = %q, expected %q", tc.rec, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.secs); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, expected %q", tc.secs, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	now := time.Now()
	stats := map[string]*storage.VariantStats{
		"turrets": {
			Variant: "turrets", Games: 2, Completed: 2, WhiteWins: 1, Draws: 1,
			AvgMoves: 10, MaxCapture: 7, LastPlayed: now.Add(-time.Hour),
		},
		"turrets_strict": {
			Variant: "turrets_strict", Games: 2, Completed: 1, BlackWins: 1,
			AvgMoves: 20, MaxCapture: 3, LastPlayed: now,
		},
	}

	all := Summary(stats, "")
	if all.Games != 4 || all.WhiteWins != 1 || all.BlackWins != 1 || all.Draws != 1 || all.Completed != 3 {
		t.Errorf("all = %+v", all)
	}
	if all.AvgMoves != 15 || all.MaxCapture != 7 || !all.LastPlayed.Equal(now) {
		t.Errorf("all = %+v", all)
	}

	one := Summary(stats, "turrets_strict")
	if one.Games != 2 || one.AvgMoves != 20 || one.MaxCapture != 3 {
		t.Errorf("strict = %+v", one)
	}

	if empty := Summary(nil, ""); empty.Games != 0 || empty.AvgMoves != 0 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestHistoryModel(t *testing.T) {
	store := openTestStore(t)
	records := []storage.GameRecord{
		{Variant: turrets.IDStandard, WhiteScore: 150, BlackScore: 106, Winner: "white", Moves: 80, EndReason: storage.EndCompleted},
		{Variant: turrets.IDStrict, WhiteScore: 3, BlackScore: 2, Moves: 5, EndReason: storage.EndAbandoned},
	}
	for _, rec := range records {
		if _, err := store.SaveGame(rec); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}

	m := NewHistoryModel(store, 120, 30)
	if len(m.table.Rows()) != 2 {
		t.Fatalf("all variants: %d rows, expected 2", len(m.table.Rows()))
	}
	view := m.View()
	for _, want := range []string{"GAME HISTORY - All variants", "2 games", "White won", "150-106"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// Tab moves to the first registered variant.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.variants[m.cursor].ID != turrets.IDStandard {
		t.Fatalf("variant = %q", m.variants[m.cursor].ID)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("standard variant: %d rows, expected 1", len(m.table.Rows()))
	}

	// Shift+tab twice wraps around to the last variant.
	for range 2 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		m = next.(HistoryModel)
	}
	if m.cursor != len(m.variants)-1 {
		t.Errorf("cursor = %d, expected wrap to %d", m.cursor, len(m.variants)-1)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(HistoryModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}
}

func TestHistoryModelNarrowAndEmpty(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	if m.showSidebar {
		t.Error("sidebar shown on a narrow window")
	}
	if !strings.Contains(m.View(), "History is unavailable") {
		t.Error("nil store should explain that history is unavailable")
	}

	m = NewHistoryModel(openTestStore(t), 60, 20)
	if !strings.Contains(m.View(), "No games recorded yet") {
		t.Error("empty store should show the empty message")
	}
	for _, c := range m.table.Columns() {
		if c.Title == "Variant" || c.Title == "Time" {
			t.Errorf("column %q should be dropped on a narrow window", c.Title)
		}
	}
}
