package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tucan/internal/storage"
)

type memStore struct {
	replays []storage.Replay
	err     error
}

func (s *memStore) RecentReplays(limit int) ([]storage.Replay, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replays) > limit {
		return s.replays[:limit], nil
	}
	return s.replays, nil
}

func (s *memStore) DeleteReplay(id string) error {
	for i, r := range s.replays {
		if r.ID == id {
			s.replays = append(s.replays[:i], s.replays[i+1:]...)
			return nil
		}
	}
	return storage.ErrReplayNotFound
}

func newMemStore() *memStore {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &memStore{replays: []storage.Replay{
		{ID: "aaaaaaaa-1111", Seed: 1, Ticks: 600, TapCount: 12, CreatedAt: now},
		{ID: "bbbbbbbb-2222", Seed: 2, Ticks: 300, TapCount: 4, Deaths: 1, CreatedAt: now.Add(-time.Hour)},
	}}
}

func browse(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(BrowserModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm
}

func TestBrowserSelect(t *testing.T) {
	m := NewBrowserModel(newMemStore(), 100, 30)
	m = browse(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = browse(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Selected(); got != "bbbbbbbb-2222" {
		t.Errorf("Selected() = %q, want second replay", got)
	}
}

func TestBrowserDelete(t *testing.T) {
	store := newMemStore()
	m := NewBrowserModel(store, 100, 30)
	m = browse(t, m, keyRune('d'))

	if len(m.Replays()) != 1 || m.Replays()[0].ID != "bbbbbbbb-2222" {
		t.Errorf("after delete = %v, want only the second replay", m.Replays())
	}
	if len(store.replays) != 1 {
		t.Errorf("store still holds %d replays", len(store.replays))
	}
}

func TestBrowserEmptyAndError(t *testing.T) {
	empty := NewBrowserModel(&memStore{}, 100, 30)
	if !strings.Contains(empty.View(), "No replays") {
		t.Error("empty browser should say there are no replays")
	}
	empty = browse(t, empty, tea.KeyMsg{Type: tea.KeyEnter})
	if empty.Selected() != "" {
		t.Error("enter on an empty list should select nothing")
	}

	broken := NewBrowserModel(&memStore{err: errors.New("disk on fire")}, 100, 30)
	if !strings.Contains(broken.View(), "disk on fire") {
		t.Error("browser should show the load error")
	}
}
