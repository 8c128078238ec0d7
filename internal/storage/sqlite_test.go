package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tucan/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tucan", "test.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestReplayRoundTrip(t *testing.T) {
	store := openTemp(t)

	in := Replay{
		GameID:   "tucan",
		Seed:     42,
		TickRate: 60,
		Ticks:    900,
		Deaths:   2,
		Config:   []byte("scene:\n  width: 640\n"),
		Taps:     []int{3, 40, 41, 200},
	}
	id, err := store.SaveReplay(in)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID, got %q", id)
	}

	out, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if out.GameID != in.GameID || out.Seed != in.Seed || out.TickRate != in.TickRate ||
		out.Ticks != in.Ticks || out.Deaths != in.Deaths || string(out.Config) != string(in.Config) {
		t.Errorf("replay mismatch: %+v", out)
	}
	if len(out.Taps) != len(in.Taps) || out.TapCount != len(in.Taps) {
		t.Fatalf("taps = %v, want %v", out.Taps, in.Taps)
	}
	for i := range in.Taps {
		if out.Taps[i] != in.Taps[i] {
			t.Errorf("tap %d = %d, want %d", i, out.Taps[i], in.Taps[i])
		}
	}
	if out.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestSaveReplayKeepsGivenID(t *testing.T) {
	store := openTemp(t)
	id, err := store.SaveReplay(Replay{ID: "fixed", GameID: "tucan", TickRate: 60})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if id != "fixed" {
		t.Errorf("id = %q, want fixed", id)
	}
	if _, err := store.SaveReplay(Replay{ID: "fixed", GameID: "tucan", TickRate: 60}); err == nil {
		t.Error("expected duplicate ID to fail")
	}
}

func TestReplayNotFound(t *testing.T) {
	store := openTemp(t)
	if _, err := store.Replay("missing"); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("Replay(missing) error = %v, want ErrReplayNotFound", err)
	}
	if err := store.DeleteReplay("missing"); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("DeleteReplay(missing) error = %v, want ErrReplayNotFound", err)
	}
}

func TestRecentReplays(t *testing.T) {
	store := openTemp(t)
	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.SaveReplay(Replay{GameID: "tucan", Seed: int64(i), TickRate: 60, Taps: make([]int, 0, i)})
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := store.SaveReplay(Replay{GameID: "tucan", Seed: 99, TickRate: 60, Taps: []int{1, 2, 3}}); err != nil {
		t.Fatal(err)
	}

	list, err := store.RecentReplays(3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].Seed != 99 || list[0].TapCount != 3 {
		t.Errorf("newest = %+v, want seed 99 with 3 taps", list[0])
	}
	if list[1].ID != ids[4] || list[2].ID != ids[3] {
		t.Errorf("order = %s,%s want %s,%s", list[1].ID, list[2].ID, ids[4], ids[3])
	}
	if list[0].Taps != nil {
		t.Error("listing should not load taps")
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTemp(t)
	id, err := store.SaveReplay(Replay{GameID: "tucan", TickRate: 60, Taps: []int{5}})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(id); !errors.Is(err, ErrReplayNotFound) {
		t.Errorf("replay still present: %v", err)
	}
	list, err := store.RecentReplays(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("list after delete = %d entries", len(list))
	}
}
