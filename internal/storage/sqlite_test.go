package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, ticks := range []uint64{300, 150, 600} {
		if _, err := store.SaveClear(ClearEntry{
			CatalogID: "classic", LevelID: "first-steps", Ticks: ticks, DurationMs: int64(ticks) * 1000 / 60,
		}); err != nil {
			t.Fatalf("SaveClear() failed: %v", err)
		}
	}

	// Different level
	if _, err := store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "crossroads", LevelIndex: 1, Ticks: 90, Dual: true, Player: "alice"}); err != nil {
		t.Fatalf("SaveClear() failed: %v", err)
	}

	clears, err := store.BestClears("classic", "first-steps", 10)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}

	if len(clears) != 3 {
		t.Fatalf("Expected 3 clears, got %d", len(clears))
	}

	// Should be sorted fastest first
	if clears[0].Ticks != 150 || clears[1].Ticks != 300 || clears[2].Ticks != 600 {
		t.Errorf("Clears not in expected order: %v", clears)
	}
	if clears[0].DurationMs != 2500 {
		t.Errorf("Expected duration 2500ms, got %d", clears[0].DurationMs)
	}

	other, err := store.BestClears("classic", "crossroads", 10)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(other) != 1 || !other[0].Dual || other[0].Player != "alice" || other[0].LevelIndex != 1 {
		t.Errorf("Unexpected crossroads clears: %+v", other)
	}
}

func TestStoreBestClearsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveClear(ClearEntry{CatalogID: "test", LevelID: "a", Ticks: uint64((i + 1) * 100)})
	}

	clears, err := store.BestClears("test", "a", 3)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}

	if len(clears) != 3 {
		t.Errorf("Expected 3 clears with limit, got %d", len(clears))
	}
	if clears[0].Ticks != 100 || clears[2].Ticks != 300 {
		t.Errorf("Clears not in expected order: %v", clears)
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	// No clears yet
	_, ok, err := store.BestTime("classic", "zigzag")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if ok {
		t.Error("Expected no best time for an uncleared level")
	}

	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "zigzag", Ticks: 900})
	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "zigzag", Ticks: 700})

	best, ok, err := store.BestTime("classic", "zigzag")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if !ok || best != 700 {
		t.Errorf("Expected best time 700, got %d (ok=%v)", best, ok)
	}
}

func TestStoreClearCatalog(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "a", Ticks: 1})
	store.SaveClear(ClearEntry{CatalogID: "intro", LevelID: "a", Ticks: 1})

	if err := store.ClearCatalog("classic"); err != nil {
		t.Fatalf("ClearCatalog() failed: %v", err)
	}

	if clears, _ := store.CatalogClears("classic"); len(clears) != 0 {
		t.Errorf("Expected 0 classic clears after delete, got %d", len(clears))
	}
	if clears, _ := store.CatalogClears("intro"); len(clears) != 1 {
		t.Error("Intro clears should not be affected by deleting classic")
	}
}

func TestStoreCatalogStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "a", Ticks: 60, DurationMs: 1000})
	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "a", Ticks: 120, DurationMs: 2000, Dual: true})
	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "b", LevelIndex: 1, Ticks: 30, DurationMs: 500})

	stats, err := store.GetCatalogStats("classic")
	if err != nil {
		t.Fatalf("GetCatalogStats() failed: %v", err)
	}
	if stats.ClearsCount != 3 || stats.LevelsSeen != 2 || stats.DualClears != 1 || stats.TotalMs != 3500 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	empty, err := store.GetCatalogStats("nothing")
	if err != nil {
		t.Fatalf("GetCatalogStats() on empty catalog failed: %v", err)
	}
	if empty.ClearsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty catalog: %+v", empty)
	}

	all, err := store.GetAllCatalogStats()
	if err != nil {
		t.Fatalf("GetAllCatalogStats() failed: %v", err)
	}
	if len(all) != 1 || all["classic"].ClearsCount != 3 {
		t.Errorf("Unexpected all-catalog stats: %v", all)
	}
}

func TestStoreCatalogClearsOrder(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "b", LevelIndex: 1, Ticks: 10})
	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "a", LevelIndex: 0, Ticks: 50})
	store.SaveClear(ClearEntry{CatalogID: "classic", LevelID: "a", LevelIndex: 0, Ticks: 40})

	clears, err := store.CatalogClears("classic")
	if err != nil {
		t.Fatalf("CatalogClears() failed: %v", err)
	}
	if len(clears) != 3 || clears[0].Ticks != 40 || clears[2].LevelID != "b" {
		t.Errorf("Unexpected order: %+v", clears)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
