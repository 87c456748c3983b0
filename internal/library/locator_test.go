package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeBatch(t *testing.T, dir, name, content string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLocator_FindLatest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	writeBatch(t, dir, "games_2024-11-01.json", "[]", base)
	newest := writeBatch(t, dir, "games_2024-11-03.json", "[]", base.Add(2*time.Minute))
	writeBatch(t, dir, "games_2024-11-02.json", "[]", base.Add(time.Minute))
	writeBatch(t, dir, "notes.txt", "unrelated", base.Add(time.Hour))

	got, err := NewLocator().FindLatest(dir, "games_*.json")
	if err != nil {
		t.Fatalf("FindLatest() error = %v", err)
	}
	if got != newest {
		t.Errorf("FindLatest() = %q, want %q", got, newest)
	}
}

func TestLocator_FindLatest_NoMatch(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "notes.txt", "unrelated", time.Now())

	_, err := NewLocator().FindLatest(dir, "games_*.json")
	if !errors.Is(err, ErrNoBatchFound) {
		t.Errorf("FindLatest() error = %v, want ErrNoBatchFound", err)
	}
}

func TestLocator_Load(t *testing.T) {
	dir := t.TempDir()
	batch := `[
		{"title": "Half-Life", "app_id": 70, "playtime_hours": 12.3, "last_played": 1697846400, "achievements_unlocked": 5, "achievements_total": 10},
		{"title": "Unreleased Demo", "app_id": 0},
		{"title": "Portal 2", "app_id": 620, "playtime_hours": 21.5, "last_played": 1700000000, "achievements_unlocked": 38, "achievements_total": 51}
	]`
	path := writeBatch(t, dir, "games_2024-11-03.json", batch, time.Now())

	games, err := NewLocator().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("Load() returned %d games, want 3", len(games))
	}

	// Batch order is preserved.
	wantTitles := []string{"Half-Life", "Unreleased Demo", "Portal 2"}
	for i, want := range wantTitles {
		if games[i].Title != want {
			t.Errorf("games[%d].Title = %q, want %q", i, games[i].Title, want)
		}
	}

	first := games[0]
	if first.AppID != 70 {
		t.Errorf("AppID = %d, want 70", first.AppID)
	}
	if first.PlaytimeHours == nil || *first.PlaytimeHours != 12.3 {
		t.Errorf("PlaytimeHours = %v, want 12.3", first.PlaytimeHours)
	}
	if first.LastPlayed == nil || *first.LastPlayed != 1697846400 {
		t.Errorf("LastPlayed = %v, want 1697846400", first.LastPlayed)
	}

	// Absent optional fields stay nil rather than zero.
	demo := games[1]
	if demo.PlaytimeHours != nil {
		t.Errorf("absent playtime_hours parsed as %v, want nil", *demo.PlaytimeHours)
	}
	if demo.LastPlayed != nil {
		t.Errorf("absent last_played parsed as %v, want nil", *demo.LastPlayed)
	}
}

func TestLocator_Load_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeBatch(t, dir, "games_bad.json", `{"not": "a list"}`, time.Now())

	if _, err := NewLocator().Load(path); err == nil {
		t.Error("Load() should fail on a non-array batch")
	}
}
