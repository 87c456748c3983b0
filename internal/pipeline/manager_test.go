package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/YourPlantDad/SteamLibraryScraper/internal/config"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/library"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
)

// fakeStore serves canned storefront details and counts fetches.
type fakeStore struct {
	calls   int32
	details map[int64]*model.StoreDetails
}

func (f *fakeStore) Fetch(ctx context.Context, appID int64) *model.StoreDetails {
	atomic.AddInt32(&f.calls, 1)
	return f.details[appID]
}

func (f *fakeStore) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func portal2Details() *model.StoreDetails {
	score := 95
	return &model.StoreDetails{
		HeaderImageURL:   "https://cdn.example.com/620/header.jpg",
		ShortDescription: "The sequel to the acclaimed puzzler.",
		Developers:       []string{"Valve"},
		Publishers:       []string{"Valve"},
		ReleaseDate:      "18 Apr, 2011",
		MetacriticScore:  &score,
		Genres:           []string{"Action"},
		Categories:       []string{"Single-player"},
	}
}

func testSettings(t *testing.T, batch string) *config.Settings {
	t.Helper()
	libraryDir := t.TempDir()
	if batch != "" {
		path := filepath.Join(libraryDir, "games_2024-11-03.json")
		if err := os.WriteFile(path, []byte(batch), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	settings := config.DefaultSettings()
	settings.LibraryPath = libraryDir
	settings.OutputPath = t.TempDir()
	settings.RequestDelaySeconds = 0
	settings.SaveCoverArt = false
	return settings
}

func runPipeline(t *testing.T, settings *config.Settings, store *fakeStore) (*Manager, []ProgressEvent) {
	t.Helper()
	var events []ProgressEvent
	manager := NewManager(settings, store, func(event ProgressEvent) {
		events = append(events, event)
	})
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := manager.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return manager, events
}

const threeGameBatch = `[
	{"title": "Portal 2", "app_id": 620, "playtime_hours": 21.5, "last_played": 1697846400, "achievements_unlocked": 38, "achievements_total": 51},
	{"title": "Unreleased Demo", "app_id": 0},
	{"title": "Delisted Game", "app_id": 999999, "playtime_hours": 3.0, "last_played": 1600000000, "achievements_unlocked": 0, "achievements_total": 0}
]`

func TestManager_Run(t *testing.T) {
	settings := testSettings(t, threeGameBatch)
	store := &fakeStore{details: map[int64]*model.StoreDetails{620: portal2Details()}}

	manager, events := runPipeline(t, settings, store)

	// Only the two games with a real app id hit the store; the fetch for
	// the delisted game came back empty but still counts as an attempt.
	if got := store.callCount(); got != 2 {
		t.Errorf("store fetches = %d, want 2", got)
	}

	processed, skipped, enriched, basic, failed, total := manager.GetProgress()
	if processed != 3 || total != 3 {
		t.Errorf("processed/total = %d/%d, want 3/3", processed, total)
	}
	if skipped != 0 || failed != 0 {
		t.Errorf("skipped = %d, failed = %d, want 0, 0", skipped, failed)
	}
	if enriched != 1 || basic != 2 {
		t.Errorf("enriched = %d, basic = %d, want 1, 2", enriched, basic)
	}

	for _, state := range manager.GameStates() {
		if state != StateDone {
			t.Errorf("game state = %s, want done", state)
		}
	}

	enrichedNote := readNote(t, manager.OutputDir(), "Portal2.md")
	if !strings.Contains(enrichedNote, "enriched: true") {
		t.Error("enriched note missing enriched marker")
	}
	if !strings.Contains(enrichedNote, "The sequel to the acclaimed puzzler.") {
		t.Error("enriched note missing store description")
	}

	for _, name := range []string{"UnreleasedDemo.md", "DelistedGame.md"} {
		basicNote := readNote(t, manager.OutputDir(), name)
		if !strings.Contains(basicNote, "enriched: false") {
			t.Errorf("%s missing basic marker", name)
		}
	}

	summary := lastEvent(events, LevelSuccess)
	if !strings.Contains(summary, "1 enriched, 2 basic, 0 skipped, 0 failed") {
		t.Errorf("summary = %q, want full counter breakdown", summary)
	}
}

// lastEvent returns the message of the last event at the given level.
func lastEvent(events []ProgressEvent, level ProgressLevel) string {
	message := ""
	for _, event := range events {
		if event.Level == level {
			message = event.Message
		}
	}
	return message
}

func readNote(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("expected note %s: %v", name, err)
	}
	return string(data)
}

func TestManager_Run_SkipsEnrichedNotes(t *testing.T) {
	batch := `[{"title": "Portal 2", "app_id": 620, "playtime_hours": 21.5, "last_played": 1697846400, "achievements_unlocked": 38, "achievements_total": 51}]`
	settings := testSettings(t, batch)

	first := &fakeStore{details: map[int64]*model.StoreDetails{620: portal2Details()}}
	manager, _ := runPipeline(t, settings, first)
	notePath := filepath.Join(manager.OutputDir(), "Portal2.md")
	original, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatal(err)
	}

	// Second run over the same output: the enriched note short-circuits
	// before any fetch and the file is left untouched.
	second := &fakeStore{details: map[int64]*model.StoreDetails{620: portal2Details()}}
	manager, _ = runPipeline(t, settings, second)

	if got := second.callCount(); got != 0 {
		t.Errorf("second run made %d store fetches, want 0", got)
	}
	_, skipped, _, _, _, _ := manager.GetProgress()
	if skipped != 1 {
		t.Errorf("second run skipped = %d, want 1", skipped)
	}
	if states := manager.GameStates(); states[0] != StateSkipped {
		t.Errorf("game state = %s, want skipped", states[0])
	}

	after, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(original) {
		t.Error("second run rewrote an already enriched note")
	}
}

func TestManager_Run_RetriesBasicNotes(t *testing.T) {
	batch := `[{"title": "Delisted Game", "app_id": 999999, "playtime_hours": 3.0, "last_played": 1600000000, "achievements_unlocked": 0, "achievements_total": 0}]`
	settings := testSettings(t, batch)

	runPipeline(t, settings, &fakeStore{})

	// A note rendered without store data is not marked enriched, so a
	// later run tries the storefront again.
	second := &fakeStore{}
	runPipeline(t, settings, second)
	if got := second.callCount(); got != 1 {
		t.Errorf("second run made %d store fetches, want 1", got)
	}
}

func TestManager_Run_DelayBetweenFetches(t *testing.T) {
	settings := testSettings(t, threeGameBatch)
	settings.RequestDelaySeconds = 0.05
	store := &fakeStore{details: map[int64]*model.StoreDetails{620: portal2Details()}}

	start := time.Now()
	runPipeline(t, settings, store)
	elapsed := time.Since(start)

	// Two fetch attempts, but none after the final game: one full delay.
	if min := 50 * time.Millisecond; elapsed < min {
		t.Errorf("run took %s, want at least %s of rate limiting", elapsed, min)
	}
}

func TestManager_Run_CustomTemplate(t *testing.T) {
	batch := `[{"title": "Portal 2", "app_id": 620, "playtime_hours": 21.5, "last_played": 1697846400, "achievements_unlocked": 38, "achievements_total": 51}]`
	settings := testSettings(t, batch)

	templatePath := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(templatePath, []byte("# ${game.title} (${game.app_id})\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings.TemplatePath = templatePath

	manager, _ := runPipeline(t, settings, &fakeStore{details: map[int64]*model.StoreDetails{620: portal2Details()}})

	note := readNote(t, manager.OutputDir(), "Portal2.md")
	if note != "# Portal 2 (620)\n" {
		t.Errorf("custom template output = %q", note)
	}
}

func TestManager_Run_TemplateFailureKeepsRawSlot(t *testing.T) {
	batch := `[{"title": "Portal 2", "app_id": 620}]`
	settings := testSettings(t, batch)

	templatePath := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(templatePath, []byte("${game.title}: ${no_such_variable}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings.TemplatePath = templatePath

	manager, events := runPipeline(t, settings, &fakeStore{})

	note := readNote(t, manager.OutputDir(), "Portal2.md")
	if note != "Portal 2: ${no_such_variable}\n" {
		t.Errorf("degraded note = %q", note)
	}

	var warned bool
	for _, event := range events {
		if event.Level == LevelWarning && strings.Contains(event.Message, "no_such_variable") {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning naming the failed slot")
	}
}

func TestManager_Run_WriteFailureContinues(t *testing.T) {
	batch := `[
		{"title": "Portal 2", "app_id": 620, "playtime_hours": 21.5, "last_played": 1697846400, "achievements_unlocked": 38, "achievements_total": 51},
		{"title": "Half-Life", "app_id": 70, "playtime_hours": 12.3, "last_played": 1600000000, "achievements_unlocked": 5, "achievements_total": 10}
	]`
	settings := testSettings(t, batch)

	// A directory squatting on the note path makes the write fail for the
	// first game only.
	if err := os.Mkdir(filepath.Join(settings.OutputPath, "Portal2.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{details: map[int64]*model.StoreDetails{620: portal2Details()}}
	manager, events := runPipeline(t, settings, store)

	processed, _, _, _, failed, _ := manager.GetProgress()
	if processed != 2 {
		t.Errorf("processed = %d, want 2; a failed write must not stop the batch", processed)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	states := manager.GameStates()
	if states[0] != StateFailed {
		t.Errorf("first game state = %s, want failed", states[0])
	}
	if states[1] != StateDone {
		t.Errorf("second game state = %s, want done", states[1])
	}

	var errored bool
	for _, event := range events {
		if event.Level == LevelError && strings.Contains(event.Message, "Portal 2") {
			errored = true
		}
	}
	if !errored {
		t.Error("expected an error event naming the failed note")
	}

	if note := readNote(t, manager.OutputDir(), "Half-Life.md"); !strings.Contains(note, "Half-Life") {
		t.Error("later note missing after an earlier write failure")
	}
}

func TestManager_Run_TitleCollisionWarns(t *testing.T) {
	batch := `[
		{"title": "Foo: Bar", "app_id": 1},
		{"title": "Foo Bar", "app_id": 2}
	]`
	settings := testSettings(t, batch)

	manager, events := runPipeline(t, settings, &fakeStore{})

	var warned bool
	for _, event := range events {
		if event.Level == LevelWarning && strings.Contains(event.Message, "FooBar.md") {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a collision warning for FooBar.md")
	}

	// Last write wins.
	note := readNote(t, manager.OutputDir(), "FooBar.md")
	if !strings.Contains(note, "Foo Bar") {
		t.Error("collision note should hold the later game")
	}
}

func TestManager_Initialize_NoBatch(t *testing.T) {
	settings := testSettings(t, "")

	manager := NewManager(settings, &fakeStore{}, nil)
	err := manager.Initialize(context.Background())
	if !errors.Is(err, library.ErrNoBatchFound) {
		t.Errorf("Initialize() error = %v, want ErrNoBatchFound", err)
	}
}

func TestCheckpointInterval(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 0},
		{9, 0},
		{10, 10},
		{99, 10},
		{100, 10},
		{101, 11},
		{250, 25},
		{1000, 100},
	}

	for _, tt := range tests {
		if got := checkpointInterval(tt.n); got != tt.want {
			t.Errorf("checkpointInterval(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
