package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/YourPlantDad/SteamLibraryScraper/internal/config"
	httpclient "github.com/YourPlantDad/SteamLibraryScraper/internal/http"
	ioutils "github.com/YourPlantDad/SteamLibraryScraper/internal/io"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/library"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/note"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/template"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// State is the processing state of one game.
//
// Per game the machine runs
// Pending → SkipCheck → {Skipped | Fetching} → Rendering → Writing → Done,
// with Failed as a recoverable exit from Fetching or Rendering that still
// advances the batch to the next game.
type State int

const (
	StatePending State = iota
	StateSkipCheck
	StateFetching
	StateRendering
	StateWriting
	StateSkipped
	StateDone
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSkipCheck:
		return "skip-check"
	case StateFetching:
		return "fetching"
	case StateRendering:
		return "rendering"
	case StateWriting:
		return "writing"
	case StateSkipped:
		return "skipped"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StoreClient fetches storefront details for one app id. A nil result is
// the normal "no data" outcome, never an error.
type StoreClient interface {
	Fetch(ctx context.Context, appID int64) *model.StoreDetails
}

// Manager coordinates the enrichment pipeline.
//
// Games are processed strictly sequentially, in batch file order, one
// game fully finished before the next begins. The only suspension point
// is the fixed inter-request delay after each storefront fetch attempt,
// which bounds the outbound request rate. Per-game failures degrade that
// game's note and never abort the batch; only a missing batch file is
// fatal.
//
// Example usage:
//
//	manager := pipeline.NewManager(settings, steam.NewClient("us", "en"), func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
type Manager struct {
	settings   *config.Settings
	client     StoreClient
	locator    *library.Locator
	engine     *template.Engine
	detector   *note.Detector
	httpClient *httpclient.Client
	images     *ioutils.ImageService

	games     []model.Game
	states    []int32 // per-game State, read concurrently by the TUI
	noteTmpl  string
	batchPath string
	outputDir string
	runStart  time.Time

	totalGames int32
	processed  int32
	skipped    int32
	enriched   int32
	basic      int32
	failed     int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new pipeline Manager.
//
// The client performs the storefront fetches; pass steam.NewClient for
// real runs. onProgress receives every status line and may be nil.
func NewManager(settings *config.Settings, client StoreClient, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		client:     client,
		locator:    library.NewLocator(),
		engine:     template.NewEngine(),
		detector:   note.NewDetector(),
		httpClient: httpclient.NewClient(),
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}
}

// Initialize locates the newest library batch, loads its games, resolves
// the note template, and scans the output directory for notes that are
// already enriched.
//
// A missing batch is fatal: the returned error wraps
// library.ErrNoBatchFound and nothing is processed.
func (m *Manager) Initialize(ctx context.Context) error {
	outputDir, err := filepath.Abs(m.settings.OutputPath)
	if err != nil {
		return fmt.Errorf("could not resolve output path: %w", err)
	}
	m.outputDir = outputDir

	batchPath, err := m.locator.FindLatest(m.settings.LibraryPath, m.settings.BatchFilePattern)
	if err != nil {
		return err
	}
	m.batchPath = batchPath

	games, err := m.locator.Load(batchPath)
	if err != nil {
		return err
	}
	m.games = games
	m.states = make([]int32, len(games))
	atomic.StoreInt32(&m.totalGames, int32(len(games)))

	m.progress(ProgressEvent{Message: fmt.Sprintf("Using batch: %s (%d games)", filepath.Base(batchPath), len(games)), Level: LevelInfo})

	m.noteTmpl = m.resolveTemplate()

	if done := m.countEnrichedNotes(ctx); done > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%d of %d notes already enriched", done, len(games)), Level: LevelInfo})
	}

	return nil
}

// resolveTemplate returns the template override when configured and
// readable, or the built-in default with a warning otherwise.
func (m *Manager) resolveTemplate() string {
	if m.settings.TemplatePath == "" {
		return note.DefaultTemplate
	}

	data, err := os.ReadFile(m.settings.TemplatePath)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not read template %s, using built-in default: %v", m.settings.TemplatePath, err), Level: LevelWarning})
		return note.DefaultTemplate
	}

	return string(data)
}

// countEnrichedNotes scans the output directory for notes that would be
// skipped. Local disk reads only, so a bounded errgroup is safe here;
// storefront requests remain strictly sequential.
func (m *Manager) countEnrichedNotes(ctx context.Context) int {
	limit := m.settings.MaxConcurrentScans
	if limit < 1 {
		limit = 1
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var done int32
	for _, game := range m.games {
		notePath := filepath.Join(m.outputDir, game.NoteFileName())
		g.Go(func() error {
			if text, ok := ioutils.ReadFileIfExists(notePath); ok && m.detector.ShouldSkip(text) {
				atomic.AddInt32(&done, 1)
			}
			return nil
		})
	}
	g.Wait()

	return int(atomic.LoadInt32(&done))
}

// Run processes every game in batch order.
//
// The per-game state machine never aborts the run: fetch failures degrade
// the note to basic fields, template failures keep the raw slot text, and
// write failures are reported and skipped past. Run returns early only
// when ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	m.runStart = time.Now()

	if err := ioutils.EnsureDir(m.outputDir); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	total := len(m.games)
	interval := checkpointInterval(total)
	delay := time.Duration(m.settings.RequestDelaySeconds * float64(time.Second))

	// Detects two titles sanitizing to the same filename within one run.
	owners := make(map[string]string, total)

	for i, game := range m.games {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		m.setState(i, StateSkipCheck)
		fileName := game.NoteFileName()
		notePath := filepath.Join(m.outputDir, fileName)

		if prior, clash := owners[fileName]; clash {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Title collision: %q and %q both map to %s; the later note wins", prior, game.Title, fileName), Level: LevelWarning})
		}
		owners[fileName] = game.Title

		if text, ok := ioutils.ReadFileIfExists(notePath); ok && m.detector.ShouldSkip(text) {
			m.setState(i, StateSkipped)
			atomic.AddInt32(&m.skipped, 1)
			atomic.AddInt32(&m.processed, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipped (already enriched): %s", game.Title), Level: LevelVerbose})
			m.reportCheckpoint(i, total, interval, delay)
			continue
		}

		m.setState(i, StateFetching)
		// fetched marks a real storefront attempt. A game without an app id
		// passes through this state but makes no request, so it owes no
		// inter-request delay.
		var details *model.StoreDetails
		fetched := false
		if game.AppID > 0 {
			details = m.client.Fetch(ctx, game.AppID)
			fetched = true
		}

		m.setState(i, StateRendering)
		evalCtx := note.BuildContext(game, details, m.runStart)
		text, diags := m.engine.Render(m.noteTmpl, evalCtx)
		for _, diag := range diags {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Template slot %s failed for %s: %s", diag.Slot, game.Title, diag.Detail), Level: LevelWarning})
		}

		m.setState(i, StateWriting)
		if err := ioutils.WriteFile(ctx, notePath, []byte(text)); err != nil {
			m.setState(i, StateFailed)
			atomic.AddInt32(&m.failed, 1)
			atomic.AddInt32(&m.processed, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Write failed for %s: %v", game.Title, err), Level: LevelError})
			m.reportCheckpoint(i, total, interval, delay)
			m.waitBetweenRequests(ctx, fetched, i, total, delay)
			continue
		}

		m.setState(i, StateDone)

		if details != nil {
			atomic.AddInt32(&m.enriched, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Enriched: %s", game.Title), Level: LevelInfo})
			m.saveCoverArt(ctx, game, details)
		} else {
			atomic.AddInt32(&m.basic, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Basic info only: %s", game.Title), Level: LevelInfo})
		}
		atomic.AddInt32(&m.processed, 1)

		m.reportCheckpoint(i, total, interval, delay)
		m.waitBetweenRequests(ctx, fetched, i, total, delay)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	processed, skipped, enriched, basic, failed, _ := m.GetProgress()
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Processed %d games: %d enriched, %d basic, %d skipped, %d failed", processed, enriched, basic, skipped, failed),
		Level:   LevelSuccess,
	})

	return nil
}

// saveCoverArt downloads and saves the header image beside the note.
// Failures degrade to a warning; the note itself is already written.
func (m *Manager) saveCoverArt(ctx context.Context, game model.Game, details *model.StoreDetails) {
	if !m.settings.SaveCoverArt || details.HeaderImageURL == "" {
		return
	}

	data, err := m.httpClient.DownloadBytes(ctx, details.HeaderImageURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art download failed for %s: %v", game.Title, err), Level: LevelWarning})
		return
	}

	cover, err := m.images.ResizeToJPEG(ctx, data, m.settings.CoverArtMaxSize)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art processing failed for %s: %v", game.Title, err), Level: LevelWarning})
		return
	}

	coverPath := filepath.Join(m.outputDir, game.CoverFileName())
	if err := ioutils.WriteFile(ctx, coverPath, cover); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art write failed for %s: %v", game.Title, err), Level: LevelWarning})
		return
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved cover art for %s", game.Title), Level: LevelVerbose})
}

// waitBetweenRequests enforces the fixed inter-request delay after a
// storefront fetch attempt. Games that made no request (skipped games
// never reach here; games without an app id pass fetched=false) incur no
// delay, and none is needed after the final game. The wait is
// cooperative: cancellation interrupts it immediately.
func (m *Manager) waitBetweenRequests(ctx context.Context, fetched bool, i, total int, delay time.Duration) {
	if !fetched || i == total-1 || delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

// reportCheckpoint emits a periodic progress line with percent complete
// and the estimated remaining wall-clock time, derived from the fixed
// per-request delay times the games still to process.
func (m *Manager) reportCheckpoint(i, total, interval int, delay time.Duration) {
	done := i + 1
	if interval == 0 || done == total || done%interval != 0 {
		return
	}

	remaining := total - done
	eta := time.Duration(remaining) * delay
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Progress: %d%% (%d/%d), about %s remaining", done*100/total, done, total, eta.Round(time.Second)),
		Level:   LevelInfo,
	})
}

// checkpointInterval computes how often periodic progress is reported:
// every ⌈n/10⌉ games for batches of 100 or more, every 10 games for
// batches of 10 to 99, and never for smaller batches (which still get
// per-game status lines).
func checkpointInterval(n int) int {
	switch {
	case n >= 100:
		return (n + 9) / 10
	case n >= 10:
		return 10
	default:
		return 0
	}
}

// GetProgress returns current counters: games processed so far, of which
// skipped, enriched, rendered with basic fields only, and failed writes,
// plus the batch total.
func (m *Manager) GetProgress() (processed, skipped, enriched, basic, failed int32, total int32) {
	return atomic.LoadInt32(&m.processed),
		atomic.LoadInt32(&m.skipped),
		atomic.LoadInt32(&m.enriched),
		atomic.LoadInt32(&m.basic),
		atomic.LoadInt32(&m.failed),
		atomic.LoadInt32(&m.totalGames)
}

// BatchPath returns the path of the batch file selected by Initialize.
func (m *Manager) BatchPath() string {
	return m.batchPath
}

// OutputDir returns the absolute output directory notes are written to.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// setState records the state of game i for concurrent readers.
func (m *Manager) setState(i int, s State) {
	atomic.StoreInt32(&m.states[i], int32(s))
}

// GameStates returns a snapshot of every game's current state, in batch
// order. Safe to call while Run is in progress.
func (m *Manager) GameStates() []State {
	states := make([]State, len(m.states))
	for i := range m.states {
		states[i] = State(atomic.LoadInt32(&m.states[i]))
	}
	return states
}

// GameTitles returns the titles of the loaded batch, in processing order.
func (m *Manager) GameTitles() []string {
	titles := make([]string, len(m.games))
	for i, game := range m.games {
		titles[i] = game.Title
	}
	return titles
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
