package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/YourPlantDad/SteamLibraryScraper/internal/library/dto"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
)

// ErrNoBatchFound is returned when no library batch file matches the
// configured pattern in the scan directory.
//
// This typically occurs when:
//   - The scraper has never been run
//   - The scan directory path is misconfigured
//
// It is a fatal condition: without a batch there is nothing to process.
var ErrNoBatchFound = errors.New("no library batch file found")

// Locator finds and parses scraped library batch files.
//
// The scraper writes one JSON batch per scan, named like
// "games_2024-11-03.json". The Locator selects the most recently
// modified batch in the scan directory and parses it into an ordered
// list of games. The order of the batch file is preserved exactly; the
// pipeline processes games in this order.
//
// Example usage:
//
//	loc := library.NewLocator()
//	path, err := loc.FindLatest("/scans", "games_*.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	games, err := loc.Load(path)
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// FindLatest returns the path of the most recently modified batch file
// matching pattern in dir.
//
// Returns ErrNoBatchFound when no file matches.
func (l *Locator) FindLatest(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("invalid batch pattern %q: %w", pattern, err)
	}

	var latest string
	var latestMod int64
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = match
			latestMod = info.ModTime().UnixNano()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoBatchFound, dir)
	}

	return latest, nil
}

// Load parses a batch file into games, preserving file order.
func (l *Locator) Load(path string) ([]model.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read batch %s: %w", path, err)
	}

	var entries []dto.JSONGame
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("could not parse batch %s: %w", path, err)
	}

	games := make([]model.Game, 0, len(entries))
	for _, entry := range entries {
		games = append(games, entry.ToGame())
	}

	return games, nil
}
