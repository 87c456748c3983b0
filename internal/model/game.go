package model

import (
	"regexp"
	"strings"
	"time"
)

// Game represents one entry in a scraped Steam library batch.
//
// A Game is immutable once loaded from the batch file. Two fields use a
// tri-state convention that must survive until render time:
//   - PlaytimeHours is nil when the library page reported no playtime at all,
//     which is distinct from a recorded playtime of zero.
//   - LastPlayed is nil when the game has never been launched, which is
//     distinct from a Unix timestamp of zero.
//
// Example:
//
//	game := model.Game{
//	    Title:                "Portal 2",
//	    AppID:                620,
//	    PlaytimeHours:        model.Float(21.4),
//	    LastPlayed:           model.Int64(1697846400),
//	    AchievementsUnlocked: 38,
//	    AchievementsTotal:    51,
//	}
//	fmt.Println(game.NoteFileName()) // "Portal2.md"
type Game struct {
	// Title is the display name from the library page.
	Title string

	// AppID is the Steam application id. Zero means the id could not be
	// scraped; such games are never sent to the storefront API.
	AppID int64

	// PlaytimeHours is the recorded playtime in hours, or nil if absent.
	PlaytimeHours *float64

	// LastPlayed is the Unix timestamp of the last session, or nil if the
	// game has never been played.
	LastPlayed *int64

	// AchievementsUnlocked is the number of unlocked achievements.
	AchievementsUnlocked int

	// AchievementsTotal is the total number of achievements. Zero when the
	// game has none.
	AchievementsTotal int
}

// Float returns a pointer to v, for building tri-state playtime values.
func Float(v float64) *float64 { return &v }

// Int64 returns a pointer to v, for building tri-state timestamp values.
func Int64(v int64) *int64 { return &v }

// Played reports whether the game has ever been launched: either a last
// played timestamp exists or a non-zero playtime was recorded.
func (g *Game) Played() bool {
	if g.LastPlayed != nil {
		return true
	}
	return g.PlaytimeHours != nil && *g.PlaytimeHours > 0
}

// CompletionRatio returns the achievement completion as a value in [0, 1].
// Games without achievements report 0.
func (g *Game) CompletionRatio() float64 {
	if g.AchievementsTotal == 0 {
		return 0
	}
	return float64(g.AchievementsUnlocked) / float64(g.AchievementsTotal)
}

// LastPlayedTime returns the last played moment in UTC and whether one exists.
func (g *Game) LastPlayedTime() (time.Time, bool) {
	if g.LastPlayed == nil {
		return time.Time{}, false
	}
	return time.Unix(*g.LastPlayed, 0).UTC(), true
}

// NoteFileName returns the deterministic note filename for this game:
// the sanitized title plus the markdown extension.
func (g *Game) NoteFileName() string {
	return SanitizeTitle(g.Title) + ".md"
}

// CoverFileName returns the filename used when saving the game's cover art
// beside its note.
func (g *Game) CoverFileName() string {
	return SanitizeTitle(g.Title) + ".jpg"
}

var unsafeTitleChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeTitle strips every character that is unsafe in a filename,
// including whitespace, so that a title maps to exactly one artifact name.
//
// Example:
//
//	SanitizeTitle("Foo: Bar")                 // "FooBar"
//	SanitizeTitle("Half-Life 2: Episode One") // "Half-Life2EpisodeOne"
func SanitizeTitle(title string) string {
	name := unsafeTitleChars.ReplaceAllString(title, "")
	// Windows rejects names ending in dots; the regexp already removed dots,
	// but guard against future relaxation.
	name = strings.TrimRight(name, ".")
	if len(name) > 120 {
		name = name[:120]
	}
	if name == "" {
		name = "Untitled"
	}
	return name
}
