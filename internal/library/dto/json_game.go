package dto

import (
	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
)

// JSONGame represents one game entry as written by the library scraper.
//
// PlaytimeHours and LastPlayed are pointers because the scraper omits
// them entirely when the library page shows no playtime or no last-played
// date. That absence is meaningful and is carried through to the model
// rather than collapsed to zero.
type JSONGame struct {
	Title                string   `json:"title"`
	AppID                int64    `json:"app_id"`
	PlaytimeHours        *float64 `json:"playtime_hours"`
	LastPlayed           *int64   `json:"last_played"`
	AchievementsUnlocked int      `json:"achievements_unlocked"`
	AchievementsTotal    int      `json:"achievements_total"`
}

// ToGame converts a JSONGame to a model.Game.
func (jg *JSONGame) ToGame() model.Game {
	return model.Game{
		Title:                jg.Title,
		AppID:                jg.AppID,
		PlaytimeHours:        jg.PlaytimeHours,
		LastPlayed:           jg.LastPlayed,
		AchievementsUnlocked: jg.AchievementsUnlocked,
		AchievementsTotal:    jg.AchievementsTotal,
	}
}
