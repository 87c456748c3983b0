package dto

import (
	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
)

// JSONAppEntry is one entry in the appdetails response envelope.
//
// The storefront keys the envelope by app id and flags failures
// explicitly:
//
//	{"620": {"success": true, "data": {...}}}
//	{"999999": {"success": false}}
type JSONAppEntry struct {
	Success bool         `json:"success"`
	Data    *JSONAppData `json:"data"`
}

// JSONAppData is the metadata object inside a successful envelope entry.
type JSONAppData struct {
	HeaderImage      string           `json:"header_image"`
	ShortDescription string           `json:"short_description"`
	Developers       []string         `json:"developers"`
	Publishers       []string         `json:"publishers"`
	ReleaseDate      *JSONReleaseDate `json:"release_date"`
	Metacritic       *JSONMetacritic  `json:"metacritic"`
	Genres           []JSONDescriptor `json:"genres"`
	Categories       []JSONDescriptor `json:"categories"`
}

// JSONReleaseDate carries the storefront release date.
type JSONReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// JSONMetacritic carries the Metacritic rating block.
type JSONMetacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// JSONDescriptor is the shared shape of genre and category entries.
// The id field is omitted: it is a string for genres and a number for
// categories, and only the description is used.
type JSONDescriptor struct {
	Description string `json:"description"`
}

// ToStoreDetails converts a successful envelope entry to model.StoreDetails.
func (d *JSONAppData) ToStoreDetails() *model.StoreDetails {
	details := &model.StoreDetails{
		HeaderImageURL:   d.HeaderImage,
		ShortDescription: d.ShortDescription,
		Developers:       d.Developers,
		Publishers:       d.Publishers,
	}

	if d.ReleaseDate != nil {
		details.ReleaseDate = d.ReleaseDate.Date
		details.ComingSoon = d.ReleaseDate.ComingSoon
	}

	if d.Metacritic != nil {
		score := d.Metacritic.Score
		details.MetacriticScore = &score
	}

	for _, g := range d.Genres {
		details.Genres = append(details.Genres, g.Description)
	}
	for _, c := range d.Categories {
		details.Categories = append(details.Categories, c.Description)
	}

	return details
}
