package model

// StoreDetails holds the supplementary metadata fetched from the Steam
// storefront for one app id.
//
// A StoreDetails value is all-or-nothing: the enrichment client either
// returns a fully populated value from a successful response or nil.
// Callers must treat nil as a normal outcome (game rendered with basic
// fields only), never as an error.
type StoreDetails struct {
	// HeaderImageURL is the URL of the store header/capsule image.
	HeaderImageURL string

	// ShortDescription is the one-paragraph store blurb.
	ShortDescription string

	// Developers lists the developing studios.
	Developers []string

	// Publishers lists the publishing companies.
	Publishers []string

	// ReleaseDate is the raw storefront release date string,
	// e.g. "21 Oct 2015". See note.NormalizeReleaseDate for the ISO form.
	ReleaseDate string

	// ComingSoon is true for unreleased titles.
	ComingSoon bool

	// MetacriticScore is the Metacritic rating, or nil when the store page
	// carries none.
	MetacriticScore *int

	// Genres lists the store genres, e.g. "Action", "Indie".
	Genres []string

	// Categories lists the store feature tags, e.g. "Single-player",
	// "Steam Achievements".
	Categories []string
}
