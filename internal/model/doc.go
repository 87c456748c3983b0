// Package model defines the core data structures used throughout
// the Steam library notes generator.
//
// # Game
//
// Game represents one scraped library entry with tri-state playtime and
// last-played fields (nil means absent/never, distinct from zero):
//
//	game := model.Game{Title: "Portal 2", AppID: 620}
//	fmt.Println(game.NoteFileName()) // "Portal2.md"
//	fmt.Println(game.Played())       // false
//
// # StoreDetails
//
// StoreDetails is the optional bag of storefront metadata attached to a
// game by the enrichment client. It is nil when the fetch failed or the
// game has no usable app id, never partially populated.
//
// # Filename Sanitization
//
// SanitizeTitle maps a game title to a deterministic, path-safe artifact
// name by stripping unsafe characters and whitespace:
//
//	model.SanitizeTitle("Foo: Bar") // "FooBar"
package model
