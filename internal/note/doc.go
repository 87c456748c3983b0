// Package note turns games into markdown notes: it builds the per-game
// template evaluation context, owns the built-in default template and
// its helper functions, and decides when an existing note can be skipped.
//
// # Rendering a Note
//
//	evalCtx := note.BuildContext(game, storeDetails, runStart)
//	text, diags := engine.Render(note.DefaultTemplate, evalCtx)
//
// # Skip Detection
//
//	detector := note.NewDetector()
//	if detector.ShouldSkip(existingText) {
//	    // already enriched, leave untouched
//	}
//
// The skip marker is the enriched field in the note's YAML frontmatter,
// with a textual store-link fallback for notes written by older versions.
package note
