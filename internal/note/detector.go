package note

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the subset of note metadata the skip check reads.
type frontmatter struct {
	Enriched bool  `yaml:"enriched"`
	AppID    int64 `yaml:"app_id"`
}

// Detector decides whether an existing note already carries storefront
// enrichment, making re-processing unnecessary.
//
// The primary check is structural: the note's leading YAML frontmatter is
// parsed and the note is skipped when it declares enriched: true. This
// decouples skip detection from the body template, so users can reshape
// the note layout without invalidating prior runs.
//
// Notes written before the frontmatter marker existed fall back to a
// textual heuristic: a store page link with an app id in the body. That
// check is tied to the old template's shape; if such a note was produced
// by a template without the link, it is re-processed. Accepted
// limitation. The heuristic never applies to notes that open a
// frontmatter fence: those came from the current template, and an
// unparseable block means re-process, not skip.
//
// Example:
//
//	detector := note.NewDetector()
//	if text, ok := ioutils.ReadFileIfExists(notePath); ok && detector.ShouldSkip(text) {
//	    // leave the note untouched
//	}
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// ShouldSkip reports whether the existing note text already carries the
// enrichment marker.
func (d *Detector) ShouldSkip(noteText string) bool {
	if fm, ok := parseFrontmatter(noteText); ok {
		return fm.Enriched
	}
	// A note opening a frontmatter fence came from the frontmatter
	// template. If its block does not parse, re-process it; the legacy
	// heuristic would match the store link present in every note with an
	// app id and lock an unenriched note out of enrichment forever.
	if strings.HasPrefix(noteText, "---\n") {
		return false
	}
	return hasLegacyMarker(noteText)
}

// parseFrontmatter extracts and parses a leading YAML frontmatter block.
// The second return value is false when the note has no such block or it
// cannot be parsed.
func parseFrontmatter(noteText string) (frontmatter, bool) {
	const fence = "---"

	rest, found := strings.CutPrefix(noteText, fence+"\n")
	if !found {
		return frontmatter{}, false
	}

	body, _, found := strings.Cut(rest, "\n"+fence)
	if !found {
		return frontmatter{}, false
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(body), &fm); err != nil {
		return frontmatter{}, false
	}

	return fm, true
}

// hasLegacyMarker checks for a populated store page reference, the marker
// older notes carried instead of frontmatter.
func hasLegacyMarker(noteText string) bool {
	const prefix = "https://store.steampowered.com/app/"

	idx := strings.Index(noteText, prefix)
	if idx == -1 {
		return false
	}

	// The reference counts only when an app id actually follows.
	tail := noteText[idx+len(prefix):]
	return len(tail) > 0 && tail[0] >= '1' && tail[0] <= '9'
}
