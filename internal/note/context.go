package note

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/template"
)

// BuildContext constructs the evaluation context for rendering one game's
// note. The context is ephemeral: it is rebuilt fresh for every game and
// never persisted.
//
// Bindings exposed to templates:
//
//	game.title, game.app_id, game.playtime_hours, game.last_played,
//	game.achievements_unlocked, game.achievements_total
//	store.header_image, store.short_description, store.developers,
//	store.publishers, store.release_date, store.coming_soon,
//	store.metacritic, store.genres, store.categories
//	enriched, played, completion, release_date, today
//
// Tri-state game fields map to null when absent, so templates render them
// as empty rather than zero. When details is nil the store scalars are
// null and the store lists are empty, which keeps slots like
// join(", ", store.developers) rendering cleanly on a degraded note.
//
// now is the run's start time; passing it in keeps rendering a pure
// function of its inputs.
func BuildContext(game model.Game, details *model.StoreDetails, now time.Time) *hcl.EvalContext {
	vars := map[string]cty.Value{
		"game": cty.ObjectVal(map[string]cty.Value{
			"title":                 cty.StringVal(game.Title),
			"app_id":                cty.NumberIntVal(game.AppID),
			"playtime_hours":        floatOrNull(game.PlaytimeHours),
			"last_played":           intOrNull(game.LastPlayed),
			"achievements_unlocked": cty.NumberIntVal(int64(game.AchievementsUnlocked)),
			"achievements_total":    cty.NumberIntVal(int64(game.AchievementsTotal)),
		}),
		"store":        storeValue(details),
		"enriched":     cty.BoolVal(details != nil),
		"played":       cty.BoolVal(game.Played()),
		"completion":   cty.NumberFloatVal(game.CompletionRatio()),
		"release_date": cty.StringVal(normalizedReleaseDate(details)),
		"today":        cty.StringVal(now.UTC().Format("2006-01-02")),
	}

	funcs := template.BaseFunctions()
	for name, fn := range HelperFunctions() {
		funcs[name] = fn
	}

	return &hcl.EvalContext{
		Variables: vars,
		Functions: funcs,
	}
}

// storeValue maps storefront details to the store object. A nil details
// value yields null scalars and empty lists rather than a null object, so
// attribute access on an unenriched game degrades to empty output instead
// of an evaluation error.
func storeValue(details *model.StoreDetails) cty.Value {
	if details == nil {
		return cty.ObjectVal(map[string]cty.Value{
			"header_image":      cty.NullVal(cty.String),
			"short_description": cty.NullVal(cty.String),
			"developers":        cty.ListValEmpty(cty.String),
			"publishers":        cty.ListValEmpty(cty.String),
			"release_date":      cty.NullVal(cty.String),
			"coming_soon":       cty.False,
			"metacritic":        cty.NullVal(cty.Number),
			"genres":            cty.ListValEmpty(cty.String),
			"categories":        cty.ListValEmpty(cty.String),
		})
	}

	metacritic := cty.NullVal(cty.Number)
	if details.MetacriticScore != nil {
		metacritic = cty.NumberIntVal(int64(*details.MetacriticScore))
	}

	return cty.ObjectVal(map[string]cty.Value{
		"header_image":      cty.StringVal(details.HeaderImageURL),
		"short_description": cty.StringVal(details.ShortDescription),
		"developers":        stringList(details.Developers),
		"publishers":        stringList(details.Publishers),
		"release_date":      cty.StringVal(details.ReleaseDate),
		"coming_soon":       cty.BoolVal(details.ComingSoon),
		"metacritic":        metacritic,
		"genres":            stringList(details.Genres),
		"categories":        stringList(details.Categories),
	})
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}

func floatOrNull(v *float64) cty.Value {
	if v == nil {
		return cty.NullVal(cty.Number)
	}
	return cty.NumberFloatVal(*v)
}

func intOrNull(v *int64) cty.Value {
	if v == nil {
		return cty.NullVal(cty.Number)
	}
	return cty.NumberIntVal(*v)
}

func normalizedReleaseDate(details *model.StoreDetails) string {
	if details == nil {
		return ""
	}
	return NormalizeReleaseDate(details.ReleaseDate)
}

// storefront date layouts, most common first
var releaseDateLayouts = []string{
	"2 Jan, 2006", // "21 Oct, 2015"
	"2 Jan 2006",  // "21 Oct 2015"
	"Jan 2, 2006", // "Oct 21, 2015"
	"Jan 2006",    // "Oct 2015"
	"2006",        // year-only listings
}

// NormalizeReleaseDate converts a storefront release date string to ISO
// form ("2006-01-02") when one of the known layouts matches, or returns
// the raw string unchanged when none does. The empty string maps to "".
func NormalizeReleaseDate(raw string) string {
	if raw == "" {
		return ""
	}

	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}
