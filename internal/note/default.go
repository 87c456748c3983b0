package note

// DefaultTemplate is the built-in note template, used whenever the
// settings do not name a readable override file.
//
// The YAML frontmatter block doubles as the structured skip marker: the
// enriched field records whether storefront data made it into the note,
// and the Detector reads it back on the next run.
const DefaultTemplate = `---
title: ${yaml_string(game.title)}
app_id: ${game.app_id}
enriched: ${enriched}
generated: ${today}
tags: [steam, game]
---

# ${game.title}

${enriched ? format("![cover](%s)", store.header_image) : ""}

${coalesce(store.short_description, "")}

- **Developers:** ${join(", ", store.developers)}
- **Publishers:** ${join(", ", store.publishers)}
- **Released:** ${release_date}
- **Metacritic:** ${store.metacritic}
- **Genres:** ${join(", ", store.genres)}
- **Features:** ${join(", ", store.categories)}

## Play history

- **Playtime:** ${format_playtime(game.playtime_hours)}
- **Last played:** ${played ? format_date(game.last_played) : "Never played"}
- **Achievements:** ${game.achievements_unlocked}/${game.achievements_total} (${format("%.0f%%", completion * 100)})

${game.app_id > 0 ? link("Store page", format("https://store.steampowered.com/app/%d/", game.app_id)) : ""}
`
