// Package library locates and parses scraped Steam library batch files.
//
// The browser-automation scraper (a separate tool) writes one JSON batch
// per scan into a known directory. This package finds the newest batch
// and turns it into an ordered []model.Game:
//
//	loc := library.NewLocator()
//	path, err := loc.FindLatest(settings.LibraryPath, settings.BatchFilePattern)
//	if errors.Is(err, library.ErrNoBatchFound) {
//	    fmt.Println("Run the library scan first")
//	    return
//	}
//	games, err := loc.Load(path)
//
// Batch order is preserved: the pipeline processes games exactly in the
// order the scraper recorded them.
package library
