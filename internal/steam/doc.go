// Package steam fetches supplementary game metadata from the Steam
// storefront appdetails API.
//
// # Contract
//
// Fetch(ctx, appID) returns either a fully populated *model.StoreDetails
// or nil. It never returns an error and never returns partial data:
//
//	client := steam.NewClient("us", "en")
//	details := client.Fetch(ctx, game.AppID)
//
// Nil is the normal outcome for games without a scraped app id, delisted
// titles (success:false), network failures, and malformed responses.
//
// # Rate Limits
//
// The client performs exactly one request per call and no retries. The
// pipeline spaces calls with a fixed delay; keeping retries out of this
// package keeps the outbound request rate fully under the pipeline's
// control.
package steam
