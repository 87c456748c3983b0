package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	httpclient "github.com/YourPlantDad/SteamLibraryScraper/internal/http"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/model"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/steam/dto"
)

const defaultBaseURL = "https://store.steampowered.com/api/appdetails"

// Client fetches supplementary metadata from the Steam storefront API.
//
// Fetch never returns an error: every failure mode (missing app id,
// transport error, non-200 status, malformed body, success:false
// envelope) uniformly yields nil, which callers treat as "no store data"
// and render the game with basic fields only. One attempt is made per
// game per run; a later re-run of the whole batch is the only retry.
//
// Example usage:
//
//	client := steam.NewClient("us", "en")
//	details := client.Fetch(ctx, 620)
//	if details == nil {
//	    // render with basic fields only
//	}
type Client struct {
	httpClient  *httpclient.Client
	baseURL     string
	countryCode string
	language    string
}

// NewClient creates a storefront client.
//
// countryCode and language select the storefront region and response
// language, e.g. "us" and "en".
func NewClient(countryCode, language string) *Client {
	return &Client{
		httpClient:  httpclient.NewClient(),
		baseURL:     defaultBaseURL,
		countryCode: countryCode,
		language:    language,
	}
}

// Fetch returns store details for an app id, or nil when no usable data
// could be obtained.
//
// An appID of zero short-circuits to nil without any network request.
func (c *Client) Fetch(ctx context.Context, appID int64) *model.StoreDetails {
	if appID <= 0 {
		return nil
	}

	url := fmt.Sprintf("%s?appids=%d&cc=%s&l=%s", c.baseURL, appID, c.countryCode, c.language)
	body, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil
	}

	var envelope map[string]dto.JSONAppEntry
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	entry, ok := envelope[strconv.FormatInt(appID, 10)]
	if !ok || !entry.Success || entry.Data == nil {
		return nil
	}

	return entry.Data.ToStoreDetails()
}
