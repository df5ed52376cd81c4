// Package omdb is a minimal client for the OMDb API, used to resolve
// a 0-10 rating for a movie title.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Etko77/MovieLibrary/pkg/utils"

	"go.uber.org/zap"
)

const (
	sourceIMDB           = "Internet Movie Database"
	sourceRottenTomatoes = "Rotten Tomatoes"
	sourceMetacritic     = "Metacritic"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zap.Logger
}

func NewClient(config utils.OMDBConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		log:        log.With(zap.String("client", "omdb")),
	}
}

type payload struct {
	Response   string         `json:"Response"`
	Error      string         `json:"Error"`
	ImdbRating string         `json:"imdbRating"`
	Ratings    []sourceRating `json:"Ratings"`
}

type sourceRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// FetchRating looks a title up by exact match, optionally filtered by
// release year. Returns (rating, true, nil) when a usable rating was
// resolved, (0, false, nil) when the provider does not know the title
// or carries no usable rating for it, and an error for transport or
// payload failures.
func (c *Client) FetchRating(ctx context.Context, title string, year *int) (float64, bool, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	q.Set("type", "movie")
	if year != nil {
		q.Set("y", strconv.Itoa(*year))
	}

	reqURL := c.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, false, fmt.Errorf("omdb: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("omdb: call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("omdb: unexpected status %d", resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, false, fmt.Errorf("omdb: decode response: %w", err)
	}

	if body.Response == "False" {
		c.log.Debug("OMDb reported no match",
			zap.String("title", title),
			zap.String("omdb_error", body.Error),
		)
		return 0, false, nil
	}

	// Direct rating field, already on the 0-10 scale
	if body.ImdbRating != "" && body.ImdbRating != "N/A" {
		rating, err := strconv.ParseFloat(body.ImdbRating, 64)
		if err != nil {
			return 0, false, fmt.Errorf("omdb: malformed imdbRating %q: %w", body.ImdbRating, err)
		}
		return rating, true, nil
	}

	return ratingFromSources(body.Ratings)
}

// ratingFromSources scans the per-source ratings list in fixed
// preference order: the X/10 community scale first, then the
// percentage scale, then the 0-100 critic aggregate. The first
// matching source wins; remaining entries are ignored.
func ratingFromSources(ratings []sourceRating) (float64, bool, error) {
	for _, source := range []string{sourceIMDB, sourceRottenTomatoes, sourceMetacritic} {
		for _, entry := range ratings {
			if entry.Source != source {
				continue
			}
			rating, err := normalize(source, entry.Value)
			if err != nil {
				return 0, false, err
			}
			return rating, true, nil
		}
	}

	return 0, false, nil
}

func normalize(source, value string) (float64, error) {
	switch source {
	case sourceIMDB:
		// "8.5/10"
		rating, err := strconv.ParseFloat(strings.SplitN(value, "/", 2)[0], 64)
		if err != nil {
			return 0, fmt.Errorf("omdb: malformed %s value %q: %w", source, value, err)
		}
		return rating, nil

	case sourceRottenTomatoes:
		// "93%"
		percentage, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return 0, fmt.Errorf("omdb: malformed %s value %q: %w", source, value, err)
		}
		return float64(percentage) / 10.0, nil

	case sourceMetacritic:
		// "80/100"
		rating, err := strconv.ParseFloat(strings.SplitN(value, "/", 2)[0], 64)
		if err != nil {
			return 0, fmt.Errorf("omdb: malformed %s value %q: %w", source, value, err)
		}
		return rating / 10.0, nil
	}

	return 0, fmt.Errorf("omdb: unknown rating source %q", source)
}
