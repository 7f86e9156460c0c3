package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-redis/redis/v9"
	"github.com/pkg/errors"
	"seriestracker/internal/misc"
)

// OMDBBaseURL is the metadata provider endpoint.
const OMDBBaseURL = "https://www.omdbapi.com/"

type OMDBSearchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

type OMDBSearchResponse struct {
	Search       []OMDBSearchItem `json:"Search"`
	TotalResults string           `json:"totalResults"`
	Response     string           `json:"Response"`
	Error        string           `json:"Error"`
}

type OMDBTitleResponse struct {
	Title        string           `json:"Title"`
	ImdbID       string           `json:"imdbID"`
	Year         string           `json:"Year"`
	Poster       string           `json:"Poster"`
	Plot         string           `json:"Plot"`
	Rated        string           `json:"Rated"`
	Runtime      string           `json:"Runtime"`
	Type         string           `json:"Type"`
	TotalSeasons string           `json:"totalSeasons"`
	Actors       string           `json:"Actors"`
	Released     string           `json:"Released"`
	Genre        string           `json:"Genre"`
	Director     string           `json:"Director"`
	Writer       string           `json:"Writer"`
	Language     string           `json:"Language"`
	Country      string           `json:"Country"`
	Awards       string           `json:"Awards"`
	Ratings      []OMDBRating     `json:"Ratings"`
	Metascore    string           `json:"Metascore"`
	ImdbRating   string           `json:"imdbRating"`
	ImdbVotes    string           `json:"imdbVotes"`
	Response     string           `json:"Response"`
	Error        string           `json:"Error"`
}

type OMDBRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type OMDBSeasonEpisode struct {
	Title      string `json:"Title"`
	Released   string `json:"Released"`
	Episode    string `json:"Episode"`
	ImdbID     string `json:"imdbID"`
	ImdbRating string `json:"imdbRating"`
}

type OMDBSeasonResponse struct {
	Title        string              `json:"Title"`
	Season       string              `json:"Season"`
	TotalSeasons string              `json:"totalSeasons"`
	Episodes     []OMDBSeasonEpisode `json:"Episodes"`
	Response     string              `json:"Response"`
	Error        string              `json:"Error"`
}

// OMDBSearch queries the provider for series matching q, returning at most 5
// matches. A blank query or a missing credential yields an empty result, the
// provider's no-match response likewise; only transport failures return an
// error.
func (c Client) OMDBSearch(ctx context.Context, q string) ([]OMDBSearchItem, error) {
	q = strings.TrimSpace(q)
	if q == "" || c.OMDBAPIKey == "" {
		return nil, nil
	}

	var searchResp OMDBSearchResponse
	if err := c.omdbGet(ctx, url.Values{"type": {"series"}, "s": {q}}, &searchResp); err != nil {
		return nil, err
	}
	if searchResp.Response != "True" {
		return nil, nil
	}
	is := searchResp.Search
	if len(is) > 5 {
		is = is[:5]
	}
	return is, nil
}

// OMDBGetTitle fetches the full title record for an id, or nil when the
// provider has no match.
func (c Client) OMDBGetTitle(ctx context.Context, imdbID string) (*OMDBTitleResponse, error) {
	if c.OMDBAPIKey == "" || imdbID == "" {
		return nil, nil
	}

	cacheKey := "OGT-" + imdbID
	var titleResp OMDBTitleResponse
	if c.cacheGet(ctx, cacheKey, &titleResp) {
		return &titleResp, nil
	}

	titleResp = OMDBTitleResponse{}
	if err := c.omdbGet(ctx, url.Values{"i": {imdbID}, "plot": {"short"}}, &titleResp); err != nil {
		return nil, err
	}
	if titleResp.Response != "True" {
		return nil, nil
	}
	c.cacheSet(ctx, cacheKey, titleResp)
	return &titleResp, nil
}

// OMDBGetSeason fetches one season's episode list, or nil when the provider
// has no match.
func (c Client) OMDBGetSeason(ctx context.Context, imdbID string, season int) (*OMDBSeasonResponse, error) {
	if c.OMDBAPIKey == "" || imdbID == "" {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("OGS-%s-%d", imdbID, season)
	var seasonResp OMDBSeasonResponse
	if c.cacheGet(ctx, cacheKey, &seasonResp) {
		return &seasonResp, nil
	}

	seasonResp = OMDBSeasonResponse{}
	if err := c.omdbGet(ctx, url.Values{"i": {imdbID}, "Season": {fmt.Sprint(season)}}, &seasonResp); err != nil {
		return nil, err
	}
	if seasonResp.Response != "True" {
		return nil, nil
	}
	c.cacheSet(ctx, cacheKey, seasonResp)
	return &seasonResp, nil
}

func (c Client) omdbGet(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.OMDBAPIKey)
	apiURL := OMDBBaseURL + "?" + params.Encode()

	req, err := newRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return errors.Wrapf(err, "error creating request from apiURL: %s", apiURL)
	}
	resp, err := c.Client.Do(req.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "error doing request: %+v", req)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.Errorf("omdbGet: error closing response body on request to url: %s, err: %v", req.URL, err)
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(nil, resp.Body, 300000))
	if err != nil {
		return errors.Wrapf(err, "error reading OMDBAPI response body, apiURL: %s", apiURL)
	}
	if err = json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "error decoding OMDBAPI response body, apiURL: %s, body:\n%s",
			apiURL, misc.StringLimit(string(body), 1000))
	}
	return nil
}

func (c Client) cacheGet(ctx context.Context, key string, out any) bool {
	if c.Redis == nil {
		return false
	}
	cached, err := c.Redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.Logger.Errorf("cacheGet: Error getting cache, key: %s, err: %v", key, err)
		}
		return false
	}
	if err = json.Unmarshal([]byte(cached), out); err != nil {
		c.Logger.Errorf("cacheGet: Error unmarshalling cache, key: %s, err: %v", key, err)
		return false
	}
	c.Logger.Infof("cacheGet: Cache found, key: %s", key)
	return true
}

func (c Client) cacheSet(ctx context.Context, key string, v any) {
	if c.Redis == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.Logger.Errorf("cacheSet: Error marshalling cache value, key: %s, err: %v", key, err)
		return
	}
	if err = c.Redis.Set(ctx, key, raw, c.OMDBCacheTTL).Err(); err != nil {
		c.Logger.Errorf("cacheSet: Error setting cache, key: %s, err: %v", key, err)
	}
}
