// Package tmdb is a thin client for the external movie-metadata API. Failures
// here are upstream errors and bubble up untouched.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrMovieNotFound = errors.New("movie not found")

type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
}

type searchResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// SearchMovies queries /search/movie when keyword is set and /movie/popular
// otherwise, mirroring the upstream API surface.
func (c *Client) SearchMovies(ctx context.Context, keyword string) ([]Movie, error) {
	endpoint := c.BaseURL + "/movie/popular"
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", "1")
	if keyword != "" {
		endpoint = c.BaseURL + "/search/movie"
		params.Set("query", keyword)
	}

	var out searchResponse
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) GetMovieByID(ctx context.Context, id int) (*Movie, error) {
	endpoint := c.BaseURL + "/movie/" + strconv.Itoa(id) + "?language=en-US"

	var out Movie
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrMovieNotFound
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: unexpected status %s", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: decode response: %w", err)
	}
	return nil
}
