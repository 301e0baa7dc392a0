package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/avelasq/moviefavs/internal/models"
)

const favoritesIndex = "favorites"

// FavoritesIndex mirrors the favorites table into Elasticsearch so that the
// search endpoint can do fuzzy matching. A nil *FavoritesIndex disables
// indexing and callers fall back to the database.
type FavoritesIndex struct {
	ES *elasticsearch.Client
}

func NewFavoritesIndex(es *elasticsearch.Client) *FavoritesIndex {
	if es == nil {
		return nil
	}
	return &FavoritesIndex{ES: es}
}

type favoriteDoc struct {
	UserID   uint   `json:"user_id"`
	MovieID  int    `json:"movie_id"`
	Title    string `json:"title"`
	Overview string `json:"overview"`
}

func docID(userID uint, movieID int) string {
	return strconv.FormatUint(uint64(userID), 10) + "-" + strconv.Itoa(movieID)
}

func (x *FavoritesIndex) Index(ctx context.Context, f *models.Favorite) error {
	if x == nil {
		return nil
	}
	doc := favoriteDoc{
		UserID:  f.UserID,
		MovieID: f.MovieID,
		Title:   f.Title,
	}
	if f.Overview != nil {
		doc.Overview = *f.Overview
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("index favorite: %w", err)
	}

	res, err := x.ES.Index(
		favoritesIndex,
		&buf,
		x.ES.Index.WithDocumentID(docID(f.UserID, f.MovieID)),
		x.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index favorite: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index favorite: %s", res.Status())
	}
	return nil
}

func (x *FavoritesIndex) Delete(ctx context.Context, userID uint, movieID int) error {
	if x == nil {
		return nil
	}
	res, err := x.ES.Delete(
		favoritesIndex,
		docID(userID, movieID),
		x.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete favorite from index: %w", err)
	}
	defer res.Body.Close()
	// 404 just means the doc was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete favorite from index: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over the user's own favorites and returns
// matching movie ids, best first.
func (x *FavoritesIndex) Search(ctx context.Context, userID uint, query string) ([]int, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "overview"},
						"fuzziness": "AUTO",
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search favorites: %w", err)
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(favoritesIndex),
		x.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search favorites: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search favorites: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source favoriteDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("search favorites: decode: %w", err)
	}

	ids := make([]int, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		ids[i] = hit.Source.MovieID
	}
	return ids, nil
}
