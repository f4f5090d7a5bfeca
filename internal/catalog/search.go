package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dogmatch-workers/internal/scoring"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrIndexNotFound = errors.New("search index not found")
	ErrMissingIndex  = errors.New("index name is required")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SearchFilters narrow a full-text search. Zero values are ignored.
type SearchFilters struct {
	Size             scoring.Size       `json:"size,omitempty"`
	BreedGroup       scoring.BreedGroup `json:"breedGroup,omitempty"`
	Shedding         scoring.Shedding   `json:"shedding,omitempty"`
	HealthRisk       scoring.HealthRisk `json:"healthRisk,omitempty"`
	GoodWithChildren *bool              `json:"goodWithChildren,omitempty"`
	MaxExerciseHours *float64           `json:"maxExerciseHours,omitempty"`
	MinIntelligence  int                `json:"minIntelligence,omitempty"`
	SortBy           string             `json:"sortBy,omitempty"`
}

type SearchResult struct {
	Breeds    []scoring.Breed
	TotalHits int
	MaxScore  float64
	Took      int
}

// SearchIndex stores breeds in Elasticsearch for text and filter search.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchIndex(client *elasticsearch.Client, index string) *SearchIndex {
	return &SearchIndex{client: client, index: index}
}

func (s *SearchIndex) Index() string {
	return s.index
}

// IndexBreed writes b under its ID, replacing any previous document.
func (s *SearchIndex) IndexBreed(ctx context.Context, b scoring.Breed) error {
	if s.index == "" {
		return ErrMissingIndex
	}
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode breed %s: %w", b.Name, err)
	}

	id := b.ID
	if id == "" {
		id = b.Name
	}
	res, err := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index breed %s: %w", b.Name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index breed %s: %s", b.Name, res.Status())
	}
	return nil
}

// IndexAll indexes every breed, stopping at the first failure.
func (s *SearchIndex) IndexAll(ctx context.Context, breeds []scoring.Breed) error {
	for _, b := range breeds {
		if err := s.IndexBreed(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// Search runs a multi_match on text (match_all when empty) with the filters
// applied as exact terms. size is clamped to [1, MaxPageSize].
func (s *SearchIndex) Search(ctx context.Context, text string, filters SearchFilters, from, size int) (*SearchResult, error) {
	if s.index == "" {
		return nil, ErrMissingIndex
	}
	if from < 0 {
		from = 0
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	body, err := json.Marshal(BuildSearchBody(text, filters))
	if err != nil {
		return nil, err
	}

	res, err := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		From:  &from,
		Size:  &size,
	}.Do(ctx, s.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &SearchResult{
		Breeds:    make([]scoring.Breed, 0, len(r.Hits.Hits)),
		TotalHits: r.Hits.Total.Value,
		Took:      r.Took,
	}
	if r.Hits.MaxScore != nil {
		result.MaxScore = *r.Hits.MaxScore
	}
	for _, hit := range r.Hits.Hits {
		result.Breeds = append(result.Breeds, hit.Source)
	}
	return result, nil
}

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Source scoring.Breed `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildSearchBody returns the request body Search sends.
func BuildSearchBody(text string, f SearchFilters) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{}

	if text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"name^3", "description^2", "temperament"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	term := func(field, value string) {
		if value != "" {
			filter = append(filter, map[string]interface{}{
				"term": map[string]interface{}{field: value},
			})
		}
	}
	term("size", string(f.Size))
	term("breedGroup", string(f.BreedGroup))
	term("shedding", string(f.Shedding))
	term("healthRisk", string(f.HealthRisk))

	if f.GoodWithChildren != nil {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"goodWithChildren": *f.GoodWithChildren},
		})
	}
	if f.MaxExerciseHours != nil {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{
				"exerciseNeeds": map[string]interface{}{"lte": *f.MaxExerciseHours},
			},
		})
	}
	if f.MinIntelligence > 0 {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{
				"intelligence": map[string]interface{}{"gte": f.MinIntelligence},
			},
		})
	}

	boolQuery := map[string]interface{}{"must": must}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	query := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}

	switch f.SortBy {
	case "name":
		query["sort"] = []map[string]interface{}{{"name.raw": "asc"}}
	case "intelligence", "friendliness":
		query["sort"] = []map[string]interface{}{{f.SortBy: "desc"}}
	case "exerciseNeeds":
		query["sort"] = []map[string]interface{}{{"exerciseNeeds": "asc"}}
	}
	return query
}
