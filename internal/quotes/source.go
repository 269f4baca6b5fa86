// Package quotes defines the optional external price quote source. When
// no credential is configured the source is simply absent and the
// estimator works from synthesized quotes alone.
package quotes

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mamasphere/pricing-service/internal/httpclient"
)

// Quote is the normalized shape returned by a quote provider.
type Quote struct {
	Source string  `json:"source"`
	Price  float64 `json:"price"`
	Unit   string  `json:"unit"`
	Region string  `json:"region"`
}

// Source fetches real market quotes for an item in a region.
type Source interface {
	Fetch(ctx context.Context, item, region string) ([]Quote, error)
}

// HTTPSource pulls quotes from a configured REST endpoint. The endpoint
// is expected to return a JSON array of quote objects.
type HTTPSource struct {
	Client    *httpclient.Client
	BaseURL   string
	APIKey    string
	MaxQuotes int
}

func (s *HTTPSource) Fetch(ctx context.Context, item, region string) ([]Quote, error) {
	u := fmt.Sprintf("%s/quotes?item=%s&region=%s",
		s.BaseURL, url.QueryEscape(item), url.QueryEscape(region))

	headers := map[string]string{}
	if s.APIKey != "" {
		headers["Authorization"] = "Bearer " + s.APIKey
	}

	var got []Quote
	if err := s.Client.GetJSON(ctx, u, headers, &got); err != nil {
		return nil, fmt.Errorf("fetch quotes for %q: %w", item, err)
	}

	// Drop unusable rows and cap the count; external data is advisory.
	limit := s.MaxQuotes
	if limit <= 0 {
		limit = 3
	}
	quotes := make([]Quote, 0, limit)
	for _, q := range got {
		if q.Price <= 0 || q.Source == "" {
			continue
		}
		quotes = append(quotes, q)
		if len(quotes) == limit {
			break
		}
	}
	return quotes, nil
}
