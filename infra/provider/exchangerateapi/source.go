// Package exchangerateapi fetches rate tables from exchangerate-api.com.
package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/exchange"
)

const sourceName = "exchangerate-api"

// Source implements exchange.Source against the exchangerate-api.com v4 API.
type Source struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// latestResponse is the shape of GET {baseURL}/latest/{BASE}.
type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// New creates a source. baseURL is the API root without a trailing slash,
// e.g. "https://api.exchangerate-api.com/v4". The API key is optional on the
// free tier.
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name identifies the provider in snapshots and logs.
func (s *Source) Name() string { return sourceName }

// Fetch returns the full rate table for base. Rates come back as units of
// each currency per one unit of base, which is exactly the table shape the
// cache serves.
func (s *Source) Fetch(ctx context.Context, base currency.Code) (exchange.RateTable, error) {
	url := fmt.Sprintf("%s/latest/%s", s.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("API returned no rates for base %s", base)
	}

	table := make(exchange.RateTable, len(apiResp.Rates))
	for code, rate := range apiResp.Rates {
		if rate <= 0 {
			s.logger.Warn("dropping non-positive rate", "currency", code, "rate", rate)
			continue
		}
		table[currency.Code(code)] = rate
	}
	table[base] = 1

	s.logger.Debug("fetched rate table", "base", base, "currencies", len(table), "date", apiResp.Date)
	return table, nil
}
