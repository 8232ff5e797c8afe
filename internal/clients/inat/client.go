// Package inat looks up taxa on the iNaturalist API
package inat

//go:generate mockgen -destination=mock/mock_client.go -package=inatmock github.com/KirkDiggler/ecosnap-api/internal/clients/inat Client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

const (
	// DefaultBaseURL is the public iNaturalist API
	DefaultBaseURL = "https://api.inaturalist.org/v1"

	defaultTimeout     = 10 * time.Second
	defaultMinInterval = time.Second
	userAgent          = "ecosnap/1.0"
	maxBodyBytes       = 1 << 20
)

// Taxon is the subset of an iNaturalist taxon the app shows
type Taxon struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	PreferredCommonName string `json:"preferred_common_name"`
	WikipediaURL        string `json:"wikipedia_url"`
	DefaultPhoto        *Photo `json:"default_photo"`
}

// Photo holds the taxon's default photo URLs
type Photo struct {
	SquareURL string `json:"square_url"`
	MediumURL string `json:"medium_url"`
}

type taxaResponse struct {
	TotalResults int      `json:"total_results"`
	Results      []*Taxon `json:"results"`
}

// Client defines the interface for taxon lookups
type Client interface {
	// SearchTaxon returns the best match for query
	// Returns errors.InvalidArgument for an empty query
	// Returns errors.NotFound when nothing matches
	// Returns errors.Unavailable when the API is throttling or down
	SearchTaxon(ctx context.Context, query string) (*Taxon, error)
}

// Config holds the configuration for the iNaturalist client
type Config struct {
	// BaseURL defaults to DefaultBaseURL
	BaseURL string
	// HTTPTimeout for API requests, defaults to 10 seconds
	HTTPTimeout time.Duration
	// MinInterval between requests, defaults to 1 second
	MinInterval time.Duration
	// HTTPClient replaces the default client, mostly for tests
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultTimeout
	}
	if cfg.MinInterval == 0 {
		cfg.MinInterval = defaultMinInterval
	}

	vb := errors.NewValidationBuilder()
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		vb.Fieldf("BaseURL", "invalid URL: %v", err)
	}
	if cfg.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "must not be negative")
	}
	if cfg.MinInterval < 0 {
		vb.Field("MinInterval", "must not be negative")
	}
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a rate limited iNaturalist client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
	}, nil
}

func (c *client) SearchTaxon(ctx context.Context, query string) (*Taxon, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.InvalidArgument("query is required")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", "1")
	endpoint := fmt.Sprintf("%s/taxa?%s", c.baseURL, params.Encode())

	var resp taxaResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to search taxa for %q", query)
	}

	if len(resp.Results) == 0 || resp.Results[0] == nil {
		return nil, errors.NotFoundf("no taxon found for %q", query)
	}

	slog.Debug("Taxon found", "query", query, "taxon_id", resp.Results[0].ID)
	return resp.Results[0], nil
}

func (c *client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "rate limiter wait cancelled")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return errors.Unavailable(fmt.Sprintf("iNaturalist returned HTTP %d", resp.StatusCode)).
			WithMeta("status", resp.StatusCode)
	default:
		return errors.Internalf("unexpected HTTP status %d", resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read response body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	return nil
}
