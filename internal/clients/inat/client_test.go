package inat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ecosnap-api/internal/clients/inat"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

const squirrelResponse = `{
  "total_results": 1,
  "results": [{
    "id": 46017,
    "name": "Sciurus carolinensis",
    "preferred_common_name": "Eastern Gray Squirrel",
    "wikipedia_url": "http://en.wikipedia.org/wiki/Eastern_gray_squirrel",
    "default_photo": {
      "square_url": "https://example.org/square.jpg",
      "medium_url": "https://example.org/medium.jpg"
    }
  }]
}`

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	mu       sync.Mutex
	handler  http.HandlerFunc
	requests atomic.Int32
	client   inat.Client
	ctx      context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.requests.Store(0)
	s.setHandler(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		handler := s.handler
		s.mu.Unlock()
		handler(w, r)
	}))

	client, err := inat.New(&inat.Config{
		BaseURL:     s.server.URL + "/v1/",
		MinInterval: time.Millisecond,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) setHandler(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *ClientTestSuite) TestSearchTaxon() {
	s.setHandler(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/taxa", r.URL.Path)
		s.Equal("grey squirrel", r.URL.Query().Get("q"))
		s.Equal("1", r.URL.Query().Get("per_page"))
		s.Equal("application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(squirrelResponse))
	})

	taxon, err := s.client.SearchTaxon(s.ctx, "  grey squirrel ")
	s.Require().NoError(err)
	s.Equal(46017, taxon.ID)
	s.Equal("Sciurus carolinensis", taxon.Name)
	s.Equal("Eastern Gray Squirrel", taxon.PreferredCommonName)
	s.Require().NotNil(taxon.DefaultPhoto)
	s.Equal("https://example.org/medium.jpg", taxon.DefaultPhoto.MediumURL)
}

func (s *ClientTestSuite) TestSearchTaxonErrors() {
	testCases := []struct {
		name    string
		query   string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{
			name:  "empty query",
			query: "   ",
			check: errors.IsInvalidArgument,
		},
		{
			name:  "no results",
			query: "dragon",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"total_results":0,"results":[]}`))
			},
			check: errors.IsNotFound,
		},
		{
			name:  "throttled",
			query: "robin",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: errors.IsUnavailable,
		},
		{
			name:  "server error",
			query: "robin",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			check: errors.IsUnavailable,
		},
		{
			name:  "unexpected status",
			query: "robin",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			check: errors.IsInternal,
		},
		{
			name:  "bad json",
			query: "robin",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"results":`))
			},
			check: errors.IsInternal,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.handler != nil {
				s.setHandler(tc.handler)
			}

			taxon, err := s.client.SearchTaxon(s.ctx, tc.query)
			s.Nil(taxon)
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *ClientTestSuite) TestEmptyQueryMakesNoRequest() {
	_, err := s.client.SearchTaxon(s.ctx, "")
	s.Require().Error(err)
	s.Equal(int32(0), s.requests.Load())
}

func (s *ClientTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.client.SearchTaxon(ctx, "robin")
	s.Require().Error(err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := &inat.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != inat.DefaultBaseURL {
		t.Fatalf("expected default base URL, got %q", cfg.BaseURL)
	}

	bad := &inat.Config{BaseURL: "not a url"}
	if err := bad.Validate(); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
