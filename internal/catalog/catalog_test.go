package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.catalog = catalog.Default()
}

func (s *CatalogTestSuite) TestDefaultCatalog() {
	s.Equal(5, s.catalog.Len())
	s.Equal([]entities.SpeciesID{
		"grey-squirrel",
		"european-robin",
		"common-hedgehog",
		"english-oak",
		"silver-birch",
	}, s.catalog.IDs())

	squirrel, ok := s.catalog.Get("grey-squirrel")
	s.Require().True(ok)
	s.Equal("Grey Squirrel", squirrel.CommonName)
	s.Equal(entities.SpeciesTypeMammal, squirrel.Type)
	s.Equal(entities.StatBlock{Speed: 72, Resilience: 55, Energy: 82, Intelligence: 60, Harmony: 58}, squirrel.BaseStats)
	s.Equal(squirrel, s.catalog.First())

	_, ok = s.catalog.Get("red-fox")
	s.False(ok)
}

func (s *CatalogTestSuite) TestMatchLabels() {
	testCases := []struct {
		name     string
		labels   []string
		expected entities.SpeciesID
		matched  bool
	}{
		{
			name:     "exact alias",
			labels:   []string{"squirrel"},
			expected: "grey-squirrel",
			matched:  true,
		},
		{
			name:     "case and whitespace are ignored",
			labels:   []string{"  Robin Redbreast "},
			expected: "european-robin",
			matched:  true,
		},
		{
			name:     "first matching label wins",
			labels:   []string{"Mammal", "Hedgehog", "Squirrel"},
			expected: "common-hedgehog",
			matched:  true,
		},
		{
			name:     "empty labels are skipped",
			labels:   []string{"", "   ", "Birch"},
			expected: "silver-birch",
			matched:  true,
		},
		{
			name:    "partial words do not match",
			labels:  []string{"oak", "tree"},
			matched: false,
		},
		{
			name:    "no labels",
			labels:  nil,
			matched: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			labels := make([]entities.Label, len(tc.labels))
			for i, l := range tc.labels {
				labels[i] = entities.Label{Description: l, Score: 0.9}
			}

			template, ok := s.catalog.MatchLabels(labels)
			s.Equal(tc.matched, ok)
			if tc.matched {
				s.Require().NotNil(template)
				s.Equal(tc.expected, template.ID)
			} else {
				s.Nil(template)
			}
		})
	}
}

func (s *CatalogTestSuite) TestAllReturnsCopy() {
	all := s.catalog.All()
	all[0] = nil
	s.NotNil(s.catalog.First())
}

func (s *CatalogTestSuite) TestParseRejectsBadData() {
	s.Run("invalid yaml", func() {
		_, err := catalog.Parse([]byte("species: [::"))
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("duplicate id", func() {
		_, err := catalog.Parse([]byte(`
species:
  - id: fox
  - id: fox
`))
		s.Error(err)
		s.Contains(err.Error(), "duplicate species id fox")
	})

	s.Run("shared alias", func() {
		_, err := catalog.Parse([]byte(`
species:
  - id: fox
    aliases: [fox]
  - id: red-fox
    aliases: [Fox]
`))
		s.Error(err)
		s.Contains(err.Error(), "is claimed by")
	})

	s.Run("empty catalog is allowed", func() {
		c, err := catalog.Parse([]byte("species: []"))
		s.Require().NoError(err)
		s.Nil(c.First())
		s.Equal(0, c.Len())
	})
}
