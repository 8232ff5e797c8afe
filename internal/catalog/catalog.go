// Package catalog loads the static species table and matches
// classification labels against species aliases.
package catalog

import (
	_ "embed"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

//go:embed species.yaml
var defaultSpecies []byte

type catalogFile struct {
	Species []*entities.SpeciesTemplate `yaml:"species"`
}

// Catalog is an immutable, ordered table of species templates.
// It is safe for concurrent use.
type Catalog struct {
	templates []*entities.SpeciesTemplate
	byID      map[entities.SpeciesID]*entities.SpeciesTemplate
	byAlias   map[string]*entities.SpeciesTemplate
}

// Default returns the catalog built from the embedded species table.
// The embedded data is validated by tests, so a failure here is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultSpecies)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from YAML data
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse species catalog")
	}
	return New(file.Species)
}

// New builds a catalog from templates, keeping their order.
// Duplicate ids and aliases claimed by two species are rejected.
func New(templates []*entities.SpeciesTemplate) (*Catalog, error) {
	c := &Catalog{
		templates: make([]*entities.SpeciesTemplate, 0, len(templates)),
		byID:      make(map[entities.SpeciesID]*entities.SpeciesTemplate, len(templates)),
		byAlias:   make(map[string]*entities.SpeciesTemplate),
	}

	for _, t := range templates {
		if t == nil || t.ID == "" {
			return nil, errors.InvalidArgument("species id is required")
		}
		if _, exists := c.byID[t.ID]; exists {
			return nil, errors.InvalidArgumentf("duplicate species id %s", t.ID)
		}
		c.byID[t.ID] = t
		c.templates = append(c.templates, t)

		for _, alias := range t.Aliases {
			key := normalize(alias)
			if key == "" {
				continue
			}
			if owner, exists := c.byAlias[key]; exists && owner.ID != t.ID {
				return nil, errors.InvalidArgumentf("alias %q is claimed by %s and %s", alias, owner.ID, t.ID)
			}
			c.byAlias[key] = t
		}
	}

	return c, nil
}

// All returns the templates in declaration order
func (c *Catalog) All() []*entities.SpeciesTemplate {
	return append([]*entities.SpeciesTemplate(nil), c.templates...)
}

// IDs returns the species ids in declaration order
func (c *Catalog) IDs() []entities.SpeciesID {
	return lo.Map(c.templates, func(t *entities.SpeciesTemplate, _ int) entities.SpeciesID {
		return t.ID
	})
}

// Len returns the number of templates
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Get looks up a template by id
func (c *Catalog) Get(id entities.SpeciesID) (*entities.SpeciesTemplate, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// First returns the first declared template, or nil for an empty catalog
func (c *Catalog) First() *entities.SpeciesTemplate {
	if len(c.templates) == 0 {
		return nil
	}
	return c.templates[0]
}

// MatchLabels returns the species of the first label that exactly matches
// an alias, ignoring case and surrounding whitespace. Labels are consulted
// in order; an empty list is simply no match.
func (c *Catalog) MatchLabels(labels []entities.Label) (*entities.SpeciesTemplate, bool) {
	for _, label := range labels {
		key := normalize(label.Description)
		if key == "" {
			continue
		}
		if t, ok := c.byAlias[key]; ok {
			return t, true
		}
	}
	return nil, false
}

func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
