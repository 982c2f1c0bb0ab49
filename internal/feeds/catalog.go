// Package feeds holds the static catalog of RSS/Atom feed sources.
// The catalog is embedded in the binary, loaded once at process start, and
// passed explicitly into the ingestion pipeline; it is never mutated at runtime.
package feeds

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"cybernewshub/internal/domain/entity"
)

//go:embed feeds.yaml
var catalogYAML []byte

// Source is a single configured feed: where to fetch it from, who publishes
// it, and the publisher's home country.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"` // industry | government | vendors | research
	Country  string `yaml:"country"`
}

// PublisherType maps the catalog category to the article-level publisher type.
func (s Source) PublisherType() entity.PublisherType {
	switch s.Category {
	case "government":
		return entity.PublisherGovernment
	case "vendors":
		return entity.PublisherVendor
	case "research":
		return entity.PublisherResearch
	default:
		return entity.PublisherIndustry
	}
}

// Catalog is an immutable set of feed sources.
type Catalog struct {
	sources []Source
}

// Load parses the embedded catalog. It fails on malformed YAML or on sources
// missing a name or URL, so a broken catalog is caught at startup.
func Load() (Catalog, error) {
	var doc struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse feed catalog: %w", err)
	}
	seen := make(map[string]bool, len(doc.Sources))
	for i, s := range doc.Sources {
		if s.Name == "" || s.URL == "" {
			return Catalog{}, fmt.Errorf("feed catalog entry %d: name and url are required", i)
		}
		if seen[s.URL] {
			return Catalog{}, fmt.Errorf("feed catalog entry %d: duplicate url %s", i, s.URL)
		}
		seen[s.URL] = true
	}
	return Catalog{sources: doc.Sources}, nil
}

// NewCatalog builds a catalog from explicit sources, bypassing the embedded
// file. Callers own validation.
func NewCatalog(sources []Source) Catalog {
	copied := make([]Source, len(sources))
	copy(copied, sources)
	return Catalog{sources: copied}
}

// All returns every configured source.
func (c Catalog) All() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Len returns the number of configured sources.
func (c Catalog) Len() int { return len(c.sources) }

// ForCountries returns the sources whose home country is in the given list.
// An empty list means no filtering and returns all sources.
func (c Catalog) ForCountries(countries []string) []Source {
	if len(countries) == 0 {
		return c.All()
	}
	wanted := make(map[string]bool, len(countries))
	for _, country := range countries {
		wanted[country] = true
	}
	var out []Source
	for _, s := range c.sources {
		if wanted[s.Country] {
			out = append(out, s)
		}
	}
	return out
}

// CountriesWithSources returns every country that has at least one configured
// source, mapped to its source count.
func (c Catalog) CountriesWithSources() map[string]int {
	counts := make(map[string]int)
	for _, s := range c.sources {
		if s.Country != "" {
			counts[s.Country]++
		}
	}
	return counts
}

// SourceCountries returns the configured home countries for a source name.
// A source name can appear multiple times in the catalog (e.g. a vendor blog
// listed under both vendors and research), so this unions all entries.
func (c Catalog) SourceCountries(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.sources {
		if s.Name == name && s.Country != "" && !seen[s.Country] {
			seen[s.Country] = true
			out = append(out, s.Country)
		}
	}
	sort.Strings(out)
	return out
}
