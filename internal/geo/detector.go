// Package geo infers country/region tags for articles from several heuristic
// signals: the link's top-level domain, the source's configured home country,
// government and vendor source patterns, and country mentions in the text.
package geo

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// maxContentCountries caps how many countries the content signal can raise
// the total to, to avoid over-tagging articles that list many countries.
const maxContentCountries = 3

// Input carries everything the detector looks at for one article.
type Input struct {
	SourceName  string
	Link        string
	Title       string
	Description string
	// HomeCountries is the source's statically configured country list.
	HomeCountries []string
}

// Detector infers a country/region tag set for an article. Detection is pure
// and idempotent: the same input always produces the same tag, so it can be
// re-run over stored articles after a dictionary update.
type Detector struct{}

// NewDetector returns a Detector using the built-in country tables.
func NewDetector() *Detector {
	return &Detector{}
}

var tldPattern = regexp.MustCompile(`\.([a-z]{2})(/|$|\?|#)`)

// Detect returns the comma-joined, sorted set of detected countries, or
// "Global" when no signal matches.
func (d *Detector) Detect(in Input) string {
	sourceLower := strings.ToLower(in.SourceName)
	linkLower := strings.ToLower(in.Link)
	contentLower := strings.TrimSpace(strings.ToLower(in.Title) + " " + strings.ToLower(in.Description))

	countries := make(map[string]bool)

	// Signal 1: top-level domain of the link.
	for _, tld := range extractTLDs(linkLower) {
		if country, ok := tldCountries[tld]; ok {
			countries[country] = true
		}
	}

	// Signal 2: the source's configured home countries.
	for _, c := range in.HomeCountries {
		if c != "" {
			countries[capitalizeCountry(c)] = true
		}
	}

	// Government and CERT sources.
	for country, fragments := range govSources {
		for _, frag := range fragments {
			if strings.Contains(sourceLower, frag) || strings.Contains(linkLower, frag) {
				countries[country] = true
				break
			}
		}
	}
	// Bare .gov domains are US federal; country-coded gov domains are handled
	// by urlPatterns below.
	if strings.Contains(linkLower, ".gov") &&
		!strings.Contains(linkLower, ".gov.uk") &&
		!strings.Contains(linkLower, ".gov.au") &&
		!strings.Contains(linkLower, ".gc.ca") {
		countries["United States"] = true
	}
	for country, patterns := range urlPatterns {
		for _, p := range patterns {
			if strings.Contains(linkLower, p) {
				countries[country] = true
				break
			}
		}
	}

	// Vendor and research-lab home countries.
	for country, names := range vendorCountries {
		for _, name := range names {
			if strings.Contains(sourceLower, name) {
				countries[country] = true
				break
			}
		}
	}

	// Signal 3: country mentions in title+description, gated on nearby
	// context words so passing mentions don't tag the article.
	if len(countries) < maxContentCountries {
		for country, patterns := range countryPatterns {
			for _, pattern := range patterns {
				if idx := strings.Index(contentLower, pattern); idx >= 0 {
					if hasContextNearby(contentLower, idx, len(pattern)) {
						countries[country] = true
						break
					}
				}
			}
		}
	}

	if len(countries) == 0 {
		return "Global"
	}
	out := make([]string, 0, len(countries))
	for c := range countries {
		out = append(out, capitalizeCountry(c))
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// extractTLDs pulls candidate two-letter TLDs from a lowercased URL. The
// host's final label counts, as does any two-letter label followed by a path
// separator (covers URLs like example.de/path).
func extractTLDs(link string) []string {
	var tlds []string
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host := u.Host
		if i := strings.LastIndex(host, "."); i >= 0 {
			last := host[i+1:]
			if len(last) == 2 {
				tlds = append(tlds, last)
			}
		}
	}
	for _, m := range tldPattern.FindAllStringSubmatch(link, -1) {
		tlds = append(tlds, m[1])
	}
	return tlds
}

// hasContextNearby reports whether any context word appears within 50 chars
// of the matched pattern.
func hasContextNearby(content string, pos, patternLen int) bool {
	start := pos - 50
	if start < 0 {
		start = 0
	}
	end := pos + patternLen + 50
	if end > len(content) {
		end = len(content)
	}
	window := content[start:end]
	for _, w := range contextWords {
		if strings.Contains(window, w) {
			return true
		}
	}
	return false
}

// capitalizeCountry normalizes a country name to its canonical capitalization.
func capitalizeCountry(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	if canonical, ok := specialCaseNames[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	words := strings.Fields(trimmed)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// SplitRegions splits a stored comma-joined country_region value into its
// individual country names.
func SplitRegions(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
