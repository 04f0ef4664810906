package council

import "strings"

// FacetRecord tracks which of the four required proposal facets the
// discovery chat has addressed
type FacetRecord struct {
	Customer bool `json:"customer"`
	Problem  bool `json:"problem"`
	Benefit  bool `json:"benefit"`
	Solution bool `json:"solution"`
}

// Keyword sets per facet. Matching is case-insensitive substring matching.
var facetKeywords = map[string][]string{
	"customer": {"customer", "user"},
	"problem":  {"problem", "pain"},
	"benefit":  {"benefit", "value"},
	"solution": {"solution", "how it works"},
}

// UpdateFacets returns the facet record after accumulating new text. A facet
// is never unset once true (monotonic OR-accumulation). Pure function, no
// side effects.
func UpdateFacets(rec FacetRecord, text string) FacetRecord {
	lower := strings.ToLower(text)
	rec.Customer = rec.Customer || containsAny(lower, facetKeywords["customer"])
	rec.Problem = rec.Problem || containsAny(lower, facetKeywords["problem"])
	rec.Benefit = rec.Benefit || containsAny(lower, facetKeywords["benefit"])
	rec.Solution = rec.Solution || containsAny(lower, facetKeywords["solution"])
	return rec
}

// Complete reports whether all four facets have been addressed
func (r FacetRecord) Complete() bool {
	return r.Customer && r.Problem && r.Benefit && r.Solution
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
