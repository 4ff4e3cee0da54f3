package resolution

import (
	"sort"

	"github.com/hbollon/go-edlib"

	"github.com/CRJFisher/ariadne/internal/types"
)

// didYouMeanThreshold is the minimum Jaro-Winkler similarity a candidate
// name needs to surface as a suggestion. Modeled on the teacher's fuzzy
// matcher default (0.80).
const didYouMeanThreshold = 0.80

// Suggestion is one "did you mean" candidate for an unresolved name.
type Suggestion struct {
	Name       string
	Similarity float64
}

// SuggestNames returns the names bound in a scope's flattened phase-1 map
// that are similar to an unresolved name, most-similar first. It never
// participates in resolution itself — it is purely a diagnostic surface for
// CLI and MCP query callers reporting an unresolved reference (spec.md §6
// "diagnostics", §11 domain stack).
func (r *Registry) SuggestNames(scope types.ScopeID, name string) []Suggestion {
	bindings := r.resolutionsByScope[scope]
	if len(bindings) == 0 {
		return nil
	}

	suggestions := make([]Suggestion, 0, len(bindings))
	for candidate := range bindings {
		if candidate == name {
			continue
		}
		score, err := edlib.StringsSimilarity(name, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) >= didYouMeanThreshold {
			suggestions = append(suggestions, Suggestion{Name: candidate, Similarity: float64(score)})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Similarity != suggestions[j].Similarity {
			return suggestions[i].Similarity > suggestions[j].Similarity
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	return suggestions
}
