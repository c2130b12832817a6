// Package normalize resolves raw player strings to canonical identities.
package normalize

import "sort"

// Index alias -> canonical name
type Index map[string]string

// Resolve the canonical name for name, or name itself when it is not a known alias
func (idx Index) Resolve(name string) string {
	if canonical, ok := idx[name]; ok {
		return canonical
	}
	return name
}

// Conflict one alias declared under more than one canonical name
type Conflict struct {
	Alias      string   `json:"alias"`
	Candidates []string `json:"candidates"` // every canonical name declaring Alias, lexical order
	Winner     string   `json:"winner"`     // the one kept in the index
}

// BuildIndex flattens canonical -> aliases into alias -> canonical
func BuildIndex(aliases map[string][]string) Index {
	idx, _ := BuildIndexWithConflicts(aliases)
	return idx
}

// BuildIndexWithConflicts like BuildIndex, and reports every alias claimed by two or more
// canonical names. Canonical names are visited in lexical order and the last insertion
// wins, so the lexically greatest claimant keeps the alias.
func BuildIndexWithConflicts(aliases map[string][]string) (Index, []Conflict) {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	idx := make(Index)
	claims := make(map[string][]string)
	for _, name := range names {
		for _, alias := range aliases[name] {
			idx[alias] = name
			if c := claims[alias]; len(c) == 0 || c[len(c)-1] != name {
				claims[alias] = append(c, name)
			}
		}
	}

	var conflicts []Conflict
	for alias, candidates := range claims {
		if len(candidates) < 2 {
			continue
		}
		conflicts = append(conflicts, Conflict{Alias: alias, Candidates: candidates, Winner: idx[alias]})
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Alias < conflicts[j].Alias })
	return idx, conflicts
}
