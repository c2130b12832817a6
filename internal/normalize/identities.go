package normalize

import (
	"sort"

	"ScoreSync/internal/model"
)

// CollectIdentities every distinct player name across all four fields of games
func CollectIdentities(games []model.Game) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range games {
		for _, p := range g.Players() {
			set[p] = struct{}{}
		}
	}
	return set
}

// SortedIdentities the set as a lexically ordered roster
func SortedIdentities(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
