package normalize

import "ScoreSync/internal/model"

// Normalize returns a copy of games with every player field resolved through idx.
// Names with no alias entry pass through unchanged and count as identities of their own.
func Normalize(games []model.Game, idx Index) []model.Game {
	out := make([]model.Game, len(games))
	for i, g := range games {
		g.PlayerA = idx.Resolve(g.PlayerA)
		g.PlayerB = idx.Resolve(g.PlayerB)
		g.PlayerX = idx.Resolve(g.PlayerX)
		g.PlayerY = idx.Resolve(g.PlayerY)
		out[i] = g
	}
	return out
}
