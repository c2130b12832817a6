package service

import "ScoreSync/internal/model"

// TeamEdge two identities on the same side of a game
type TeamEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Source   string `json:"source"`
	PlayedOn string `json:"played_on"`
	Order    uint32 `json:"order"`
}

// OpponentEdge From faced To; PointsScored is the score of From's side
type OpponentEdge struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Source       string `json:"source"`
	PlayedOn     string `json:"played_on"`
	Order        uint32 `json:"order"`
	PointsScored uint8  `json:"points_scored"`
}

// DeriveRelations edges of every game, in game order. Edges carry the game's Source so equal
// GameNos from different session files stay distinct. Self pairs are skipped.
func DeriveRelations(games []model.Game) ([]TeamEdge, []OpponentEdge) {
	teams := make([]TeamEdge, 0, 2*len(games))
	opponents := make([]OpponentEdge, 0, 8*len(games))

	for _, g := range games {
		for _, pair := range [][2]string{{g.PlayerA, g.PlayerB}, {g.PlayerX, g.PlayerY}} {
			if pair[0] == pair[1] {
				continue
			}
			teams = append(teams, TeamEdge{From: pair[0], To: pair[1], Source: g.Source, PlayedOn: g.Date, Order: g.GameNo})
		}

		for _, p := range []string{g.PlayerA, g.PlayerB} {
			for _, q := range []string{g.PlayerX, g.PlayerY} {
				if p == q {
					continue
				}
				opponents = append(opponents,
					OpponentEdge{From: p, To: q, Source: g.Source, PlayedOn: g.Date, Order: g.GameNo, PointsScored: g.PointsAB},
					OpponentEdge{From: q, To: p, Source: g.Source, PlayedOn: g.Date, Order: g.GameNo, PointsScored: g.PointsXY},
				)
			}
		}
	}
	return teams, opponents
}
