package model

// Graph store operation names, shared by every backend
const (
	OpCreatePlayer  = "CreatePlayer"
	OpCreateWith    = "CreateWith"
	OpCreateAgainst = "CreateAgainst"
)

// CreatePlayerRequest payload for OpCreatePlayer
type CreatePlayerRequest struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	IsSub   bool     `json:"is_sub"` // no alias file on record, i.e. a guest player
}

// CreatePlayerResponse response of OpCreatePlayer
type CreatePlayerResponse struct {
	Player Player `json:"player"`
}

// Player a player node as returned by the graph store
type Player struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	IsSub   bool     `json:"is_sub"`
	Label   string   `json:"label"`
}

// CreateWithRequest payload for OpCreateWith: From and To played on the same team
type CreateWithRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Source   string `json:"source"` // session file; order is only unique within it
	PlayedOn string `json:"played_on"`
	Order    uint32 `json:"order"`
}

// CreateAgainstRequest payload for OpCreateAgainst: From played against To and scored PointsScored
type CreateAgainstRequest struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Source       string `json:"source"`
	PlayedOn     string `json:"played_on"`
	Order        uint32 `json:"order"`
	PointsScored uint8  `json:"points_scored"`
}
