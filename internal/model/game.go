package model

// Score sheet column names, as declared in the header row of every session file.
const (
	ColDate     = "Date"
	ColGameNo   = "GameNo"
	ColPlayerA  = "A"
	ColPlayerB  = "B"
	ColPointsAB = "PtsAB"
	ColPlayerX  = "X"
	ColPlayerY  = "Y"
	ColPointsXY = "PtsXY"
)

// GameColumns the full header of a score sheet, in canonical order
var GameColumns = []string{ColDate, ColGameNo, ColPlayerA, ColPlayerB, ColPointsAB, ColPlayerX, ColPlayerY, ColPointsXY}

// Game one doubles match between team AB and team XY
type Game struct {
	Source   string `json:"source"`  // base name of the session file; (Source, GameNo) identifies a game
	Date     string `json:"date"`    // opaque, never parsed
	GameNo   uint32 `json:"game_no"` // unique within its source file only
	PlayerA  string `json:"player_a"`
	PlayerB  string `json:"player_b"`
	PointsAB uint8  `json:"points_ab"`
	PlayerX  string `json:"player_x"`
	PlayerY  string `json:"player_y"`
	PointsXY uint8  `json:"points_xy"`
}

// Players the four player fields in A, B, X, Y order
func (g Game) Players() [4]string {
	return [4]string{g.PlayerA, g.PlayerB, g.PlayerX, g.PlayerY}
}
