package listservice

import listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"

// LevelDetail is a level together with its rank and the points a full
// completion is worth.
type LevelDetail struct {
	Rank   int              `json:"rank"`
	Level  listdomain.Level `json:"level"`
	Points float64          `json:"points"`
}

// PlayerPosition is a player's standing and 1-based leaderboard position.
type PlayerPosition struct {
	Position int `json:"position"`
	listdomain.PlayerStanding
}
