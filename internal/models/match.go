package models

// Raw team identifiers as they appear in match telemetry exports.
const (
	TeamBlue = 100
	TeamRed  = 200
)

// TeamIDs lists the two fixed team identifiers in evaluation order. The
// order matters: cross-team leader fields keep the first team evaluated on
// ties, and flattening assigns team indexes by position in this list.
var TeamIDs = [2]int{TeamBlue, TeamRed}

// TeamIndex maps a raw team identifier to its 0-based index within TeamIDs.
func TeamIndex(teamID int) (int, bool) {
	for i, id := range TeamIDs {
		if id == teamID {
			return i, true
		}
	}
	return 0, false
}

// RawMatch is one exported match document. Only the fields the pipeline
// consumes are declared; everything else in the export is ignored.
type RawMatch struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info MatchInfo `json:"info"`
}

// MatchInfo carries the match-level fields the aggregator reads.
type MatchInfo struct {
	// GameDuration is the match length in milliseconds.
	GameDuration int64               `json:"gameDuration" validate:"required"`
	Participants []ParticipantRecord `json:"participants" validate:"required,min=1,dive"`
}

// ParticipantRecord is one player's line for one match. Records are
// projected out of the raw export at the boundary and never mutated after.
type ParticipantRecord struct {
	Win          bool   `json:"win"`
	TeamID       int    `json:"teamId" validate:"required,oneof=100 200"`
	ChampionName string `json:"championName" validate:"required"`
	ChampionID   int    `json:"championId" validate:"required"`

	GoldEarned         int `json:"goldEarned"`
	GoldSpent          int `json:"goldSpent"`
	Kills              int `json:"kills"`
	BaronKills         int `json:"baronKills"`
	DragonKills        int `json:"dragonKills"`
	InhibitorKills     int `json:"inhibitorKills"`
	ChampExperience    int `json:"champExperience"`
	Deaths             int `json:"deaths"`
	DamageToChampions  int `json:"totalDamageDealtToChampions"`
	DamageTaken        int `json:"totalDamageTaken"`
	VisionScore        int `json:"visionScore"`
	WardsPlaced        int `json:"wardsPlaced"`
	MinionsKilled      int `json:"totalMinionsKilled"`
	DamageToObjectives int `json:"damageDealtToObjectives"`
}
