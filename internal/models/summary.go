package models

// CompositionEntry pairs a champion name and id in roster order.
type CompositionEntry struct {
	ChampName string `json:"champName"`
	ChampID   int    `json:"champId"`
}

// TeamSummary aggregates one team's participant lines for one match.
// The JSON names (including the total_inhibitor_kils spelling) are fixed by
// the training data already produced with them and must not drift.
type TeamSummary struct {
	TotalGoldEarned         int                `json:"total_gold_earned"`
	TotalGoldSpent          int                `json:"total_gold_spent"`
	TeamComp                []CompositionEntry `json:"team_comp"`
	TotalBaronKills         int                `json:"total_baron_kills"`
	TotalDragonKills        int                `json:"total_dragon_kills"`
	TotalInhibitorKills     int                `json:"total_inhibitor_kils"`
	TotalKills              int                `json:"total_kills"`
	TotalDeaths             int                `json:"total_deaths"`
	TotalDamageToChampions  int                `json:"total_damage_dealt_to_champions"`
	TotalDamageToObjectives int                `json:"total_damage_dealt_to_objectives"`
	TotalDamageTaken        int                `json:"total_damage_taken"`
	AvgVisionScore          int                `json:"average_vision_score"`
	TotalWardsPlaced        int                `json:"total_wards_placed"`
	AvgCreepScore           int                `json:"average_creep_score"`
	AvgChampExperience      int                `json:"average_champion_experience"`
	DmgCarry                string             `json:"dmg_carry"`
	ObjCarry                string             `json:"obj_carry"`
}

// GeneralSummary holds the match-level facts: game length plus, for each
// compared metric, the raw id of the team leading it.
type GeneralSummary struct {
	GameLengthMin         int `json:"gameLengthMin"`
	DmgToChampsWinner     int `json:"dmg_to_champs_winner"`
	DmgToObjWinner        int `json:"dmg_to_obj_winner"`
	VisionWinner          int `json:"vision_winner"`
	CSWinner              int `json:"cs_winner"`
	ChampExperienceWinner int `json:"champ_experience_winner"`
	WardsPlacedWinner     int `json:"wards_placed_winner"`
	GoldSpenderWinner     int `json:"gold_spender_winner"`
	FinalMatchWinner      int `json:"final_match_winner"`
}

// MatchSummary is the nested aggregation output for one match, keyed by raw
// team id. It is built fresh per match and discarded after flattening.
type MatchSummary struct {
	General GeneralSummary       `json:"general"`
	PerTeam map[int]*TeamSummary `json:"per_team"`
}
