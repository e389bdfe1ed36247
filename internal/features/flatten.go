package features

import (
	"fmt"

	"github.com/riftlab/predict-api/internal/models"
)

// Row is one flat feature mapping: float64 for numeric columns, champion
// name strings for composition and carry columns.
type Row map[string]any

// Flatten converts a nested match summary into a flat feature row. Per-team
// fields get a 0-based team index suffix; composition entries become
// team_comp_<i>_champ_<k> columns keyed by first occurrence of each champion
// name; match-level team-id fields are re-coded to the team's index.
func Flatten(s *models.MatchSummary) (Row, error) {
	row := make(Row, 2*(len(teamNumericFields)+2+TeamSize)+len(generalIndexFields)+1)

	for i, teamID := range models.TeamIDs {
		team, ok := s.PerTeam[teamID]
		if !ok {
			return nil, fmt.Errorf("flatten: summary has no entry for team %d", teamID)
		}

		for _, f := range teamNumericFields {
			row[fmt.Sprintf("%s_%d", f.name, i)] = float64(f.get(team))
		}
		row[fmt.Sprintf("dmg_carry_%d", i)] = team.DmgCarry
		row[fmt.Sprintf("obj_carry_%d", i)] = team.ObjCarry

		// Composition slots are keyed by champion name: a duplicated pick
		// collapses into one slot and narrows the row, which the schema
		// check downstream rejects rather than papering over.
		k := 0
		seen := make(map[string]bool, len(team.TeamComp))
		for _, entry := range team.TeamComp {
			if seen[entry.ChampName] {
				continue
			}
			seen[entry.ChampName] = true
			k++
			row[fmt.Sprintf("team_comp_%d_champ_%d", i, k)] = entry.ChampName
		}
	}

	row["gameLengthMin"] = float64(s.General.GameLengthMin)
	for _, f := range generalIndexFields {
		teamID := f.get(&s.General)
		idx, ok := models.TeamIndex(teamID)
		if !ok {
			return nil, fmt.Errorf("flatten: %s holds unknown team id %d", f.name, teamID)
		}
		row[f.name] = float64(idx)
	}

	return row, nil
}
