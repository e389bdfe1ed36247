// Package aggregate reduces raw per-participant match telemetry into
// per-team summaries and match-level leader fields.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/riftlab/predict-api/internal/models"
)

// ErrNoWinner is returned when no participant in the match carries the win
// flag.
var ErrNoWinner = errors.New("no participant carries the win flag")

// DegenerateTeamError reports a team with no participants. Averages are
// undefined for such a team, so the whole match is rejected rather than
// emitting a partial summary.
type DegenerateTeamError struct {
	TeamID int
}

func (e *DegenerateTeamError) Error() string {
	return fmt.Sprintf("team %d has no participants", e.TeamID)
}

// Aggregate reduces one match's participant lines into a MatchSummary. It
// summarizes both fixed teams, derives the seven cross-team leader fields,
// and records the winning team. Errors abort the single match; callers
// working through a batch should log and move on to the next one.
func Aggregate(m *models.RawMatch) (*models.MatchSummary, error) {
	summary := &models.MatchSummary{
		PerTeam: make(map[int]*models.TeamSummary, len(models.TeamIDs)),
	}
	summary.General.GameLengthMin = int(m.Info.GameDuration / (1000 * 60) % 60)

	for _, teamID := range models.TeamIDs {
		team, err := summarizeTeam(teamID, m.Info.Participants)
		if err != nil {
			return nil, err
		}
		summary.PerTeam[teamID] = team
	}

	computeLeaders(summary)

	winner, err := winnerTeam(m.Info.Participants)
	if err != nil {
		return nil, err
	}
	summary.General.FinalMatchWinner = winner

	return summary, nil
}

// summarizeTeam accumulates the team's counters, composition, and carry
// labels in a single pass over the participants.
func summarizeTeam(teamID int, participants []models.ParticipantRecord) (*models.TeamSummary, error) {
	team := &models.TeamSummary{TeamComp: []models.CompositionEntry{}}

	// Counters are non-negative, so -1 seeds a strict-greater comparison
	// that keeps the first maximizer on ties.
	maxDmg, maxObj := -1, -1

	for _, p := range participants {
		if p.TeamID != teamID {
			continue
		}

		team.TotalGoldEarned += p.GoldEarned
		team.TotalGoldSpent += p.GoldSpent
		team.TeamComp = append(team.TeamComp, models.CompositionEntry{
			ChampName: p.ChampionName,
			ChampID:   p.ChampionID,
		})
		team.TotalBaronKills += p.BaronKills
		team.TotalDragonKills += p.DragonKills
		team.TotalKills += p.Kills
		team.TotalInhibitorKills += p.InhibitorKills
		team.TotalDeaths += p.Deaths
		team.TotalDamageToChampions += p.DamageToChampions
		team.TotalDamageToObjectives += p.DamageToObjectives
		team.TotalDamageTaken += p.DamageTaken
		team.AvgVisionScore += p.VisionScore
		team.TotalWardsPlaced += p.WardsPlaced
		team.AvgCreepScore += p.MinionsKilled
		team.AvgChampExperience += p.ChampExperience

		if p.DamageToChampions > maxDmg {
			maxDmg = p.DamageToChampions
			team.DmgCarry = p.ChampionName
		}
		// obj_carry ranks by damage dealt to objectives, not champion damage.
		if p.DamageToObjectives > maxObj {
			maxObj = p.DamageToObjectives
			team.ObjCarry = p.ChampionName
		}
	}

	size := len(team.TeamComp)
	if size == 0 {
		return nil, &DegenerateTeamError{TeamID: teamID}
	}

	// Truncating integer division, not rounding.
	team.AvgChampExperience /= size
	team.AvgCreepScore /= size
	team.AvgVisionScore /= size

	return team, nil
}

// computeLeaders fills the seven cross-team leader fields. Comparison is
// strict-greater, so the first team evaluated keeps a tied metric.
func computeLeaders(s *models.MatchSummary) {
	lead := func(metric func(*models.TeamSummary) int) int {
		best := models.TeamIDs[0]
		bestVal := metric(s.PerTeam[best])
		for _, id := range models.TeamIDs[1:] {
			if v := metric(s.PerTeam[id]); v > bestVal {
				best, bestVal = id, v
			}
		}
		return best
	}

	g := &s.General
	g.DmgToChampsWinner = lead(func(t *models.TeamSummary) int { return t.TotalDamageToChampions })
	g.DmgToObjWinner = lead(func(t *models.TeamSummary) int { return t.TotalDamageToObjectives })
	g.VisionWinner = lead(func(t *models.TeamSummary) int { return t.AvgVisionScore })
	g.CSWinner = lead(func(t *models.TeamSummary) int { return t.AvgCreepScore })
	g.ChampExperienceWinner = lead(func(t *models.TeamSummary) int { return t.AvgChampExperience })
	g.WardsPlacedWinner = lead(func(t *models.TeamSummary) int { return t.TotalWardsPlaced })
	g.GoldSpenderWinner = lead(func(t *models.TeamSummary) int { return t.TotalGoldSpent })
}

// winnerTeam returns the team of the first participant carrying the win
// flag. Disagreeing flags are not reconciled; the first one found decides.
func winnerTeam(participants []models.ParticipantRecord) (int, error) {
	for _, p := range participants {
		if p.Win {
			return p.TeamID, nil
		}
	}
	return 0, ErrNoWinner
}
