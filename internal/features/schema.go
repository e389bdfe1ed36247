// Package features turns nested match summaries into the flat,
// fixed-schema feature rows and numeric matrices the classifier consumes.
package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riftlab/predict-api/internal/models"
)

// TeamSize is the fixed roster size per team. The flat schema always
// carries TeamSize composition slots per team.
const TeamSize = 5

// LabelColumn is the training label emitted by Flatten: the winning team
// re-coded as a 0-based index.
const LabelColumn = "final_match_winner"

// teamNumericFields lists the per-team numeric summary fields in flatten
// emission order, with their accessors. Column names derive from the
// summary's JSON names (team index suffix appended by Flatten).
var teamNumericFields = []struct {
	name string
	get  func(*models.TeamSummary) int
}{
	{"total_gold_earned", func(t *models.TeamSummary) int { return t.TotalGoldEarned }},
	{"total_gold_spent", func(t *models.TeamSummary) int { return t.TotalGoldSpent }},
	{"total_baron_kills", func(t *models.TeamSummary) int { return t.TotalBaronKills }},
	{"total_dragon_kills", func(t *models.TeamSummary) int { return t.TotalDragonKills }},
	{"total_inhibitor_kils", func(t *models.TeamSummary) int { return t.TotalInhibitorKills }},
	{"total_kills", func(t *models.TeamSummary) int { return t.TotalKills }},
	{"total_deaths", func(t *models.TeamSummary) int { return t.TotalDeaths }},
	{"total_damage_dealt_to_champions", func(t *models.TeamSummary) int { return t.TotalDamageToChampions }},
	{"total_damage_dealt_to_objectives", func(t *models.TeamSummary) int { return t.TotalDamageToObjectives }},
	{"total_damage_taken", func(t *models.TeamSummary) int { return t.TotalDamageTaken }},
	{"average_vision_score", func(t *models.TeamSummary) int { return t.AvgVisionScore }},
	{"total_wards_placed", func(t *models.TeamSummary) int { return t.TotalWardsPlaced }},
	{"average_creep_score", func(t *models.TeamSummary) int { return t.AvgCreepScore }},
	{"average_champion_experience", func(t *models.TeamSummary) int { return t.AvgChampExperience }},
}

// generalIndexFields are the match-level team-id fields re-coded to a
// 0-based team index by Flatten. gameLengthMin is handled separately since
// it passes through unchanged.
var generalIndexFields = []struct {
	name string
	get  func(*models.GeneralSummary) int
}{
	{"dmg_to_champs_winner", func(g *models.GeneralSummary) int { return g.DmgToChampsWinner }},
	{"dmg_to_obj_winner", func(g *models.GeneralSummary) int { return g.DmgToObjWinner }},
	{"vision_winner", func(g *models.GeneralSummary) int { return g.VisionWinner }},
	{"cs_winner", func(g *models.GeneralSummary) int { return g.CSWinner }},
	{"champ_experience_winner", func(g *models.GeneralSummary) int { return g.ChampExperienceWinner }},
	{"wards_placed_winner", func(g *models.GeneralSummary) int { return g.WardsPlacedWinner }},
	{"gold_spender_winner", func(g *models.GeneralSummary) int { return g.GoldSpenderWinner }},
	{LabelColumn, func(g *models.GeneralSummary) int { return g.FinalMatchWinner }},
}

// SchemaMismatchError reports a flat row (or prepared matrix) whose column
// set does not line up with the fixed schema.
type SchemaMismatchError struct {
	Missing []string
	Extra   []string

	// Width mismatch between a prepared matrix and a trained model.
	WantWidth int
	GotWidth  int
}

func (e *SchemaMismatchError) Error() string {
	if e.WantWidth != 0 || e.GotWidth != 0 {
		return fmt.Sprintf("schema mismatch: expected %d feature columns, got %d", e.WantWidth, e.GotWidth)
	}
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns %v", e.Missing))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected columns %v", e.Extra))
	}
	if len(parts) == 0 {
		return "schema mismatch"
	}
	return "schema mismatch: " + strings.Join(parts, ", ")
}

// Schema is the fixed flat-row column set shared by training and serving.
// It is fully determined by the team numeric field list, the team count,
// and the roster size; no per-request drift is allowed.
type Schema struct {
	numeric     []string // sorted
	categorical []string // flatten emission order
	all         map[string]bool
}

// NewSchema returns the training schema, label column included.
func NewSchema() *Schema {
	return build(true)
}

// NewServingSchema returns the serving schema: identical columns minus the
// training label, which a live request cannot know.
func NewServingSchema() *Schema {
	return build(false)
}

func build(withLabel bool) *Schema {
	s := &Schema{all: make(map[string]bool)}

	for i := range models.TeamIDs {
		for _, f := range teamNumericFields {
			s.numeric = append(s.numeric, fmt.Sprintf("%s_%d", f.name, i))
		}
		s.categorical = append(s.categorical,
			fmt.Sprintf("dmg_carry_%d", i),
			fmt.Sprintf("obj_carry_%d", i),
		)
		for k := 1; k <= TeamSize; k++ {
			s.categorical = append(s.categorical, fmt.Sprintf("team_comp_%d_champ_%d", i, k))
		}
	}

	s.numeric = append(s.numeric, "gameLengthMin")
	for _, f := range generalIndexFields {
		if f.name == LabelColumn && !withLabel {
			continue
		}
		s.numeric = append(s.numeric, f.name)
	}

	sort.Strings(s.numeric)
	for _, c := range s.numeric {
		s.all[c] = true
	}
	for _, c := range s.categorical {
		s.all[c] = true
	}
	return s
}

// NumericColumns returns the numeric column names in matrix order
// (lexicographic).
func (s *Schema) NumericColumns() []string {
	out := make([]string, len(s.numeric))
	copy(out, s.numeric)
	return out
}

// CategoricalColumns returns the composition and carry column names in
// flatten emission order.
func (s *Schema) CategoricalColumns() []string {
	out := make([]string, len(s.categorical))
	copy(out, s.categorical)
	return out
}

// Columns returns every column in matrix order: numeric block first, then
// the categorical columns. Used for CSV headers and the dataset table.
func (s *Schema) Columns() []string {
	out := make([]string, 0, len(s.numeric)+len(s.categorical))
	out = append(out, s.numeric...)
	out = append(out, s.categorical...)
	return out
}

// Validate checks that the row's key set matches the schema exactly.
func (s *Schema) Validate(row Row) error {
	var missing, extra []string
	for col := range s.all {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	for col := range row {
		if !s.all[col] {
			extra = append(extra, col)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return &SchemaMismatchError{Missing: missing, Extra: extra}
}
