package models

// PredictResponse carries one class prediction per submitted row. Classes
// index the winning team (0 = blue side, 1 = red side).
type PredictResponse struct {
	Predictions      []int     `json:"predictions"`
	WinProbabilities []float64 `json:"win_probabilities"`
}

// MatchSummaryResponse is returned by the summary endpoint: the nested
// per-team aggregate plus its flattened feature row.
type MatchSummaryResponse struct {
	MatchID string         `json:"match_id,omitempty"`
	Summary *MatchSummary  `json:"summary"`
	Row     map[string]any `json:"row"`
}

// IngestResponse reports how many matches of a batch were queued.
type IngestResponse struct {
	Status    string `json:"status"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}
