package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riftlab/predict-api/internal/aggregate"
	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/models"
)

// MatchSummary handles POST /api/v1/matches/summary
// @Summary Summarize Raw Match
// @Description Aggregates one raw match document into per-team totals and its flat feature row
// @Tags Matches
// @Accept json
// @Produce json
// @Param body body models.RawMatch true "Raw match document"
// @Success 200 {object} models.MatchSummaryResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Unprocessable Match"
// @Router /matches/summary [post]
func (h *Handler) MatchSummary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var match models.RawMatch
	if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validator.Struct(&match.Info); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	summary, err := aggregate.Aggregate(&match)
	if err != nil {
		h.writeAggregateError(w, &match, err)
		return
	}

	row, err := features.Flatten(summary)
	if err != nil {
		h.logger.Errorw("Failed to flatten summary", "error", err, "matchID", match.Metadata.MatchID)
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, models.MatchSummaryResponse{
		MatchID: match.Metadata.MatchID,
		Summary: summary,
		Row:     row,
	})
}

func (h *Handler) writeAggregateError(w http.ResponseWriter, match *models.RawMatch, err error) {
	var degenerate *aggregate.DegenerateTeamError
	switch {
	case errors.As(err, &degenerate):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, aggregate.ErrNoWinner):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Errorw("Failed to aggregate match", "error", err, "matchID", match.Metadata.MatchID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to aggregate match")
	}
}
