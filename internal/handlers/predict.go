package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riftlab/predict-api/internal/champions"
	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/models"
)

// Predict handles POST /api/v1/predict
// @Summary Predict Match Winners
// @Description Scores a batch of flat feature rows and returns the predicted winning team per row
// @Tags Prediction
// @Accept json
// @Produce json
// @Param body body []map[string]interface{} true "Feature rows"
// @Success 200 {object} models.PredictResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Unknown Champion"
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var rows []features.Row
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON: expected an array of feature rows")
		return
	}

	matrix, err := h.prepare(rows)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	classes, probs, err := h.model.Predict(matrix)
	if err != nil {
		// The preparer already fixed the matrix width, so a mismatch here
		// means the loaded model disagrees with the serving schema.
		h.logger.Errorw("Model rejected prepared matrix", "error", err, "width", matrix.Width())
		h.errorResponse(w, http.StatusInternalServerError, "Model is incompatible with the feature schema")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.PredictResponse{
		Predictions:      classes,
		WinProbabilities: probs,
	})
}

func (h *Handler) prepare(rows []features.Row) (*features.Matrix, error) {
	if h.model.HasComposition() {
		return h.preparer.Prepare(rows)
	}
	return h.preparer.PrepareNumeric(rows)
}

func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	var notFound *champions.NotFoundError
	var mismatch *features.SchemaMismatchError
	switch {
	case errors.Is(err, features.ErrEmptyBatch):
		h.errorResponse(w, http.StatusBadRequest, "Empty batch")
	case errors.As(err, &notFound):
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &mismatch):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw("Failed to prepare feature rows", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to prepare feature rows")
	}
}
