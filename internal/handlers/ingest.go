package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/riftlab/predict-api/internal/models"
)

// IngestMatches handles POST /api/v1/ingest/matches
// @Summary Ingest Raw Matches
// @Description Accepts newline-separated raw match JSON documents and queues them for dataset persistence
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []models.RawMatch true "Matches"
// @Success 202 {object} models.IngestResponse "Accepted"
// @Failure 413 {object} map[string]string "Payload Too Large"
// @Router /ingest/matches [post]
func (h *Handler) IngestMatches(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	lines := strings.Split(string(body), "\n")
	processed := 0
	failed := 0
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var match models.RawMatch
		if err := json.Unmarshal([]byte(line), &match); err != nil {
			h.logger.Warnw("Failed to unmarshal match in batch", "error", err, "lineNum", i)
			failed++
			continue
		}

		if err := h.validator.Struct(&match.Info); err != nil {
			h.logger.Warnw("Validation failed for match", "error", err, "lineNum", i, "matchID", match.Metadata.MatchID)
			failed++
			continue
		}

		if !h.pool.Enqueue(&match) {
			h.logger.Warn("Worker pool queue full, dropping remaining matches in batch")
			failed += countRemaining(lines[i:])
			break
		}
		processed++
	}

	h.jsonResponse(w, http.StatusAccepted, models.IngestResponse{
		Status:    "accepted",
		Processed: processed,
		Failed:    failed,
	})
}

func countRemaining(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
