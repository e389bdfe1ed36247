package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const validMatchJSON = `{"metadata":{"matchId":"NA1_100"},"info":{"gameDuration":1500000,"participants":[` +
	`{"teamId":100,"championName":"Ashe","championId":22,"win":true,"goldEarned":12000,"kills":9,"totalDamageDealtToChampions":30000,"damageDealtToObjectives":8000},` +
	`{"teamId":200,"championName":"Thresh","championId":412,"win":false,"goldEarned":9000,"kills":3,"totalDamageDealtToChampions":14000,"damageDealtToObjectives":2000}]}}`

func TestMatchSummary(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Happy Path",
			body:           validMatchJSON,
			expectedStatus: http.StatusOK,
			expectedBody:   `"gameLengthMin":25`,
		},
		{
			name:           "Reports Carries And Winner",
			body:           validMatchJSON,
			expectedStatus: http.StatusOK,
			expectedBody:   `"final_match_winner":100`,
		},
		{
			name:           "Echoes Match ID",
			body:           validMatchJSON,
			expectedStatus: http.StatusOK,
			expectedBody:   `"match_id":"NA1_100"`,
		},
		{
			name:           "Invalid JSON",
			body:           `{"info": nope}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid JSON`,
		},
		{
			name:           "Missing Participants",
			body:           `{"metadata":{"matchId":"NA1_101"},"info":{"gameDuration":1500000,"participants":[]}}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Validation failed`,
		},
		{
			name:           "One Sided Lobby",
			body:           `{"metadata":{"matchId":"NA1_102"},"info":{"gameDuration":1500000,"participants":[{"teamId":100,"championName":"Ashe","championId":22,"win":true}]}}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `200`,
		},
		{
			name:           "No Winner Flag",
			body:           `{"metadata":{"matchId":"NA1_103"},"info":{"gameDuration":1500000,"participants":[{"teamId":100,"championName":"Ashe","championId":22},{"teamId":200,"championName":"Thresh","championId":412}]}}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `win flag`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Config{
				WorkerPool: &MockIngestQueue{},
				Dataset:    &MockDatasetPinger{},
				Preparer:   &MockRowPreparer{},
				Model:      &MockClassifier{},
				Logger:     logger,
			})

			req := httptest.NewRequest("POST", "/api/v1/matches/summary", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.MatchSummary(w, req)

			if w.Result().StatusCode != tt.expectedStatus {
				t.Errorf("StatusCode = %d, want %d", w.Result().StatusCode, tt.expectedStatus)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("Body = %s, want substring %s", w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestMatchSummary_RowIncludesRecodedWinner(t *testing.T) {
	h := New(Config{
		WorkerPool: &MockIngestQueue{},
		Dataset:    &MockDatasetPinger{},
		Preparer:   &MockRowPreparer{},
		Model:      &MockClassifier{},
		Logger:     zap.NewNop(),
	})

	req := httptest.NewRequest("POST", "/api/v1/matches/summary", strings.NewReader(validMatchJSON))
	w := httptest.NewRecorder()
	h.MatchSummary(w, req)

	// The nested summary keeps the raw team id while the flat row recodes
	// winners to team indexes.
	if !strings.Contains(w.Body.String(), `"row"`) {
		t.Fatalf("Body = %s, want a row object", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"dmg_carry_0":"Ashe"`) {
		t.Errorf("Body = %s, want dmg_carry_0 Ashe", w.Body.String())
	}
}
