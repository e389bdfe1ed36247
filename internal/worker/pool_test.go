package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/riftlab/predict-api/internal/dataset"
	"github.com/riftlab/predict-api/internal/models"
)

// captureStore records every batch it receives.
type captureStore struct {
	mu      sync.Mutex
	records []dataset.RowRecord
}

func (s *captureStore) InsertRows(ctx context.Context, records []dataset.RowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *captureStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func testMatch(id string, winner int) *models.RawMatch {
	m := &models.RawMatch{}
	m.Metadata.MatchID = id
	m.Info.GameDuration = 1800000
	m.Info.Participants = []models.ParticipantRecord{
		{TeamID: 100, ChampionName: "Ashe", ChampionID: 22, Win: winner == 100},
		{TeamID: 200, ChampionName: "Malphite", ChampionID: 54, Win: winner == 200},
	}
	return m
}

func TestEnqueueFull(t *testing.T) {
	// Create a pool manually to avoid starting workers
	cfg := PoolConfig{
		QueueSize: 1,
		Logger:    zap.NewNop(),
	}

	pool := &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.ctx = ctx
	pool.cancel = cancel
	defer cancel()

	if !pool.Enqueue(testMatch("1", 100)) {
		t.Fatal("Failed to enqueue first match")
	}

	// Queue is full now; the second enqueue must shed immediately.
	start := time.Now()
	enqueued := pool.Enqueue(testMatch("2", 100))
	duration := time.Since(start)

	if enqueued {
		t.Error("Enqueue should have returned false when queue is full")
	}
	if duration > 10*time.Millisecond {
		t.Errorf("Enqueue took too long (%v), expected immediate return", duration)
	}
}

func TestPool_FlushOnStop(t *testing.T) {
	store := &captureStore{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     16,
		BatchSize:     100, // larger than the job count: flush happens on Stop
		FlushInterval: time.Hour,
		Store:         store,
		Logger:        zap.NewNop(),
	})

	pool.Start(context.Background())
	for i := 0; i < 3; i++ {
		if !pool.Enqueue(testMatch("m", 100)) {
			t.Fatalf("Enqueue %d failed", i)
		}
	}

	// Let the worker drain the queue into its pending batch, then stop:
	// the shutdown flush must persist everything picked up.
	deadline := time.Now().Add(2 * time.Second)
	for pool.QueueDepth() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	pool.Stop()

	if got := store.len(); got != 3 {
		t.Fatalf("store received %d records, want 3", got)
	}
}

func TestPool_BadMatchSkipped(t *testing.T) {
	store := &captureStore{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     16,
		BatchSize:     1, // flush per record
		FlushInterval: 10 * time.Millisecond,
		Store:         store,
		Logger:        zap.NewNop(),
	})

	pool.Start(context.Background())

	// No participant on team 200: aggregation fails, match is dropped.
	bad := testMatch("bad", 100)
	bad.Info.Participants = bad.Info.Participants[:1]
	pool.Enqueue(bad)
	pool.Enqueue(testMatch("good", 200))

	deadline := time.Now().Add(2 * time.Second)
	for store.len() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	pool.Stop()

	if got := store.len(); got != 1 {
		t.Fatalf("store received %d records, want 1 (bad match skipped)", got)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.records[0].MatchID != "good" {
		t.Errorf("persisted match = %q, want good", store.records[0].MatchID)
	}
}
