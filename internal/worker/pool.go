// Package worker implements the buffered worker pool that decouples match
// ingestion from dataset writes:
// - Backpressure handling via load shedding
// - Batched SQLite inserts
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/riftlab/predict-api/internal/aggregate"
	"github.com/riftlab/predict-api/internal/dataset"
	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/models"
)

// Prometheus metrics
var (
	matchesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rift_matches_ingested_total",
		Help: "Total number of raw matches accepted onto the queue",
	})

	matchesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rift_matches_processed_total",
		Help: "Total number of matches flattened and persisted",
	})

	matchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rift_matches_failed_total",
		Help: "Total number of matches that failed aggregation or persistence",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rift_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rift_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts into the dataset store",
		Buckets: prometheus.DefBuckets,
	})

	matchesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rift_matches_load_shed_total",
		Help: "Total number of matches dropped because the queue was full",
	})
)

// DatasetStore is the sink the pool flushes flattened rows into.
type DatasetStore interface {
	InsertRows(ctx context.Context, records []dataset.RowRecord) error
}

// Job represents one raw match queued for processing.
type Job struct {
	Match     *models.RawMatch
	Timestamp time.Time
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Store         DatasetStore
	Logger        *zap.Logger
}

// Pool manages the worker goroutines feeding the dataset store.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool, flushing pending batches.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a match to the queue. Returns false when the queue is full
// (load shed) or the pool is shutting down; the match is dropped either way.
func (p *Pool) Enqueue(match *models.RawMatch) (queued bool) {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue match (pool stopped)", "error", r)
			queued = false
		}
	}()

	select {
	case p.jobQueue <- Job{Match: match, Timestamp: time.Now()}:
		matchesIngested.Inc()
		return true
	default:
		p.logger.Warnw("Worker queue full, dropping match", "matchId", match.Metadata.MatchID)
		matchesLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker aggregates and flattens queued matches and flushes them to the
// dataset store in batches.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]dataset.RowRecord, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := p.config.Store.InsertRows(ctx, batch)
		cancel()

		if err != nil {
			p.logger.Errorw("Batch insert failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			matchesFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch persisted", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			matchesProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			rec, err := p.process(job)
			if err != nil {
				// One bad match never aborts the rest of the batch.
				p.logger.Warnw("Dropping match",
					"worker", id,
					"matchId", job.Match.Metadata.MatchID,
					"error", err,
				)
				matchesFailed.Inc()
				continue
			}

			batch = append(batch, rec)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// process runs one match through the aggregation pipeline.
func (p *Pool) process(job Job) (dataset.RowRecord, error) {
	summary, err := aggregate.Aggregate(job.Match)
	if err != nil {
		return dataset.RowRecord{}, err
	}
	row, err := features.Flatten(summary)
	if err != nil {
		return dataset.RowRecord{}, err
	}
	return dataset.RowRecord{MatchID: job.Match.Metadata.MatchID, Row: row}, nil
}

// reportQueueDepth updates the queue depth gauge until shutdown.
func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
