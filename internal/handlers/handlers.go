package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/models"
	"github.com/riftlab/predict-api/internal/predict"
)

// MaxBodySize limits the size of request bodies to 4MB. A full 5v5 match
// document with string-encoded counters runs well under 100KB, so this
// leaves room for sizeable ingest batches.
const MaxBodySize = 4194304

// IngestQueue defines the interface for the match ingestion worker pool
type IngestQueue interface {
	Enqueue(match *models.RawMatch) bool
	QueueDepth() int
}

// DatasetPinger reports whether the dataset store is reachable
type DatasetPinger interface {
	Ping(ctx context.Context) error
}

// RowPreparer turns flat feature rows into a standardized numeric matrix
type RowPreparer interface {
	Prepare(rows []features.Row) (*features.Matrix, error)
	PrepareNumeric(rows []features.Row) (*features.Matrix, error)
}

type Config struct {
	WorkerPool IngestQueue
	Dataset    DatasetPinger
	Preparer   RowPreparer
	Model      predict.Classifier
	Logger     *zap.Logger
}

type Handler struct {
	pool      IngestQueue
	dataset   DatasetPinger
	preparer  RowPreparer
	model     predict.Classifier
	logger    *zap.SugaredLogger
	validator *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:      cfg.WorkerPool,
		dataset:   cfg.Dataset,
		preparer:  cfg.Preparer,
		model:     cfg.Model,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
	}
}
