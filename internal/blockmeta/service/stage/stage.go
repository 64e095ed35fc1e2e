// Package stage runs the per-block block metadata pipeline: derive, store, build, sink.
package stage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/changelog"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/derive"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"go.uber.org/zap"
)

// Service processes one block per call. Calls must not overlap.
type Service struct {
	store   Store
	sink    Sink
	metrics Metrics
	logger  *zap.Logger
}

// NewService builds a Service with the given dependencies.
func NewService(store Store, sink Sink, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("stage store is required")
	}
	if sink == nil {
		return nil, errors.New("stage sink is required")
	}
	if metrics == nil {
		return nil, errors.New("stage metrics is required")
	}
	return &Service{
		store:   store,
		sink:    sink,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Process offers the block metadata to the store and hands the change records produced by
// the resulting deltas to the sink. Any error aborts the block before the sink sees a record.
func (s *Service) Process(ctx context.Context, block model.Block) (err error) {
	started := time.Now()
	var records []changelog.Record
	defer func() {
		s.metrics.ObserveBlock(err, len(records), started)
	}()

	if err = derive.Write(ctx, s.store, block); err != nil {
		s.logger.Error("store block meta failed", zap.Uint64("block", block.Number), zap.Error(err))
		return fmt.Errorf("store block %d: %w", block.Number, err)
	}

	deltas := s.store.Deltas()
	records, err = changelog.Build(deltas)
	if err != nil {
		s.logger.Error("build change records failed",
			zap.Uint64("block", block.Number),
			zap.Int("deltas", len(deltas)),
			zap.Error(err),
		)
		return fmt.Errorf("build changes for block %d: %w", block.Number, err)
	}

	if len(records) == 0 {
		s.logger.Debug("no bucket changes", zap.Uint64("block", block.Number))
		return nil
	}

	if err = s.sink.WriteRecords(ctx, block.Number, records); err != nil {
		s.logger.Error("write change records failed",
			zap.Uint64("block", block.Number),
			zap.Int("records", len(records)),
			zap.Error(err),
		)
		return fmt.Errorf("write changes for block %d: %w", block.Number, err)
	}

	s.logger.Debug("block changes written", zap.Uint64("block", block.Number), zap.Int("records", len(records)))
	return nil
}
