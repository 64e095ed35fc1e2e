// Package follower walks the chain from a start height and feeds every block, in order, to a processor.
package follower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/pkg/workerpool"
	"go.uber.org/zap"
)

// Config tunes the follower loop. Zero values fall back to defaults.
type Config struct {
	// StartHeight is the first block to process.
	StartHeight uint64
	// StopHeight is the last block to process; zero follows the tip forever.
	StopHeight   uint64
	Window       int
	WorkerCount  int
	PollInterval time.Duration
	RetryInitial time.Duration
	RetryMax     time.Duration
	// BlockSignal, when set, cuts the tip wait short on every notification.
	BlockSignal <-chan struct{}
}

// Service prefetches windows of blocks concurrently and processes them sequentially.
// Source failures are retried with backoff; processor failures stop the loop.
type Service struct {
	source       BlockSource
	processor    Processor
	metrics      Metrics
	logger       *zap.Logger
	sleep        func(context.Context, time.Duration) error
	backoff      *backoff.ExponentialBackOff
	pollInterval time.Duration
	window       int
	workerCount  int
	stopHeight   uint64
	next         uint64
	blockSignal  <-chan struct{}
}

// NewService builds a follower Service.
func NewService(
	source BlockSource,
	processor Processor,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Service, error) {
	if source == nil {
		return nil, errors.New("follower source is required")
	}
	if processor == nil {
		return nil, errors.New("follower processor is required")
	}
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	if cfg.StopHeight != 0 && cfg.StopHeight < cfg.StartHeight {
		return nil, fmt.Errorf("stop height %d is below start height %d", cfg.StopHeight, cfg.StartHeight)
	}

	s := &Service{
		source:       source,
		processor:    processor,
		metrics:      metrics,
		logger:       logger,
		sleep:        clock.SleepWithContext,
		backoff:      newRetryBackoff(orDefault(cfg.RetryInitial, defaultRetryInitial), orDefault(cfg.RetryMax, defaultRetryMax)),
		pollInterval: orDefault(cfg.PollInterval, defaultPollInterval),
		window:       orDefault(cfg.Window, defaultWindow),
		workerCount:  orDefault(cfg.WorkerCount, defaultWorkerCount),
		stopHeight:   cfg.StopHeight,
		next:         cfg.StartHeight,
		blockSignal:  cfg.BlockSignal,
	}
	metrics.SetNextHeight(s.next)
	return s, nil
}

// NextHeight returns the height of the next block to process.
func (s *Service) NextHeight() uint64 {
	return s.next
}

// Run follows the chain until the context is canceled, the stop height is processed,
// or the processor fails.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("following chain",
		zap.Uint64("start_height", s.next),
		zap.Uint64("stop_height", s.stopHeight),
		zap.Int("window", s.window),
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.finished() {
			s.logger.Info("stop height reached", zap.Uint64("stop_height", s.stopHeight))
			return nil
		}

		blocks, err := s.fetchWindow(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			delay := s.backoff.NextBackOff()
			s.logger.Warn("fetch blocks failed, backing off",
				zap.Uint64("next_height", s.next),
				zap.Duration("sleep", delay),
				zap.Error(err),
			)
			if sleepErr := s.sleep(ctx, delay); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		s.backoff.Reset()

		if len(blocks) == 0 {
			s.logger.Debug("caught up with tip; sleeping", zap.Duration("sleep", s.pollInterval))
			if err := s.wait(ctx, s.pollInterval); err != nil {
				return err
			}
			continue
		}

		for _, block := range blocks {
			if err := s.processor.Process(ctx, block); err != nil {
				s.logger.Error("process block failed", zap.Uint64("block", block.Number), zap.Error(err))
				return fmt.Errorf("process block %d: %w", block.Number, err)
			}
			s.next = block.Number + 1
			s.metrics.SetNextHeight(s.next)
		}
	}
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}

func (s *Service) finished() bool {
	return s.stopHeight != 0 && s.next > s.stopHeight
}

func (s *Service) fetchWindow(ctx context.Context) ([]model.Block, error) {
	tip, err := s.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest height: %w", err)
	}
	s.metrics.SetTipHeight(tip)

	heights := s.windowHeights(tip)
	if len(heights) == 0 {
		return nil, nil
	}

	started := time.Now()
	blocks, err := workerpool.Map(ctx, s.workerCount, heights, s.fetchBlock)
	s.metrics.ObserveFetchWindow(err, len(heights), started)
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *Service) fetchBlock(ctx context.Context, height uint64) (model.Block, error) {
	block, err := s.source.FetchBlock(ctx, height)
	if err != nil {
		return model.Block{}, fmt.Errorf("fetch block %d: %w", height, err)
	}
	if block.Number != height {
		return model.Block{}, fmt.Errorf("source returned block %d for height %d", block.Number, height)
	}
	return block, nil
}

func (s *Service) windowHeights(tip uint64) []uint64 {
	if s.next > tip {
		return nil
	}
	last := tip
	if end := s.next + uint64(s.window) - 1; end < last {
		last = end
	}
	if s.stopHeight != 0 && s.stopHeight < last {
		last = s.stopHeight
	}

	heights := make([]uint64, 0, last-s.next+1)
	for h := s.next; h <= last; h++ {
		heights = append(heights, h)
	}
	return heights
}

// newRetryBackoff doubles the delay from initial up to max and never gives up.
func newRetryBackoff(initial, max time.Duration) *backoff.ExponentialBackOff {
	if max < initial {
		max = initial
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = max
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
