package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PatternMiner is the mining entry point the scheduler drives.
type PatternMiner interface {
	MinePatterns(ctx context.Context) error
}

// defaultMiningInterval is how often a mining pass runs.
const defaultMiningInterval = time.Hour

// MiningScheduler runs the pattern miner once at startup and then on a fixed
// interval until its context is cancelled.
type MiningScheduler struct {
	miner    PatternMiner
	interval time.Duration
	logger   *zap.Logger
}

// NewMiningScheduler creates a new mining scheduler. A non-positive interval
// falls back to the hourly default.
func NewMiningScheduler(miner PatternMiner, interval time.Duration, logger *zap.Logger) *MiningScheduler {
	if interval <= 0 {
		interval = defaultMiningInterval
	}
	return &MiningScheduler{
		miner:    miner,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the mining loop until ctx is cancelled. A failed pass is logged
// and the loop keeps going; mining is derived state and the next pass
// recomputes it.
func (s *MiningScheduler) Start(ctx context.Context) error {
	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *MiningScheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.miner.MinePatterns(ctx); err != nil {
		s.logger.Warn("pattern_mining_failed", zap.Error(err))
		return
	}
	s.logger.Debug("pattern_mining_pass_done",
		zap.Duration("elapsed", time.Since(start)),
	)
}
