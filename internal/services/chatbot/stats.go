package chatbot

import (
	"context"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"go.uber.org/zap"
)

// StatsService summarizes the learning layer for the admin dashboard.
type StatsService struct {
	conversations database.ConversationRepositoryInterface
	patterns      database.PatternRepositoryInterface
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(conversations database.ConversationRepositoryInterface, patterns database.PatternRepositoryInterface, logger *zap.Logger) *StatsService {
	return &StatsService{
		conversations: conversations,
		patterns:      patterns,
		logger:        logger,
	}
}

// GetLearningStats returns the diagnostic summary. Any fetch error yields the
// zero stats object rather than propagating.
func (s *StatsService) GetLearningStats(ctx context.Context) *models.LearningStats {
	stats := &models.LearningStats{}

	total, err := s.conversations.Count(ctx)
	if err != nil {
		s.logger.Warn("failed_to_count_conversations", zap.Error(err))
		return &models.LearningStats{}
	}
	stats.TotalConversations = total

	patternTotal, avgConfidence, highConfidence, lastUpdate, err := s.patterns.Stats(ctx)
	if err != nil {
		s.logger.Warn("failed_to_get_pattern_stats", zap.Error(err))
		return &models.LearningStats{}
	}
	stats.TotalPatterns = patternTotal
	stats.AverageConfidence = avgConfidence
	stats.HighConfidencePatterns = highConfidence
	stats.LastLearningUpdate = lastUpdate

	return stats
}
