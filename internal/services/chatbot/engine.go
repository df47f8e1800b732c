// Package chatbot implements the rule-based conversational response engine:
// learned-pattern matching over mined conversation history, keyword intent
// classification, and response personalization from site content and
// enrollment data.
package chatbot

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/textutil"
	"go.uber.org/zap"
)

// Matching thresholds. Retrieval pulls every pattern at or above
// minRetrievalConfidence; exact and partial matches then apply their own
// stricter bars.
const (
	minRetrievalConfidence  = 0.6
	exactMatchConfidence    = 0.8 // exact trigger match requires confidence > this
	partialMatchConfidence  = 0.7
	partialMatchSimilarity  = 0.7
	highConfidenceTierLabel = "high"
	lowConfidenceTierLabel  = "standard"
)

// DefaultBrandName is used when no brand override is configured.
const DefaultBrandName = "Artificial Farm Academy"

// Recorder receives the engine's fire-and-forget side effects: conversation
// log appends and pattern usage increments. Implementations must never block
// the response path on failure; errors are logged and swallowed.
type Recorder interface {
	LogConversation(ctx context.Context, rec *models.ConversationRecord)
	IncrementUsage(ctx context.Context, trigger string)
}

// Engine is the conversational response engine. The sole entry point is
// GetResponse; it always returns a non-empty string and never propagates
// persistence errors.
type Engine struct {
	siteData    *SiteDataCache
	userContext *UserContextLoader
	patterns    database.PatternRepositoryInterface
	recorder    Recorder
	logger      *zap.Logger
	brand       string
	timeout     time.Duration
	randIntn    func(n int) int
}

// NewEngine creates a new response engine. brand may be empty, in which case
// DefaultBrandName is used.
func NewEngine(
	siteData *SiteDataCache,
	userContext *UserContextLoader,
	patterns database.PatternRepositoryInterface,
	recorder Recorder,
	logger *zap.Logger,
	brand string,
) *Engine {
	if brand == "" {
		brand = DefaultBrandName
	}
	return &Engine{
		siteData:    siteData,
		userContext: userContext,
		patterns:    patterns,
		recorder:    recorder,
		logger:      logger,
		brand:       brand,
		timeout:     defaultFetchTimeout,
		randIntn:    rand.Intn,
	}
}

// GetResponse produces the bot response for a user message. user may be nil
// for anonymous callers. Learned patterns are tried first (exact, partial,
// topic substring); only when none match does the intent classifier run.
// Identified users get the exchange appended to the conversation log.
func (e *Engine) GetResponse(ctx context.Context, message string, user *models.User) string {
	snap := e.siteData.Load(ctx)
	uc := e.userContext.Load(ctx, user)

	response, source, intent, confidence := e.respond(ctx, message, snap, uc)

	if user != nil {
		rec := &models.ConversationRecord{
			UserID:      &user.ID,
			UserMessage: message,
			BotResponse: response,
			Context: map[string]any{
				models.ContextKeySource:     source,
				models.ContextKeyIntent:     string(intent),
				models.ContextKeyConfidence: confidence,
			},
		}
		e.recorder.LogConversation(ctx, rec)
	}

	return response
}

// respond runs the match-then-classify pipeline and reports how the response
// was produced for the conversation log.
func (e *Engine) respond(ctx context.Context, message string, snap *SiteDataSnapshot, uc *UserContext) (response, source string, intent Intent, confidence string) {
	if p := e.matchPattern(ctx, message); p != nil {
		e.recorder.IncrementUsage(ctx, p.Trigger)
		tier := lowConfidenceTierLabel
		if p.Confidence > exactMatchConfidence {
			tier = highConfidenceTierLabel
		}
		return e.personalize(p.Response, uc), models.ResponseSourceLearned, IntentDefault, tier
	}

	intent = ClassifyIntent(message)
	return e.buildResponse(intent, snap, uc), models.ResponseSourceDefault, intent, lowConfidenceTierLabel
}

// matchPattern tries learned patterns in priority order: exact normalized
// trigger match, then similarity-based partial match, then topic substring
// match. Patterns arrive ordered by descending confidence, so the first
// qualifying partial match is also the most confident one.
func (e *Engine) matchPattern(ctx context.Context, message string) *models.LearnedPattern {
	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	patterns, err := e.patterns.ListAboveConfidence(fetchCtx, minRetrievalConfidence)
	if err != nil {
		e.logger.Warn("failed_to_load_patterns", zap.Error(err))
		return nil
	}
	if len(patterns) == 0 {
		return nil
	}

	normalized := textutil.Normalize(message)
	lower := strings.ToLower(message)

	for _, p := range patterns {
		if p == nil || p.Trigger == "" || p.Response == "" {
			continue
		}
		if p.Trigger == normalized && p.Confidence > exactMatchConfidence {
			return p
		}
	}

	for _, p := range patterns {
		if p == nil || p.Trigger == "" || p.Response == "" {
			continue
		}
		if p.Confidence > partialMatchConfidence &&
			textutil.Similarity(normalized, p.Trigger) > partialMatchSimilarity {
			return p
		}
	}

	for _, p := range patterns {
		if p == nil || p.Trigger == "" || p.Response == "" {
			continue
		}
		if p.PatternType == models.PatternTypeTopic && strings.Contains(lower, p.Trigger) {
			return p
		}
	}

	return nil
}

// personalize substitutes the placeholder word "there" with the user's
// display name. This is a plain find-and-replace with no word-boundary
// check, preserving the original behavior.
func (e *Engine) personalize(response string, uc *UserContext) string {
	if uc == nil || uc.DisplayName == "" {
		return response
	}
	return strings.ReplaceAll(response, "there", uc.DisplayName)
}
