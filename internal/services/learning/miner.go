// Package learning derives response patterns from conversation history.
// Mining is frequency-based: repeated questions become frequent_question
// patterns, and keyword topic buckets with enough traffic become
// topic_pattern entries.
package learning

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/textutil"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/validation"
	"go.uber.org/zap"
)

const (
	// maxConversations caps how much history a mining pass scans.
	maxConversations = 1000

	// minGroupSize is the repeat count before a question becomes a pattern.
	minGroupSize = 3
	// maxFrequentConfidence caps the frequency-derived confidence.
	maxFrequentConfidence = 0.9

	// minTopicConversations is the bucket traffic floor for topic patterns.
	minTopicConversations = 5
	// topicConfidence is the fixed confidence assigned to topic patterns.
	topicConfidence = 0.8
	// maxTopicSentences is how many representative sentences a topic
	// pattern's response joins together.
	maxTopicSentences = 3
	// minSentenceLen filters out trivial sentence fragments.
	minSentenceLen = 20
)

// topicBucket is a fixed keyword bucket mined into a topic pattern.
type topicBucket struct {
	name     string
	keywords []string
}

var topicBuckets = []topicBucket{
	{"courses", []string{"course", "learn", "training", "study"}},
	{"technology", []string{"iot", "smart", "sensor", "automation"}},
	{"farming", []string{"soil", "crop", "plant", "harvest"}},
	{"progress", []string{"progress", "track", "complete"}},
}

// Miner scans conversation history and upserts learned patterns.
type Miner struct {
	conversations database.ConversationRepositoryInterface
	patterns      database.PatternRepositoryInterface
	logger        *zap.Logger
}

// NewMiner creates a new pattern miner
func NewMiner(conversations database.ConversationRepositoryInterface, patterns database.PatternRepositoryInterface, logger *zap.Logger) *Miner {
	return &Miner{
		conversations: conversations,
		patterns:      patterns,
		logger:        logger,
	}
}

// MinePatterns runs one mining pass over the most recent conversations and
// persists every derived pattern. Upserts are keyed by trigger, so repeated
// mining updates existing rows rather than duplicating them.
func (m *Miner) MinePatterns(ctx context.Context) error {
	conversations, err := m.conversations.ListRecent(ctx, maxConversations)
	if err != nil {
		return fmt.Errorf("failed to load conversations for mining: %w", err)
	}

	patterns := MineFromConversations(conversations)

	upserted := 0
	for _, p := range patterns {
		if err := validation.Validate.Struct(p); err != nil {
			m.logger.Warn("skipping_invalid_pattern",
				zap.String("trigger", p.Trigger),
				zap.Error(err),
			)
			continue
		}
		if err := m.patterns.Upsert(ctx, p); err != nil {
			m.logger.Warn("failed_to_upsert_pattern",
				zap.String("trigger", p.Trigger),
				zap.Error(err),
			)
			continue
		}
		upserted++
	}

	m.logger.Info("pattern_mining_completed",
		zap.Int("conversations_scanned", len(conversations)),
		zap.Int("patterns_derived", len(patterns)),
		zap.Int("patterns_upserted", upserted),
	)

	return nil
}

// MineFromConversations derives patterns from a batch of conversation
// records. Pure; exported for tests and reuse.
func MineFromConversations(conversations []*models.ConversationRecord) []*models.LearnedPattern {
	var out []*models.LearnedPattern
	out = append(out, mineFrequentQuestions(conversations)...)
	out = append(out, mineTopicPatterns(conversations)...)
	return out
}

// mineFrequentQuestions groups conversations by normalized user message and
// emits a frequent_question pattern for every group with at least
// minGroupSize members. The response is the group's most frequent one;
// frequency ties break in first-seen order.
func mineFrequentQuestions(conversations []*models.ConversationRecord) []*models.LearnedPattern {
	groups := make(map[string][]*models.ConversationRecord)
	var order []string

	for _, c := range conversations {
		trigger := textutil.Normalize(c.UserMessage)
		if trigger == "" {
			continue
		}
		if _, seen := groups[trigger]; !seen {
			order = append(order, trigger)
		}
		groups[trigger] = append(groups[trigger], c)
	}

	var patterns []*models.LearnedPattern
	for _, trigger := range order {
		group := groups[trigger]
		if len(group) < minGroupSize {
			continue
		}

		responses := make([]string, 0, len(group))
		for _, c := range group {
			responses = append(responses, c.BotResponse)
		}
		best := mostFrequent(responses)
		if best == "" {
			continue
		}

		confidence := float64(len(group)) / 10
		if confidence > maxFrequentConfidence {
			confidence = maxFrequentConfidence
		}

		patterns = append(patterns, &models.LearnedPattern{
			PatternType: models.PatternTypeFrequentQuestion,
			Trigger:     trigger,
			Response:    best,
			Confidence:  confidence,
			UsageCount:  len(group),
		})
	}

	return patterns
}

// mineTopicPatterns emits a topic_pattern per keyword bucket when the bucket
// has at least minTopicConversations matching conversations and at least one
// of them carries a non-default response source.
func mineTopicPatterns(conversations []*models.ConversationRecord) []*models.LearnedPattern {
	var patterns []*models.LearnedPattern

	for _, bucket := range topicBuckets {
		var matched []*models.ConversationRecord
		hasLearned := false
		for _, c := range conversations {
			lower := strings.ToLower(c.UserMessage)
			if !containsAny(lower, bucket.keywords) {
				continue
			}
			matched = append(matched, c)
			if c.Source() != models.ResponseSourceDefault {
				hasLearned = true
			}
		}

		if len(matched) < minTopicConversations || !hasLearned {
			continue
		}

		response := representativeSentences(matched)
		if response == "" {
			continue
		}

		patterns = append(patterns, &models.LearnedPattern{
			PatternType: models.PatternTypeTopic,
			Trigger:     bucket.name,
			Response:    response,
			Confidence:  topicConfidence,
			UsageCount:  len(matched),
		})
	}

	return patterns
}

// representativeSentences extracts up to maxTopicSentences sentences longer
// than minSentenceLen from the matched responses, deduplicated by normalized
// form and ranked by frequency (first-seen order on ties).
func representativeSentences(conversations []*models.ConversationRecord) string {
	counts := make(map[string]int)
	original := make(map[string]string)
	var order []string

	for _, c := range conversations {
		for _, sentence := range splitSentences(c.BotResponse) {
			if len(sentence) <= minSentenceLen {
				continue
			}
			key := textutil.Normalize(sentence)
			if key == "" {
				continue
			}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
				original[key] = sentence
			}
			counts[key]++
		}
	}

	// Stable sort keeps first-seen order when frequencies tie
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxTopicSentences {
		order = order[:maxTopicSentences]
	}

	sentences := make([]string, 0, len(order))
	for _, key := range order {
		sentences = append(sentences, original[key])
	}
	return strings.Join(sentences, " ")
}

// mostFrequent returns the most common response by normalized form,
// preferring the first-seen original text on ties.
func mostFrequent(responses []string) string {
	counts := make(map[string]int)
	original := make(map[string]string)
	var order []string

	for _, r := range responses {
		key := textutil.Normalize(r)
		if key == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			original[key] = r
		}
		counts[key]++
	}

	best := ""
	bestCount := 0
	for _, key := range order {
		if counts[key] > bestCount {
			best = key
			bestCount = counts[key]
		}
	}
	return original[best]
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func containsAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
