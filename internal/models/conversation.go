package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation context keys written by the response engine and read back by
// the pattern miner.
const (
	ContextKeySource     = "source"
	ContextKeyIntent     = "intent"
	ContextKeyConfidence = "confidence"

	// ResponseSourceLearned marks responses served from a learned pattern.
	ResponseSourceLearned = "learned"
	// ResponseSourceDefault marks responses built by the intent classifier path.
	ResponseSourceDefault = "default"
)

// ConversationRecord is one logged (user message, bot response) exchange.
// Records are append-only; anonymous messages are never logged.
type ConversationRecord struct {
	ID          uuid.UUID      `json:"id"`
	UserID      *uuid.UUID     `json:"user_id,omitempty"`
	UserMessage string         `json:"user_message"`
	BotResponse string         `json:"bot_response"`
	Context     map[string]any `json:"context,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Source returns the response source recorded in the context blob, or
// ResponseSourceDefault when absent.
func (c *ConversationRecord) Source() string {
	if c.Context == nil {
		return ResponseSourceDefault
	}
	if s, ok := c.Context[ContextKeySource].(string); ok && s != "" {
		return s
	}
	return ResponseSourceDefault
}
