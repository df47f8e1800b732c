package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/google/uuid"
)

// ConversationRepository handles the append-only chat history log.
type ConversationRepository struct {
	db *DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Insert appends a conversation record. Records are never updated or deleted.
func (r *ConversationRepository) Insert(ctx context.Context, rec *models.ConversationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	contextJSON, err := json.Marshal(rec.Context)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation context: %w", err)
	}

	query := `
		INSERT INTO ai_conversations (id, user_id, user_message, bot_response, context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.UserMessage,
		rec.BotResponse,
		contextJSON,
		time.Now(),
	).Scan(&rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	return nil
}

// ListRecent retrieves up to limit conversation records, newest first
func (r *ConversationRepository) ListRecent(ctx context.Context, limit int) ([]*models.ConversationRecord, error) {
	query := `
		SELECT id, user_id, user_message, bot_response, context, created_at
		FROM ai_conversations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var records []*models.ConversationRecord
	for rows.Next() {
		rec := &models.ConversationRecord{}
		var contextJSON []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserMessage, &rec.BotResponse, &contextJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &rec.Context); err != nil {
				// Tolerate malformed context blobs; the miner treats
				// them as default-sourced responses.
				rec.Context = nil
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return records, nil
}

// Count returns the total number of logged conversations
func (r *ConversationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ai_conversations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return count, nil
}
