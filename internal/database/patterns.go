package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
)

// PatternRepository handles learned pattern storage. Patterns are keyed by
// trigger text; upserts are last-write-wins.
type PatternRepository struct {
	db *DB
}

// NewPatternRepository creates a new pattern repository
func NewPatternRepository(db *DB) *PatternRepository {
	return &PatternRepository{db: db}
}

// Upsert writes a learned pattern keyed by trigger. On conflict all fields
// are overwritten with the caller's desired state; there is no merge.
func (r *PatternRepository) Upsert(ctx context.Context, p *models.LearnedPattern) error {
	query := `
		INSERT INTO ai_patterns (pattern_type, trigger, response, confidence, usage_count, last_used, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (trigger) DO UPDATE SET
			pattern_type = EXCLUDED.pattern_type,
			response = EXCLUDED.response,
			confidence = EXCLUDED.confidence,
			usage_count = EXCLUDED.usage_count,
			last_used = EXCLUDED.last_used,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		p.PatternType,
		p.Trigger,
		p.Response,
		p.Confidence,
		p.UsageCount,
		p.LastUsed,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pattern: %w", err)
	}
	p.UpdatedAt = now

	return nil
}

// ListAboveConfidence retrieves patterns with confidence >= minConfidence,
// ordered by descending confidence.
func (r *PatternRepository) ListAboveConfidence(ctx context.Context, minConfidence float64) ([]*models.LearnedPattern, error) {
	query := `
		SELECT pattern_type, trigger, response, confidence, usage_count, last_used, updated_at
		FROM ai_patterns
		WHERE confidence >= $1
		ORDER BY confidence DESC
	`

	rows, err := r.db.QueryContext(ctx, query, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var patterns []*models.LearnedPattern
	for rows.Next() {
		p := &models.LearnedPattern{}
		var lastUsed sql.NullTime
		if err := rows.Scan(&p.PatternType, &p.Trigger, &p.Response, &p.Confidence, &p.UsageCount, &lastUsed, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		if lastUsed.Valid {
			t := lastUsed.Time
			p.LastUsed = &t
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patterns: %w", err)
	}

	return patterns, nil
}

// IncrementUsage bumps a pattern's usage counter via the
// increment_pattern_usage SQL function, falling back to a plain UPDATE when
// the function is missing. Concurrent increments may race and under-count;
// usage counting is not correctness-critical.
func (r *PatternRepository) IncrementUsage(ctx context.Context, trigger string) error {
	if _, err := r.db.ExecContext(ctx, `SELECT increment_pattern_usage($1)`, trigger); err == nil {
		return nil
	}

	query := `
		UPDATE ai_patterns
		SET usage_count = usage_count + 1, last_used = $2
		WHERE trigger = $1
	`
	if _, err := r.db.ExecContext(ctx, query, trigger, time.Now()); err != nil {
		return fmt.Errorf("failed to increment pattern usage: %w", err)
	}

	return nil
}

// Stats returns aggregate pattern metrics for the learning stats view.
// highConfidence counts patterns with confidence >= 0.8.
func (r *PatternRepository) Stats(ctx context.Context) (total int, avgConfidence float64, highConfidence int, lastUpdate *time.Time, err error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(confidence), 0),
		       COUNT(*) FILTER (WHERE confidence >= 0.8),
		       MAX(updated_at)
		FROM ai_patterns
	`

	var last sql.NullTime
	err = r.db.QueryRowContext(ctx, query).Scan(&total, &avgConfidence, &highConfidence, &last)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to get pattern stats: %w", err)
	}
	if last.Valid {
		t := last.Time
		lastUpdate = &t
	}

	return total, avgConfidence, highConfidence, lastUpdate, nil
}
