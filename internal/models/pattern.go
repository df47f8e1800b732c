package models

import "time"

// PatternType classifies how a learned pattern was derived.
type PatternType string

const (
	// PatternTypeFrequentQuestion is mined from repeated identical questions.
	PatternTypeFrequentQuestion PatternType = "frequent_question"
	// PatternTypeTopic is mined from a topic keyword bucket.
	PatternTypeTopic PatternType = "topic_pattern"
	// PatternTypeCourseRecommendation is a curated course recommendation.
	PatternTypeCourseRecommendation PatternType = "course_recommendation"
	// PatternTypeSuccessStory is a curated success story response.
	PatternTypeSuccessStory PatternType = "success_story"
)

// LearnedPattern is a stored trigger-to-response association with a
// confidence score. Trigger is the upsert key; repeated mining overwrites
// rather than duplicates.
type LearnedPattern struct {
	PatternType PatternType `json:"pattern_type" validate:"pattern_type"`
	Trigger     string      `json:"trigger" validate:"required"`
	Response    string      `json:"response" validate:"required"`
	Confidence  float64     `json:"confidence"`
	UsageCount  int         `json:"usage_count"`
	LastUsed    *time.Time  `json:"last_used,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LearningStats is the admin-facing diagnostic summary of the learning layer.
type LearningStats struct {
	TotalConversations     int        `json:"total_conversations"`
	TotalPatterns          int        `json:"total_patterns"`
	AverageConfidence      float64    `json:"average_confidence"`
	HighConfidencePatterns int        `json:"high_confidence_patterns"`
	LastLearningUpdate     *time.Time `json:"last_learning_update,omitempty"`
}
