package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("pattern_type", validatePatternType); err != nil {
		panic(fmt.Sprintf("failed to register pattern_type validator: %v", err))
	}
}

// validatePatternType validates that a string is a valid PatternType enum value
func validatePatternType(fl validator.FieldLevel) bool {
	switch models.PatternType(fl.Field().String()) {
	case models.PatternTypeFrequentQuestion, models.PatternTypeTopic,
		models.PatternTypeCourseRecommendation, models.PatternTypeSuccessStory:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
