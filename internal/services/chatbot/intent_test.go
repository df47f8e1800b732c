package chatbot

import "testing"

func TestClassifyIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{"greeting", "Hello, anyone around?", IntentGreeting},
		{"greeting case insensitive", "GOOD MORNING team", IntentGreeting},
		{"course", "What courses do you offer?", IntentCourse},
		{"progress", "Show my progress please", IntentProgress},
		{"technology", "Do you teach IoT sensors?", IntentTechnology},
		{"success", "Any student testimonials?", IntentSuccess},
		{"consulting", "I'd like some expert advice", IntentConsulting},
		{"contact", "How do I reach support by phone?", IntentContact},
		{"farming", "My soil looks tired after harvest", IntentFarming},
		{"default", "xyzzy", IntentDefault},
		{"empty message", "", IntentDefault},

		// "achievement" is in both the progress and success keyword sets;
		// evaluation order picks progress.
		{"achievement resolves to progress", "I need help tracking my achievement", IntentProgress},
		// "learn" outranks "success" because the course rule comes first.
		{"course outranks success", "I want to learn about success", IntentCourse},
		// "hi" inside "this" must not count as a greeting.
		{"hi inside word ignored", "this soil question", IntentFarming},
		// "hi" as a prefix of another word must not count either.
		{"hi as word prefix ignored", "high yield crops", IntentFarming},
		// Keyword stems still cover inflected tokens.
		{"stem matches plural", "are drones and sensors included", IntentTechnology},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ClassifyIntent(tt.message); got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
