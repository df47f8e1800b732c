package chatbot

import (
	"strings"
	"unicode"
)

// Intent is the coarse category assigned to a user message.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentCourse     Intent = "course"
	IntentProgress   Intent = "progress"
	IntentTechnology Intent = "technology"
	IntentSuccess    Intent = "success"
	IntentConsulting Intent = "consulting"
	IntentContact    Intent = "contact"
	IntentFarming    Intent = "farming"
	IntentDefault    Intent = "default"
)

// intentRule pairs a keyword set with the intent it selects.
type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is evaluated in order, first match wins. The order is
// load-bearing: "achievement" appears in both the progress and success sets,
// so a message containing only "achievement" always classifies as progress.
var intentRules = []intentRule{
	{IntentGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "greetings"}},
	{IntentCourse, []string{"course", "learn", "training", "study", "education", "class", "lesson", "curriculum"}},
	{IntentProgress, []string{"progress", "track", "complete", "finish", "achievement", "status"}},
	{IntentTechnology, []string{"technology", "iot", "smart", "automation", "sensor", "drone", "ai", "digital"}},
	{IntentSuccess, []string{"success", "result", "achievement", "testimonial", "review", "story"}},
	{IntentConsulting, []string{"consult", "advice", "expert", "specialist", "help", "guidance"}},
	{IntentContact, []string{"contact", "reach", "support", "phone", "email", "call"}},
	{IntentFarming, []string{"soil", "crop", "plant", "harvest", "water", "irrigation", "pest", "fertilizer", "seed"}},
}

// ClassifyIntent assigns a message to the first intent whose keyword set
// matches, falling back to IntentDefault.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	tokens := wordTokens(lower)
	for _, rule := range intentRules {
		if matchesAnyKeyword(lower, tokens, rule.keywords) {
			return rule.intent
		}
	}
	return IntentDefault
}

// wordTokens splits the lowered message into word tokens, dropping
// punctuation.
func wordTokens(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// matchesAnyKeyword reports whether any keyword fires on the message.
// Multi-word phrases like "good morning" match as substrings. Single-word
// keywords match word tokens by prefix so stems like "track" cover
// "tracking"; keywords shorter than three characters must match a whole
// token, so "hi" cannot fire inside "this" or "high".
func matchesAnyKeyword(lower string, tokens, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.ContainsRune(keyword, ' ') {
			if strings.Contains(lower, keyword) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == keyword || (len(keyword) >= 3 && strings.HasPrefix(tok, keyword)) {
				return true
			}
		}
	}
	return false
}
