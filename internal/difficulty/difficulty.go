// Package difficulty tags a question/answer pair with a difficulty tier
// using lexical heuristics. Classification is deterministic and looks at
// nothing but the two strings.
package difficulty

import (
	"strings"

	"github.com/ethansmadjaa/FlashCards/pkg/models"
)

var hardKeywords = []string{
	"difference between", "how does", "why is", "explain", "compare",
	"analyze", "evaluate", "relationship", "complex", "technical",
	"versus", "vs", "what is the difference",
}

var mediumKeywords = []string{
	"what is the purpose", "what are", "how do", "describe",
	"function", "role", "types", "components", "what does",
	"how is", "what type",
}

// Classify returns hard for analytical questions or long answers, medium
// for descriptive questions or moderately long text, easy otherwise.
// Keyword matching is case-insensitive and applies to the question only.
func Classify(question, answer string) models.Difficulty {
	questionWords := len(strings.Fields(question))
	answerWords := len(strings.Fields(answer))
	q := strings.ToLower(question)

	if containsAny(q, hardKeywords) ||
		answerWords > 40 ||
		strings.Contains(q, "compare") ||
		strings.Contains(q, "difference") {
		return models.DifficultyHard
	}

	if containsAny(q, mediumKeywords) ||
		answerWords > 25 ||
		questionWords > 10 {
		return models.DifficultyMedium
	}

	return models.DifficultyEasy
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
