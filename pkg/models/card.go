package models

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Card is a single question/answer pair belonging to a class. Cards are
// addressed by their generated ID everywhere; the ID never changes after
// creation.
type Card struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	ClassName  string     `json:"class_name"`
	Difficulty Difficulty `json:"difficulty"`
	Level      int        `json:"level"`
	NextReview time.Time  `json:"next_review"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UpdateLevel applies the spacing heuristic after a review. A correct
// answer bumps the level and pushes the next review out by 2^level days
// (level counted after the bump, growth is unbounded). A wrong answer
// drops the level by one, never below zero, and makes the card
// immediately due again.
func (c *Card) UpdateLevel(correct bool, now time.Time) {
	if correct {
		c.Level++
		days := 1 << uint(c.Level)
		c.NextReview = now.Add(time.Duration(days) * 24 * time.Hour)
		return
	}

	if c.Level > 0 {
		c.Level--
	}
	c.NextReview = now
}

// SessionRecord is one completed (or early-quit) study session, persisted
// append-only under the raw class name it was studied as.
type SessionRecord struct {
	ClassName  string    `json:"class_name"`
	Timestamp  time.Time `json:"timestamp"`
	TotalCards int       `json:"total_cards"`
	Correct    int       `json:"correct"`
	Accuracy   float64   `json:"accuracy"`
}

func NewSessionRecord(className string, totalCards, correct int, timestamp time.Time) SessionRecord {
	rec := SessionRecord{
		ClassName:  className,
		Timestamp:  timestamp,
		TotalCards: totalCards,
		Correct:    correct,
	}
	if totalCards > 0 {
		rec.Accuracy = 100 * float64(correct) / float64(totalCards)
	}
	return rec
}
