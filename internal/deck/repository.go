package deck

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/ethansmadjaa/FlashCards/internal/store"
	"github.com/ethansmadjaa/FlashCards/pkg/logger"
	"github.com/ethansmadjaa/FlashCards/pkg/models"
)

// Repository owns the card collection. It loads the collection once and
// rewrites the whole file on every mutation; this tool assumes a single
// process, last writer wins.
//
// Class names are compared case-insensitively after trimming, everywhere.
// They are stored exactly as entered.
type Repository struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
	cards []models.Card
}

func NewRepository(st *store.Store, log *logger.Logger) *Repository {
	return &Repository{
		store: st,
		log:   log,
		now:   time.Now,
		cards: st.LoadCards(),
	}
}

func sameClass(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Add validates and appends a new card. The card starts at level zero,
// medium difficulty, due immediately.
func (r *Repository) Add(question, answer, className string) (models.Card, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	className = strings.TrimSpace(className)

	switch {
	case question == "":
		return models.Card{}, &ValidationError{Field: "question"}
	case answer == "":
		return models.Card{}, &ValidationError{Field: "answer"}
	case className == "":
		return models.Card{}, &ValidationError{Field: "class name"}
	}

	id, err := gonanoid.New()
	if err != nil {
		return models.Card{}, fmt.Errorf("generating card id: %w", err)
	}

	now := r.now()
	card := models.Card{
		ID:         id,
		Question:   question,
		Answer:     answer,
		ClassName:  className,
		Difficulty: models.DifficultyMedium,
		Level:      0,
		NextReview: now,
		CreatedAt:  now,
	}

	r.cards = append(r.cards, card)
	if !r.store.SaveCards(r.cards) {
		// The card stays in memory; the next successful save picks it up.
		r.log.Warn("card %s added but not persisted", card.ID)
	}

	return card, nil
}

// List returns the cards for a class, or every card when classFilter is
// empty. The returned slice is a copy; callers may reorder it freely.
func (r *Repository) List(classFilter string) []models.Card {
	out := make([]models.Card, 0, len(r.cards))
	for _, card := range r.cards {
		if classFilter == "" || sameClass(card.ClassName, classFilter) {
			out = append(out, card)
		}
	}
	return out
}

func (r *Repository) Get(id string) (models.Card, error) {
	for _, card := range r.cards {
		if card.ID == id {
			return card, nil
		}
	}
	return models.Card{}, ErrNotFound
}

// Count reports the number of cards currently held.
func (r *Repository) Count() int {
	return len(r.cards)
}

// Update replaces the editable fields of an existing card. Level and
// review schedule are untouched; those only move through ApplyReview.
func (r *Repository) Update(id, question, answer, className string) error {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	className = strings.TrimSpace(className)

	switch {
	case question == "":
		return &ValidationError{Field: "question"}
	case answer == "":
		return &ValidationError{Field: "answer"}
	case className == "":
		return &ValidationError{Field: "class name"}
	}

	return r.mutate(id, func(card *models.Card) {
		card.Question = question
		card.Answer = answer
		card.ClassName = className
	})
}

func (r *Repository) SetDifficulty(id string, tier models.Difficulty) error {
	if !tier.Valid() {
		return fmt.Errorf("invalid difficulty %q", tier)
	}
	return r.mutate(id, func(card *models.Card) {
		card.Difficulty = tier
	})
}

// ApplyReview persists a level/schedule change produced during a study
// session. The session works on copies; this is the single write path
// back into the source of truth.
func (r *Repository) ApplyReview(id string, level int, nextReview time.Time) error {
	if level < 0 {
		level = 0
	}
	return r.mutate(id, func(card *models.Card) {
		card.Level = level
		card.NextReview = nextReview
	})
}

func (r *Repository) Delete(id string) error {
	for i, card := range r.cards {
		if card.ID == id {
			r.cards = append(r.cards[:i], r.cards[i+1:]...)
			if !r.store.SaveCards(r.cards) {
				r.log.Warn("card %s deleted but collection not persisted", id)
			}
			return nil
		}
	}
	return ErrNotFound
}

// RenameClass moves every card in oldName to newName and reports how
// many cards changed. When newName already exists as a distinct class the
// rename would merge the two; that requires allowMerge, otherwise a
// ConflictError comes back and nothing changes.
func (r *Repository) RenameClass(oldName, newName string, allowMerge bool) (int, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, &ValidationError{Field: "class name"}
	}
	if sameClass(oldName, newName) {
		// Case-only rename, never a merge.
		allowMerge = true
	}

	if !allowMerge {
		for _, card := range r.cards {
			if sameClass(card.ClassName, newName) {
				return 0, &ConflictError{Class: newName}
			}
		}
	}

	count := 0
	for i := range r.cards {
		if sameClass(r.cards[i].ClassName, oldName) {
			r.cards[i].ClassName = newName
			count++
		}
	}

	if count > 0 && !r.store.SaveCards(r.cards) {
		r.log.Warn("class rename %q -> %q not persisted", oldName, newName)
	}

	return count, nil
}

// AvailableClasses returns the distinct class names, as stored, sorted.
// Names differing only in case or surrounding space count once; the first
// spelling seen wins.
func (r *Repository) AvailableClasses() []string {
	seen := make(map[string]string)
	for _, card := range r.cards {
		key := strings.ToLower(strings.TrimSpace(card.ClassName))
		if _, ok := seen[key]; !ok {
			seen[key] = card.ClassName
		}
	}

	classes := make([]string, 0, len(seen))
	for _, name := range seen {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	return classes
}

// GeneratedCard is the shape an external card generator hands over.
type GeneratedCard struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	ClassName  string            `json:"class_name"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// ImportBatch runs generated candidates through the same validation as a
// manual add. Invalid entries are skipped, not fatal. Candidates with a
// missing or unknown difficulty are classified with the supplied
// function when one is given.
func (r *Repository) ImportBatch(batch []GeneratedCard, classify func(question, answer string) models.Difficulty) (int, int) {
	added, skipped := 0, 0
	for _, gc := range batch {
		card, err := r.Add(gc.Question, gc.Answer, gc.ClassName)
		if err != nil {
			r.log.Debug("skipping generated card: %v", err)
			skipped++
			continue
		}

		tier := gc.Difficulty
		if !tier.Valid() && classify != nil {
			tier = classify(card.Question, card.Answer)
		}
		if tier.Valid() && tier != card.Difficulty {
			if err := r.SetDifficulty(card.ID, tier); err != nil {
				r.log.Debug("setting difficulty on %s: %v", card.ID, err)
			}
		}
		added++
	}
	return added, skipped
}

// BackfillDifficulties assigns a difficulty to every card missing one and
// returns how many cards now sit in each tier.
func (r *Repository) BackfillDifficulties(classify func(question, answer string) models.Difficulty) map[models.Difficulty]int {
	changed := false
	for i := range r.cards {
		if !r.cards[i].Difficulty.Valid() {
			r.cards[i].Difficulty = classify(r.cards[i].Question, r.cards[i].Answer)
			changed = true
		}
	}
	if changed && !r.store.SaveCards(r.cards) {
		r.log.Warn("difficulty backfill not persisted")
	}

	dist := make(map[models.Difficulty]int)
	for _, card := range r.cards {
		dist[card.Difficulty]++
	}
	return dist
}

func (r *Repository) mutate(id string, apply func(*models.Card)) error {
	for i := range r.cards {
		if r.cards[i].ID == id {
			apply(&r.cards[i])
			if !r.store.SaveCards(r.cards) {
				r.log.Warn("card %s updated but not persisted", id)
			}
			return nil
		}
	}
	return ErrNotFound
}
