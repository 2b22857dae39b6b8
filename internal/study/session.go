// Package study implements the session state machine: pick and shuffle a
// working set, walk it card by card, track proficiency and counters, and
// flush one record to the statistics layer when the session ends.
package study

import (
	"math/rand"
	"time"

	"github.com/ethansmadjaa/FlashCards/pkg/logger"
	"github.com/ethansmadjaa/FlashCards/pkg/models"
)

// AllClasses is the stats key used when a session ran without a class
// filter.
const AllClasses = "all_classes"

type State int

const (
	StateNotStarted State = iota
	StateNoCards
	StateInProgress
	StateCompleted
)

// CardSource is the slice of the repository the engine needs.
type CardSource interface {
	List(classFilter string) []models.Card
	SetDifficulty(id string, tier models.Difficulty) error
	ApplyReview(id string, level int, nextReview time.Time) error
}

// Recorder receives exactly one session record per finished session.
type Recorder interface {
	RecordSession(className string, totalCards, correct int) bool
}

type Engine struct {
	cards CardSource
	stats Recorder
	log   *logger.Logger
	now   func() time.Time
	rng   *rand.Rand
}

type Option func(*Engine)

// WithClock replaces the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRand replaces the shuffle source, for deterministic sessions.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

func NewEngine(cards CardSource, stats Recorder, log *logger.Logger, options ...Option) *Engine {
	e := &Engine{
		cards: cards,
		stats: stats,
		log:   log,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

// Session is one pass over a shuffled working set. Sessions are
// single-use: "study again" means starting a new one.
type Session struct {
	engine        *Engine
	classFilter   string
	workingSet    []models.Card
	cursor        int
	correctCount  int
	attempted     int
	answerVisible bool
	state         State
	recorded      bool
}

// Start selects the working set for a session. The cards for the class
// (every card when classFilter is empty) are uniformly shuffled, then cut
// to sessionSize. An empty selection yields a session already in
// StateNoCards; that is an expected outcome, not an error.
func (e *Engine) Start(classFilter string, sessionSize int) *Session {
	s := &Session{
		engine:      e,
		classFilter: classFilter,
	}

	available := e.cards.List(classFilter)
	if len(available) == 0 {
		s.state = StateNoCards
		e.log.Debug("no cards available for class %q", classFilter)
		return s
	}

	e.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if sessionSize < 1 {
		sessionSize = 1
	}
	if sessionSize > len(available) {
		sessionSize = len(available)
	}

	s.workingSet = available[:sessionSize]
	s.state = StateInProgress
	e.log.Debug("session started: %d of %d cards for class %q",
		len(s.workingSet), len(available), classFilter)

	return s
}

func (s *Session) State() State { return s.state }

// Current returns the card under the cursor. ok is false in NoCards and
// Completed states.
func (s *Session) Current() (models.Card, bool) {
	if s.state != StateInProgress || s.cursor >= len(s.workingSet) {
		return models.Card{}, false
	}
	return s.workingSet[s.cursor], true
}

// Position reports the 1-based index of the current card and the working
// set size.
func (s *Session) Position() (int, int) {
	return s.cursor + 1, len(s.workingSet)
}

func (s *Session) AnswerVisible() bool { return s.answerVisible }

// ToggleAnswer flips answer visibility. It touches no counters and is a
// no-op once the session has ended.
func (s *Session) ToggleAnswer() {
	if s.state != StateInProgress {
		return
	}
	s.answerVisible = !s.answerVisible
}

// Mark scores the current card. A mark while the answer is hidden is
// rejected without mutating anything. Otherwise the attempt counters
// move, the card's level and schedule update (and persist through the
// repository), the cursor advances with the answer hidden again, and
// reaching the end of the working set completes the session and records
// it.
func (s *Session) Mark(correct bool) bool {
	if s.state != StateInProgress || !s.answerVisible {
		return false
	}

	s.attempted++
	if correct {
		s.correctCount++
	}

	card := &s.workingSet[s.cursor]
	card.UpdateLevel(correct, s.engine.now())
	if err := s.engine.cards.ApplyReview(card.ID, card.Level, card.NextReview); err != nil {
		s.engine.log.Warn("persisting review for card %s: %v", card.ID, err)
	}

	s.cursor++
	s.answerVisible = false

	if s.cursor == len(s.workingSet) {
		s.state = StateCompleted
		s.record()
	}

	return true
}

// QuitEarly abandons the session, scoring only the attempted cards. With
// nothing attempted, nothing is recorded.
func (s *Session) QuitEarly() {
	if s.state != StateInProgress {
		return
	}
	s.state = StateCompleted
	if s.attempted > 0 {
		s.record()
	}
}

// SetCardDifficulty tags the current card's difficulty. This writes
// through to the repository immediately, independent of session
// completion.
func (s *Session) SetCardDifficulty(tier models.Difficulty) error {
	card, ok := s.Current()
	if !ok {
		return ErrNoCurrentCard
	}
	if err := s.engine.cards.SetDifficulty(card.ID, tier); err != nil {
		return err
	}
	s.workingSet[s.cursor].Difficulty = tier
	return nil
}

// ProgressPct is attempted-based: it stays at 0 until the first card is
// marked, even though a card is already on display.
func (s *Session) ProgressPct() float64 {
	if len(s.workingSet) == 0 {
		return 0
	}
	return 100 * float64(s.attempted) / float64(len(s.workingSet))
}

func (s *Session) Attempted() int    { return s.attempted }
func (s *Session) CorrectCount() int { return s.correctCount }
func (s *Session) Size() int         { return len(s.workingSet) }

// Accuracy is the percentage of attempted cards answered correctly, zero
// when nothing was attempted.
func (s *Session) Accuracy() float64 {
	if s.attempted == 0 {
		return 0
	}
	return 100 * float64(s.correctCount) / float64(s.attempted)
}

func (s *Session) record() {
	if s.recorded || s.engine.stats == nil {
		return
	}
	s.recorded = true

	className := s.classFilter
	if className == "" {
		className = AllClasses
	}
	if !s.engine.stats.RecordSession(className, s.attempted, s.correctCount) {
		s.engine.log.Warn("session for %q not recorded", className)
	}
}
