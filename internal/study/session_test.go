package study_test

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ethansmadjaa/FlashCards/internal/study"
	"github.com/ethansmadjaa/FlashCards/pkg/logger"
	"github.com/ethansmadjaa/FlashCards/pkg/models"
)

type fakeDeck struct {
	cards        []models.Card
	reviewed     map[string]reviewCall
	difficulties map[string]models.Difficulty
}

type reviewCall struct {
	level      int
	nextReview time.Time
}

func newFakeDeck(cards ...models.Card) *fakeDeck {
	return &fakeDeck{
		cards:        cards,
		reviewed:     make(map[string]reviewCall),
		difficulties: make(map[string]models.Difficulty),
	}
}

func (f *fakeDeck) List(classFilter string) []models.Card {
	out := make([]models.Card, 0, len(f.cards))
	for _, card := range f.cards {
		if classFilter == "" || strings.EqualFold(card.ClassName, classFilter) {
			out = append(out, card)
		}
	}
	return out
}

func (f *fakeDeck) SetDifficulty(id string, tier models.Difficulty) error {
	f.difficulties[id] = tier
	return nil
}

func (f *fakeDeck) ApplyReview(id string, level int, nextReview time.Time) error {
	f.reviewed[id] = reviewCall{level: level, nextReview: nextReview}
	return nil
}

type fakeRecorder struct {
	records []models.SessionRecord
}

func (r *fakeRecorder) RecordSession(className string, totalCards, correct int) bool {
	r.records = append(r.records, models.NewSessionRecord(className, totalCards, correct, time.Now()))
	return true
}

func makeCards(class string, count int) []models.Card {
	cards := make([]models.Card, count)
	for i := range cards {
		cards[i] = models.Card{
			ID:         fmt.Sprintf("%s-%d", strings.ToLower(class), i),
			Question:   fmt.Sprintf("question %d", i),
			Answer:     fmt.Sprintf("answer %d", i),
			ClassName:  class,
			Difficulty: models.DifficultyMedium,
		}
	}
	return cards
}

func testLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[study-test] "),
		logger.WithFlags(0),
	)
}

var _ = Describe("Engine", func() {
	var (
		deckSource *fakeDeck
		recorder   *fakeRecorder
		now        time.Time
		engine     *study.Engine
	)

	newEngine := func() *study.Engine {
		return study.NewEngine(deckSource, recorder, testLogger(),
			study.WithClock(func() time.Time { return now }),
			study.WithRand(rand.New(rand.NewSource(1))),
		)
	}

	BeforeEach(func() {
		deckSource = newFakeDeck(makeCards("Chem", 25)...)
		recorder = &fakeRecorder{}
		now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		engine = newEngine()
	})

	Describe("Start", func() {
		It("should enter NoCards when nothing matches the filter", func() {
			session := engine.Start("Astronomy", 20)

			Expect(session.State()).To(Equal(study.StateNoCards))
			_, ok := session.Current()
			Expect(ok).To(BeFalse())
		})

		It("should cap the working set at the session size", func() {
			session := engine.Start("Chem", 20)
			Expect(session.Size()).To(Equal(20))
		})

		It("should use every card when the deck is smaller than the cap", func() {
			session := engine.Start("Chem", 50)
			Expect(session.Size()).To(Equal(25))
		})

		It("should draw only from the filtered class, without duplicates", func() {
			deckSource.cards = append(deckSource.cards, makeCards("Bio", 10)...)

			session := engine.Start("Chem", 20)
			Expect(session.Size()).To(Equal(20))

			seen := make(map[string]bool)
			for session.State() == study.StateInProgress {
				card, ok := session.Current()
				Expect(ok).To(BeTrue())
				Expect(card.ClassName).To(Equal("Chem"))
				Expect(seen[card.ID]).To(BeFalse())
				seen[card.ID] = true

				session.ToggleAnswer()
				session.Mark(true)
			}
		})

		It("should shuffle uniformly", func() {
			deckSource = newFakeDeck(makeCards("Tiny", 3)...)
			engine = newEngine()

			const runs = 6000
			counts := make(map[string]int)
			for i := 0; i < runs; i++ {
				session := engine.Start("Tiny", 3)
				var order []string
				for session.State() == study.StateInProgress {
					card, _ := session.Current()
					order = append(order, card.ID)
					session.ToggleAnswer()
					session.Mark(true)
				}
				counts[strings.Join(order, ",")] = counts[strings.Join(order, ",")] + 1
			}

			Expect(counts).To(HaveLen(6))
			expected := runs / 6
			for perm, count := range counts {
				Expect(count).To(BeNumerically("~", expected, expected/4),
					"permutation %s occurred %d times", perm, count)
			}
		})
	})

	Describe("Mark", func() {
		var session *study.Session

		BeforeEach(func() {
			session = engine.Start("Chem", 5)
		})

		It("should reject a mark while the answer is hidden", func() {
			Expect(session.Mark(true)).To(BeFalse())
			Expect(session.Attempted()).To(Equal(0))
			Expect(session.ProgressPct()).To(BeZero())

			pos, _ := session.Position()
			Expect(pos).To(Equal(1))
		})

		It("should keep cursor and attempted in lockstep", func() {
			for i := 1; i <= 3; i++ {
				session.ToggleAnswer()
				Expect(session.Mark(i%2 == 0)).To(BeTrue())

				pos, _ := session.Position()
				Expect(session.Attempted()).To(Equal(i))
				Expect(pos).To(Equal(i + 1))
			}
		})

		It("should hide the answer again after each mark", func() {
			session.ToggleAnswer()
			Expect(session.AnswerVisible()).To(BeTrue())

			session.Mark(true)
			Expect(session.AnswerVisible()).To(BeFalse())
		})

		It("should persist the level bump for a correct answer", func() {
			card, _ := session.Current()
			session.ToggleAnswer()
			session.Mark(true)

			call, ok := deckSource.reviewed[card.ID]
			Expect(ok).To(BeTrue())
			Expect(call.level).To(Equal(1))
			Expect(call.nextReview).To(Equal(now.Add(2 * 24 * time.Hour)))
		})

		It("should make a wrong card immediately due again", func() {
			card, _ := session.Current()
			session.ToggleAnswer()
			session.Mark(false)

			call, ok := deckSource.reviewed[card.ID]
			Expect(ok).To(BeTrue())
			Expect(call.level).To(Equal(0))
			Expect(call.nextReview).To(Equal(now))
		})

		It("should base progress on attempted cards, not the cursor display", func() {
			Expect(session.ProgressPct()).To(BeZero())

			session.ToggleAnswer()
			session.Mark(true)
			Expect(session.ProgressPct()).To(Equal(20.0))
		})

		It("should complete and record exactly once", func() {
			for session.State() == study.StateInProgress {
				session.ToggleAnswer()
				session.Mark(true)
			}

			Expect(session.State()).To(Equal(study.StateCompleted))
			Expect(recorder.records).To(HaveLen(1))
			Expect(recorder.records[0].ClassName).To(Equal("Chem"))
			Expect(recorder.records[0].TotalCards).To(Equal(5))
			Expect(recorder.records[0].Correct).To(Equal(5))

			// Terminal state is inert.
			session.ToggleAnswer()
			Expect(session.Mark(true)).To(BeFalse())
			session.QuitEarly()
			Expect(recorder.records).To(HaveLen(1))
		})
	})

	Describe("QuitEarly", func() {
		It("should score only the attempted cards", func() {
			session := engine.Start("Chem", 20)

			session.ToggleAnswer()
			session.Mark(true)
			session.ToggleAnswer()
			session.Mark(true)
			session.ToggleAnswer()
			session.Mark(false)

			session.QuitEarly()

			Expect(recorder.records).To(HaveLen(1))
			rec := recorder.records[0]
			Expect(rec.TotalCards).To(Equal(3))
			Expect(rec.Correct).To(Equal(2))
			Expect(rec.Accuracy).To(BeNumerically("~", 66.7, 0.1))
		})

		It("should record nothing when no card was attempted", func() {
			session := engine.Start("Chem", 20)
			session.QuitEarly()

			Expect(session.State()).To(Equal(study.StateCompleted))
			Expect(recorder.records).To(BeEmpty())
		})

		It("should record unfiltered sessions under the all-classes key", func() {
			session := engine.Start("", 5)
			session.ToggleAnswer()
			session.Mark(true)
			session.QuitEarly()

			Expect(recorder.records).To(HaveLen(1))
			Expect(recorder.records[0].ClassName).To(Equal(study.AllClasses))
		})
	})

	Describe("SetCardDifficulty", func() {
		It("should write through to the repository immediately", func() {
			session := engine.Start("Chem", 5)
			card, _ := session.Current()

			Expect(session.SetCardDifficulty(models.DifficultyHard)).To(Succeed())
			Expect(deckSource.difficulties[card.ID]).To(Equal(models.DifficultyHard))

			current, _ := session.Current()
			Expect(current.Difficulty).To(Equal(models.DifficultyHard))
		})

		It("should fail once the session has ended", func() {
			session := engine.Start("Chem", 5)
			session.QuitEarly()

			Expect(session.SetCardDifficulty(models.DifficultyEasy)).To(MatchError(study.ErrNoCurrentCard))
		})
	})

	Describe("Accuracy", func() {
		It("should be zero with nothing attempted", func() {
			session := engine.Start("Chem", 5)
			Expect(session.Accuracy()).To(BeZero())
		})

		It("should be the correct share of attempted cards", func() {
			session := engine.Start("Chem", 10)
			for i := 0; i < 10; i++ {
				session.ToggleAnswer()
				session.Mark(i < 7)
			}
			Expect(session.Accuracy()).To(Equal(70.0))
		})
	})
})

var _ = Describe("Grade", func() {
	It("should follow the grading table", func() {
		Expect(study.Grade(95)).To(Equal("A+"))
		Expect(study.Grade(90)).To(Equal("A+"))
		Expect(study.Grade(85)).To(Equal("A"))
		Expect(study.Grade(80)).To(Equal("A"))
		Expect(study.Grade(75)).To(Equal("B"))
		Expect(study.Grade(70)).To(Equal("B"))
		Expect(study.Grade(65)).To(Equal("C"))
		Expect(study.Grade(60)).To(Equal("C"))
		Expect(study.Grade(59.9)).To(Equal("D"))
		Expect(study.Grade(0)).To(Equal("D"))
	})

	It("should pair each grade with an encouragement", func() {
		for _, accuracy := range []float64{95, 85, 75, 65, 30} {
			_, message := study.GradeInfo(accuracy)
			Expect(message).NotTo(BeEmpty())
		}
	})
})
