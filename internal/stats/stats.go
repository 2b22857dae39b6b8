// Package stats records completed study sessions and aggregates them per
// class. Aggregation groups raw class names by their normalized form
// (lowercased, trimmed) so "Math" and "math " roll up together; the
// stored keys are never rewritten.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/ethansmadjaa/FlashCards/internal/store"
	"github.com/ethansmadjaa/FlashCards/pkg/logger"
	"github.com/ethansmadjaa/FlashCards/pkg/models"
)

type Aggregator struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
}

type Option func(*Aggregator)

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

func NewAggregator(st *store.Store, log *logger.Logger, options ...Option) *Aggregator {
	a := &Aggregator{
		store: st,
		log:   log,
		now:   time.Now,
	}

	for _, opt := range options {
		opt(a)
	}

	return a
}

// ClassStats is the rollup for one normalized class group.
type ClassStats struct {
	Sessions    int
	AvgAccuracy float64
	TotalCards  int
	History     []models.SessionRecord
}

// GroupStats is one entry of the overall report.
type GroupStats struct {
	TotalSessions   int
	TotalCards      int
	TotalCorrect    int
	OverallAccuracy float64
	RelatedClasses  int
	ClassNames      []string
}

func normalize(className string) string {
	return strings.ToLower(strings.TrimSpace(className))
}

// RecordSession appends one record under the raw class name. The append
// happens atomically with the underlying file write: on failure the
// stored history is unchanged and false comes back.
func (a *Aggregator) RecordSession(className string, totalCards, correct int) bool {
	sessions := a.store.LoadSessions()
	rec := models.NewSessionRecord(className, totalCards, correct, a.now())
	sessions[className] = append(sessions[className], rec)

	if !a.store.SaveSessions(sessions) {
		a.log.Warn("session record for %q not saved", className)
		return false
	}

	a.log.Debug("recorded session for %q: %d/%d correct", className, correct, totalCards)
	return true
}

// ClassStats merges every raw key normalizing to the same group as
// className and aggregates. Accuracy is cards-weighted
// (total correct over total cards), not a mean of per-session
// percentages.
func (a *Aggregator) ClassStats(className string) ClassStats {
	target := normalize(className)

	var cs ClassStats
	totalCorrect := 0
	for raw, records := range a.store.LoadSessions() {
		if normalize(raw) != target {
			continue
		}
		cs.Sessions += len(records)
		for _, rec := range records {
			cs.TotalCards += rec.TotalCards
			totalCorrect += rec.Correct
			cs.History = append(cs.History, rec)
		}
	}

	if cs.TotalCards > 0 {
		cs.AvgAccuracy = 100 * float64(totalCorrect) / float64(cs.TotalCards)
	}

	sort.Slice(cs.History, func(i, j int) bool {
		return cs.History[i].Timestamp.Before(cs.History[j].Timestamp)
	})

	return cs
}

// OverallStats groups the full history by normalized class name.
func (a *Aggregator) OverallStats() map[string]GroupStats {
	groups := make(map[string]GroupStats)
	rawNames := make(map[string]map[string]struct{})

	for raw, records := range a.store.LoadSessions() {
		key := normalize(raw)
		group := groups[key]

		group.TotalSessions += len(records)
		for _, rec := range records {
			group.TotalCards += rec.TotalCards
			group.TotalCorrect += rec.Correct
		}

		if rawNames[key] == nil {
			rawNames[key] = make(map[string]struct{})
		}
		rawNames[key][raw] = struct{}{}

		groups[key] = group
	}

	for key, group := range groups {
		if group.TotalCards > 0 {
			group.OverallAccuracy = 100 * float64(group.TotalCorrect) / float64(group.TotalCards)
		}
		group.RelatedClasses = len(rawNames[key])
		for raw := range rawNames[key] {
			group.ClassNames = append(group.ClassNames, raw)
		}
		sort.Strings(group.ClassNames)
		groups[key] = group
	}

	return groups
}
