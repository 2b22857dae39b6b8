package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethansmadjaa/FlashCards/internal/config"
	"github.com/ethansmadjaa/FlashCards/pkg/logger"
	"github.com/ethansmadjaa/FlashCards/pkg/models"
)

// Store persists the three application collections as JSON files.
// Reads never fail: a missing, unreadable or malformed file degrades to
// the collection's default value. Writes go to a temp file in the same
// directory and are renamed into place, so a crash mid-write leaves the
// previous contents intact.
type Store struct {
	cardsPath    string
	settingsPath string
	statsPath    string
	log          *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Store {
	return &Store{
		cardsPath:    cfg.CardsPath(),
		settingsPath: cfg.SettingsPath(),
		statsPath:    cfg.StatsPath(),
		log:          log,
	}
}

// EnsureFiles seeds any missing collection with its default value so a
// fresh data directory starts in a consistent state.
func (s *Store) EnsureFiles() {
	if _, err := os.Stat(s.cardsPath); os.IsNotExist(err) {
		s.writeJSON(s.cardsPath, []models.Card{})
	}
	if _, err := os.Stat(s.settingsPath); os.IsNotExist(err) {
		s.writeJSON(s.settingsPath, models.DefaultSettings())
	}
	if _, err := os.Stat(s.statsPath); os.IsNotExist(err) {
		s.writeJSON(s.statsPath, map[string][]models.SessionRecord{})
	}
}

func (s *Store) LoadCards() []models.Card {
	var cards []models.Card
	if err := s.readJSON(s.cardsPath, &cards); err != nil {
		s.log.Warn("loading %s: %v", s.cardsPath, err)
		return []models.Card{}
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards
}

func (s *Store) SaveCards(cards []models.Card) bool {
	return s.writeJSON(s.cardsPath, cards)
}

func (s *Store) LoadSettings() models.Settings {
	settings := models.DefaultSettings()
	if err := s.readJSON(s.settingsPath, &settings); err != nil {
		s.log.Warn("loading %s: %v", s.settingsPath, err)
		return models.DefaultSettings()
	}
	settings.Clamp()
	return settings
}

func (s *Store) SaveSettings(settings models.Settings) bool {
	return s.writeJSON(s.settingsPath, settings)
}

func (s *Store) LoadSessions() map[string][]models.SessionRecord {
	var sessions map[string][]models.SessionRecord
	if err := s.readJSON(s.statsPath, &sessions); err != nil {
		s.log.Warn("loading %s: %v", s.statsPath, err)
		return map[string][]models.SessionRecord{}
	}
	if sessions == nil {
		sessions = map[string][]models.SessionRecord{}
	}
	return sessions
}

func (s *Store) SaveSessions(sessions map[string][]models.SessionRecord) bool {
	return s.writeJSON(s.statsPath, sessions)
}

func (s *Store) readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) writeJSON(path string, v interface{}) bool {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		s.log.Warn("encoding %s: %v", filepath.Base(path), err)
		return false
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		s.log.Warn("creating temp file for %s: %v", path, err)
		return false
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.log.Warn("writing %s: %v", path, err)
		return false
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		s.log.Warn("closing temp file for %s: %v", path, err)
		return false
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		s.log.Warn("replacing %s: %v", path, err)
		return false
	}

	return true
}
