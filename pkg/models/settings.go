package models

const (
	MinFontSize        = 10
	MaxFontSize        = 20
	MinCardsPerSession = 5
	MaxCardsPerSession = 50

	DefaultFontSize        = 12
	DefaultCardsPerSession = 20
)

// Settings are the user-facing preferences. They are persisted as their
// own collection, loaded once at startup and handed to whoever needs
// them; there is no process-wide singleton.
type Settings struct {
	FontSize        int    `json:"font_size"`
	CardsPerSession int    `json:"cards_per_session"`
	ShowProgress    bool   `json:"show_progress"`
	Theme           string `json:"theme"`
	EnableSounds    bool   `json:"enable_sounds"`
}

func DefaultSettings() Settings {
	return Settings{
		FontSize:        DefaultFontSize,
		CardsPerSession: DefaultCardsPerSession,
		ShowProgress:    true,
		Theme:           "light",
		EnableSounds:    true,
	}
}

// Clamp forces every field back into its allowed range. Values coming
// from a hand-edited settings file go through here before use.
func (s *Settings) Clamp() {
	if s.FontSize < MinFontSize {
		s.FontSize = MinFontSize
	}
	if s.FontSize > MaxFontSize {
		s.FontSize = MaxFontSize
	}
	if s.CardsPerSession < MinCardsPerSession {
		s.CardsPerSession = MinCardsPerSession
	}
	if s.CardsPerSession > MaxCardsPerSession {
		s.CardsPerSession = MaxCardsPerSession
	}
	if s.Theme != "light" && s.Theme != "dark" {
		s.Theme = "light"
	}
}
