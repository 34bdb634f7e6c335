package store

import (
	"encoding/json"
	"fmt"

	"linguastory-backend/internal/curriculum"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
	"linguastory-backend/internal/progress"
)

// Fixed key patterns, scoped per user.
const (
	keyTheme    = "theme:%d"
	keyProgress = "progress:%d"
	keyHistory  = "history:%d"
)

// State loads and saves the per-user application state. Malformed stored
// JSON resets that key to its default with a warning rather than failing.
type State struct {
	kv  KV
	log *logging.Logger
}

func NewState(kv KV, log *logging.Logger) *State {
	return &State{kv: kv, log: log}
}

func (s *State) LoadProgress(userID uint) model.UserProgress {
	fallback := progress.DefaultProgress(curriculum.Levels())

	raw, ok, err := s.kv.Get(fmt.Sprintf(keyProgress, userID))
	if err != nil {
		s.log.Errorw("progress read failed", "user", userID, "err", err)
		return fallback
	}
	if !ok {
		return fallback
	}

	var p model.UserProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warnw("stored progress is malformed, resetting to defaults", "user", userID, "err", err)
		return fallback
	}
	return progress.Normalize(p, curriculum.Levels())
}

func (s *State) SaveProgress(userID uint, p model.UserProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Put(fmt.Sprintf(keyProgress, userID), string(raw))
}

func (s *State) LoadHistory(userID uint) []model.HistoryItem {
	raw, ok, err := s.kv.Get(fmt.Sprintf(keyHistory, userID))
	if err != nil {
		s.log.Errorw("history read failed", "user", userID, "err", err)
		return nil
	}
	if !ok {
		return nil
	}

	var items []model.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warnw("stored history is malformed, resetting to defaults", "user", userID, "err", err)
		return nil
	}
	return items
}

func (s *State) SaveHistory(userID uint, items []model.HistoryItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Put(fmt.Sprintf(keyHistory, userID), string(raw))
}

func (s *State) LoadTheme(userID uint) string {
	raw, ok, err := s.kv.Get(fmt.Sprintf(keyTheme, userID))
	if err != nil || !ok {
		return "light"
	}
	if raw != "light" && raw != "dark" {
		return "light"
	}
	return raw
}

func (s *State) SaveTheme(userID uint, theme string) error {
	if theme != "light" && theme != "dark" {
		theme = "light"
	}
	return s.kv.Put(fmt.Sprintf(keyTheme, userID), theme)
}
