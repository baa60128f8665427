// Package store persists per-user mood history, journal entries and profiles
// as three JSON files, each a mapping from user identifier to that user's
// data. Every save is a whole-file read-modify-write; a missing or corrupt
// file is treated as an empty dataset, never as a fatal error.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyContent rejects journal entries with no content. Nothing is
// written when it is returned.
var ErrEmptyContent = errors.New("journal content must be non-empty")

const (
	moodFile    = "mood_data.json"
	journalFile = "journal_entries.json"
	profileFile = "user_profiles.json"
)

type Store struct {
	moodPath    string
	journalPath string
	profilePath string
}

func New(dataDirectory string) (*Store, error) {
	if err := os.MkdirAll(dataDirectory, os.ModePerm); err != nil {
		return nil, err
	}

	return &Store{
		moodPath:    filepath.Join(dataDirectory, moodFile),
		journalPath: filepath.Join(dataDirectory, journalFile),
		profilePath: filepath.Join(dataDirectory, profileFile),
	}, nil
}

// =====================================================================================================================
// Mood history

func (s *Store) SaveMoodEntry(userID string, entry MoodEntry) error {
	var data map[string][]moodRecord
	loadJSON(s.moodPath, &data)
	if data == nil {
		data = make(map[string][]moodRecord)
	}

	data[userID] = append(data[userID], entry.record())

	return saveJSON(s.moodPath, data)
}

func (s *Store) MoodHistory(userID string) []MoodEntry {
	var data map[string][]moodRecord
	loadJSON(s.moodPath, &data)

	records := data[userID]
	history := make([]MoodEntry, 0, len(records))
	for _, r := range records {
		history = append(history, r.entry())
	}

	return history
}

// =====================================================================================================================
// Journal

func (s *Store) SaveJournalEntry(userID string, entry JournalEntry) error {
	if strings.TrimSpace(entry.Content) == "" {
		return ErrEmptyContent
	}

	var data map[string][]journalRecord
	loadJSON(s.journalPath, &data)
	if data == nil {
		data = make(map[string][]journalRecord)
	}

	data[userID] = append(data[userID], entry.record())

	return saveJSON(s.journalPath, data)
}

func (s *Store) JournalEntries(userID string) []JournalEntry {
	var data map[string][]journalRecord
	loadJSON(s.journalPath, &data)

	records := data[userID]
	entries := make([]JournalEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.entry())
	}

	return entries
}

// =====================================================================================================================
// Profile

// SaveUserProfile replaces the user's profile wholesale. There is no merge.
func (s *Store) SaveUserProfile(userID string, profile UserProfile) error {
	var data map[string]UserProfile
	loadJSON(s.profilePath, &data)
	if data == nil {
		data = make(map[string]UserProfile)
	}

	data[userID] = profile

	return saveJSON(s.profilePath, data)
}

// UserProfile returns the stored profile, or the default profile for an
// unknown user. It never writes.
func (s *Store) UserProfile(userID string) UserProfile {
	var data map[string]UserProfile
	loadJSON(s.profilePath, &data)

	if profile, exists := data[userID]; exists {
		return profile
	}

	return UserProfile{
		Name:        "",
		Age:         25,
		Preferences: []string{},
	}
}

// =====================================================================================================================

func loadJSON(path string, v any) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return
	}

	// Malformed JSON degrades to an empty dataset.
	_ = json.Unmarshal(bytes, v)
}

func saveJSON(path string, v any) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, bytes, 0o644)
}
