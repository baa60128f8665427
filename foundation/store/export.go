package store

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"
)

const (
	noMoodData    = "No mood data available"
	noJournalData = "No journal data available"
)

// ExportUserData renders the user's full mood and journal tables as CSV
// text. Empty tables are reported with a sentinel string instead.
func (s *Store) ExportUserData(userID string) (moodCSV string, journalCSV string, err error) {
	history := s.MoodHistory(userID)
	entries := s.JournalEntries(userID)

	moodCSV = noMoodData
	if len(history) > 0 {
		moodCSV, err = renderMoodCSV(history)
		if err != nil {
			return "", "", err
		}
	}

	journalCSV = noJournalData
	if len(entries) > 0 {
		journalCSV, err = renderJournalCSV(entries)
		if err != nil {
			return "", "", err
		}
	}

	return moodCSV, journalCSV, nil
}

func renderMoodCSV(history []MoodEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"date", "mood", "score", "notes", "voice_analysis"}); err != nil {
		return "", err
	}

	for _, e := range history {
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			e.Mood,
			strconv.Itoa(e.Score),
			e.Notes,
			e.VoiceAnalysis,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

func renderJournalCSV(entries []JournalEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"date", "title", "content", "tags", "mood_rating"}); err != nil {
		return "", err
	}

	for _, e := range entries {
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			e.Title,
			e.Content,
			strings.Join(e.Tags, ";"),
			strconv.Itoa(e.MoodRating),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}
