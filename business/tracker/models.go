package tracker

import (
	"go.uber.org/zap"

	"github.com/mindcareapp/goMindcare/business/mood"
	"github.com/mindcareapp/goMindcare/business/voice"
	"github.com/mindcareapp/goMindcare/foundation/pubsub"
	"github.com/mindcareapp/goMindcare/foundation/store"
)

// Topics published on the in-process broker whenever an entry is saved.
const (
	TopicMoodLogged   = "mood.logged"
	TopicJournalSaved = "journal.saved"
)

type Settings struct {
	Logger *zap.SugaredLogger
	Store  *store.Store
	Text   *mood.Analyzer
	Voice  *voice.Classifier
	Broker *pubsub.Broker
}

// MoodEvent is the broker payload for a logged mood entry.
type MoodEvent struct {
	User  string          `json:"user"`
	Entry store.MoodEntry `json:"entry"`
}

// JournalEvent is the broker payload for a saved journal entry.
type JournalEvent struct {
	User  string            `json:"user"`
	Entry store.JournalEntry `json:"entry"`
}

// Assessment is the guided mood-check form.
type Assessment struct {
	Mood      string   `json:"mood"`
	Intensity int      `json:"intensity"`
	Factors   []string `json:"factors"`
	Symptoms  []string `json:"symptoms"`
	Notes     string   `json:"notes"`
}

// JournalInput is a journal entry before defaulting and validation.
type JournalInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	MoodRating int      `json:"mood_rating"`
}

// Stats summarizes a user's persisted mood history.
type Stats struct {
	AverageScore float64 `json:"average_score"`
	TotalEntries int     `json:"total_entries"`
	EntriesToday int     `json:"entries_today"`
	BestMood     string  `json:"best_mood"`
	DaysTracked  int     `json:"days_tracked"`
}
