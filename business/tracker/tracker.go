// Package tracker orchestrates the dashboard's logging actions: quick mood
// buttons, guided assessments, voice analysis saves, journal entries,
// statistics, insights and exports.
package tracker

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindcareapp/goMindcare/business/mood"
	"github.com/mindcareapp/goMindcare/business/session"
	"github.com/mindcareapp/goMindcare/business/voice"
	"github.com/mindcareapp/goMindcare/foundation/dsp"
	"github.com/mindcareapp/goMindcare/foundation/pubsub"
	"github.com/mindcareapp/goMindcare/foundation/store"
)

var (
	ErrInvalidScore      = errors.New("mood score must be between 1 and 10")
	ErrUnknownMood       = errors.New("unknown mood label")
	ErrNotRecording      = errors.New("no recording in progress")
	ErrAlreadyRecording  = errors.New("recording already in progress")
	ErrNoPendingAnalysis = errors.New("no voice analysis awaiting a save")
)

// assessmentMoods are the options offered by the guided mood check.
var assessmentMoods = map[string]bool{
	"Very Happy": true, "Happy": true, "Neutral": true, "Sad": true,
	"Very Sad": true, "Anxious": true, "Angry": true, "Excited": true,
	"Calm": true,
}

var sampleMoods = []string{"Happy", "Sad", "Neutral", "Anxious", "Excited", "Calm"}

type Tracker struct {
	logger *zap.SugaredLogger
	store  *store.Store
	text   *mood.Analyzer
	voice  *voice.Classifier
	broker *pubsub.Broker
}

func New(s Settings) *Tracker {
	return &Tracker{
		logger: s.Logger,
		store:  s.Store,
		text:   s.Text,
		voice:  s.Voice,
		broker: s.Broker,
	}
}

// =====================================================================================================================
// Mood logging

// LogMood appends one mood entry to the session history and the persisted
// store, then announces it on the broker.
func (t *Tracker) LogMood(userID string, sess *session.Session, moodLabel string, score int, notes, voiceTag string) (store.MoodEntry, error) {
	if strings.TrimSpace(moodLabel) == "" {
		return store.MoodEntry{}, ErrUnknownMood
	}
	if score < 1 || score > 10 {
		return store.MoodEntry{}, ErrInvalidScore
	}

	entry := store.MoodEntry{
		Timestamp:     time.Now(),
		Mood:          moodLabel,
		Score:         score,
		Notes:         notes,
		VoiceAnalysis: voiceTag,
	}

	if err := t.store.SaveMoodEntry(userID, entry); err != nil {
		return store.MoodEntry{}, fmt.Errorf("persisting mood entry: %w", err)
	}

	sess.AppendHistory(entry)
	t.broker.Publish(TopicMoodLogged, MoodEvent{User: userID, Entry: entry})
	t.logger.Infow("tracker: LogMood", "user", userID, "mood", moodLabel, "score", score)

	return entry, nil
}

// QuickLog handles the one-tap sidebar buttons.
func (t *Tracker) QuickLog(userID string, sess *session.Session, kind string) (store.MoodEntry, error) {
	switch kind {
	case "good":
		return t.LogMood(userID, sess, "Happy", 7, "Quick log - feeling good", "")
	case "down":
		return t.LogMood(userID, sess, "Sad", 3, "Quick log - feeling down", "")
	default:
		return store.MoodEntry{}, fmt.Errorf("quick log kind[%s] is not supported", kind)
	}
}

// Assess saves a guided mood check and makes it the session's current mood.
func (t *Tracker) Assess(userID string, sess *session.Session, a Assessment) (store.MoodEntry, error) {
	if !assessmentMoods[a.Mood] {
		return store.MoodEntry{}, ErrUnknownMood
	}
	if a.Intensity < 1 || a.Intensity > 10 {
		return store.MoodEntry{}, ErrInvalidScore
	}

	factors := "None specified"
	if len(a.Factors) > 0 {
		factors = strings.Join(a.Factors, ", ")
	}
	symptoms := "None"
	if len(a.Symptoms) > 0 {
		symptoms = strings.Join(a.Symptoms, ", ")
	}
	notes := fmt.Sprintf("%s\nFactors: %s\nSymptoms: %s", a.Notes, factors, symptoms)

	entry, err := t.LogMood(userID, sess, a.Mood, a.Intensity, notes, "")
	if err != nil {
		return store.MoodEntry{}, err
	}

	sess.SetCurrentMood(a.Mood, a.Intensity)

	return entry, nil
}

// AnalyzeText classifies free text without saving anything.
func (t *Tracker) AnalyzeText(text string) (mood.Result, error) {
	return t.text.Analyze(text)
}

// =====================================================================================================================
// Voice analysis

func (t *Tracker) StartRecording(sess *session.Session) error {
	if sess.Recording() {
		return ErrAlreadyRecording
	}
	sess.SetRecording(true)
	return nil
}

// StopRecording ends the simulated recording flow and holds a simulated
// analysis as the session's pending result.
func (t *Tracker) StopRecording(sess *session.Session) (voice.Analysis, error) {
	if !sess.Recording() {
		return voice.Analysis{}, ErrNotRecording
	}
	sess.SetRecording(false)

	analysis := voice.Simulate()
	sess.SetPendingAnalysis(analysis)

	t.logger.Infow("tracker: StopRecording", "detected", analysis.DetectedMood, "confidence", analysis.Confidence)

	return analysis, nil
}

// AnalyzeVoice classifies uploaded WAV audio and holds the result as the
// session's pending analysis. It always produces a label: undecodable audio
// degrades to a random classification.
func (t *Tracker) AnalyzeVoice(sess *session.Session, wavData []byte) voice.Classification {
	var classification voice.Classification

	samples, rate, err := dsp.DecodeWAV(wavData)
	if err != nil {
		t.logger.Errorw("tracker: AnalyzeVoice: falling back to random mood", "ERROR", err)
		classification = t.voice.Fallback()
	} else {
		classification = t.voice.ClassifySamples(samples, rate)
	}

	sess.SetPendingAnalysis(voice.Analysis{
		DetectedMood:  classification.Mood,
		Confidence:    classification.Confidence,
		VoiceFeatures: classification.VoiceFeatures,
	})

	return classification
}

// SaveVoiceAnalysis turns the pending analysis into a mood entry. A zero
// score draws a random one, matching the dashboard's displayed value.
func (t *Tracker) SaveVoiceAnalysis(userID string, sess *session.Session, notes string, score int) (store.MoodEntry, error) {
	pending, ok := sess.PendingAnalysis()
	if !ok {
		return store.MoodEntry{}, ErrNoPendingAnalysis
	}

	if score == 0 {
		score = rand.Intn(10) + 1
	}

	entry, err := t.LogMood(userID, sess, pending.DetectedMood, score, notes, pending.ProvenanceTag())
	if err != nil {
		return store.MoodEntry{}, err
	}

	sess.ClearPendingAnalysis()

	return entry, nil
}

// =====================================================================================================================
// History, stats, insights

func (t *Tracker) History(userID string) []store.MoodEntry {
	return t.store.MoodHistory(userID)
}

func (t *Tracker) Stats(userID string) Stats {
	history := t.store.MoodHistory(userID)
	if len(history) == 0 {
		return Stats{}
	}

	var sum int
	best := history[0]
	days := make(map[string]bool)
	today := time.Now().Format("2006-01-02")
	entriesToday := 0

	for _, e := range history {
		sum += e.Score
		if e.Score > best.Score {
			best = e
		}
		day := e.Timestamp.Format("2006-01-02")
		days[day] = true
		if day == today {
			entriesToday++
		}
	}

	return Stats{
		AverageScore: float64(sum) / float64(len(history)),
		TotalEntries: len(history),
		EntriesToday: entriesToday,
		BestMood:     best.Mood,
		DaysTracked:  len(days),
	}
}

func (t *Tracker) Insights(userID string) []string {
	return mood.Insights(t.store.MoodHistory(userID), t.store.JournalEntries(userID))
}

// GenerateSampleData seeds demo history over the past days. Roughly 70% of
// days get one entry. Returns how many entries were written.
func (t *Tracker) GenerateSampleData(userID string, sess *session.Session, days int) (int, error) {
	written := 0

	for back := days; back > 0; back-- {
		if rand.Float64() > 0.7 {
			continue
		}

		day := time.Now().AddDate(0, 0, -back)
		entry := store.MoodEntry{
			Timestamp: day,
			Mood:      sampleMoods[rand.Intn(len(sampleMoods))],
			Score:     3 + rand.Intn(6),
			Notes:     fmt.Sprintf("Sample entry for %s", day.Format("2006-01-02")),
		}

		if err := t.store.SaveMoodEntry(userID, entry); err != nil {
			return written, fmt.Errorf("persisting sample entry: %w", err)
		}
		sess.AppendHistory(entry)
		written++
	}

	t.logger.Infow("tracker: GenerateSampleData", "user", userID, "entries", written)

	return written, nil
}

// =====================================================================================================================
// Journal

// SaveJournal defaults the title and rating before persisting. Empty content
// is rejected by the store and nothing is written.
func (t *Tracker) SaveJournal(userID string, in JournalInput) (store.JournalEntry, error) {
	now := time.Now()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("Journal Entry - %s", now.Format("2006-01-02"))
	}

	rating := in.MoodRating
	if rating == 0 {
		rating = 5
	}
	if rating < 1 || rating > 10 {
		return store.JournalEntry{}, ErrInvalidScore
	}

	entry := store.JournalEntry{
		Timestamp:  now,
		Title:      title,
		Content:    in.Content,
		Tags:       in.Tags,
		MoodRating: rating,
	}

	if err := t.store.SaveJournalEntry(userID, entry); err != nil {
		return store.JournalEntry{}, err
	}

	t.broker.Publish(TopicJournalSaved, JournalEvent{User: userID, Entry: entry})
	t.logger.Infow("tracker: SaveJournal", "user", userID, "title", title)

	return entry, nil
}

// Journal returns the user's entries, newest first.
func (t *Tracker) Journal(userID string) []store.JournalEntry {
	entries := t.store.JournalEntries(userID)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries
}

// =====================================================================================================================
// Profile and export

func (t *Tracker) Profile(userID string) store.UserProfile {
	return t.store.UserProfile(userID)
}

func (t *Tracker) SaveProfile(userID string, profile store.UserProfile) error {
	if profile.Age < 0 {
		return errors.New("age cannot be negative")
	}
	if profile.Preferences == nil {
		profile.Preferences = []string{}
	}
	return t.store.SaveUserProfile(userID, profile)
}

func (t *Tracker) Export(userID string) (moodCSV string, journalCSV string, err error) {
	return t.store.ExportUserData(userID)
}
