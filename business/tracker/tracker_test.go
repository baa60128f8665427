package tracker_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mindcareapp/goMindcare/business/mood"
	"github.com/mindcareapp/goMindcare/business/session"
	"github.com/mindcareapp/goMindcare/business/tracker"
	"github.com/mindcareapp/goMindcare/business/voice"
	"github.com/mindcareapp/goMindcare/foundation/pubsub"
	"github.com/mindcareapp/goMindcare/foundation/store"
)

// fixedScorer returns canned polarity values so text analysis is
// deterministic in tests.
type fixedScorer struct {
	polarity     float64
	subjectivity float64
}

func (f fixedScorer) Score(text string) (float64, float64, error) {
	return f.polarity, f.subjectivity, nil
}

// happyExtractor produces a feature vector the classifier reads as Happy.
type happyExtractor struct{}

func (happyExtractor) Extract(samples []float64, sampleRate int) ([]float64, error) {
	features := make([]float64, voice.FeatureCount)
	features[13] = 150    // pitch
	features[14] = 0.0065 // energy
	features[16] = 60     // tempo
	return features, nil
}

type testHarness struct {
	tracker  *tracker.Tracker
	store    *store.Store
	sessions *session.Manager
	broker   *pubsub.Broker
}

func newHarness(t *testing.T) testHarness {
	t.Helper()

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	broker := pubsub.NewBroker()

	tr := tracker.New(tracker.Settings{
		Logger: zap.NewNop().Sugar(),
		Store:  st,
		Text:   mood.NewAnalyzer(fixedScorer{polarity: 0.5}, nil),
		Voice:  voice.NewClassifier(happyExtractor{}),
		Broker: broker,
	})

	return testHarness{
		tracker:  tr,
		store:    st,
		sessions: session.NewManager(),
		broker:   broker,
	}
}

func TestLogMoodValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	if _, err := h.tracker.LogMood("u1", sess, "", 5, "", ""); !errors.Is(err, tracker.ErrUnknownMood) {
		t.Fatalf("expected ErrUnknownMood, got %v", err)
	}
	if _, err := h.tracker.LogMood("u1", sess, "Happy", 0, "", ""); !errors.Is(err, tracker.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore for score 0, got %v", err)
	}
	if _, err := h.tracker.LogMood("u1", sess, "Happy", 11, "", ""); !errors.Is(err, tracker.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore for score 11, got %v", err)
	}

	if len(h.tracker.History("u1")) != 0 {
		t.Fatal("expected no entries to be persisted on validation failure")
	}
}

func TestQuickLog(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	sub := pubsub.NewSubscriber(2)
	h.broker.Subscribe(tracker.TopicMoodLogged, sub)

	good, err := h.tracker.QuickLog("u1", sess, "good")
	if err != nil {
		t.Fatal(err)
	}
	if good.Mood != "Happy" || good.Score != 7 || good.Notes != "Quick log - feeling good" {
		t.Fatalf("unexpected good entry: %+v", good)
	}

	down, err := h.tracker.QuickLog("u1", sess, "down")
	if err != nil {
		t.Fatal(err)
	}
	if down.Mood != "Sad" || down.Score != 3 || down.Notes != "Quick log - feeling down" {
		t.Fatalf("unexpected down entry: %+v", down)
	}

	if _, err := h.tracker.QuickLog("u1", sess, "meh"); err == nil {
		t.Fatal("expected an error for an unsupported quick log kind")
	}

	if got := len(h.tracker.History("u1")); got != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", got)
	}
	if got := len(sess.History()); got != 2 {
		t.Fatalf("expected 2 session history entries, got %d", got)
	}

	event := (<-sub.GetChannel()).(tracker.MoodEvent)
	if event.User != "u1" || event.Entry.Mood != "Happy" {
		t.Fatalf("unexpected broker event: %+v", event)
	}
}

func TestAssess(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	t.Run("rejects unknown mood and bad intensity", func(t *testing.T) {
		if _, err := h.tracker.Assess("u1", sess, tracker.Assessment{Mood: "Ecstatic", Intensity: 5}); !errors.Is(err, tracker.ErrUnknownMood) {
			t.Fatalf("expected ErrUnknownMood, got %v", err)
		}
		if _, err := h.tracker.Assess("u1", sess, tracker.Assessment{Mood: "Happy", Intensity: 0}); !errors.Is(err, tracker.ErrInvalidScore) {
			t.Fatalf("expected ErrInvalidScore, got %v", err)
		}
	})

	t.Run("composes notes and updates the session mood", func(t *testing.T) {
		entry, err := h.tracker.Assess("u1", sess, tracker.Assessment{
			Mood:      "Anxious",
			Intensity: 4,
			Factors:   []string{"Work", "Sleep"},
			Notes:     "long week",
		})
		if err != nil {
			t.Fatal(err)
		}

		want := "long week\nFactors: Work, Sleep\nSymptoms: None"
		if entry.Notes != want {
			t.Fatalf("notes mismatch:\ngot  %q\nwant %q", entry.Notes, want)
		}

		currentMood, score := sess.CurrentMood()
		if currentMood != "Anxious" || score != 4 {
			t.Fatalf("expected session mood Anxious/4, got %s/%d", currentMood, score)
		}
	})

	t.Run("defaults factors when none given", func(t *testing.T) {
		entry, err := h.tracker.Assess("u1", sess, tracker.Assessment{Mood: "Calm", Intensity: 6})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(entry.Notes, "Factors: None specified") {
			t.Fatalf("expected default factors line, got %q", entry.Notes)
		}
	})
}

func TestAnalyzeText(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	result, err := h.tracker.AnalyzeText("what a wonderful day")
	if err != nil {
		t.Fatal(err)
	}
	if result.Mood != "Happy" {
		t.Fatalf("expected Happy, got %s", result.Mood)
	}
	if result.Polarity != 0.5 {
		t.Fatalf("expected the collaborator's polarity, got %v", result.Polarity)
	}
}

func TestSimulatedVoiceFlow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	if _, err := h.tracker.StopRecording(sess); !errors.Is(err, tracker.ErrNotRecording) {
		t.Fatalf("expected ErrNotRecording, got %v", err)
	}

	if err := h.tracker.StartRecording(sess); err != nil {
		t.Fatal(err)
	}
	if err := h.tracker.StartRecording(sess); !errors.Is(err, tracker.ErrAlreadyRecording) {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}

	analysis, err := h.tracker.StopRecording(sess)
	if err != nil {
		t.Fatal(err)
	}
	if analysis.DetectedMood == "" {
		t.Fatal("expected a detected mood")
	}
	if sess.Recording() {
		t.Fatal("expected recording to be stopped")
	}
	if _, ok := sess.PendingAnalysis(); !ok {
		t.Fatal("expected a pending analysis after stopping")
	}

	entry, err := h.tracker.SaveVoiceAnalysis("u1", sess, "testing", 0)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Mood != analysis.DetectedMood {
		t.Fatalf("expected saved mood %s, got %s", analysis.DetectedMood, entry.Mood)
	}
	if entry.Score < 1 || entry.Score > 10 {
		t.Fatalf("expected a drawn score in [1,10], got %d", entry.Score)
	}
	if !strings.HasPrefix(entry.VoiceAnalysis, "Voice analysis - ") || !strings.HasSuffix(entry.VoiceAnalysis, "% confidence") {
		t.Fatalf("unexpected provenance tag: %q", entry.VoiceAnalysis)
	}

	if _, ok := sess.PendingAnalysis(); ok {
		t.Fatal("expected the pending analysis to be cleared after saving")
	}
	if _, err := h.tracker.SaveVoiceAnalysis("u1", sess, "", 5); !errors.Is(err, tracker.ErrNoPendingAnalysis) {
		t.Fatalf("expected ErrNoPendingAnalysis, got %v", err)
	}
}

func TestAnalyzeVoice(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	t.Run("undecodable audio falls back to a random mood", func(t *testing.T) {
		classification := h.tracker.AnalyzeVoice(sess, []byte("not a wav file"))

		found := false
		for _, label := range voice.Labels {
			if classification.Mood == label {
				found = true
			}
		}
		if !found {
			t.Fatalf("fallback mood %q is not a known label", classification.Mood)
		}

		pending, ok := sess.PendingAnalysis()
		if !ok {
			t.Fatal("expected a pending analysis")
		}
		if pending.DetectedMood != classification.Mood {
			t.Fatalf("pending mood %q does not match classification %q", pending.DetectedMood, classification.Mood)
		}
	})
}

func TestStats(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	if got := h.tracker.Stats("u1"); got.TotalEntries != 0 {
		t.Fatalf("expected empty stats, got %+v", got)
	}

	now := time.Now()
	entries := []store.MoodEntry{
		{Timestamp: now.AddDate(0, 0, -1), Mood: "Sad", Score: 3},
		{Timestamp: now, Mood: "Happy", Score: 9},
		{Timestamp: now, Mood: "Neutral", Score: 6},
	}
	for _, e := range entries {
		if err := h.store.SaveMoodEntry("u1", e); err != nil {
			t.Fatal(err)
		}
	}

	stats := h.tracker.Stats("u1")
	if stats.TotalEntries != 3 {
		t.Fatalf("expected 3 total entries, got %d", stats.TotalEntries)
	}
	if stats.AverageScore != 6 {
		t.Fatalf("expected average 6, got %v", stats.AverageScore)
	}
	if stats.EntriesToday != 2 {
		t.Fatalf("expected 2 entries today, got %d", stats.EntriesToday)
	}
	if stats.BestMood != "Happy" {
		t.Fatalf("expected best mood Happy, got %s", stats.BestMood)
	}
	if stats.DaysTracked != 2 {
		t.Fatalf("expected 2 days tracked, got %d", stats.DaysTracked)
	}
}

func TestGenerateSampleData(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	written, err := h.tracker.GenerateSampleData("u1", sess, 30)
	if err != nil {
		t.Fatal(err)
	}
	if written > 30 {
		t.Fatalf("wrote %d entries for 30 days", written)
	}

	history := h.tracker.History("u1")
	if len(history) != written {
		t.Fatalf("expected %d persisted entries, got %d", written, len(history))
	}
	for _, e := range history {
		if e.Score < 3 || e.Score > 8 {
			t.Fatalf("sample score %d out of range", e.Score)
		}
		if !strings.HasPrefix(e.Notes, "Sample entry for ") {
			t.Fatalf("unexpected sample notes: %q", e.Notes)
		}
	}
}

func TestSaveJournal(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	sub := pubsub.NewSubscriber(1)
	h.broker.Subscribe(tracker.TopicJournalSaved, sub)

	t.Run("rejects empty content", func(t *testing.T) {
		if _, err := h.tracker.SaveJournal("u1", tracker.JournalInput{Content: "   "}); !errors.Is(err, store.ErrEmptyContent) {
			t.Fatalf("expected ErrEmptyContent, got %v", err)
		}
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		if _, err := h.tracker.SaveJournal("u1", tracker.JournalInput{Content: "fine", MoodRating: 11}); !errors.Is(err, tracker.ErrInvalidScore) {
			t.Fatalf("expected ErrInvalidScore, got %v", err)
		}
	})

	t.Run("defaults title and rating", func(t *testing.T) {
		entry, err := h.tracker.SaveJournal("u1", tracker.JournalInput{Content: "slept well, felt rested"})
		if err != nil {
			t.Fatal(err)
		}

		wantTitle := "Journal Entry - " + time.Now().Format("2006-01-02")
		if entry.Title != wantTitle {
			t.Fatalf("expected title %q, got %q", wantTitle, entry.Title)
		}
		if entry.MoodRating != 5 {
			t.Fatalf("expected default rating 5, got %d", entry.MoodRating)
		}

		event := (<-sub.GetChannel()).(tracker.JournalEvent)
		if event.User != "u1" || event.Entry.Title != wantTitle {
			t.Fatalf("unexpected broker event: %+v", event)
		}
	})
}

func TestJournalNewestFirst(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	now := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		entry := store.JournalEntry{
			Timestamp:  now.Add(time.Duration(i) * time.Hour),
			Title:      title,
			Content:    "content",
			MoodRating: 5,
		}
		if err := h.store.SaveJournalEntry("u1", entry); err != nil {
			t.Fatal(err)
		}
	}

	entries := h.tracker.Journal("u1")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Title != "newest" || entries[2].Title != "oldest" {
		t.Fatalf("expected newest-first order, got %s..%s", entries[0].Title, entries[2].Title)
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	if err := h.tracker.SaveProfile("u1", store.UserProfile{Age: -1}); err == nil {
		t.Fatal("expected an error for a negative age")
	}

	if err := h.tracker.SaveProfile("u1", store.UserProfile{Name: "Jordan", Age: 30}); err != nil {
		t.Fatal(err)
	}

	profile := h.tracker.Profile("u1")
	if profile.Name != "Jordan" || profile.Age != 30 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.Preferences == nil {
		t.Fatal("expected preferences to be non-nil")
	}
}

func TestExport(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sess := h.sessions.Get("u1")

	if _, err := h.tracker.QuickLog("u1", sess, "good"); err != nil {
		t.Fatal(err)
	}

	moodCSV, journalCSV, err := h.tracker.Export("u1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(moodCSV, "date,mood,score,notes,voice_analysis") {
		t.Fatalf("unexpected mood CSV header: %q", moodCSV)
	}
	if journalCSV != "No journal data available" {
		t.Fatalf("expected the journal sentinel, got %q", journalCSV)
	}
}
