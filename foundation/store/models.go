package store

import "time"

// MoodEntry is one logged mood. Entries are append-only: once written they
// are never updated or deleted.
type MoodEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	Mood          string    `json:"mood"`
	Score         int       `json:"score"`
	Notes         string    `json:"notes"`
	VoiceAnalysis string    `json:"voice_analysis"`
}

type JournalEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	MoodRating int       `json:"mood_rating"`
}

type UserProfile struct {
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Preferences []string `json:"preferences"`
}

// =====================================================================================================================
// Persisted layouts. Timestamps travel as ISO-8601 strings under the "date"
// key, second precision.

type moodRecord struct {
	Date          string `json:"date"`
	Mood          string `json:"mood"`
	Score         int    `json:"score"`
	Notes         string `json:"notes"`
	VoiceAnalysis string `json:"voice_analysis"`
}

type journalRecord struct {
	Date       string   `json:"date"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	MoodRating int      `json:"mood_rating"`
}

func (e MoodEntry) record() moodRecord {
	return moodRecord{
		Date:          e.Timestamp.Format(time.RFC3339),
		Mood:          e.Mood,
		Score:         e.Score,
		Notes:         e.Notes,
		VoiceAnalysis: e.VoiceAnalysis,
	}
}

func (r moodRecord) entry() MoodEntry {
	ts, _ := time.Parse(time.RFC3339, r.Date)
	return MoodEntry{
		Timestamp:     ts,
		Mood:          r.Mood,
		Score:         r.Score,
		Notes:         r.Notes,
		VoiceAnalysis: r.VoiceAnalysis,
	}
}

func (e JournalEntry) record() journalRecord {
	return journalRecord{
		Date:       e.Timestamp.Format(time.RFC3339),
		Title:      e.Title,
		Content:    e.Content,
		Tags:       e.Tags,
		MoodRating: e.MoodRating,
	}
}

func (r journalRecord) entry() JournalEntry {
	ts, _ := time.Parse(time.RFC3339, r.Date)
	return JournalEntry{
		Timestamp:  ts,
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
		MoodRating: r.MoodRating,
	}
}
