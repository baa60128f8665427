package mood

import (
	"fmt"
	"strings"

	"github.com/mindcareapp/goMindcare/foundation/store"
)

const recentWindow = 7

// Insights derives observational sentences from logged history. Pure: it
// never mutates its inputs.
func Insights(history []store.MoodEntry, journal []store.JournalEntry) []string {
	if len(history) == 0 {
		return []string{"Start tracking your moods to get personalized insights!"}
	}

	var insights []string

	recent := history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	distinct := make(map[string]bool)
	for _, e := range recent {
		distinct[e.Mood] = true
	}

	switch {
	case len(distinct) == 1:
		insights = append(insights, fmt.Sprintf("Your mood has been consistently %s this week.", strings.ToLower(recent[0].Mood)))
	case len(distinct) > 5:
		insights = append(insights, "You've experienced a wide range of emotions this week - that's completely normal!")
	}

	// Ties go to the label seen first.
	counts := make(map[string]int)
	for _, e := range history {
		counts[e.Mood]++
	}

	mostCommon := ""
	seen := make(map[string]bool)
	for _, e := range history {
		if seen[e.Mood] {
			continue
		}
		seen[e.Mood] = true
		if mostCommon == "" || counts[e.Mood] > counts[mostCommon] {
			mostCommon = e.Mood
		}
	}
	insights = append(insights, fmt.Sprintf("Your most frequently recorded mood is %s.", strings.ToLower(mostCommon)))

	if len(history) > 14 {
		insights = append(insights, "Great job maintaining consistent mood tracking! This helps identify patterns.")
	}

	if len(journal) > 0 {
		var sum float64
		for _, e := range journal {
			sum += float64(e.MoodRating)
		}
		avg := sum / float64(len(journal))

		switch {
		case avg > 7:
			insights = append(insights, "Your journal entries show generally positive mood ratings!")
		case avg < 4:
			insights = append(insights, "Your recent journal entries suggest you might benefit from additional support.")
		}
	}

	return insights
}
