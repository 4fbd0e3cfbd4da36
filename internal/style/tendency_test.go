// ABOUTME: Unit tests for tendency analysis
// ABOUTME: Covers topic extraction, frequency buckets, and style markers
package style

import (
	"testing"
	"time"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

func TestExtractTopics_HashtagsFirst(t *testing.T) {
	posts := []models.Post{
		{Text: "shipping the new #golang service today"},
		{Text: "more #golang and some #devops notes"},
		{Text: "writing about service reliability"},
	}

	analysis := AnalyzeTendency("alice", posts)

	if len(analysis.CommonTopics) == 0 {
		t.Fatal("expected topics")
	}
	if analysis.CommonTopics[0] != "#golang" {
		t.Errorf("top topic = %q, want #golang (appears twice)", analysis.CommonTopics[0])
	}

	found := false
	for _, topic := range analysis.CommonTopics {
		if topic == "service" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected keyword 'service' in topics: %v", analysis.CommonTopics)
	}
}

func TestExtractTopics_SkipsStopWords(t *testing.T) {
	posts := []models.Post{{Text: "there should would could being about"}}
	analysis := AnalyzeTendency("alice", posts)
	for _, topic := range analysis.CommonTopics {
		if stopWords[topic] {
			t.Errorf("stop word %q leaked into topics", topic)
		}
	}
}

func TestPostingFrequency_Buckets(t *testing.T) {
	now := time.Now()
	makePosts := func(count int, spanDays float64) []models.Post {
		posts := make([]models.Post, count)
		if count < 2 {
			for i := range posts {
				posts[i] = models.Post{CreatedAt: now}
			}
			return posts
		}
		step := time.Duration(spanDays * 24 * float64(time.Hour) / float64(count-1))
		for i := range posts {
			posts[i] = models.Post{CreatedAt: now.Add(-time.Duration(i) * step)}
		}
		return posts
	}

	tests := []struct {
		name  string
		posts []models.Post
		want  string
	}{
		{"single post", makePosts(1, 0), models.FrequencyInsufficientData},
		{"very active", makePosts(60, 10), models.FrequencyVeryActive}, // 6/day
		{"active", makePosts(30, 10), models.FrequencyActive},          // 3/day
		{"moderate", makePosts(10, 10), models.FrequencyModerate},      // 1/day
		{"occasional", makePosts(3, 30), models.FrequencyOccasional},   // 0.1/day
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeTendency("u", tt.posts)
			if analysis.PostingFrequency != tt.want {
				t.Errorf("PostingFrequency = %q, want %q", analysis.PostingFrequency, tt.want)
			}
		})
	}
}

func TestEngagementPatterns(t *testing.T) {
	posts := []models.Post{
		{EngagementScore: 10},
		{EngagementScore: 20},
		{EngagementScore: 30},
	}
	analysis := AnalyzeTendency("alice", posts)

	if analysis.EngagementPatterns.AvgEngagement != 20 {
		t.Errorf("AvgEngagement = %v, want 20", analysis.EngagementPatterns.AvgEngagement)
	}
	if analysis.EngagementPatterns.TotalEngagement != 60 {
		t.Errorf("TotalEngagement = %v, want 60", analysis.EngagementPatterns.TotalEngagement)
	}
}

func TestStyleMarkers(t *testing.T) {
	posts := []models.Post{
		{Text: "love this! 🎉", HasEmoji: true},
		{Text: "so good!! 🚀", HasEmoji: true},
		{Text: "what do you think?", HasEmoji: true},
		{Text: "big day!", HasEmoji: true},
	}
	analysis := AnalyzeTendency("alice", posts)

	want := map[string]bool{"emoji-heavy": true, "enthusiastic": true}
	for _, marker := range analysis.StyleMarkers {
		delete(want, marker)
	}
	for missing := range want {
		t.Errorf("expected marker %q in %v", missing, analysis.StyleMarkers)
	}
}

func TestStyleMarkers_NoneBelowThresholds(t *testing.T) {
	posts := []models.Post{
		{Text: "plain update"},
		{Text: "another plain update"},
		{Text: "and a third"},
	}
	analysis := AnalyzeTendency("alice", posts)
	if len(analysis.StyleMarkers) != 0 {
		t.Errorf("expected no markers, got %v", analysis.StyleMarkers)
	}
}
