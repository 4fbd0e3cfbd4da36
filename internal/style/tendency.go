// ABOUTME: Tendency analysis over a user's ingested posts
// ABOUTME: Pure aggregation: topics, posting cadence, engagement, style markers
package style

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	wordPattern    = regexp.MustCompile(`\b\w{5,}\b`)
)

// Common filler words excluded from topic extraction
var stopWords = map[string]bool{
	"about": true, "after": true, "before": true, "being": true,
	"could": true, "would": true, "should": true, "there": true,
	"their": true, "these": true, "those": true, "where": true,
	"which": true, "while": true,
}

// AnalyzeTendency computes a TendencyAnalysis from a post set.
// Stateless: the result depends only on the posts passed in.
func AnalyzeTendency(userID string, posts []models.Post) *models.TendencyAnalysis {
	return &models.TendencyAnalysis{
		UserID:             userID,
		CommonTopics:       extractTopics(posts),
		PostingFrequency:   postingFrequency(posts),
		EngagementPatterns: engagementPatterns(posts),
		StyleMarkers:       styleMarkers(posts),
		AnalyzedAt:         time.Now(),
	}
}

// extractTopics returns the top hashtags (up to 5) followed by the top
// non-stop-word keywords (up to 10), most frequent first.
func extractTopics(posts []models.Post) []string {
	hashtags := make(map[string]int)
	keywords := make(map[string]int)

	for _, post := range posts {
		lower := strings.ToLower(post.Text)

		for _, match := range hashtagPattern.FindAllStringSubmatch(lower, -1) {
			hashtags[match[1]]++
		}

		for _, word := range wordPattern.FindAllString(lower, -1) {
			if !stopWords[word] && !strings.HasPrefix(word, "#") {
				keywords[word]++
			}
		}
	}

	topics := topN(hashtags, 5)
	for i, tag := range topics {
		topics[i] = "#" + tag
	}
	return append(topics, topN(keywords, 10)...)
}

// topN returns the n most frequent entries, ties broken alphabetically
// for deterministic output.
func topN(counts map[string]int, n int) []string {
	entries := make([]string, 0, len(counts))
	for k := range counts {
		entries = append(entries, k)
	}
	sort.Slice(entries, func(i, j int) bool {
		if counts[entries[i]] != counts[entries[j]] {
			return counts[entries[i]] > counts[entries[j]]
		}
		return entries[i] < entries[j]
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// postingFrequency buckets the user's cadence by posts per day across
// the observed time span.
func postingFrequency(posts []models.Post) string {
	if len(posts) < 2 {
		return models.FrequencyInsufficientData
	}

	oldest, newest := posts[0].CreatedAt, posts[0].CreatedAt
	for _, p := range posts[1:] {
		if p.CreatedAt.Before(oldest) {
			oldest = p.CreatedAt
		}
		if p.CreatedAt.After(newest) {
			newest = p.CreatedAt
		}
	}

	days := newest.Sub(oldest).Hours() / 24
	if days <= 0 {
		return models.FrequencyInsufficientData
	}

	perDay := float64(len(posts)) / days
	switch {
	case perDay > 5:
		return models.FrequencyVeryActive
	case perDay > 2:
		return models.FrequencyActive
	case perDay > 0.5:
		return models.FrequencyModerate
	default:
		return models.FrequencyOccasional
	}
}

func engagementPatterns(posts []models.Post) models.EngagementPatterns {
	var total float64
	for _, p := range posts {
		total += p.EngagementScore
	}

	patterns := models.EngagementPatterns{TotalEngagement: total}
	if len(posts) > 0 {
		patterns.AvgEngagement = total / float64(len(posts))
	}
	return patterns
}

// styleMarkers tags habits that show up in a meaningful share of posts
func styleMarkers(posts []models.Post) []string {
	if len(posts) == 0 {
		return nil
	}

	var emojiCount, questionCount, exclamationCount int
	for _, p := range posts {
		if p.HasEmoji {
			emojiCount++
		}
		if strings.Contains(p.Text, "?") {
			questionCount++
		}
		if strings.Contains(p.Text, "!") {
			exclamationCount++
		}
	}

	total := float64(len(posts))
	var markers []string
	if float64(emojiCount)/total > 0.5 {
		markers = append(markers, "emoji-heavy")
	}
	if float64(questionCount)/total > 0.3 {
		markers = append(markers, "question-based")
	}
	if float64(exclamationCount)/total > 0.4 {
		markers = append(markers, "enthusiastic")
	}
	return markers
}
