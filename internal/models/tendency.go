// ABOUTME: TendencyAnalysis captures posting habits beyond the style profile
// ABOUTME: Topics, posting frequency bucket, engagement averages, style markers
package models

import "time"

// Posting frequency buckets.
const (
	FrequencyVeryActive       = "very_active"
	FrequencyActive           = "active"
	FrequencyModerate         = "moderate"
	FrequencyOccasional       = "occasional"
	FrequencyInsufficientData = "insufficient_data"
)

// EngagementPatterns holds averaged interaction stats over a post set.
type EngagementPatterns struct {
	AvgEngagement   float64 `json:"avg_engagement"`
	TotalEngagement float64 `json:"total_engagement"`
}

// TendencyAnalysis is a deeper aggregate over a user's ingested posts.
// Like StyleProfile it is recomputed wholesale per ingest, not merged.
type TendencyAnalysis struct {
	UserID             string             `json:"user_id"`
	CommonTopics       []string           `json:"common_topics"`
	PostingFrequency   string             `json:"posting_frequency"`
	EngagementPatterns EngagementPatterns `json:"engagement_patterns"`
	StyleMarkers       []string           `json:"style_markers"`
	AnalyzedAt         time.Time          `json:"analyzed_at"`
}
