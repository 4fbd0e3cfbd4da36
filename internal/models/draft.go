// ABOUTME: Draft result and persistence shapes for generated tweet variations
// ABOUTME: DraftResult is transient per request; DraftRecord is the stored row
package models

import "time"

// Draft status lifecycle.
const (
	DraftStatusGenerated = "generated"
	DraftStatusEdited    = "edited"
	DraftStatusPosted    = "posted"
)

// DraftResult is the full outcome of one generation request.
// Not persisted as a unit; callers typically save the drafts individually.
type DraftResult struct {
	Drafts       []string      `json:"drafts"`
	SimilarPosts []SimilarPost `json:"similar_posts"`
	StyleProfile *StyleProfile `json:"style_profile"`
	Confidence   float64       `json:"confidence"`
}

// DraftRecord is a single generated draft as stored in draft history.
type DraftRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Idea           string    `json:"idea"`
	Text           string    `json:"text"`
	SimilarPostIDs []string  `json:"similar_post_ids,omitempty"`
	Confidence     float64   `json:"confidence"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
