// ABOUTME: Export functionality for a user's tweetsmith data
// ABOUTME: Supports YAML and Markdown export formats
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version    string          `yaml:"version" json:"version"`
	ExportedAt string          `yaml:"exported_at" json:"exported_at"`
	Tool       string          `yaml:"tool" json:"tool"`
	UserID     string          `yaml:"user_id" json:"user_id"`
	Profile    *ExportProfile  `yaml:"profile,omitempty" json:"profile,omitempty"`
	Tendency   *ExportTendency `yaml:"tendency,omitempty" json:"tendency,omitempty"`
	Drafts     []ExportDraft   `yaml:"drafts,omitempty" json:"drafts,omitempty"`
}

// ExportProfile represents a style profile for export
type ExportProfile struct {
	AvgLength         int     `yaml:"avg_length" json:"avg_length"`
	EmojiFrequency    float64 `yaml:"emoji_frequency" json:"emoji_frequency"`
	HashtagFrequency  float64 `yaml:"hashtag_frequency" json:"hashtag_frequency"`
	Tone              string  `yaml:"tone" json:"tone"`
	SentenceStructure string  `yaml:"sentence_structure" json:"sentence_structure"`
	UpdatedAt         string  `yaml:"updated_at" json:"updated_at"`
}

// ExportTendency represents a tendency analysis for export
type ExportTendency struct {
	CommonTopics     []string `yaml:"common_topics,omitempty" json:"common_topics,omitempty"`
	PostingFrequency string   `yaml:"posting_frequency" json:"posting_frequency"`
	AvgEngagement    float64  `yaml:"avg_engagement" json:"avg_engagement"`
	StyleMarkers     []string `yaml:"style_markers,omitempty" json:"style_markers,omitempty"`
}

// ExportDraft represents a stored draft for export
type ExportDraft struct {
	DraftID    string  `yaml:"draft_id" json:"draft_id"`
	Idea       string  `yaml:"idea" json:"idea"`
	Text       string  `yaml:"text" json:"text"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	Status     string  `yaml:"status" json:"status"`
	CreatedAt  string  `yaml:"created_at" json:"created_at"`
}

// Export assembles a user's exportable data: their stored drafts from the
// database, plus the style profile and tendency analysis when provided.
func (s *DraftStore) Export(userID string, profile *models.StyleProfile, tendency *models.TendencyAnalysis) (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "tweetsmith",
		UserID:     userID,
	}

	if profile != nil {
		data.Profile = &ExportProfile{
			AvgLength:         profile.AvgLength,
			EmojiFrequency:    profile.EmojiFrequency,
			HashtagFrequency:  profile.HashtagFrequency,
			Tone:              profile.Tone,
			SentenceStructure: profile.SentenceStructure,
			UpdatedAt:         profile.UpdatedAt.Format(time.RFC3339),
		}
	}

	if tendency != nil {
		data.Tendency = &ExportTendency{
			CommonTopics:     tendency.CommonTopics,
			PostingFrequency: tendency.PostingFrequency,
			AvgEngagement:    tendency.EngagementPatterns.AvgEngagement,
			StyleMarkers:     tendency.StyleMarkers,
		}
	}

	drafts, err := s.ListByUser(userID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	for _, draft := range drafts {
		data.Drafts = append(data.Drafts, ExportDraft{
			DraftID:    draft.ID,
			Idea:       draft.Idea,
			Text:       draft.Text,
			Confidence: draft.Confidence,
			Status:     draft.Status,
			CreatedAt:  draft.CreatedAt.Format(time.RFC3339),
		})
	}

	return data, nil
}

// ExportToYAML exports a user's data to a YAML file
func (s *DraftStore) ExportToYAML(outputPath, userID string, profile *models.StyleProfile, tendency *models.TendencyAnalysis) error {
	data, err := s.Export(userID, profile, tendency)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// ExportToMarkdown exports a user's data to a Markdown file
func (s *DraftStore) ExportToMarkdown(outputPath, userID string, profile *models.StyleProfile, tendency *models.TendencyAnalysis) error {
	data, err := s.Export(userID, profile, tendency)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Write header
	_, _ = fmt.Fprintf(file, "# Tweetsmith Export - %s\n\n", data.UserID)
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", data.ExportedAt)

	// Write profile
	if data.Profile != nil {
		_, _ = fmt.Fprintln(file, "## Style Profile")
		_, _ = fmt.Fprintln(file)
		_, _ = fmt.Fprintf(file, "- **Tone:** %s\n", data.Profile.Tone)
		_, _ = fmt.Fprintf(file, "- **Average length:** %d characters\n", data.Profile.AvgLength)
		_, _ = fmt.Fprintf(file, "- **Sentence structure:** %s\n", data.Profile.SentenceStructure)
		_, _ = fmt.Fprintf(file, "- **Emoji frequency:** %.2f\n", data.Profile.EmojiFrequency)
		_, _ = fmt.Fprintf(file, "- **Hashtag frequency:** %.2f\n", data.Profile.HashtagFrequency)
		_, _ = fmt.Fprintln(file)
	}

	// Write tendency analysis
	if data.Tendency != nil {
		_, _ = fmt.Fprintln(file, "## Posting Tendencies")
		_, _ = fmt.Fprintln(file)
		_, _ = fmt.Fprintf(file, "- **Posting frequency:** %s\n", data.Tendency.PostingFrequency)
		_, _ = fmt.Fprintf(file, "- **Average engagement:** %.1f\n", data.Tendency.AvgEngagement)
		if len(data.Tendency.CommonTopics) > 0 {
			_, _ = fmt.Fprintf(file, "- **Common topics:** %s\n", joinList(data.Tendency.CommonTopics))
		}
		if len(data.Tendency.StyleMarkers) > 0 {
			_, _ = fmt.Fprintf(file, "- **Style markers:** %s\n", joinList(data.Tendency.StyleMarkers))
		}
		_, _ = fmt.Fprintln(file)
	}

	// Write drafts
	if len(data.Drafts) > 0 {
		_, _ = fmt.Fprintln(file, "## Drafts")
		_, _ = fmt.Fprintln(file)
		for _, draft := range data.Drafts {
			_, _ = fmt.Fprintf(file, "### %s (%s)\n\n", draft.Idea, draft.Status)
			_, _ = fmt.Fprintf(file, "%s\n\n", draft.Text)
			_, _ = fmt.Fprintf(file, "*Confidence: %.2f, created %s*\n\n", draft.Confidence, draft.CreatedAt)
			_, _ = fmt.Fprintln(file, "---")
			_, _ = fmt.Fprintln(file)
		}
	}

	return nil
}

func joinList(items []string) string {
	result := ""
	for i, item := range items {
		if i > 0 {
			result += ", "
		}
		result += item
	}
	return result
}
