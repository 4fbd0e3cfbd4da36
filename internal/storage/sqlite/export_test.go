// ABOUTME: Tests for the export functionality
// ABOUTME: Verifies YAML and Markdown output files
package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

func seedExportData(t *testing.T, store *DraftStore) {
	t.Helper()
	records := []models.DraftRecord{
		{UserID: "user-1", Idea: "product launch", Text: "we shipped it 🚀", Confidence: 0.85},
		{UserID: "user-1", Idea: "product launch", Text: "launch day is here", Confidence: 0.85},
	}
	for i := range records {
		if err := store.Save(&records[i]); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
}

func testProfile() *models.StyleProfile {
	return &models.StyleProfile{
		UserID:            "user-1",
		AvgLength:         120,
		EmojiFrequency:    0.4,
		HashtagFrequency:  0.1,
		Tone:              "casual",
		SentenceStructure: "1-2 sentences",
		UpdatedAt:         time.Now(),
	}
}

func testTendency() *models.TendencyAnalysis {
	return &models.TendencyAnalysis{
		UserID:           "user-1",
		CommonTopics:     []string{"#golang", "shipping"},
		PostingFrequency: models.FrequencyActive,
		EngagementPatterns: models.EngagementPatterns{
			AvgEngagement:   42.5,
			TotalEngagement: 85,
		},
		StyleMarkers: []string{"enthusiastic"},
	}
}

func TestExportAssemblesUserData(t *testing.T) {
	store := NewDraftStore(testDB(t))
	seedExportData(t, store)

	data, err := store.Export("user-1", testProfile(), testTendency())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if data.Tool != "tweetsmith" {
		t.Errorf("expected tool tweetsmith, got %q", data.Tool)
	}
	if data.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", data.UserID)
	}
	if len(data.Drafts) != 2 {
		t.Errorf("expected 2 drafts, got %d", len(data.Drafts))
	}
	if data.Profile == nil || data.Profile.AvgLength != 120 {
		t.Errorf("unexpected profile: %+v", data.Profile)
	}
	if data.Tendency == nil || data.Tendency.PostingFrequency != models.FrequencyActive {
		t.Errorf("unexpected tendency: %+v", data.Tendency)
	}
}

func TestExportWithoutProfile(t *testing.T) {
	store := NewDraftStore(testDB(t))
	seedExportData(t, store)

	data, err := store.Export("user-1", nil, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if data.Profile != nil || data.Tendency != nil {
		t.Error("profile and tendency should be omitted when absent")
	}
}

func TestExportToYAML(t *testing.T) {
	store := NewDraftStore(testDB(t))
	seedExportData(t, store)

	path := filepath.Join(t.TempDir(), "export", "user-1.yaml")
	if err := store.ExportToYAML(path, "user-1", testProfile(), nil); err != nil {
		t.Fatalf("ExportToYAML failed: %v", err)
	}

	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		t.Fatalf("failed to read export file: %v", err)
	}

	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export file is not valid YAML: %v", err)
	}
	if len(data.Drafts) != 2 {
		t.Errorf("expected 2 drafts in YAML, got %d", len(data.Drafts))
	}
	if data.Profile == nil || data.Profile.Tone != "casual" {
		t.Errorf("unexpected profile in YAML: %+v", data.Profile)
	}
}

func TestExportToMarkdown(t *testing.T) {
	store := NewDraftStore(testDB(t))
	seedExportData(t, store)

	path := filepath.Join(t.TempDir(), "user-1.md")
	if err := store.ExportToMarkdown(path, "user-1", testProfile(), testTendency()); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		t.Fatalf("failed to read export file: %v", err)
	}
	content := string(raw)

	for _, want := range []string{
		"# Tweetsmith Export - user-1",
		"## Style Profile",
		"## Posting Tendencies",
		"## Drafts",
		"we shipped it 🚀",
		"#golang",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown export missing %q", want)
		}
	}
}
