// ABOUTME: Tests for the draft generator pipeline
// ABOUTME: Uses in-memory fakes for embedder, index, profile store, and LLM
package core

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

type fakeEmbedder struct {
	vector []float64
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeSearcher struct {
	results      []models.SimilarPost
	err          error
	gotTopK      int
	gotMinScore  float64
	gotUserID    string
	searchCalled int
}

func (f *fakeSearcher) FindSimilar(userID string, query []float64, topK int, minScore float64) ([]models.SimilarPost, error) {
	f.searchCalled++
	f.gotUserID = userID
	f.gotTopK = topK
	f.gotMinScore = minScore
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeProfiles struct {
	profile *models.StyleProfile
}

func (f *fakeProfiles) Get(userID string) (*models.StyleProfile, error) {
	return f.profile, nil
}

type fakeCompleter struct {
	response       string
	err            error
	gotSystem      string
	gotPrompt      string
	gotTemperature float32
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	f.gotSystem = system
	f.gotPrompt = user
	f.gotTemperature = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func similarPosts(texts ...string) []models.SimilarPost {
	posts := make([]models.SimilarPost, len(texts))
	for i, text := range texts {
		posts[i] = models.SimilarPost{
			Post:       models.NewPost(text),
			Similarity: 0.9,
		}
	}
	return posts
}

func newTestGenerator(searcher *fakeSearcher, profiles *fakeProfiles, llm *fakeCompleter) *DraftGenerator {
	return NewDraftGenerator(
		&fakeEmbedder{vector: []float64{0.1, 0.2, 0.3}},
		searcher,
		profiles,
		llm,
	)
}

func TestGenerateProducesDrafts(t *testing.T) {
	searcher := &fakeSearcher{results: similarPosts(
		"shipping the new release today",
		"another day another deploy",
		"coffee first, code second",
	)}
	llm := &fakeCompleter{response: "Draft one about shipping\n\nDraft two about deploys\n\nDraft three with coffee"}
	gen := newTestGenerator(searcher, &fakeProfiles{}, llm)

	result, err := gen.Generate(context.Background(), "user-1", "launching our new tool", 3, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(result.Drafts) != 3 {
		t.Errorf("expected 3 drafts, got %d", len(result.Drafts))
	}
	if result.Drafts[0] != "Draft one about shipping" {
		t.Errorf("unexpected first draft: %q", result.Drafts[0])
	}
	if len(result.SimilarPosts) != 3 {
		t.Errorf("expected 3 similar posts in result, got %d", len(result.SimilarPosts))
	}
	if searcher.gotTopK != 5 {
		t.Errorf("expected topK 5, got %d", searcher.gotTopK)
	}
	if searcher.gotMinScore != MinSimilarity {
		t.Errorf("expected minScore %v, got %v", MinSimilarity, searcher.gotMinScore)
	}
	if llm.gotTemperature != 0.8 {
		t.Errorf("expected temperature 0.8, got %v", llm.gotTemperature)
	}
	if !strings.Contains(llm.gotPrompt, "<EXAMPLES_START>") {
		t.Error("prompt missing examples delimiter")
	}
	if !strings.Contains(llm.gotPrompt, "shipping the new release today") {
		t.Error("prompt missing example tweet text")
	}
	if !strings.Contains(llm.gotPrompt, "launching our new tool") {
		t.Error("prompt missing the idea")
	}
}

func TestSetMinSimilarity(t *testing.T) {
	searcher := &fakeSearcher{results: similarPosts("one post")}
	llm := &fakeCompleter{response: "A draft"}
	gen := newTestGenerator(searcher, &fakeProfiles{}, llm)

	gen.SetMinSimilarity(0.55)
	if _, err := gen.Generate(context.Background(), "user-1", "an idea", 1, 5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if searcher.gotMinScore != 0.55 {
		t.Errorf("expected configured minScore 0.55, got %v", searcher.gotMinScore)
	}

	// Out-of-range values keep the current floor
	gen.SetMinSimilarity(1.5)
	if _, err := gen.Generate(context.Background(), "user-1", "an idea", 1, 5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if searcher.gotMinScore != 0.55 {
		t.Errorf("expected minScore unchanged at 0.55, got %v", searcher.gotMinScore)
	}
}

func TestGenerateNoHistory(t *testing.T) {
	searcher := &fakeSearcher{results: nil}
	gen := newTestGenerator(searcher, &fakeProfiles{}, &fakeCompleter{})

	_, err := gen.Generate(context.Background(), "user-1", "an idea", 3, 5)
	if !errors.Is(err, models.ErrNoHistory) {
		t.Errorf("expected ErrNoHistory, got %v", err)
	}
	if !strings.Contains(err.Error(), "user-1") {
		t.Errorf("error should name the user: %v", err)
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	searcher := &fakeSearcher{results: similarPosts("one post")}
	llm := &fakeCompleter{err: models.ErrProvider}
	gen := newTestGenerator(searcher, &fakeProfiles{}, llm)

	_, err := gen.Generate(context.Background(), "user-1", "an idea", 3, 5)
	if !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestGenerateUsesStoredProfile(t *testing.T) {
	searcher := &fakeSearcher{results: similarPosts("one post")}
	llm := &fakeCompleter{response: "a draft"}
	profiles := &fakeProfiles{profile: &models.StyleProfile{
		UserID:            "user-1",
		AvgLength:         142,
		EmojiFrequency:    0.6,
		HashtagFrequency:  0.05,
		Tone:              "casual",
		SentenceStructure: "1-2 sentences",
	}}
	gen := newTestGenerator(searcher, profiles, llm)

	if _, err := gen.Generate(context.Background(), "user-1", "an idea", 3, 5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(llm.gotPrompt, "Average 142 characters") {
		t.Error("prompt missing profile average length")
	}
	if !strings.Contains(llm.gotPrompt, "frequently uses emojis") {
		t.Error("emoji frequency 0.6 should read as frequently")
	}
	if !strings.Contains(llm.gotPrompt, "rarely uses hashtags") {
		t.Error("hashtag frequency 0.05 should read as rarely")
	}
}

func TestGenerateInfersStyleWithoutProfile(t *testing.T) {
	searcher := &fakeSearcher{results: similarPosts(
		"great day at the office 🎉",
		"plain text post",
	)}
	llm := &fakeCompleter{response: "a draft"}
	gen := newTestGenerator(searcher, &fakeProfiles{profile: nil}, llm)

	if _, err := gen.Generate(context.Background(), "user-1", "an idea", 3, 5); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 1 of 2 posts has an emoji, not over half, but present
	if !strings.Contains(llm.gotPrompt, "occasionally uses emojis") {
		t.Error("inferred style should say occasionally uses emojis")
	}
	if !strings.Contains(llm.gotPrompt, "rarely uses hashtags") {
		t.Error("inferred style should say rarely uses hashtags")
	}
}

func TestParseDrafts(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		count int
		want  []string
	}{
		{
			name:  "blank line separated",
			raw:   "first\n\nsecond\n\nthird",
			count: 3,
			want:  []string{"first", "second", "third"},
		},
		{
			name:  "trims whitespace and drops empties",
			raw:   "  first  \n\n\n\n second ",
			count: 3,
			want:  []string{"first", "second"},
		},
		{
			name:  "filters over-length drafts",
			raw:   strings.Repeat("x", 300) + "\n\nshort one",
			count: 3,
			want:  []string{"short one"},
		},
		{
			name:  "truncates extras",
			raw:   "a\n\nb\n\nc\n\nd\n\ne",
			count: 3,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "exactly 280 runes survives",
			raw:   strings.Repeat("あ", 280),
			count: 1,
			want:  []string{strings.Repeat("あ", 280)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDrafts(tt.raw, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d drafts, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("draft %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	withSim := func(sims ...float64) []models.SimilarPost {
		posts := make([]models.SimilarPost, len(sims))
		for i, s := range sims {
			posts[i] = models.SimilarPost{Similarity: s}
		}
		return posts
	}

	tests := []struct {
		name    string
		similar []models.SimilarPost
		want    float64
	}{
		{"no matches", nil, 0},
		{"perfect five", withSim(1, 1, 1, 1, 1), 1.0},
		{"single weak match", withSim(0.3), 0.3*0.7 + 0.2*0.3},
		{"count factor caps at one", withSim(0.5, 0.5, 0.5, 0.5, 0.5, 0.5), 0.5*0.7 + 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.similar)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRegenerateIncludesAvoidList(t *testing.T) {
	searcher := &fakeSearcher{results: similarPosts("one post")}
	llm := &fakeCompleter{response: "new one\n\nnew two\n\nnew three"}
	gen := newTestGenerator(searcher, &fakeProfiles{}, llm)

	previous := []string{"old draft a", "old draft b", "old draft c"}
	drafts, err := gen.Regenerate(context.Background(), "user-1", "an idea", previous)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	if len(drafts) != 3 {
		t.Errorf("expected 3 drafts, got %d", len(drafts))
	}
	if llm.gotTemperature != 0.9 {
		t.Errorf("expected temperature 0.9, got %v", llm.gotTemperature)
	}
	if !strings.Contains(llm.gotPrompt, "Avoid these previous attempts") {
		t.Error("prompt missing avoid-list header")
	}
	for _, prev := range previous {
		if !strings.Contains(llm.gotPrompt, prev) {
			t.Errorf("prompt should include previous draft %q", prev)
		}
	}
	if searcher.searchCalled != 1 {
		t.Errorf("expected one retrieval per regenerate, got %d", searcher.searchCalled)
	}
}

func TestRegenerateNoHistory(t *testing.T) {
	gen := newTestGenerator(&fakeSearcher{}, &fakeProfiles{}, &fakeCompleter{})

	_, err := gen.Regenerate(context.Background(), "user-1", "an idea", []string{"old"})
	if !errors.Is(err, models.ErrNoHistory) {
		t.Errorf("expected ErrNoHistory, got %v", err)
	}
}
