// ABOUTME: DraftGenerator orchestrates embed -> retrieve -> prompt -> complete
// ABOUTME: Produces on-style tweet variations with a blended confidence score
package core

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tweetsmith/tweetsmith/internal/models"
)

// Generation parameters
const (
	DefaultVariations = 3
	DefaultTopK       = 5
	// MinSimilarity is the retrieval floor for few-shot examples
	MinSimilarity = 0.3
	// MaxDraftLength is the per-draft character limit
	MaxDraftLength = 280

	generateTemperature   = 0.8
	regenerateTemperature = 0.9
	completionMaxTokens   = 500

	systemPrompt = "You are a professional tweet writer who perfectly mimics user writing styles."
)

// Embedder converts text into an embedding vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Searcher retrieves a user's most similar stored posts
type Searcher interface {
	FindSimilar(userID string, query []float64, topK int, minScore float64) ([]models.SimilarPost, error)
}

// ProfileGetter loads a user's style profile; nil means none exists
type ProfileGetter interface {
	Get(userID string) (*models.StyleProfile, error)
}

// Completer runs one chat completion
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// DraftGenerator generates tweet drafts conditioned on a user's writing style
type DraftGenerator struct {
	embedder Embedder
	index    Searcher
	profiles ProfileGetter
	llm      Completer
	minScore float64
}

// NewDraftGenerator wires the generator's collaborators
func NewDraftGenerator(embedder Embedder, index Searcher, profiles ProfileGetter, llm Completer) *DraftGenerator {
	return &DraftGenerator{
		embedder: embedder,
		index:    index,
		profiles: profiles,
		llm:      llm,
		minScore: MinSimilarity,
	}
}

// SetMinSimilarity overrides the retrieval floor for few-shot examples.
// Values outside 0-1 keep the current floor.
func (g *DraftGenerator) SetMinSimilarity(minScore float64) {
	if minScore < 0 || minScore > 1 {
		return
	}
	g.minScore = minScore
}

// Generate produces numVariations drafts for an idea, styled on the user's
// topK most similar past posts. Fails with ErrNoHistory when retrieval finds
// nothing; every upstream failure aborts the whole request with no partial
// result. No retries here: retry policy belongs to the provider clients.
func (g *DraftGenerator) Generate(ctx context.Context, userID, idea string, numVariations, topK int) (*models.DraftResult, error) {
	if numVariations <= 0 {
		numVariations = DefaultVariations
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	similar, profile, err := g.retrieve(ctx, userID, idea, topK)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(idea, similar, profile, numVariations)
	raw, err := g.llm.Complete(ctx, systemPrompt, prompt, generateTemperature, completionMaxTokens)
	if err != nil {
		return nil, err
	}

	drafts := parseDrafts(raw, numVariations)
	confidence := Confidence(similar)

	log.Printf("[draft] generated %d drafts for user %s (confidence %.2f)", len(drafts), userID, confidence)
	return &models.DraftResult{
		Drafts:       drafts,
		SimilarPosts: similar,
		StyleProfile: profile,
		Confidence:   confidence,
	}, nil
}

// Regenerate produces 3 fresh variations for an idea, explicitly steering
// the model away from previous drafts. Stateless: retrieval runs again,
// nothing carries over between calls, and no confidence is recomputed.
func (g *DraftGenerator) Regenerate(ctx context.Context, userID, idea string, previousDrafts []string) ([]string, error) {
	similar, profile, err := g.retrieve(ctx, userID, idea, DefaultTopK)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(idea, similar, profile, DefaultVariations)
	prompt += "\n\nNote: Avoid these previous attempts:\n" +
		strings.Join(previousDrafts, "\n") +
		"\n\nGenerate 3 NEW variations that are different from above."

	raw, err := g.llm.Complete(ctx, systemPrompt, prompt, regenerateTemperature, completionMaxTokens)
	if err != nil {
		return nil, err
	}

	return parseDrafts(raw, DefaultVariations), nil
}

// retrieve runs the shared front half: embed the idea, fetch similar posts,
// load the profile. Zero matches is a hard precondition failure.
func (g *DraftGenerator) retrieve(ctx context.Context, userID, idea string, topK int) ([]models.SimilarPost, *models.StyleProfile, error) {
	vec, err := g.embedder.Embed(ctx, idea)
	if err != nil {
		return nil, nil, err
	}

	similar, err := g.index.FindSimilar(userID, vec, topK, g.minScore)
	if err != nil {
		return nil, nil, err
	}
	if len(similar) == 0 {
		return nil, nil, models.NoHistoryError(userID)
	}

	profile, err := g.profiles.Get(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load style profile for %s: %w", userID, err)
	}

	return similar, profile, nil
}

// parseDrafts splits a raw completion into individual drafts: blank-line
// separated, trimmed, non-empty, and within the character limit. More than
// requested is truncated; fewer is tolerated with a logged warning.
func parseDrafts(raw string, count int) []string {
	var drafts []string
	for _, block := range strings.Split(raw, "\n\n") {
		draft := strings.TrimSpace(block)
		if draft == "" || utf8.RuneCountInString(draft) > MaxDraftLength {
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) > count {
		drafts = drafts[:count]
	}
	if len(drafts) < count {
		log.Printf("[draft] only generated %d drafts, requested %d", len(drafts), count)
	}
	return drafts
}

// Confidence blends retrieval quality and quantity: the mean similarity
// weighted 0.7, and match count normalized to 5 examples weighted 0.3.
func Confidence(similar []models.SimilarPost) float64 {
	if len(similar) == 0 {
		return 0
	}

	var sum float64
	for _, sp := range similar {
		sum += sp.Similarity
	}
	avgSimilarity := sum / float64(len(similar))
	countFactor := math.Min(float64(len(similar))/5, 1)

	return avgSimilarity*0.7 + countFactor*0.3
}

// buildPrompt assembles the few-shot prompt: the retrieved posts verbatim,
// a style summary (from the profile, or inferred from the examples when no
// profile exists), and the formatting rules.
func buildPrompt(idea string, similar []models.SimilarPost, profile *models.StyleProfile, numVariations int) string {
	examples := make([]string, len(similar))
	for i, sp := range similar {
		examples[i] = sp.Post.Text
	}

	var styleSection string
	if profile != nil {
		styleSection = describeProfile(profile)
	} else {
		styleSection = inferStyle(similar)
	}

	return fmt.Sprintf(`You are an AI that writes tweets in the exact same style as the user.

Below are several example tweets written by this user.
These examples were chosen because their content is similar to the user's new idea.

<EXAMPLES_START>
%s
<EXAMPLES_END>

Here is a summary of the user's writing style:
%s

Now, write **%d tweet variations** for the following idea, strictly matching the user's personal style:

"%s"

Rules:
- Do NOT sound like generic AI.
- Match the user's rhythm, sentence length, tone, vocabulary, and attitude.
- Follow the user's typical use of emojis, line breaks, and pacing.
- Do NOT add explanations. Just output the tweets.
- Return tweets separated by a blank line.
- Each tweet must be under %d characters.`,
		strings.Join(examples, "\n\n"), styleSection, numVariations, idea, MaxDraftLength)
}

// describeProfile renders a stored profile as style bullets
func describeProfile(profile *models.StyleProfile) string {
	return fmt.Sprintf(`- %s tone
- Average %d characters per tweet
- %s sentence structure
- %s uses emojis
- %s uses hashtags`,
		profile.Tone,
		profile.AvgLength,
		profile.SentenceStructure,
		usageBucket(profile.EmojiFrequency),
		usageBucket(profile.HashtagFrequency))
}

// usageBucket maps a stored profile frequency onto usage wording
func usageBucket(freq float64) string {
	switch {
	case freq > 0.3:
		return "frequently"
	case freq > 0.1:
		return "occasionally"
	default:
		return "rarely"
	}
}

// inferStyle derives style bullets directly from the retrieved examples,
// used when no profile has been computed yet. Bucket thresholds differ from
// the profile path: any occurrence already counts as occasional here.
func inferStyle(similar []models.SimilarPost) string {
	var totalLength int
	var emojiCount, hashtagCount int
	for _, sp := range similar {
		totalLength += sp.Post.Length
		if sp.Post.HasEmoji {
			emojiCount++
		}
		if sp.Post.HasHashtag {
			hashtagCount++
		}
	}

	n := len(similar)
	avgLength := int(math.Round(float64(totalLength) / float64(n)))

	bucket := func(count int) string {
		switch {
		case float64(count) > float64(n)*0.5:
			return "frequently"
		case count > 0:
			return "occasionally"
		default:
			return "rarely"
		}
	}

	return fmt.Sprintf(`- Casual and direct tone
- Average %d characters per tweet
- 1-2 sentences per tweet
- %s uses emojis
- %s uses hashtags`,
		avgLength, bucket(emojiCount), bucket(hashtagCount))
}
