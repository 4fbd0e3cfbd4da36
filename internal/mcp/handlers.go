// ABOUTME: MCP tool handler implementations for the tweetsmith server
// ABOUTME: Contains handler implementations with proper error handling for all 6 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tweetsmith/tweetsmith/internal/core"
	"github.com/tweetsmith/tweetsmith/internal/ingest"
	"github.com/tweetsmith/tweetsmith/internal/models"
	"github.com/tweetsmith/tweetsmith/internal/storage/sqlite"
	"github.com/tweetsmith/tweetsmith/internal/style"
	"github.com/tweetsmith/tweetsmith/internal/vector"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline  *ingest.Pipeline
	generator *core.DraftGenerator
	index     *vector.Index
	profiles  *style.ProfileStore
	drafts    *sqlite.DraftStore
	embedder  core.Embedder
}

// IngestPosts handles the ingest_posts tool
func (h *Handlers) IngestPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	posts := stringArrayArg(request, "posts")
	if len(posts) == 0 {
		return mcp.NewToolResultError("posts argument is required and must be a non-empty array of strings"), nil
	}

	result, err := h.pipeline.IngestTexts(ctx, userID, posts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"user_id":      userID,
		"posts_stored": len(result.PointIDs),
		"profile":      result.Profile,
		"tendency":     result.Tendency,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GenerateDrafts handles the generate_drafts tool
func (h *Handlers) GenerateDrafts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	idea, err := request.RequireString("idea")
	if err != nil {
		return mcp.NewToolResultError("idea argument is required and must be a string"), nil
	}
	numVariations := request.GetInt("num_variations", core.DefaultVariations)

	result, err := h.generator.Generate(ctx, userID, idea, numVariations, core.DefaultTopK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("draft generation failed: %v", err)), nil
	}

	// Persist draft history; generation already succeeded, so log and continue
	records, err := h.drafts.SaveResult(userID, idea, result)
	if err != nil {
		log.Printf("Warning: failed to save draft history: %v", err)
	}

	draftIDs := make([]string, len(records))
	for i, record := range records {
		draftIDs[i] = record.ID
	}

	response := map[string]interface{}{
		"drafts":     result.Drafts,
		"draft_ids":  draftIDs,
		"confidence": result.Confidence,
		"based_on":   formatSimilarPosts(result.SimilarPosts),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RegenerateDrafts handles the regenerate_drafts tool
func (h *Handlers) RegenerateDrafts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	idea, err := request.RequireString("idea")
	if err != nil {
		return mcp.NewToolResultError("idea argument is required and must be a string"), nil
	}
	previous := stringArrayArg(request, "previous_drafts")

	drafts, err := h.generator.Regenerate(ctx, userID, idea, previous)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("draft regeneration failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"drafts": drafts,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchSimilar handles the search_similar tool
func (h *Handlers) SearchSimilar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 5)

	vec, err := h.embedder.Embed(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding query failed: %v", err)), nil
	}

	similar, err := h.index.FindSimilar(userID, vec, maxResults, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("similarity search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"results": formatSimilarPosts(similar),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetStyleProfile handles the get_style_profile tool
func (h *Handlers) GetStyleProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	profile, err := h.profiles.Get(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load profile: %v", err)), nil
	}
	tendency, err := h.profiles.GetTendency(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load tendency analysis: %v", err)), nil
	}

	response := map[string]interface{}{
		"user_id":  userID,
		"profile":  profile,
		"tendency": tendency,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ForgetUser handles the forget_user tool
func (h *Handlers) ForgetUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	if err := h.index.DeleteUser(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete post vectors: %v", err)), nil
	}
	if err := h.profiles.Delete(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete style profile: %v", err)), nil
	}
	draftsDeleted, err := h.drafts.DeleteUser(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete draft history: %v", err)), nil
	}

	response := map[string]interface{}{
		"user_id":        userID,
		"drafts_deleted": draftsDeleted,
		"forgotten":      true,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// formatSimilarPosts flattens similar posts for tool responses
func formatSimilarPosts(similar []models.SimilarPost) []map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(similar))
	for _, sp := range similar {
		results = append(results, map[string]interface{}{
			"post_id":    sp.Post.ID,
			"text":       sp.Post.Text,
			"similarity": sp.Similarity,
			"created_at": sp.Post.CreatedAt.Format(time.RFC3339),
		})
	}
	return results
}

// stringArrayArg extracts a string array argument from the request
func stringArrayArg(request mcp.CallToolRequest, key string) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, exists := args[key]
	if !exists {
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}
