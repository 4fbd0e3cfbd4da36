// ABOUTME: MCP tool definitions and registration for the tweetsmith server
// ABOUTME: Defines JSON schemas for all 6 MCP tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tweetsmith/tweetsmith/internal/core"
	"github.com/tweetsmith/tweetsmith/internal/ingest"
	"github.com/tweetsmith/tweetsmith/internal/storage/sqlite"
	"github.com/tweetsmith/tweetsmith/internal/style"
	"github.com/tweetsmith/tweetsmith/internal/vector"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *ingest.Pipeline, generator *core.DraftGenerator, index *vector.Index, profiles *style.ProfileStore, drafts *sqlite.DraftStore, embedder core.Embedder) *Handlers {
	// Initialize handlers
	handlers := &Handlers{
		pipeline:  pipeline,
		generator: generator,
		index:     index,
		profiles:  profiles,
		drafts:    drafts,
		embedder:  embedder,
	}

	// 1. ingest_posts - Store a user's post history for style learning
	server.AddTool(mcp.Tool{
		Name:        "ingest_posts",
		Description: "Ingest a user's past posts. Embeds each post, stores it in the vector index, and recomputes the user's style profile.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User the posts belong to",
				},
				"posts": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Post texts to ingest",
				},
			},
			Required: []string{"user_id", "posts"},
		},
	}, handlers.IngestPosts)

	// 2. generate_drafts - Generate tweet drafts in the user's style
	server.AddTool(mcp.Tool{
		Name:        "generate_drafts",
		Description: "Generate tweet draft variations for an idea, styled on the user's most similar past posts. Fails when the user has no ingested history.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User to generate drafts for",
				},
				"idea": map[string]interface{}{
					"type":        "string",
					"description": "The idea or topic to write about",
				},
				"num_variations": map[string]interface{}{
					"type":        "number",
					"description": "Number of draft variations to generate (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"user_id", "idea"},
		},
	}, handlers.GenerateDrafts)

	// 3. regenerate_drafts - Generate fresh drafts avoiding previous attempts
	server.AddTool(mcp.Tool{
		Name:        "regenerate_drafts",
		Description: "Generate 3 new tweet drafts for an idea, explicitly avoiding a list of previous drafts the user rejected.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User to generate drafts for",
				},
				"idea": map[string]interface{}{
					"type":        "string",
					"description": "The idea or topic to write about",
				},
				"previous_drafts": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Drafts to avoid repeating",
				},
			},
			Required: []string{"user_id", "idea"},
		},
	}, handlers.RegenerateDrafts)

	// 4. search_similar - Find a user's posts most similar to a query
	server.AddTool(mcp.Tool{
		Name:        "search_similar",
		Description: "Search a user's ingested posts by semantic similarity to a query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose posts to search",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"user_id", "query"},
		},
	}, handlers.SearchSimilar)

	// 5. get_style_profile - Get a user's style profile and tendencies
	server.AddTool(mcp.Tool{
		Name:        "get_style_profile",
		Description: "Get the user's computed style profile and posting tendency analysis.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User to look up",
				},
			},
			Required: []string{"user_id"},
		},
	}, handlers.GetStyleProfile)

	// 6. forget_user - Delete all stored data for a user
	server.AddTool(mcp.Tool{
		Name:        "forget_user",
		Description: "Delete everything stored for a user: their post vectors, style profile, tendency analysis, and draft history.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User to forget",
				},
			},
			Required: []string{"user_id"},
		},
	}, handlers.ForgetUser)

	return handlers
}
