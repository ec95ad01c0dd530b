package rag

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/schema"
)

const Version = "1.0.0"

// NewServer builds the MCP server exposing the question pipeline and the
// topic taxonomy as tools. The returned client must be closed by the caller
// on shutdown.
func NewServer(serverName string, cfg *config.Config) (*server.MCPServer, *RAGClient, error) {
	mcpServer := server.NewMCPServer(
		serverName,
		Version,
		server.WithInstructions("Question answering over the Sofia Imamia NoorBakshia knowledge base with topic-filtered retrieval"),
	)

	ragClient, err := NewRAGClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create rag client failed, err: %w", err)
	}

	// Intelligent Q&A Tool
	mcpServer.AddTool(
		mcp.NewToolWithRawSchema("ask", "Answer a question about Islamic knowledge using topic-filtered retrieval over the indexed texts", GetAskSchema()),
		HandleAsk(ragClient),
	)

	// Topic Taxonomy Tool
	mcpServer.AddTool(
		mcp.NewToolWithRawSchema("list-topics", "List the topic categories available for filtered search", GetListTopicsSchema()),
		HandleListTopics(ragClient),
	)

	return mcpServer, ragClient, nil
}

// GetAskSchema returns the input schema of the ask tool.
func GetAskSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"question": {
				"type": "string",
				"description": "The question, in English, Urdu or Roman Urdu"
			},
			"topic_folder": {
				"type": "string",
				"description": "Optional topic folder to restrict the search to, or \"all\""
			}
		},
		"required": ["question"]
	}`)
}

// GetListTopicsSchema returns the input schema of the list-topics tool.
func GetListTopicsSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

// HandleAsk runs a question through the pipeline and returns the answer
// with its metadata as JSON.
func HandleAsk(ragClient *RAGClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		req := schema.Request{
			Question:    question,
			TopicFolder: request.GetString("topic_folder", ""),
		}

		resp := ragClient.Ask(ctx, req)
		payload, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("marshal response failed, err: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// HandleListTopics returns the topic taxonomy as JSON.
func HandleListTopics(ragClient *RAGClient) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		topics := ragClient.Topics(ctx)
		payload, err := json.Marshal(map[string]any{
			"topics": topics,
			"total":  len(topics),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal topics failed, err: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
