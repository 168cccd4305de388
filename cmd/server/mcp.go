package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gadget-scout/server/internal/agent/contextgen"
	"github.com/gadget-scout/server/internal/agent/model"
	"github.com/gadget-scout/server/internal/agent/registry"
	logx "github.com/gadget-scout/server/pkg/logger"
)

// serveMCP runs the context subsystem as an MCP stdio server. Logging goes to
// stderr so stdout stays clean for the protocol.
func serveMCP(cfg model.ServerConfig, assembler *contextgen.Assembler) error {
	s := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithLogging(),
	)

	buildContextTool := mcp.NewTool("build_context",
		mcp.WithDescription("Build structured context for a user query: intent type, missing information, resolved references, preferences, and a recommended tool sequence. Commits the query to the session history."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The user's raw query text"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier; omit to start a new session"),
		),
	)
	s.AddTool(buildContextTool, buildContextHandler(assembler))

	recordToolUsageTool := mcp.NewTool("record_tool_usage",
		mcp.WithDescription("Report which tools the dialogue step invoked for the session's latest query. Feeds global usage analytics."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session identifier"),
		),
		mcp.WithArray("tools",
			mcp.Required(),
			mcp.Description("Tool names in invocation order"),
		),
		mcp.WithString("succeeded",
			mcp.Description("Whether the tool calls succeeded, 'true' or 'false' (default 'true')"),
		),
	)
	s.AddTool(recordToolUsageTool, recordToolUsageHandler(assembler))

	summaryTool := mcp.NewTool("get_conversation_summary",
		mcp.WithDescription("Render a digest of one session: query count, recent queries with tools used, preferences, and the dominant theme."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session identifier"),
		),
	)
	s.AddTool(summaryTool, conversationSummaryHandler(assembler))

	registryTool := mcp.NewTool("get_tool_registry",
		mcp.WithDescription("Export the full tool registry: metadata, usage counters, and common call sequences."),
	)
	s.AddTool(registryTool, registryHandler(assembler))

	analyticsTool := mcp.NewTool("get_tool_analytics",
		mcp.WithDescription("Usage statistics: most used tools with success rates and common tool sequences."),
	)
	s.AddTool(analyticsTool, analyticsHandler(assembler))

	return server.ServeStdio(s)
}

func buildContextHandler(assembler *contextgen.Assembler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, ok := request.Params.Arguments["query"].(string)
		if !ok || query == "" {
			return nil, fmt.Errorf("query must be a non-empty string")
		}
		sessionID, _ := request.Params.Arguments["session_id"].(string)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		payload, err := assembler.BuildContext(ctx, sessionID, query)
		if err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to build context")
			return nil, err
		}

		out := struct {
			SessionID string               `json:"session_id"`
			Context   *model.ContextPayload `json:"context"`
		}{SessionID: sessionID, Context: payload}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

func recordToolUsageHandler(assembler *contextgen.Assembler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, ok := request.Params.Arguments["session_id"].(string)
		if !ok || sessionID == "" {
			return nil, fmt.Errorf("session_id must be a non-empty string")
		}
		rawTools, ok := request.Params.Arguments["tools"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("tools must be an array of tool names")
		}
		tools := make([]string, 0, len(rawTools))
		for _, v := range rawTools {
			name, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("tools must contain only strings")
			}
			tools = append(tools, name)
		}
		succeeded := true
		if raw, ok := request.Params.Arguments["succeeded"].(string); ok && raw == "false" {
			succeeded = false
		}

		if err := assembler.RecordToolUsage(ctx, sessionID, tools, succeeded); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to record tool usage")
			return nil, err
		}
		return mcp.NewToolResultText(fmt.Sprintf("Recorded %d tool calls for session %s", len(tools), sessionID)), nil
	}
}

func conversationSummaryHandler(assembler *contextgen.Assembler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, ok := request.Params.Arguments["session_id"].(string)
		if !ok || sessionID == "" {
			return nil, fmt.Errorf("session_id must be a non-empty string")
		}
		summary, err := assembler.RenderConversationSummary(ctx, sessionID)
		if err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to render conversation summary")
			return nil, err
		}
		return mcp.NewToolResultText(summary), nil
	}
}

func registryHandler(assembler *contextgen.Assembler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.MarshalIndent(assembler.Registry().Snapshot(), "", "  ")
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

func analyticsHandler(assembler *contextgen.Assembler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reg := assembler.Registry()
		out := struct {
			MostUsedTools   []registry.ToolUsage `json:"most_used_tools"`
			CommonSequences [][]string           `json:"common_sequences"`
		}{
			MostUsedTools:   reg.MostUsed(5),
			CommonSequences: reg.CommonSequences(),
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}
