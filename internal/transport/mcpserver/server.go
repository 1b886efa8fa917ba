// Package mcpserver exposes the assistant and its tool catalogue over the
// Model Context Protocol on stdio, so MCP-capable hosts can call the same
// tools the pipeline uses internally.
package mcpserver

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/internal/providers/tools"
	"github.com/sandevgo/sagebot/internal/service/assistant"
	"github.com/sandevgo/sagebot/pkg/log"
)

const mcpUserID = "mcp-local"

type Server struct {
	mcp       *server.MCPServer
	stdio     *server.StdioServer
	assistant *assistant.Assistant
}

func NewServer(assist *assistant.Assistant, catalogue *tools.Manager) *Server {
	mcpSrv := server.NewMCPServer(
		core.SageName,
		core.SageVersion,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcp:       mcpSrv,
		stdio:     server.NewStdioServer(mcpSrv),
		assistant: assist,
	}

	for _, name := range catalogue.List() {
		tool, ok := catalogue.Get(name)
		if !ok {
			continue
		}
		mcpSrv.AddTool(toolSchema(tool), s.toolHandler(catalogue, name))
	}

	mcpSrv.AddTool(
		mcp.NewTool("ask_assistant",
			mcp.WithDescription("Ask the assistant a question; runs the full multi-source pipeline."),
			mcp.WithString("query",
				mcp.Description("The question to answer"),
				mcp.Required(),
			),
			mcp.WithString("session_id",
				mcp.Description("Session to continue; omit to start a new one"),
			),
		),
		s.handleAsk,
	)

	return s
}

// toolSchema maps the catalogue's parameter specs onto an MCP tool
// definition. Parameters without a default are required.
func toolSchema(tool core.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(tool.Description())}

	for name, spec := range tool.Parameters() {
		var propOpts []mcp.PropertyOption
		propOpts = append(propOpts, mcp.Description(spec.Description))
		if spec.Default == nil {
			propOpts = append(propOpts, mcp.Required())
		}

		switch spec.Type {
		case "number", "integer":
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(name, propOpts...))
		}
	}

	return mcp.NewTool(tool.Name(), opts...)
}

func (s *Server) toolHandler(catalogue *tools.Manager, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := catalogue.Execute(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

func (s *Server) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sessionID := req.GetString("session_id", "")

	result := s.assistant.ProcessQuery(ctx, mcpUserID, query, sessionID)
	return mcp.NewToolResultText(result.Response), nil
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp stdio server")
	return s.stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) Shutdown(ctx context.Context) error {
	// Listen returns when the context is cancelled or stdin closes.
	return nil
}
