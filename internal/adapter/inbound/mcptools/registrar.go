// Package mcptools exposes the use cases as MCP tools on an mcp-go server.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/i2y/striker/internal/domain"
	"github.com/i2y/striker/internal/usecase"
)

// Registrar registers tool definitions and their handlers with an MCP server.
type Registrar struct {
	tools   *usecase.ServeToolsUseCase
	invoker *usecase.InvokeToolUseCase
	logger  *slog.Logger
}

// NewRegistrar creates a new Registrar.
func NewRegistrar(tools *usecase.ServeToolsUseCase, invoker *usecase.InvokeToolUseCase, logger *slog.Logger) *Registrar {
	return &Registrar{
		tools:   tools,
		invoker: invoker,
		logger:  logger.With("component", "mcp_tools"),
	}
}

// Register adds every tool to the server.
func (r *Registrar) Register(ctx context.Context, server usecase.MCPServerAdapter) int {
	defs := r.tools.Execute(ctx)
	for _, def := range defs {
		server.AddTool(ToMCPTool(def), r.handler(def.Name))
		r.logger.Debug("Registered tool.", slog.String("tool_name", def.Name))
	}
	r.logger.Info("Registered tools with MCP server.", slog.Int("count", len(defs)))
	return len(defs)
}

// handler adapts a tool call to InvokeToolUseCase.
// Structural faults surface as handler errors (a JSON-RPC error for the client);
// domain errors become an IsError result carrying the error envelope.
func (r *Registrar) handler(name string) mcpGoServer.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := r.logger.With(slog.String("tool_name", name))
		resp, err := r.invoker.Execute(ctx, name, request.GetArguments())
		if err != nil {
			log.Warn("Tool call failed.", slog.Any("error", err))
			return nil, err
		}
		return ToCallToolResult(resp)
	}
}

// ToCallToolResult converts a tool response envelope into an MCP result.
func ToCallToolResult(resp domain.ToolResponse) (*mcp.CallToolResult, error) {
	if resp.Error != nil {
		b, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode error envelope: %w", err)
		}
		return mcp.NewToolResultError(string(b)), nil
	}

	result := &mcp.CallToolResult{}
	for _, c := range resp.Content {
		result.Content = append(result.Content, mcp.NewTextContent(c.Text))
	}
	return result, nil
}

// ToMCPTool converts a tool definition into its mcp-go form.
func ToMCPTool(def domain.Tool) mcp.Tool {
	required := make(map[string]bool, len(def.InputSchema.Required))
	for _, name := range def.InputSchema.Required {
		required[name] = true
	}

	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, name := range def.InputSchema.PropertyNames() {
		prop := def.InputSchema.Properties[name]
		var propOpts []mcp.PropertyOption
		if prop.Description != "" {
			propOpts = append(propOpts, mcp.Description(prop.Description))
		}
		if required[name] {
			propOpts = append(propOpts, mcp.Required())
		}
		if len(prop.Enum) > 0 {
			propOpts = append(propOpts, mcp.Enum(prop.Enum...))
		}

		switch prop.Type {
		case "number", "integer":
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(name, propOpts...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}
