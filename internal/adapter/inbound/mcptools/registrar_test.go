package mcptools_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/striker/internal/adapter/inbound/mcptools"
	"github.com/i2y/striker/internal/adapter/outbound/fixture"
	"github.com/i2y/striker/internal/adapter/outbound/memrepo"
	"github.com/i2y/striker/internal/domain"
	"github.com/i2y/striker/internal/usecase"
)

// MockServer is a mock implementation of usecase.MCPServerAdapter.
type MockServer struct {
	mock.Mock
	handlers map[string]mcpGoServer.ToolHandlerFunc
}

func (m *MockServer) AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc) {
	m.Called(tool.Name)
	if m.handlers == nil {
		m.handlers = make(map[string]mcpGoServer.ToolHandlerFunc)
	}
	m.handlers[tool.Name] = handlerFunc
}

func newRegistrar(t *testing.T) *mcptools.Registrar {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f, err := fixture.Default()
	require.NoError(t, err)

	repo := memrepo.NewInMemoryCatalogRepository(f.Catalog.Jerseys, f.Catalog.Players, logger)
	invoker := usecase.NewInvokeToolUseCase(
		usecase.NewComposeBundleUseCase(f.Bundle, logger),
		usecase.NewSearchCatalogUseCase(repo, logger),
		logger,
	)
	return mcptools.NewRegistrar(usecase.NewServeToolsUseCase(f.Bundle, logger), invoker, logger)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestRegistrar_Register(t *testing.T) {
	server := new(MockServer)
	server.On("AddTool", domain.ToolAddCustomizedJersey).Once()
	server.On("AddTool", domain.ToolSearchJerseys).Once()
	server.On("AddTool", domain.ToolPlayerList).Once()

	n := newRegistrar(t).Register(context.Background(), server)

	assert.Equal(t, 3, n)
	server.AssertExpectations(t)
}

func TestRegistrar_Handlers(t *testing.T) {
	ctx := context.Background()
	server := new(MockServer)
	server.On("AddTool", mock.Anything)
	newRegistrar(t).Register(ctx, server)

	t.Run("bundle success", func(t *testing.T) {
		result, err := server.handlers[domain.ToolAddCustomizedJersey](ctx, callRequest(domain.ToolAddCustomizedJersey, map[string]any{
			"jerseyVariantId": "J1",
			"competition":     "UCL",
			"customName":      "VINICIUS JR",
			"customNumber":    float64(7),
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		var plan domain.BundlePlan
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &plan))
		assert.True(t, plan.Success)
		assert.Equal(t, "VINICIUS JR #7", plan.Details.Customization)
		assert.Equal(t, "Champions League Badge", plan.Details.Badge)
		assert.Len(t, plan.CartLines, 3)
	})

	t.Run("bundle domain error is an error result", func(t *testing.T) {
		result, err := server.handlers[domain.ToolAddCustomizedJersey](ctx, callRequest(domain.ToolAddCustomizedJersey, map[string]any{
			"jerseyVariantId": "J1",
			"competition":     "UCL",
			"customName":      "VINICIUS JR",
			"customNumber":    float64(100),
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.JSONEq(t,
			`{"error":{"type":"validation_error","data":"Jersey number must be between 0 and 99."}}`,
			resultText(t, result))
	})

	t.Run("bundle structural fault is a handler error", func(t *testing.T) {
		result, err := server.handlers[domain.ToolAddCustomizedJersey](ctx, callRequest(domain.ToolAddCustomizedJersey, map[string]any{
			"competition": "UCL",
		}))
		assert.Nil(t, result)
		require.Error(t, err)
		assert.ErrorIs(t, err, usecase.ErrMissingField)
		assert.EqualError(t, err, "Jersey Variant ID is required")
	})

	t.Run("player list", func(t *testing.T) {
		result, err := server.handlers[domain.ToolPlayerList](ctx, callRequest(domain.ToolPlayerList, map[string]any{"team": "real madrid"}))
		require.NoError(t, err)

		var payload domain.PlayersPayload
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
		assert.Len(t, payload.Players, 3)
	})

	t.Run("search without arguments", func(t *testing.T) {
		result, err := server.handlers[domain.ToolSearchJerseys](ctx, callRequest(domain.ToolSearchJerseys, nil))
		require.NoError(t, err)

		var payload domain.SearchPayload
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
		assert.Len(t, payload.Products, 2)
	})
}

func TestToMCPTool(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	f, err := fixture.Default()
	require.NoError(t, err)

	defs := usecase.NewServeToolsUseCase(f.Bundle, logger).Execute(context.Background())
	require.Len(t, defs, 3)

	tool := mcptools.ToMCPTool(defs[0])
	assert.Equal(t, domain.ToolAddCustomizedJersey, tool.Name)
	assert.Equal(t, defs[0].Description, tool.Description)
	assert.Equal(t, "object", tool.InputSchema.Type)
	assert.ElementsMatch(t, []string{"jerseyVariantId", "competition", "customName", "customNumber"}, tool.InputSchema.Required)

	competition, ok := tool.InputSchema.Properties["competition"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", competition["type"])
	assert.Equal(t, []string{"LALIGA", "UCL"}, competition["enum"])

	number, ok := tool.InputSchema.Properties["customNumber"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", number["type"])

	search := mcptools.ToMCPTool(defs[1])
	assert.Empty(t, search.InputSchema.Required)
	assert.Contains(t, search.InputSchema.Properties, "query")
}

func TestServer_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv := mcpGoServer.NewMCPServer("striker-test", "0.0.0", mcpGoServer.WithToolCapabilities(false))
	newRegistrar(t).Register(ctx, srv)

	send := func(t *testing.T, msg string) map[string]any {
		t.Helper()
		resp := srv.HandleMessage(ctx, json.RawMessage(msg))
		b, err := json.Marshal(resp)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		return out
	}

	t.Run("tools/list", func(t *testing.T) {
		out := send(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
		result, ok := out["result"].(map[string]any)
		require.True(t, ok, "unexpected response: %v", out)
		tools, ok := result["tools"].([]any)
		require.True(t, ok)
		assert.Len(t, tools, 3)
	})

	t.Run("tools/call", func(t *testing.T) {
		out := send(t, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search_mock_jerseys","arguments":{"query":"BARCELONA"}}}`)
		result, ok := out["result"].(map[string]any)
		require.True(t, ok, "unexpected response: %v", out)
		content := result["content"].([]any)
		require.Len(t, content, 1)
		text := content[0].(map[string]any)["text"].(string)

		var payload domain.SearchPayload
		require.NoError(t, json.Unmarshal([]byte(text), &payload))
		require.Len(t, payload.Products, 1)
		assert.Equal(t, "FC Barcelona Home Jersey 23/24", payload.Products[0].Title)
	})

	t.Run("tools/call with missing field", func(t *testing.T) {
		out := send(t, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"add_customized_jersey_to_cart","arguments":{"jerseyVariantId":"J1"}}}`)
		assert.Contains(t, out, "error")
		assert.NotContains(t, out, "result")
	})
}
