package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/i2y/striker/internal/domain"
	// Import mcp types needed for the adapter interface
	"github.com/mark3labs/mcp-go/mcp"
	// Import server type for the handler function
	mcpGoServer "github.com/mark3labs/mcp-go/server"
)

// Standard errors returned by use cases and adapters.
// Both are structural faults: the caller sent a malformed request and retrying it unchanged
// will fail the same way. Domain errors are never reported through these.
var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrToolNotFound    = errors.New("tool not found")
)

// FieldError is a structural fault tied to a single request field.
type FieldError struct {
	Field   string
	Message string
	Err     error // ErrMissingField or ErrInvalidArgument
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(field, label string) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf("%s is required", label), Err: ErrMissingField}
}

// InvalidArgument reports a field whose value has the wrong type for its argument.
func InvalidArgument(field, want string) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf("%s must be a %s", field, want), Err: ErrInvalidArgument}
}

// --- Catalog ---

// CatalogRepository is the read-only source of catalog fixture data.
// Implementations must return copies; callers may not mutate fixture state through them.
type CatalogRepository interface {
	// ListProducts returns every catalog product in fixture order.
	ListProducts(ctx context.Context) ([]domain.CatalogProduct, error)

	// ListPlayers returns every selectable player in fixture order.
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}

// --- MCP Server Abstraction ---

// MCPServerAdapter defines what tool registration needs from the underlying MCP server (mcp-go).
type MCPServerAdapter interface {
	// AddTool registers a tool and its handler with the server.
	AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc)
}
