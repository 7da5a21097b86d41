package usecase

import (
	"context"
	"log/slog"

	"github.com/i2y/striker/internal/domain"
)

// ServeToolsUseCase provides the static descriptions of the tools for discovery.
type ServeToolsUseCase struct {
	tools  []domain.Tool
	logger *slog.Logger
}

// NewServeToolsUseCase creates a new ServeToolsUseCase.
// The competition enum is taken from config so discovery and validation agree.
func NewServeToolsUseCase(config domain.BundleConfig, logger *slog.Logger) *ServeToolsUseCase {
	return &ServeToolsUseCase{
		tools:  toolDefinitions(config),
		logger: logger.With("usecase", "ServeTools"),
	}
}

// Execute returns the tool definitions in a fixed order.
func (uc *ServeToolsUseCase) Execute(ctx context.Context) []domain.Tool {
	uc.logger.Debug("Listing tools", slog.Int("count", len(uc.tools)))
	out := make([]domain.Tool, len(uc.tools))
	copy(out, uc.tools)
	return out
}

// Find returns the definition of the named tool.
func (uc *ServeToolsUseCase) Find(ctx context.Context, name string) (domain.Tool, error) {
	for _, t := range uc.tools {
		if t.Name == name {
			return t, nil
		}
	}
	uc.logger.Warn("Tool definition not found", slog.String("tool_name", name))
	return domain.Tool{}, ErrToolNotFound
}

func toolDefinitions(config domain.BundleConfig) []domain.Tool {
	return []domain.Tool{
		{
			Name:        domain.ToolAddCustomizedJersey,
			Description: "Adds a customized football jersey to the cart using the 'Hat-Trick' pattern. This includes the jersey itself, a competition badge, and the name/number customization service.",
			InputSchema: domain.JSONSchemaProps{
				Type: "object",
				Properties: map[string]domain.JSONSchemaProps{
					domain.ArgJerseyVariantID: {
						Type:        "string",
						Description: "The Variant ID of the base jersey product",
					},
					domain.ArgCompetition: {
						Type:        "string",
						Description: "The competition badge to apply (e.g., 'LALIGA', 'UCL')",
						Enum:        config.Competitions(),
					},
					domain.ArgCustomName: {
						Type:        "string",
						Description: "The player name to print on the jersey",
					},
					domain.ArgCustomNumber: {
						Type:        "number",
						Description: "The player number to print on the jersey",
					},
				},
				Required: []string{
					domain.ArgJerseyVariantID,
					domain.ArgCompetition,
					domain.ArgCustomName,
					domain.ArgCustomNumber,
				},
			},
		},
		{
			Name:        domain.ToolSearchJerseys,
			Description: "Searches for football jerseys in the mock catalog. Use this to find available jerseys for customization.",
			InputSchema: domain.JSONSchemaProps{
				Type: "object",
				Properties: map[string]domain.JSONSchemaProps{
					domain.ArgQuery: {
						Type:        "string",
						Description: "Search term for the jersey (e.g., 'Real Madrid')",
					},
				},
			},
		},
		{
			Name:        domain.ToolPlayerList,
			Description: "Retrieves a list of famous players (Name and Number) to choose from for customization. Can filter by team.",
			InputSchema: domain.JSONSchemaProps{
				Type: "object",
				Properties: map[string]domain.JSONSchemaProps{
					domain.ArgTeam: {
						Type:        "string",
						Description: "Optional team name to filter players (e.g., 'Real Madrid')",
					},
				},
			},
		},
	}
}
