package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/i2y/striker/internal/domain"
)

// InvokeToolUseCase routes a tool call by name to the matching use case and wraps
// the outcome in the tool response envelope. Transports share it so every surface
// produces identical payloads.
type InvokeToolUseCase struct {
	bundles *ComposeBundleUseCase
	catalog *SearchCatalogUseCase
	logger  *slog.Logger
}

// NewInvokeToolUseCase creates a new InvokeToolUseCase.
func NewInvokeToolUseCase(bundles *ComposeBundleUseCase, catalog *SearchCatalogUseCase, logger *slog.Logger) *InvokeToolUseCase {
	return &InvokeToolUseCase{
		bundles: bundles,
		catalog: catalog,
		logger:  logger.With("usecase", "InvokeTool"),
	}
}

// Execute invokes the named tool with the given argument object.
// Errors are structural faults (ErrToolNotFound, ErrMissingField, ErrInvalidArgument)
// or repository failures; domain errors come back as ToolResponse.Error.
func (uc *InvokeToolUseCase) Execute(ctx context.Context, toolName string, args map[string]any) (domain.ToolResponse, error) {
	log := uc.logger.With(slog.String("tool_name", toolName))
	log.Debug("Executing tool invocation", slog.Any("arguments", args))

	switch toolName {
	case domain.ToolAddCustomizedJersey:
		req, err := DecodeBundleRequest(args)
		if err != nil {
			log.Warn("Invalid tool arguments", slog.Any("error", err))
			return domain.ToolResponse{}, err
		}
		result, err := uc.bundles.Execute(ctx, req)
		if err != nil {
			return domain.ToolResponse{}, err
		}
		if result.Rejected() {
			return domain.ErrorResponse(result.Rejection), nil
		}
		return textResponse(result.Plan)

	case domain.ToolSearchJerseys:
		query, err := stringArg(args, domain.ArgQuery)
		if err != nil {
			log.Warn("Invalid tool arguments", slog.Any("error", err))
			return domain.ToolResponse{}, err
		}
		products, err := uc.catalog.SearchJerseys(ctx, query)
		if err != nil {
			return domain.ToolResponse{}, err
		}
		return textResponse(domain.SearchPayload{Products: products})

	case domain.ToolPlayerList:
		team, err := stringArg(args, domain.ArgTeam)
		if err != nil {
			log.Warn("Invalid tool arguments", slog.Any("error", err))
			return domain.ToolResponse{}, err
		}
		players, err := uc.catalog.ListPlayers(ctx, team)
		if err != nil {
			return domain.ToolResponse{}, err
		}
		return textResponse(domain.PlayersPayload{Players: players})
	}

	log.Warn("Unknown tool requested")
	return domain.ToolResponse{}, fmt.Errorf("tool '%s': %w", toolName, ErrToolNotFound)
}

// DecodeBundleRequest maps a tool argument object onto a BundleRequest.
// Decoding stops at the first absent field so that validation reports it in field order.
func DecodeBundleRequest(args map[string]any) (domain.BundleRequest, error) {
	var req domain.BundleRequest
	fields := []struct {
		key string
		dst *string
	}{
		{domain.ArgJerseyVariantID, &req.JerseyVariantID},
		{domain.ArgCompetition, &req.Competition},
		{domain.ArgCustomName, &req.CustomName},
	}
	for _, f := range fields {
		s, err := stringArg(args, f.key)
		if err != nil {
			return domain.BundleRequest{}, err
		}
		if s == "" {
			return req, nil
		}
		*f.dst = s
	}
	req.CustomNumber = args[domain.ArgCustomNumber]
	return req, nil
}

// stringArg reads an optional string argument. Absent and null both read as "".
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", InvalidArgument(key, "string")
	}
	return s, nil
}

func textResponse(payload any) (domain.ToolResponse, error) {
	resp, err := domain.TextResponse(payload)
	if err != nil {
		return domain.ToolResponse{}, fmt.Errorf("failed to encode tool response: %w", err)
	}
	return resp, nil
}
