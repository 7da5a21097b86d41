package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/striker/internal/domain"
)

// SearchCatalogUseCase answers read-only queries over the catalog fixture.
// Unknown or garbage filters yield empty results, never errors.
type SearchCatalogUseCase struct {
	repository CatalogRepository
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewSearchCatalogUseCase creates a new SearchCatalogUseCase.
func NewSearchCatalogUseCase(repository CatalogRepository, logger *slog.Logger) *SearchCatalogUseCase {
	return &SearchCatalogUseCase{
		repository: repository,
		logger:     logger.With("usecase", "SearchCatalog"),
		tracer:     otel.Tracer(instrumentationName),
	}
}

// SearchJerseys returns summaries of the products whose title contains query, ignoring case.
// An empty query matches every product.
func (uc *SearchCatalogUseCase) SearchJerseys(ctx context.Context, query string) ([]domain.ProductSummary, error) {
	ctx, span := uc.tracer.Start(ctx, "SearchJerseys", trace.WithAttributes(attribute.String("catalog.query", query)))
	defer span.End()

	uc.logger.Info("Searching jerseys", slog.String("query", query))
	products, err := uc.repository.ListProducts(ctx)
	if err != nil {
		uc.logger.Error("Failed to list products from repository", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list products from repository: %w", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for _, p := range products {
		if containsFold(p.Title, query) {
			summaries = append(summaries, p.Summarize())
		}
	}
	span.SetAttributes(attribute.Int("catalog.results", len(summaries)))
	uc.logger.Debug("Jersey search finished", slog.Int("count", len(summaries)))
	return summaries, nil
}

// ListPlayers returns the players whose team contains team, ignoring case.
// An empty team matches every player.
func (uc *SearchCatalogUseCase) ListPlayers(ctx context.Context, team string) ([]domain.Player, error) {
	ctx, span := uc.tracer.Start(ctx, "ListPlayers", trace.WithAttributes(attribute.String("catalog.team", team)))
	defer span.End()

	uc.logger.Info("Getting player list", slog.String("team", team))
	players, err := uc.repository.ListPlayers(ctx)
	if err != nil {
		uc.logger.Error("Failed to list players from repository", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list players from repository: %w", err)
	}

	matched := make([]domain.Player, 0, len(players))
	for _, p := range players {
		if containsFold(p.Team, team) {
			matched = append(matched, p)
		}
	}
	span.SetAttributes(attribute.Int("catalog.results", len(matched)))
	uc.logger.Debug("Player listing finished", slog.Int("count", len(matched)))
	return matched, nil
}

// containsFold is a locale-naive, case-insensitive substring match.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
