package memrepo

import (
	"context"
	"log/slog"

	"github.com/i2y/striker/internal/domain"
)

// InMemoryCatalogRepository serves catalog fixture data from memory.
// The data is captured at construction and never written afterwards, so no locking is needed.
type InMemoryCatalogRepository struct {
	products []domain.CatalogProduct
	players  []domain.Player
	logger   *slog.Logger
}

// NewInMemoryCatalogRepository creates a repository over copies of the given fixtures.
func NewInMemoryCatalogRepository(products []domain.CatalogProduct, players []domain.Player, logger *slog.Logger) *InMemoryCatalogRepository {
	r := &InMemoryCatalogRepository{
		products: cloneProducts(products),
		players:  append([]domain.Player(nil), players...),
		logger:   logger.With("component", "mem_repo"),
	}
	r.logger.Info("Catalog repository loaded", slog.Int("products", len(r.products)), slog.Int("players", len(r.players)))
	return r
}

// ListProducts returns a copy of every product in fixture order.
func (r *InMemoryCatalogRepository) ListProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	list := cloneProducts(r.products)
	r.logger.Debug("Listed products from repository", slog.Int("count", len(list)))
	return list, nil
}

// ListPlayers returns a copy of every player in fixture order.
func (r *InMemoryCatalogRepository) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	list := make([]domain.Player, len(r.players))
	copy(list, r.players)
	r.logger.Debug("Listed players from repository", slog.Int("count", len(list)))
	return list, nil
}

func cloneProducts(in []domain.CatalogProduct) []domain.CatalogProduct {
	out := make([]domain.CatalogProduct, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
