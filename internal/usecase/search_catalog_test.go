package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/striker/internal/domain"
	"github.com/i2y/striker/internal/usecase"
)

// MockCatalogRepository is a mock implementation of the CatalogRepository interface.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	args := m.Called(ctx)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]domain.CatalogProduct), args.Error(1)
}

func (m *MockCatalogRepository) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	args := m.Called(ctx)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]domain.Player), args.Error(1)
}

var (
	realMadridJersey = domain.CatalogProduct{
		ID:    "gid://shopify/Product/MOCK_JERSEY_RM_HOME",
		Title: "Real Madrid Home Jersey 23/24",
		Variants: []domain.CatalogVariant{
			{ID: "rm-m", Title: "Medium", Price: "120.00", Currency: "EUR"},
		},
	}
	barcaJersey = domain.CatalogProduct{
		ID:    "gid://shopify/Product/MOCK_JERSEY_BARCA_HOME",
		Title: "FC Barcelona Home Jersey 23/24",
		Variants: []domain.CatalogVariant{
			{ID: "barca-l", Title: "Large", Price: "125.00", Currency: "EUR"},
			{ID: "barca-m", Title: "Medium", Price: "115.00", Currency: "EUR"},
		},
	}
	fixturePlayers = []domain.Player{
		{Name: "VINICIUS JR", Number: 7, Team: "Real Madrid"},
		{Name: "BELLINGHAM", Number: 5, Team: "Real Madrid"},
		{Name: "MODRIC", Number: 10, Team: "Real Madrid"},
		{Name: "LEWANDOWSKI", Number: 9, Team: "FC Barcelona"},
		{Name: "PEDRI", Number: 8, Team: "FC Barcelona"},
		{Name: "GAVI", Number: 6, Team: "FC Barcelona"},
	}
)

func TestSearchCatalogUseCase_SearchJerseys(t *testing.T) {
	ctx := context.Background()
	products := []domain.CatalogProduct{realMadridJersey, barcaJersey}

	tests := []struct {
		name      string
		query     string
		wantIDs   []string
		wantEmpty bool
	}{
		{name: "empty query returns all", query: "", wantIDs: []string{realMadridJersey.ID, barcaJersey.ID}},
		{name: "case-insensitive match", query: "barcelona", wantIDs: []string{barcaJersey.ID}},
		{name: "upper case match", query: "REAL MADRID", wantIDs: []string{realMadridJersey.ID}},
		{name: "shared substring", query: "home jersey", wantIDs: []string{realMadridJersey.ID, barcaJersey.ID}},
		{name: "no match", query: "zzz-no-match", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepository)
			repo.On("ListProducts", mock.Anything).Return(products, nil).Once()

			uc := usecase.NewSearchCatalogUseCase(repo, testLogger())
			got, err := uc.SearchJerseys(ctx, tt.query)
			require.NoError(t, err)
			require.NotNil(t, got, "results must be an empty slice, not nil")

			if tt.wantEmpty {
				assert.Empty(t, got)
			} else {
				ids := make([]string, len(got))
				for i, s := range got {
					ids[i] = s.ProductID
				}
				assert.Equal(t, tt.wantIDs, ids)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSearchCatalogUseCase_PriceRangeUsesFirstVariant(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("ListProducts", mock.Anything).Return([]domain.CatalogProduct{barcaJersey}, nil)

	got, err := usecase.NewSearchCatalogUseCase(repo, testLogger()).SearchJerseys(context.Background(), "barcelona")
	require.NoError(t, err)
	require.Len(t, got, 1)

	// The first variant is representative even when a later one is cheaper.
	assert.Equal(t, domain.PriceRange{Min: "125.00", Currency: "EUR"}, got[0].PriceRange)
	assert.Equal(t, barcaJersey.Variants, got[0].Variants)
	assert.Equal(t, barcaJersey.Title, got[0].Title)
}

func TestSearchCatalogUseCase_ListPlayers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		team      string
		wantNames []string
	}{
		{name: "no filter returns all", team: "", wantNames: []string{"VINICIUS JR", "BELLINGHAM", "MODRIC", "LEWANDOWSKI", "PEDRI", "GAVI"}},
		{name: "real madrid", team: "real madrid", wantNames: []string{"VINICIUS JR", "BELLINGHAM", "MODRIC"}},
		{name: "partial team", team: "Barc", wantNames: []string{"LEWANDOWSKI", "PEDRI", "GAVI"}},
		{name: "unknown team", team: "Atletico", wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepository)
			repo.On("ListPlayers", mock.Anything).Return(fixturePlayers, nil).Once()

			got, err := usecase.NewSearchCatalogUseCase(repo, testLogger()).ListPlayers(ctx, tt.team)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			repo.AssertExpectations(t)
		})
	}
}

func TestSearchCatalogUseCase_Idempotent(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("ListProducts", mock.Anything).Return([]domain.CatalogProduct{realMadridJersey, barcaJersey}, nil)
	repo.On("ListPlayers", mock.Anything).Return(fixturePlayers, nil)
	uc := usecase.NewSearchCatalogUseCase(repo, testLogger())
	ctx := context.Background()

	encode := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return string(b)
	}

	first, err := uc.SearchJerseys(ctx, "jersey")
	require.NoError(t, err)
	second, err := uc.SearchJerseys(ctx, "jersey")
	require.NoError(t, err)
	assert.Equal(t, encode(first), encode(second))

	p1, err := uc.ListPlayers(ctx, "real")
	require.NoError(t, err)
	p2, err := uc.ListPlayers(ctx, "real")
	require.NoError(t, err)
	assert.Equal(t, encode(p1), encode(p2))
}

func TestSearchCatalogUseCase_RepositoryError(t *testing.T) {
	repoErr := errors.New("repository error")
	repo := new(MockCatalogRepository)
	repo.On("ListProducts", mock.Anything).Return(nil, repoErr).Once()
	repo.On("ListPlayers", mock.Anything).Return(nil, repoErr).Once()
	uc := usecase.NewSearchCatalogUseCase(repo, testLogger())

	products, err := uc.SearchJerseys(context.Background(), "x")
	assert.Nil(t, products)
	assert.EqualError(t, err, "failed to list products from repository: repository error")

	players, err := uc.ListPlayers(context.Background(), "x")
	assert.Nil(t, players)
	assert.EqualError(t, err, "failed to list players from repository: repository error")
	repo.AssertExpectations(t)
}
