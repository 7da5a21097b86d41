// Package fixture loads the static catalog and bundle configuration the server runs on.
package fixture

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/i2y/striker/internal/adapter/outbound/github"
	"github.com/i2y/striker/internal/domain"
)

//go:embed default.yaml
var defaultDocument []byte

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Catalog is the product and player part of a fixture document.
type Catalog struct {
	Jerseys []domain.CatalogProduct `yaml:"jerseys"`
	Players []domain.Player         `yaml:"players"`
}

// Fixture is a complete fixture document.
type Fixture struct {
	Catalog Catalog             `yaml:"catalog"`
	Bundle  domain.BundleConfig `yaml:"bundle"`
}

// Default returns the built-in fixture.
func Default() (*Fixture, error) {
	return Parse(defaultDocument)
}

// Load reads a fixture from path, which may be a local file or a github:// URL.
// An empty path selects the built-in fixture.
func Load(ctx context.Context, path string, logger *slog.Logger) (*Fixture, error) {
	log := logger.With("component", "fixture_loader")
	if path == "" {
		log.Info("Using built-in fixture.")
		return Default()
	}

	log = log.With(slog.String("path", path))
	content, err := github.ReadFile(ctx, path)
	if err != nil {
		log.Error("Failed to read fixture.", slog.Any("error", err))
		return nil, err
	}
	f, err := Parse(content)
	if err != nil {
		log.Error("Failed to parse fixture.", slog.Any("error", err))
		return nil, fmt.Errorf("fixture '%s': %w", path, err)
	}
	log.Info("Loaded fixture.",
		slog.Int("jerseys", len(f.Catalog.Jerseys)),
		slog.Int("players", len(f.Catalog.Players)),
		slog.Any("competitions", f.Bundle.Competitions()),
	)
	return f, nil
}

// Parse decodes and validates a YAML fixture document.
func Parse(content []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the invariants the use cases rely on.
func (f *Fixture) Validate() error {
	var errs []error
	for i, p := range f.Catalog.Jerseys {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("jersey %d: missing id", i))
		}
		if len(p.Variants) == 0 {
			errs = append(errs, fmt.Errorf("jersey %q: at least one variant is required", p.ID))
		}
		for _, v := range p.Variants {
			if v.ID == "" {
				errs = append(errs, fmt.Errorf("jersey %q: variant with missing id", p.ID))
			}
			if _, err := decimal.NewFromString(v.Price); err != nil {
				errs = append(errs, fmt.Errorf("variant %q: invalid price %q", v.ID, v.Price))
			}
			if !currencyCode.MatchString(v.Currency) {
				errs = append(errs, fmt.Errorf("variant %q: invalid currency %q", v.ID, v.Currency))
			}
		}
	}

	b := f.Bundle
	if len(b.Badges) == 0 {
		errs = append(errs, errors.New("bundle: at least one competition badge is required"))
	}
	seen := make(map[string]bool, len(b.Badges))
	for i, badge := range b.Badges {
		switch {
		case badge.Key == "":
			errs = append(errs, fmt.Errorf("badge %d: missing key", i))
		case seen[badge.Key]:
			errs = append(errs, fmt.Errorf("badge %q: duplicate key", badge.Key))
		}
		seen[badge.Key] = true
		if badge.VariantID == "" {
			errs = append(errs, fmt.Errorf("badge %q: missing variant_id", badge.Key))
		}
	}
	if b.CustomizationService.VariantID == "" {
		errs = append(errs, errors.New("bundle: customization_service.variant_id is required"))
	}
	if b.Attributes.Name == "" || b.Attributes.Number == "" {
		errs = append(errs, errors.New("bundle: attributes.name and attributes.number are required"))
	} else if b.Attributes.Name == b.Attributes.Number {
		errs = append(errs, errors.New("bundle: attributes.name and attributes.number must differ"))
	}
	return errors.Join(errs...)
}
