package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/striker/internal/domain"
)

const instrumentationName = "github.com/i2y/striker/internal/usecase"

// Jersey number bounds, inclusive.
const (
	MinJerseyNumber = 0
	MaxJerseyNumber = 99
)

// BundleSuccessMessage is the confirmation shown after a bundle is planned.
const BundleSuccessMessage = "Hat-Trick! Customized Jersey added to cart successfully."

// InvalidNumberMessage is the domain error for a number outside [0, 99] or not a number at all.
var InvalidNumberMessage = fmt.Sprintf("Jersey number must be between %d and %d.", MinJerseyNumber, MaxJerseyNumber)

// BundleResult is the outcome of a well-formed bundle request.
// Exactly one of Plan or Rejection is set.
type BundleResult struct {
	Plan      *domain.BundlePlan
	Rejection *domain.ValidationError
}

// Rejected reports whether the request failed domain validation.
func (r BundleResult) Rejected() bool {
	return r.Rejection != nil
}

// ComposeBundleUseCase validates a customization request and plans the three cart lines
// (jersey, competition badge, customization service). It never mutates a cart.
type ComposeBundleUseCase struct {
	config   domain.BundleConfig
	logger   *slog.Logger
	tracer   trace.Tracer
	outcomes metric.Int64Counter
}

// NewComposeBundleUseCase creates a new ComposeBundleUseCase over the given bundle configuration.
func NewComposeBundleUseCase(config domain.BundleConfig, logger *slog.Logger) *ComposeBundleUseCase {
	logger = logger.With("usecase", "ComposeBundle")
	outcomes, err := otel.Meter(instrumentationName).Int64Counter(
		"striker.bundle.compositions",
		metric.WithDescription("Bundle composition attempts by outcome."),
	)
	if err != nil {
		logger.Warn("Failed to create bundle outcome counter, metrics disabled.", slog.Any("error", err))
		outcomes = noop.Int64Counter{}
	}
	return &ComposeBundleUseCase{
		config:   config,
		logger:   logger,
		tracer:   otel.Tracer(instrumentationName),
		outcomes: outcomes,
	}
}

// Execute runs validation, resolution and composition.
// A non-nil error is a structural fault (see FieldError); domain errors come back in BundleResult.
func (uc *ComposeBundleUseCase) Execute(ctx context.Context, req domain.BundleRequest) (BundleResult, error) {
	ctx, span := uc.tracer.Start(ctx, "ComposeBundle", trace.WithAttributes(
		attribute.String("bundle.competition", req.Competition),
		attribute.String("bundle.jersey_variant_id", req.JerseyVariantID),
	))
	defer span.End()

	uc.logger.Info("Executing Hat-Trick pattern",
		slog.String("jersey_variant_id", req.JerseyVariantID),
		slog.String("competition", req.Competition),
		slog.String("custom_name", req.CustomName),
		slog.Any("custom_number", req.CustomNumber),
	)

	if err := checkRequired(req); err != nil {
		uc.logger.Warn("Rejected malformed bundle request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.record(ctx, "fault")
		return BundleResult{}, err
	}

	number, ok := parseJerseyNumber(req.CustomNumber)
	if !ok {
		return uc.reject(ctx, span, domain.NewValidationError(InvalidNumberMessage)), nil
	}

	badge, ok := uc.config.Badge(req.Competition)
	if !ok {
		return uc.reject(ctx, span, uc.config.InvalidCompetition(req.Competition)), nil
	}
	service := uc.config.CustomizationService

	lines := []domain.CartLine{
		{MerchandiseID: req.JerseyVariantID, Quantity: 1},
		{MerchandiseID: badge.VariantID, Quantity: 1},
		{
			MerchandiseID: service.VariantID,
			Quantity:      1,
			Attributes: []domain.CartAttribute{
				{Key: uc.config.Attributes.Name, Value: req.CustomName},
				{Key: uc.config.Attributes.Number, Value: strconv.Itoa(number)},
			},
		},
	}

	plan := &domain.BundlePlan{
		Success: true,
		Message: BundleSuccessMessage,
		Details: domain.BundleDetails{
			Jersey:        req.JerseyVariantID,
			Badge:         badge.Name,
			Customization: fmt.Sprintf("%s #%d", req.CustomName, number),
			ItemsAdded:    domain.BundleItemCount,
		},
		CartLines: lines,
	}

	uc.logger.Info("Bundle planned", slog.String("badge", badge.Name), slog.Int("items", len(lines)))
	uc.record(ctx, "success")
	return BundleResult{Plan: plan}, nil
}

func (uc *ComposeBundleUseCase) reject(ctx context.Context, span trace.Span, verr *domain.ValidationError) BundleResult {
	uc.logger.Info("Bundle request failed validation", slog.String("reason", verr.Data))
	span.SetAttributes(attribute.String("bundle.rejection", verr.Data))
	uc.record(ctx, "rejected")
	return BundleResult{Rejection: verr}
}

func (uc *ComposeBundleUseCase) record(ctx context.Context, outcome string) {
	uc.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// checkRequired enforces presence of every field, in reporting order.
func checkRequired(req domain.BundleRequest) error {
	switch {
	case req.JerseyVariantID == "":
		return missingField(domain.ArgJerseyVariantID, "Jersey Variant ID")
	case req.Competition == "":
		return missingField(domain.ArgCompetition, "Competition")
	case req.CustomName == "":
		return missingField(domain.ArgCustomName, "Custom Name")
	case req.CustomNumber == nil:
		return missingField(domain.ArgCustomNumber, "Custom Number")
	}
	return nil
}

// parseJerseyNumber coerces a number-like value into a jersey number.
// Integral numbers and base-10 integer strings are accepted; fractions, other types
// and values outside [MinJerseyNumber, MaxJerseyNumber] are not.
func parseJerseyNumber(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case float32:
		return parseJerseyNumber(float64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, false
		}
		if x < MinJerseyNumber || x > MaxJerseyNumber {
			return 0, false
		}
		n = int64(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			n = i
			break
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return parseJerseyNumber(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < MinJerseyNumber || n > MaxJerseyNumber {
		return 0, false
	}
	return int(n), true
}
