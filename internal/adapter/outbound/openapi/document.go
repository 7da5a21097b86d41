// Package openapi describes the HTTP tool surface as an OpenAPI 3 document.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/i2y/striker/internal/domain"
)

const openAPIVersion = "3.0.3"

// DocumentBuilder builds the OpenAPI document from tool definitions.
type DocumentBuilder struct {
	title   string
	version string
	logger  *slog.Logger
}

// NewDocumentBuilder creates a new DocumentBuilder.
func NewDocumentBuilder(title, version string, logger *slog.Logger) *DocumentBuilder {
	return &DocumentBuilder{
		title:   title,
		version: version,
		logger:  logger.With("component", "openapi_builder"),
	}
}

// Build generates one POST operation per tool plus the discovery, health and document
// endpoints, and validates the result.
func (b *DocumentBuilder) Build(ctx context.Context, tools []domain.Tool) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       b.title,
			Version:     b.version,
			Description: "Tool invocation surface. Each tool takes its argument object as the request body.",
		},
		Paths: openapi3.NewPaths(),
	}

	for _, tool := range tools {
		op := openapi3.NewOperation()
		op.OperationID = tool.Name
		op.Summary = tool.Description
		op.Tags = []string{"tools"}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(len(tool.InputSchema.Required) > 0).
				WithJSONSchema(ToSchema(tool.InputSchema)),
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("Tool result envelope.", contentEnvelopeSchema())),
			openapi3.WithStatus(http.StatusBadRequest, textResponse("A required argument is missing or has the wrong type.")),
			openapi3.WithStatus(http.StatusUnprocessableEntity, jsonResponse("Domain validation error.", errorEnvelopeSchema())),
			openapi3.WithStatus(http.StatusNotFound, textResponse("Unknown tool.")),
			openapi3.WithStatus(http.StatusInternalServerError, textResponse("Unexpected failure.")),
		)
		doc.Paths.Set("/tools/"+tool.Name, &openapi3.PathItem{Post: op})
	}

	list := openapi3.NewOperation()
	list.OperationID = "list_tools"
	list.Summary = "Lists the tool definitions."
	list.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("Tool definitions.", toolListSchema())),
	)
	doc.Paths.Set("/tools", &openapi3.PathItem{Get: list})

	health := openapi3.NewOperation()
	health.OperationID = "health"
	health.Summary = "Liveness check."
	health.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, textResponse("Service is up.")),
	)
	doc.Paths.Set("/health", &openapi3.PathItem{Get: health})

	spec := openapi3.NewOperation()
	spec.OperationID = "openapi_document"
	spec.Summary = "This document."
	spec.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("OpenAPI document.", openapi3.NewObjectSchema())),
		openapi3.WithStatus(http.StatusInternalServerError, textResponse("The document could not be built.")),
	)
	doc.Paths.Set("/openapi.json", &openapi3.PathItem{Get: spec})

	if err := doc.Validate(ctx); err != nil {
		b.logger.Error("Generated OpenAPI document is invalid.", slog.Any("error", err))
		return nil, fmt.Errorf("generated OpenAPI document is invalid: %w", err)
	}
	b.logger.Debug("Built OpenAPI document.", slog.Int("tools", len(tools)))
	return doc, nil
}

// JSON builds the document and encodes it.
func (b *DocumentBuilder) JSON(ctx context.Context, tools []domain.Tool) ([]byte, error) {
	doc, err := b.Build(ctx, tools)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// ToSchema converts a tool input schema into an OpenAPI schema.
func ToSchema(props domain.JSONSchemaProps) *openapi3.Schema {
	var s *openapi3.Schema
	switch props.Type {
	case "object":
		s = openapi3.NewObjectSchema()
		for _, name := range props.PropertyNames() {
			s.WithProperty(name, ToSchema(props.Properties[name]))
		}
		s.Required = append([]string(nil), props.Required...)
	case "number":
		s = openapi3.NewFloat64Schema()
	case "integer":
		s = openapi3.NewIntegerSchema()
	case "boolean":
		s = openapi3.NewBoolSchema()
	default:
		s = openapi3.NewStringSchema()
	}
	s.Description = props.Description
	for _, v := range props.Enum {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema)}
}

func textResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
}

func contentEnvelopeSchema() *openapi3.Schema {
	item := openapi3.NewObjectSchema().
		WithProperty("type", openapi3.NewStringSchema().WithEnum(domain.ContentTypeText)).
		WithProperty("text", openapi3.NewStringSchema())
	item.Required = []string{"type", "text"}

	s := openapi3.NewObjectSchema().WithProperty("content", openapi3.NewArraySchema().WithItems(item))
	s.Required = []string{"content"}
	return s
}

func errorEnvelopeSchema() *openapi3.Schema {
	inner := openapi3.NewObjectSchema().
		WithProperty("type", openapi3.NewStringSchema().WithEnum(domain.ValidationErrorType)).
		WithProperty("data", openapi3.NewStringSchema())
	inner.Required = []string{"type", "data"}

	s := openapi3.NewObjectSchema().WithProperty("error", inner)
	s.Required = []string{"error"}
	return s
}

func toolListSchema() *openapi3.Schema {
	tool := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("input_schema", openapi3.NewObjectSchema())
	return openapi3.NewObjectSchema().WithProperty("tools", openapi3.NewArraySchema().WithItems(tool))
}
