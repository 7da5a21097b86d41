package mcphttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/i2y/striker/internal/domain"
	"github.com/i2y/striker/internal/usecase"
)

// maxBodyBytes bounds tool argument bodies.
const maxBodyBytes = 1 << 20

// Handlers struct holds dependencies for the HTTP handlers.
type Handlers struct {
	serveToolsUseCase *usecase.ServeToolsUseCase
	invokeToolUseCase *usecase.InvokeToolUseCase
	openAPIDocumentFn func() ([]byte, error)
	logger            *slog.Logger
}

// NewHandlers creates a new Handlers struct.
// openAPIDocument may be nil, in which case /openapi.json is not served.
func NewHandlers(
	serveUC *usecase.ServeToolsUseCase,
	invokeUC *usecase.InvokeToolUseCase,
	openAPIDocument func() ([]byte, error),
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		serveToolsUseCase: serveUC,
		invokeToolUseCase: invokeUC,
		openAPIDocumentFn: openAPIDocument,
		logger:            logger.With("component", "mcphttp_handler"),
	}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /tools", h.handleListTools)
	mux.HandleFunc("POST /tools/{name}", h.handleInvokeTool)
	if h.openAPIDocumentFn != nil {
		mux.HandleFunc("GET /openapi.json", h.handleOpenAPI)
	}
}

// ListToolsResponse is the body of GET /tools.
type ListToolsResponse struct {
	Tools []domain.Tool `json:"tools"`
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// handleListTools implements GET /tools
func (h *Handlers) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools := h.serveToolsUseCase.Execute(r.Context())
	h.writeJSON(w, http.StatusOK, ListToolsResponse{Tools: tools})
}

// handleInvokeTool implements POST /tools/{name}
// The body is the tool's argument object; an empty body means no arguments.
func (h *Handlers) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	log := h.logger.With(slog.String("tool_name", name))
	defer r.Body.Close()

	args := map[string]any{}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("Failed to decode tool arguments", slog.Any("error", err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := h.invokeToolUseCase.Execute(r.Context(), name, args)
	switch {
	case errors.Is(err, usecase.ErrToolNotFound):
		http.Error(w, fmt.Sprintf("Unknown tool: %s", name), http.StatusNotFound)
		return
	case errors.Is(err, usecase.ErrMissingField), errors.Is(err, usecase.ErrInvalidArgument):
		log.Warn("Rejected malformed tool call", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Error("Tool call failed", slog.Any("error", err))
		http.Error(w, "Tool call failed", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if resp.Error != nil {
		status = http.StatusUnprocessableEntity
	}
	h.writeJSON(w, status, resp)
}

// handleOpenAPI implements GET /openapi.json
func (h *Handlers) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := h.openAPIDocumentFn()
	if err != nil {
		h.logger.Error("Failed to build OpenAPI document", slog.Any("error", err))
		http.Error(w, "Failed to build OpenAPI document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", slog.Any("error", err))
	}
}
