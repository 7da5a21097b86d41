package domain

import "encoding/json"

// ContentTypeText is the only content type produced by the tools.
const ContentTypeText = "text"

// Content is a single item in a tool response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResponse is the uniform envelope delivered to tool-invoking callers.
// Exactly one of Content or Error is set; callers check Error first.
type ToolResponse struct {
	Content []Content        `json:"content,omitempty"`
	Error   *ValidationError `json:"error,omitempty"`
}

// TextResponse wraps a payload as JSON text content.
func TextResponse(payload any) (ToolResponse, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return ToolResponse{}, err
	}
	return ToolResponse{Content: []Content{{Type: ContentTypeText, Text: string(b)}}}, nil
}

// ErrorResponse wraps a domain error. It is not wrapped in text content.
func ErrorResponse(verr *ValidationError) ToolResponse {
	return ToolResponse{Error: verr}
}

// SearchPayload is the search_mock_jerseys success payload.
type SearchPayload struct {
	Products []ProductSummary `json:"products"`
}

// PlayersPayload is the get_player_list success payload.
type PlayersPayload struct {
	Players []Player `json:"players"`
}
