package domain

import "slices"

// Tool names exposed by the server.
const (
	ToolAddCustomizedJersey = "add_customized_jersey_to_cart"
	ToolSearchJerseys       = "search_mock_jerseys"
	ToolPlayerList          = "get_player_list"
)

// Tool argument names. They are shared by the tool definitions and the argument decoders.
const (
	ArgJerseyVariantID = "jerseyVariantId"
	ArgCompetition     = "competition"
	ArgCustomName      = "customName"
	ArgCustomNumber    = "customNumber"
	ArgQuery           = "query"
	ArgTeam            = "team"
)

// Tool describes a callable operation for discovery by an MCP client.
type Tool struct {
	// Name MUST be unique within the MCP server.
	Name string `json:"name"`

	// Description tells the model when to use the tool.
	Description string `json:"description"`

	// InputSchema defines the argument object the tool expects, in JSON Schema form.
	InputSchema JSONSchemaProps `json:"input_schema"`
}

// JSONSchemaProps is the subset of JSON Schema the tool definitions need.
type JSONSchemaProps struct {
	Type        string                     `json:"type"` // "object", "string", "number", ...
	Description string                     `json:"description,omitempty"`
	Properties  map[string]JSONSchemaProps `json:"properties,omitempty"`
	Required    []string                   `json:"required,omitempty"`
	Enum        []string                   `json:"enum,omitempty"`
}

// PropertyNames returns the property names in a stable order: required first, then the rest sorted.
func (s JSONSchemaProps) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, r := range s.Required {
		if _, ok := s.Properties[r]; ok && !seen[r] {
			names = append(names, r)
			seen[r] = true
		}
	}
	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}
