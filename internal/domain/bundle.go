package domain

import "strings"

// ValidationErrorType is the envelope tag for domain-semantic failures.
const ValidationErrorType = "validation_error"

// BundleItemCount is the number of cart lines in every successful bundle.
const BundleItemCount = 3

// CompetitionBadge maps a competition code to the badge product applied to the jersey.
type CompetitionBadge struct {
	Key       string `yaml:"key"`
	Handle    string `yaml:"handle"`
	VariantID string `yaml:"variant_id"`
	Name      string `yaml:"name"`
}

// CustomizationService references the name/number printing service product.
type CustomizationService struct {
	Handle    string `yaml:"handle"`
	VariantID string `yaml:"variant_id"`
	ProductID string `yaml:"product_id"`
}

// AttributeKeys are the cart line attribute keys used to tag customization text.
type AttributeKeys struct {
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
}

// BundleConfig holds everything needed to resolve a bundle request.
// Badges keep their declaration order; the set of valid competition codes is exactly their keys.
type BundleConfig struct {
	Badges               []CompetitionBadge   `yaml:"badges"`
	CustomizationService CustomizationService `yaml:"customization_service"`
	Attributes           AttributeKeys        `yaml:"attributes"`
}

// Badge looks up the badge configured for a competition code.
func (c BundleConfig) Badge(competition string) (CompetitionBadge, bool) {
	for _, b := range c.Badges {
		if b.Key == competition {
			return b, true
		}
	}
	return CompetitionBadge{}, false
}

// Competitions returns the configured competition codes in declaration order.
func (c BundleConfig) Competitions() []string {
	keys := make([]string, 0, len(c.Badges))
	for _, b := range c.Badges {
		keys = append(keys, b.Key)
	}
	return keys
}

// BundleRequest is the input of the add-to-cart operation.
// CustomNumber is number-like (int, float64, json.Number or string); nil means absent.
type BundleRequest struct {
	JerseyVariantID string
	Competition     string
	CustomName      string
	CustomNumber    any
}

// CartAttribute is a key/value customization tag on a cart line.
type CartAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CartLine is a planned addition to a cart. It is never executed by this service.
type CartLine struct {
	MerchandiseID string          `json:"merchandiseId"`
	Quantity      int             `json:"quantity"`
	Attributes    []CartAttribute `json:"attributes,omitempty"`
}

// BundleDetails is the human-facing summary of a composed bundle.
type BundleDetails struct {
	Jersey        string `json:"jersey"`
	Badge         string `json:"badge"`
	Customization string `json:"customization"`
	ItemsAdded    int    `json:"items_added"`
}

// BundlePlan is the success payload of a bundle composition.
type BundlePlan struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Details   BundleDetails `json:"details"`
	CartLines []CartLine    `json:"cart_lines"`
}

// ValidationError is a recoverable business error returned as data.
type ValidationError struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// NewValidationError builds a validation_error with the given user-facing message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Type: ValidationErrorType, Data: msg}
}

// supportedList renders codes as "A, B".
func supportedList(codes []string) string {
	return strings.Join(codes, ", ")
}

// InvalidCompetition builds the domain error for an unknown competition code.
func (c BundleConfig) InvalidCompetition(competition string) *ValidationError {
	return NewValidationError("Invalid competition: " + competition + ". Supported: " + supportedList(c.Competitions()))
}
