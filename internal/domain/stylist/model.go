package stylist

import "github.com/yanqian/vibecast/pkg/metrics"

// Advice is the generated style and activity commentary for one weather snapshot.
type Advice struct {
	VibeDescription        string   `json:"vibeDescription"`
	OutfitSuggestion       string   `json:"outfitSuggestion"`
	ActivityRecommendation string   `json:"activityRecommendation"`
	ColorPalette           []string `json:"colorPalette"`
	Emoji                  string   `json:"emoji"`
}

// PaletteSize is the number of colours every advice carries.
const PaletteSize = 3

// Fallback is served whenever the model call fails in any way.
func Fallback() Advice {
	return Advice{
		VibeDescription:        "The AI is meditating on the clouds right now.",
		OutfitSuggestion:       "Wear something comfortable and check back later.",
		ActivityRecommendation: "Relax and enjoy the moment.",
		ColorPalette:           []string{"#808080", "#A9A9A9", "#D3D3D3"},
		Emoji:                  "🤖",
	}
}

// Schema is a provider neutral subset of JSON schema used for structured output.
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	Required    []string
	Ordering    []string
	Items       *Schema
	MinItems    int
	MaxItems    int
}

// Schema types understood by the adapters.
const (
	TypeObject = "object"
	TypeString = "string"
	TypeArray  = "array"
)

// StructuredRequest asks a model for JSON matching Schema.
type StructuredRequest struct {
	Model           string
	SystemPrompt    string
	Prompt          string
	SchemaName      string
	Schema          *Schema
	Temperature     float32
	MaxOutputTokens int32
}

// StructuredReply carries the raw JSON text and reported token usage.
type StructuredReply struct {
	Text  string
	Usage metrics.TokenUsage
}

// Config wires runtime dependencies for the advice domain.
type Config struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	Prompt          string
}
