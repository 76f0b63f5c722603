package tools

// Definition describes the metadata the server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ContentPart represents a piece of data returned from a tool invocation.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Handler executes a tool using the provided arguments and returns content for the caller.
type Handler func(map[string]any) ([]ContentPart, error)

const (
	// CurrentWeatherName is the canonical name for the weather tool.
	CurrentWeatherName = "get_current_weather"
	// PlaceholderPostsName is the canonical name for the blog-post tool.
	PlaceholderPostsName = "get_placeholder_posts"
	// PesticideSeedInfoName is the canonical name for the agricultural reference tool.
	PesticideSeedInfoName = "get_pesticide_seed_info"
)

// Text wraps a string as a single text content part.
func Text(s string) []ContentPart {
	return []ContentPart{{Type: "text", Text: s}}
}
