// Package llm provides model configuration and client abstractions over the hosted
// generative models used for resume extraction and summary writing.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short free-text generation such as summaries
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction from documents
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or messy documents that need stronger reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Gemini API, authenticated with an API key
	ProviderGemini Provider = "gemini"
	// ProviderVertex is Gemini served through Vertex AI, authenticated with
	// application default credentials
	ProviderVertex Provider = "vertex"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Project and Location are only used by ProviderVertex.
	Project  string
	Location string
}

// DefaultConfig returns the default configuration (Gemini API)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

func defaultModels() map[ModelTier]string {
	return map[ModelTier]string{
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	}
}

// DefaultGeminiConfig returns the default Gemini API configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models:   defaultModels(),
	}
}

// DefaultVertexConfig returns the default Vertex AI configuration for a project and region
func DefaultVertexConfig(project, location string) *Config {
	if location == "" {
		location = "us-central1"
	}
	return &Config{
		Provider: ProviderVertex,
		Models:   defaultModels(),
		Project:  project,
		Location: location,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
