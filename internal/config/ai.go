package config

// AIConfig configures the Gemini-backed survey text conversion
type AIConfig struct {
	APIKey    string `yaml:"-" json:"-"` // Never serialize
	Model     string `yaml:"model" json:"model"`
	TimeoutMS int    `yaml:"timeout_ms" json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Model:     "gemini-2.0-flash",
		TimeoutMS: 60000, // conversion of a long questionnaire is slow
	}
}

func (c *AIConfig) applyEnv() {
	c.APIKey = getEnv("GOOGLE_GEMINI_API_KEY", getEnv("GEMINI_API_KEY", c.APIKey))
	c.Model = getEnv("GEMINI_MODEL_CONVERT", c.Model)
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}
