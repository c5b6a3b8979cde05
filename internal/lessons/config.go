package lessons

// MaxInputChars caps how much material text is sent to the summarizer.
const MaxInputChars = 15000

// Config holds summary generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for summary generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.5,
	}
}
