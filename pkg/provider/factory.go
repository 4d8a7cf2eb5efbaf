package provider

import "strings"

// Type represents a provider type
type Type string

const (
	TypeGemini Type = "gemini"
	TypeOpenAI Type = "openai"
)

// DetectFromModel determines the provider from a model name
func DetectFromModel(model string) Type {
	model = strings.ToLower(model)

	if strings.HasPrefix(model, "gpt") ||
		strings.HasPrefix(model, "o1") ||
		strings.HasPrefix(model, "o3") ||
		strings.HasPrefix(model, "o4") {
		return TypeOpenAI
	}

	// Gemini is the default family
	return TypeGemini
}
