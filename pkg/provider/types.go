// Package provider defines the language model interface and common types
package provider

import "context"

// Request is a single blocking completion request. The agent loop sends one
// request per iteration; no streaming is involved.
type Request struct {
	Model  string
	Prompt string
}

// Provider is the interface all model providers implement.
// Generate errors are infrastructure failures (transport, auth, quota) and
// abort the agent run; domain-level problems never originate here.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate performs one blocking completion and returns the raw text
	Generate(ctx context.Context, req *Request) (string, error)
}

// DefaultModel is used when neither flag nor environment names a model
const DefaultModel = "gemini-2.0-flash"
