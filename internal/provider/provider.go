// Package provider wraps the LLM completion backends used by the chat turn
// and builds and parses the JSON contract exchanged with them.
package provider

import (
	"context"
	"errors"
)

// ErrNoProvider is returned by New when no completion backend is configured.
var ErrNoProvider = errors.New("no completion provider configured")

// Prompt is a single completion request.
type Prompt struct {
	System string
	User   string
}

// Completer returns the raw text the model produced for a prompt.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Options selects and configures a backend.
type Options struct {
	Kind        string
	APIKey      string
	Model       string
	Temperature float32
}

// New builds the configured backend. Kind "none" or an empty kind yields
// ErrNoProvider so callers can run heuristics only.
func New(ctx context.Context, opts Options) (Completer, error) {
	switch opts.Kind {
	case "", "none":
		return nil, ErrNoProvider
	case "gemini":
		g, err := NewGemini(ctx, opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, errors.New("unknown completion provider " + opts.Kind)
	}
}
