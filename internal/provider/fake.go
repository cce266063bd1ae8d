package provider

import (
	"context"
	"sync"
)

// FakeProvider replays scripted responses in order. Once the script runs out
// the last step repeats. It records every prompt it receives.
type FakeProvider struct {
	mu      sync.Mutex
	steps   []FakeStep
	prompts []Prompt
}

// FakeStep is one scripted completion outcome.
type FakeStep struct {
	Text string
	Err  error
}

func NewFake(responses ...string) *FakeProvider {
	f := &FakeProvider{}
	for _, r := range responses {
		f.steps = append(f.steps, FakeStep{Text: r})
	}
	return f
}

// NewFakeSteps builds a fake from explicit steps, including failures.
func NewFakeSteps(steps ...FakeStep) *FakeProvider {
	return &FakeProvider{steps: steps}
}

func (f *FakeProvider) Name() string { return "fake" }

func (f *FakeProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.prompts = append(f.prompts, prompt)
	if len(f.steps) == 0 {
		return "", nil
	}
	idx := len(f.prompts) - 1
	if idx >= len(f.steps) {
		idx = len(f.steps) - 1
	}
	step := f.steps[idx]
	return step.Text, step.Err
}

// Prompts returns a snapshot of the received prompts.
func (f *FakeProvider) Prompts() []Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Prompt(nil), f.prompts...)
}
