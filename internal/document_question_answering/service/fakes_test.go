package service

import (
	"context"
	"errors"
)

// fakeEmbedder returns a fixed vector unless fn overrides it, and counts
// calls so tests can assert how often the collaborator was reached.
type fakeEmbedder struct {
	calls int
	fn    func(text string) ([]float64, error)
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls++
	if f.fn != nil {
		return f.fn(text)
	}
	return []float64{1, 0, 0}, nil
}

// fakeGenerator plays back scripted outputs in order and records the prompts
// it received.
type fakeGenerator struct {
	calls       int
	outputs     []string
	err         error
	userPrompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, _, userPrompt string) (string, error) {
	f.calls++
	f.userPrompts = append(f.userPrompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.outputs) == 0 {
		return "", errors.New("fakeGenerator: no scripted output")
	}
	i := f.calls - 1
	if i >= len(f.outputs) {
		i = len(f.outputs) - 1
	}
	return f.outputs[i], nil
}
