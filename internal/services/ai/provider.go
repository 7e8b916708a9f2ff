package ai

import (
	"context"

	"github.com/flowday/flowday-api/internal/scheduler"
)

// Narrator turns an optimization report into a short human-readable summary.
// Implementations are optional; a nil Narrator means schedule responses carry
// only the raw reasoning strings.
type Narrator interface {
	// NarrateOptimization summarizes what the optimizer changed and why
	NarrateOptimization(ctx context.Context, report *scheduler.OptimizationReport) (string, error)
}

// ProviderFactory creates a narrator from provider-specific config
type ProviderFactory func(config map[string]string) (Narrator, error)

// ProviderRegistry stores available AI providers
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider gets a provider by name
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (Narrator, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}

	return factory(config)
}

// ErrProviderNotFound is returned when a provider is not found
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "AI provider not found: " + e.Name
}
