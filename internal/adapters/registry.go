package adapters

import (
	"fmt"
	"sync"

	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/ports"
)

// ProviderRegistry maps platforms to their CatalogProvider implementations.
// It is safe for concurrent use.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[domain.Platform]ports.CatalogProvider
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[domain.Platform]ports.CatalogProvider),
	}
}

// Register adds a provider to the registry, keyed by its Name().
func (r *ProviderRegistry) Register(provider ports.CatalogProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// Get returns the provider for the given platform, or an error if not
// registered.
func (r *ProviderRegistry) Get(platform domain.Platform) (ports.CatalogProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
	return provider, nil
}

// Available returns the platforms of all registered providers.
func (r *ProviderRegistry) Available() []domain.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]domain.Platform, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
