package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	domainRepos "github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

// Factory builds a backend from its configuration section.
type Factory[C comparable, T any] func(ctx context.Context, cfg C) (T, error)

// FactoryRegistry maps backend types (e.g. "dynamodb") to their factories. Built
// instances are cached per configuration so a long-running server reuses clients.
type FactoryRegistry[C comparable, T any] struct {
	mu        sync.Mutex
	factories map[string]Factory[C, T]
	instances map[string]map[C]T
}

// NewFactoryRegistry creates an empty registry.
func NewFactoryRegistry[C comparable, T any]() *FactoryRegistry[C, T] {
	return &FactoryRegistry[C, T]{
		factories: make(map[string]Factory[C, T]),
		instances: make(map[string]map[C]T),
	}
}

// Register adds a factory under the given backend type.
func (r *FactoryRegistry[C, T]) Register(name string, factory Factory[C, T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
	delete(r.instances, name)
}

// Get returns the backend registered under name, building it on first use.
func (r *FactoryRegistry[C, T]) Get(ctx context.Context, name string, cfg C) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	factory, ok := r.factories[name]
	if !ok {
		return zero, fmt.Errorf("unknown backend type: %q", name)
	}

	if cached, found := r.instances[name][cfg]; found {
		return cached, nil
	}

	instance, err := factory(ctx, cfg)
	if err != nil {
		return zero, fmt.Errorf("failed to initialize %q: %w", name, err)
	}
	if r.instances[name] == nil {
		r.instances[name] = make(map[C]T)
	}
	r.instances[name][cfg] = instance
	return instance, nil
}

// Names returns the registered backend types, sorted.
func (r *FactoryRegistry[C, T]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StoreRegistry resolves the aggregation store from store settings.
type StoreRegistry = FactoryRegistry[entities.StoreConfig, domainRepos.FindingsRepository]

// ModelRegistry resolves the text-generation model from model settings.
type ModelRegistry = FactoryRegistry[entities.ModelConfig, domainRepos.ModelRepository]

// ReviewRegistry resolves the pull-request host from review settings.
type ReviewRegistry = FactoryRegistry[entities.ReviewConfig, domainRepos.ReviewRepository]

// NewStoreRegistry creates an empty store registry.
func NewStoreRegistry() *StoreRegistry {
	return NewFactoryRegistry[entities.StoreConfig, domainRepos.FindingsRepository]()
}

// NewModelRegistry creates an empty model registry.
func NewModelRegistry() *ModelRegistry {
	return NewFactoryRegistry[entities.ModelConfig, domainRepos.ModelRepository]()
}

// NewReviewRegistry creates an empty review registry.
func NewReviewRegistry() *ReviewRegistry {
	return NewFactoryRegistry[entities.ReviewConfig, domainRepos.ReviewRepository]()
}
