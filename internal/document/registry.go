package document

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/docquote/internal/domain"
)

// Registry implements the PageCounterRegistry interface.
type Registry struct {
	mu                sync.RWMutex
	counters          map[string]domain.PageCounter
	contentTypeToName map[string]string
}

// NewRegistry creates a new page counter registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:                sync.RWMutex{},
		counters:          make(map[string]domain.PageCounter),
		contentTypeToName: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with the PDF and image counters registered.
func NewDefaultRegistry() (*Registry, error) {
	ctx := context.Background()
	reg := NewRegistry()

	for _, counter := range []domain.PageCounter{NewPDFCounter(), NewImageCounter()} {
		if err := reg.Register(ctx, counter); err != nil {
			return nil, fmt.Errorf("failed to register %s counter: %w", counter.Name(), err)
		}
	}

	return reg, nil
}

// Register adds a counter to the registry.
func (r *Registry) Register(_ context.Context, counter domain.PageCounter) error {
	if counter == nil {
		return errors.New("counter cannot be nil")
	}

	name := counter.Name()
	if name == "" {
		return errors.New("counter name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.counters[name]; exists {
		return fmt.Errorf("counter %s already registered", name)
	}

	contentTypes := counter.ContentTypes()
	for _, contentType := range contentTypes {
		if owner, exists := r.contentTypeToName[contentType]; exists {
			return fmt.Errorf("content type %s already handled by %s", contentType, owner)
		}
	}

	r.counters[name] = counter
	for _, contentType := range contentTypes {
		r.contentTypeToName[contentType] = name
	}

	return nil
}

// ForContentType retrieves the counter for a MIME type.
func (r *Registry) ForContentType(_ context.Context, contentType string) (domain.PageCounter, error) {
	if contentType == "" {
		return nil, errors.New("content type cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, exists := r.contentTypeToName[contentType]
	if !exists {
		return nil, fmt.Errorf("no counter found for content type: %s", contentType)
	}

	return r.counters[name], nil
}

// ContentTypes lists every accepted MIME type in sorted order.
func (r *Registry) ContentTypes(_ context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.contentTypeToName))
	for contentType := range r.contentTypeToName {
		types = append(types, contentType)
	}
	sort.Strings(types)

	return types
}
