package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// InMemoryQuoteStore stores quotes in memory.
type InMemoryQuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]Quote
	now    func() time.Time
}

// NewInMemoryQuoteStore creates a new in-memory quote store.
func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		mu:     sync.RWMutex{},
		quotes: make(map[string]Quote),
		now:    time.Now,
	}
}

// Save stores a copy of the quote. The quote's ExpiresAt is set from ttl.
func (s *InMemoryQuoteStore) Save(_ context.Context, quote *Quote, ttl time.Duration) error {
	if quote == nil {
		return errors.New("quote cannot be nil")
	}

	if quote.ID == "" {
		return errors.New("quote ID cannot be empty")
	}

	if ttl <= 0 {
		return fmt.Errorf("invalid ttl: %s", ttl)
	}

	stored := *quote
	stored.ExpiresAt = s.now().Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes[quote.ID] = stored
	return nil
}

// Get retrieves a quote by ID.
func (s *InMemoryQuoteStore) Get(_ context.Context, id string) (*Quote, error) {
	s.mu.RLock()
	quote, exists := s.quotes[id]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	if quote.Expired(s.now()) {
		s.mu.Lock()
		delete(s.quotes, id)
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	return &quote, nil
}

// UpdateStatus moves a stored quote from one status to another.
func (s *InMemoryQuoteStore) UpdateStatus(_ context.Context, id string, from, to QuoteStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quote, exists := s.quotes[id]
	if !exists || quote.Expired(s.now()) {
		return fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	if quote.Status != from {
		return fmt.Errorf("%w: %s is %s, not %s", ErrQuoteStatusChanged, id, quote.Status, from)
	}

	quote.Status = to
	s.quotes[id] = quote
	return nil
}
