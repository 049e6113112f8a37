// Package session owns the auth token: a single in-memory copy mirrored to
// durable storage. Every authenticated request reads it from here, so the
// store is the one piece of shared state in the client.
package session

import (
	"context"
	"strings"
	"sync"
)

// Storage is the durable side of the store. Read returns an empty string,
// not an error, when no token has been saved.
type Storage interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// Store holds the current token. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	token   string
	loaded  bool
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load primes the in-memory copy from durable storage. Call once at
// startup. A storage failure leaves the store empty: the client falls open
// to the logged-out state rather than failing.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, err := s.storage.Read(ctx)
	if err != nil {
		s.token = ""
		s.loaded = true
		return err
	}
	s.token = strings.TrimSpace(token)
	s.loaded = true
	return nil
}

// Token returns the current token, reading durable storage on a cold start
// before Load has run. Any failure reads as "no token".
func (s *Store) Token(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" || s.loaded {
		return s.token
	}
	token, err := s.storage.Read(ctx)
	if err != nil {
		return ""
	}
	s.token = strings.TrimSpace(token)
	s.loaded = true
	return s.token
}

// Set stores a token in memory and durable storage. An empty token clears
// both, which is the logout path.
func (s *Store) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
	s.loaded = true
	if s.token == "" {
		return s.storage.Delete(ctx)
	}
	return s.storage.Write(ctx, s.token)
}

// Clear removes the token from memory and durable storage.
func (s *Store) Clear(ctx context.Context) error {
	return s.Set(ctx, "")
}
