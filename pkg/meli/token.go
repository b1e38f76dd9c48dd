package meli

import "sync"

// TokenStore holds the process-wide bearer token. The token is replaced
// wholesale on every successful acquisition and read by each outbound
// item request. Safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// Current returns the current token, or "" when none is held.
func (s *TokenStore) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Replace swaps the current token.
func (s *TokenStore) Replace(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// HasToken reports whether a token is currently held.
func (s *TokenStore) HasToken() bool {
	return s.Current() != ""
}
