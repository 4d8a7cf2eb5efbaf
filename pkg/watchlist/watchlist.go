// Package watchlist implements the in-memory symbol watchlist.
package watchlist

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Entry is one watched symbol with its alert thresholds
type Entry struct {
	Symbol  string
	Low     float64
	High    float64
	AddedAt time.Time
}

// Store holds watchlist entries in insertion order.
// It is safe for concurrent use by the agent loop and the background monitor;
// callers must not hold the lock across network calls, so all methods copy.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// NewStore creates an empty watchlist store
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
	}
}

// Normalize canonicalizes a ticker symbol (trimmed, upper-cased)
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Add creates or overwrites the entry for symbol and returns a confirmation.
// Re-adding a symbol keeps its original position in the listing order.
// Low > high is accepted as-is; thresholds are the caller's business.
func (s *Store) Add(symbol string, low, high float64) string {
	symbol = Normalize(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[symbol]; !exists {
		s.order = append(s.order, symbol)
	}
	s.entries[symbol] = &Entry{
		Symbol:  symbol,
		Low:     low,
		High:    high,
		AddedAt: time.Now(),
	}

	return fmt.Sprintf("Added %s to watchlist: Low=%g, High=%g", symbol, low, high)
}

// Remove deletes the entry for symbol. Absence is a normal outcome and
// produces a not-found message rather than an error.
func (s *Store) Remove(symbol string) string {
	symbol = Normalize(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[symbol]; !exists {
		return fmt.Sprintf("%s not found in watchlist", symbol)
	}

	delete(s.entries, symbol)
	for i, sym := range s.order {
		if sym == symbol {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return fmt.Sprintf("Removed %s from watchlist", symbol)
}

// Render returns the watchlist as display text, one line per entry in
// insertion order
func (s *Store) Render() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return "Watchlist is empty"
	}

	var sb strings.Builder
	sb.WriteString("Current Watchlist:")
	for _, sym := range s.order {
		e := s.entries[sym]
		sb.WriteString(fmt.Sprintf("\n- %s: Low=%g, High=%g", e.Symbol, e.Low, e.High))
	}
	return sb.String()
}

// Snapshot returns a copy of all entries in insertion order
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0, len(s.order))
	for _, sym := range s.order {
		result = append(result, *s.entries[sym])
	}
	return result
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
