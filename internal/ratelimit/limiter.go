// Package ratelimit implements a per-client sliding-log admission counter.
// Unlike a token bucket there is no pre-allocated quota: every admitted
// request is logged with its timestamp and a request is rejected when the
// trailing window already holds the configured number of entries.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks admitted request timestamps per client identity. It is the
// only cross-request shared mutable state in the process, so all access is
// serialized behind a single mutex.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string][]time.Time
}

// New creates a Limiter admitting at most limit requests per client within
// the trailing window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		clients: make(map[string][]time.Time),
	}
}

// Admit reports whether a request from clientID at time now is allowed.
// Expired timestamps are dropped first; rejected requests are not recorded,
// so a client hammering the endpoint does not extend its own penalty.
func (l *Limiter) Admit(clientID string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	log := l.clients[clientID]

	kept := log[:0]
	for _, ts := range log {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.clients[clientID] = kept
		return false
	}

	l.clients[clientID] = append(kept, now)
	return true
}

// Count returns the number of unexpired entries for clientID.
func (l *Limiter) Count(clientID string, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	n := 0
	for _, ts := range l.clients[clientID] {
		if ts.After(cutoff) {
			n++
		}
	}
	return n
}

// Sweep removes clients whose newest timestamp has left the window and
// returns how many were evicted. Intended to run on a background ticker so
// the map stays bounded under many distinct client addresses.
func (l *Limiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	evicted := 0
	for id, log := range l.clients {
		if len(log) == 0 || !log[len(log)-1].After(cutoff) {
			delete(l.clients, id)
			evicted++
		}
	}
	return evicted
}

// Clients returns the number of tracked client identities.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
