package main

import "sync"

// Snapshot is a point-in-time copy of the server counters.
type Snapshot struct {
	RequestCount       uint64
	TotalBytesReceived uint64
	TotalBytesSent     uint64
}

// StatsRegistry holds the counters shared by every connection handler.
// All reads and writes of the triple go through mu.
type StatsRegistry struct {
	mu    sync.Mutex
	stats Snapshot
}

func NewStatsRegistry() *StatsRegistry {
	return &StatsRegistry{}
}

// RecordRequest counts one incoming request of n bytes.
func (r *StatsRegistry) RecordRequest(n uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.RequestCount++
	r.stats.TotalBytesReceived += n
}

func (r *StatsRegistry) AddBytesSent(n uint64) {
	r.mu.Lock()
	r.stats.TotalBytesSent += n
	r.mu.Unlock()
}

// Snapshot returns a copy taken under the same lock as the mutators,
// so the three fields always belong to one instant.
func (r *StatsRegistry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
