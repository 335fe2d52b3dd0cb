package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsRegistryStartsAtZero(t *testing.T) {
	assert.Equal(t, Snapshot{}, NewStatsRegistry().Snapshot())
}

func TestStatsRegistryConcurrentUpdates(t *testing.T) {
	const (
		workers    = 32
		iterations = 1000
	)

	registry := NewStatsRegistry()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				registry.RecordRequest(10)
				registry.AddBytesSent(3)
				registry.AddBytesSent(4)
				_ = registry.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Snapshot{
		RequestCount:       workers * iterations,
		TotalBytesReceived: workers * iterations * 10,
		TotalBytesSent:     workers * iterations * 7,
	}, registry.Snapshot())
}

func TestStatsSnapshotIsACopy(t *testing.T) {
	registry := NewStatsRegistry()
	registry.RecordRequest(5)

	snap := registry.Snapshot()
	registry.RecordRequest(5)

	assert.Equal(t, uint64(1), snap.RequestCount)
	assert.Equal(t, uint64(2), registry.Snapshot().RequestCount)
}
