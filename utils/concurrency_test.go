package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringSetNoDuplicates(t *testing.T) {
	s := NewStringSet()

	assert.True(t, s.Add("FL250001"), "first Add should return true")
	assert.False(t, s.Add("FL250001"), "second Add of same id should return false")
	assert.True(t, s.Contains("FL250001"))
	assert.False(t, s.Contains("FL250002"))
	assert.Equal(t, 1, s.Size())
}

func TestStringSetConcurrency(t *testing.T) {
	s := NewStringSet()
	var added int64

	pool := NewWorkerPool(10, 0)
	for i := 0; i < 100; i++ {
		pool.Submit(func() {
			if s.Add("same") {
				atomic.AddInt64(&added, 1)
			}
		})
	}
	pool.Wait()

	assert.EqualValues(t, 1, added, "expected exactly 1 successful add")
}

func TestWorkerPoolRunsEveryJob(t *testing.T) {
	pool := NewWorkerPool(3, 0)
	var mu sync.Mutex
	results := make(map[int]bool)

	for i := 0; i < 7; i++ {
		i := i
		pool.Submit(func() {
			mu.Lock()
			results[i] = true
			mu.Unlock()
		})
	}
	pool.Wait()

	assert.Len(t, results, 7)
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 100
	pool := NewWorkerPool(1, rateLimitMs)

	var timestamps []time.Time
	mu := make(chan struct{}, 1)
	mu <- struct{}{}

	for i := 0; i < 3; i++ {
		pool.Submit(func() {
			<-mu
			timestamps = append(timestamps, time.Now())
			mu <- struct{}{}
		})
	}
	pool.Wait()

	minGap := time.Duration(rateLimitMs) * time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		assert.GreaterOrEqual(t, gap, minGap, "gap between job %d and %d", i-1, i)
	}
}
