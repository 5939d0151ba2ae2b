package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// RpsCounter counts elements and their rate between two ticks. The zero
// value is ready to use.
type RpsCounter struct {
	counter  int64
	lastAdd  int64
	mu       sync.Mutex
	start    time.Time
	stop     time.Time
	lastTick time.Time
	updated  bool
}

func (r *RpsCounter) Add(n int) {
	atomic.AddInt64(&r.counter, int64(n))
	atomic.AddInt64(&r.lastAdd, int64(n))
	if n > 0 {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.start.IsZero() {
			r.start = time.Now()
		}
		r.updated = true
	}
}

func (r *RpsCounter) Value() int64 {
	return atomic.LoadInt64(&r.counter)
}

// Rps returns the average rate between the first Add and the last tick
// with new elements.
func (r *RpsCounter) Rps() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	secs := r.stop.Sub(r.start).Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Value()) / secs
}

// Tick returns the rate since the previous tick.
func (r *RpsCounter) Tick(now time.Time) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updated {
		r.stop = now
		r.updated = false
	}
	n := atomic.SwapInt64(&r.lastAdd, 0)
	prev := r.lastTick
	r.lastTick = now
	if prev.IsZero() {
		prev = r.start
	}
	secs := now.Sub(prev).Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(n) / secs
}
