package ratelimit

import (
	"io"
	"sync"
	"time"
)

// minBucketSize keeps bursts large enough for smooth transfers
const minBucketSize = 64 * 1024

// Limiter controls the rate of data transfer across multiple readers using a
// token bucket. A nil Limiter means no limiting.
type Limiter struct {
	bytesPerSecond int64

	mu         sync.Mutex
	tokens     int64
	bucketSize int64
	lastRefill time.Time
}

// NewLimiter creates a limiter for the given bytes-per-second budget.
// Returns nil when the budget is zero or negative (unlimited).
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucketSize := bytesPerSecond
	if bucketSize < minBucketSize {
		bucketSize = minBucketSize
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		bucketSize:     bucketSize,
		lastRefill:     time.Now(),
	}
}

// Take blocks until n tokens are available, then consumes them.
// Requests larger than the bucket are clamped to the bucket size.
func (l *Limiter) Take(n int64) int64 {
	if n > l.bucketSize {
		n = l.bucketSize
	}

	for {
		l.mu.Lock()
		l.refill()

		if l.tokens >= n {
			l.tokens -= n
			l.mu.Unlock()
			return n
		}

		deficit := n - l.tokens
		wait := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		l.mu.Unlock()

		if wait < time.Millisecond {
			wait = time.Millisecond
		}
		time.Sleep(wait)
	}
}

// refill adds tokens for the elapsed time; caller must hold the lock
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill)

	added := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if added > 0 {
		l.tokens += added
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastRefill = now
	}
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
}

// NewReader wraps reader with rate limiting. With a nil limiter the original
// reader is returned unchanged.
func NewReader(reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter}
}

// Read implements io.Reader, acquiring tokens before each underlying read
func (r *Reader) Read(p []byte) (int, error) {
	granted := r.limiter.Take(int64(len(p)))
	return r.reader.Read(p[:granted])
}
