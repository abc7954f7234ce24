package batch

import (
	"time"
)

// Throughput sampling thresholds
const (
	// sampleInterval is the minimum spacing between samples, so a burst of
	// tiny items does not produce noisy instantaneous rates
	sampleInterval = 100 * time.Millisecond
	// sampleWindow is how far back throughput is computed over
	sampleWindow = 3 * time.Second
)

// speedSample is a point-in-time byte count
type speedSample struct {
	at    time.Time
	bytes int64
}

// speedTracker computes instantaneous throughput from a rolling window of
// completed-byte samples. It is owned by a single worker and is not
// safe for concurrent use.
type speedTracker struct {
	samples []speedSample
}

// observe records the current completed-byte total. Observations closer than
// sampleInterval to the previous sample are dropped.
func (t *speedTracker) observe(completedBytes int64, now time.Time) {
	if n := len(t.samples); n > 0 && now.Sub(t.samples[n-1].at) < sampleInterval {
		return
	}

	t.samples = append(t.samples, speedSample{at: now, bytes: completedBytes})

	cutoff := now.Add(-sampleWindow)
	kept := t.samples[:0]
	for _, s := range t.samples {
		if s.at.After(cutoff) {
			kept = append(kept, s)
		}
	}
	t.samples = kept
}

// throughput returns bytes/sec over the sample window, 0 when unknown
func (t *speedTracker) throughput() int64 {
	if len(t.samples) < 2 {
		return 0
	}

	oldest := t.samples[0]
	newest := t.samples[len(t.samples)-1]

	seconds := newest.at.Sub(oldest.at).Seconds()
	if seconds <= 0 {
		return 0
	}

	return int64(float64(newest.bytes-oldest.bytes) / seconds)
}
