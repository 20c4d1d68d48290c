package input

import "time"

// HoldTracker emulates key releases for inputs that only report presses,
// such as a terminal in raw mode. A key stays held until hold has passed
// since its last press; keyboard auto-repeat keeps refreshing it.
type HoldTracker struct {
	sampler *Sampler
	hold    time.Duration
	expires map[Key]time.Time
}

// NewHoldTracker wraps sampler. hold should exceed the gap between
// auto-repeat events or held keys will stutter.
func NewHoldTracker(sampler *Sampler, hold time.Duration) *HoldTracker {
	return &HoldTracker{
		sampler: sampler,
		hold:    hold,
		expires: make(map[Key]time.Time),
	}
}

// Press records a press of k at now. Returns whether k is a mapped key.
func (h *HoldTracker) Press(k Key, now time.Time) bool {
	if !h.sampler.Press(k) {
		return false
	}
	h.expires[k] = now.Add(h.hold)
	return true
}

// Expire releases every key whose hold window ended at or before now.
func (h *HoldTracker) Expire(now time.Time) {
	for k, at := range h.expires {
		if !now.Before(at) {
			h.sampler.Release(k)
			delete(h.expires, k)
		}
	}
}

// Reset releases all keys.
func (h *HoldTracker) Reset() {
	clear(h.expires)
	h.sampler.Reset()
}

// Snapshot is the wrapped sampler's snapshot.
func (h *HoldTracker) Snapshot() Snapshot {
	return h.sampler.Snapshot()
}
