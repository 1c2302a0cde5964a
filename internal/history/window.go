package history

import (
	"sync"

	"netdash/internal/models"
)

// DefaultSize is the number of samples the charts keep on screen.
const DefaultSize = 20

// Window keeps the most recent traffic samples in arrival order.
type Window struct {
	mu      sync.RWMutex
	size    int
	samples []models.TrafficSample
}

// NewWindow creates a window holding at most size samples.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultSize
	}
	return &Window{
		size:    size,
		samples: make([]models.TrafficSample, 0, size),
	}
}

// Size returns the capacity of the window.
func (w *Window) Size() int {
	return w.size
}

// Append adds a sample, dropping the oldest once the window is full.
func (w *Window) Append(sample models.TrafficSample) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples = append(w.samples, sample)
	if len(w.samples) > w.size {
		w.samples = w.samples[len(w.samples)-w.size:]
	}
}

// Latest returns the newest sample if any.
func (w *Window) Latest() (models.TrafficSample, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(w.samples) == 0 {
		return models.TrafficSample{}, false
	}
	return w.samples[len(w.samples)-1], true
}

// All returns a copy of every sample, oldest first.
func (w *Window) All() []models.TrafficSample {
	return w.LastN(0)
}

// LastN returns up to n newest samples, oldest first. n <= 0 means all.
func (w *Window) LastN(n int) []models.TrafficSample {
	w.mu.RLock()
	defer w.mu.RUnlock()

	start := 0
	if n > 0 && n < len(w.samples) {
		start = len(w.samples) - n
	}
	out := make([]models.TrafficSample, len(w.samples)-start)
	copy(out, w.samples[start:])
	return out
}

// Len reports how many samples are held.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.samples)
}
