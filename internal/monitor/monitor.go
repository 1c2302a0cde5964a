package monitor

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"netdash/internal/history"
	"netdash/internal/models"
)

// DefaultInterval is how often a new traffic sample is produced.
const DefaultInterval = 2 * time.Second

// Recorder receives each generated sample, typically a metrics registry.
type Recorder interface {
	RecordTraffic(models.TrafficSample)
}

// Generator periodically produces synthetic traffic samples into a window.
type Generator struct {
	interval time.Duration
	window   *history.Window
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	subMu sync.Mutex
	subs  map[chan models.TrafficSample]struct{}

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Option customises a Generator.
type Option func(*Generator)

// WithRand replaces the random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRecorder publishes every sample to r.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a generator writing into window every interval.
func New(interval time.Duration, window *history.Window, opts ...Option) *Generator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	g := &Generator{
		interval: interval,
		window:   window,
		logger:   zap.NewNop(),
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		subs:     make(map[chan models.TrafficSample]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start fills the window with an initial set of samples and launches the
// refresh loop.
func (g *Generator) Start() {
	if !g.started.CompareAndSwap(false, true) {
		return
	}
	for i := g.window.Len(); i < g.window.Size(); i++ {
		g.window.Append(g.Sample())
	}
	g.logger.Info("traffic generator started",
		zap.Duration("interval", g.interval),
		zap.Int("window", g.window.Size()))
	go g.run()
}

// Stop terminates the loop and waits for it to exit. Safe to call twice.
func (g *Generator) Stop() {
	g.stopOnce.Do(func() { close(g.stopCh) })
	if g.started.Load() {
		<-g.doneCh
	}
}

// Tick produces one sample, stores it and notifies subscribers.
func (g *Generator) Tick() models.TrafficSample {
	sample := g.Sample()
	g.window.Append(sample)
	if g.recorder != nil {
		g.recorder.RecordTraffic(sample)
	}
	g.publish(sample)
	return sample
}

// Sample draws a new synthetic sample without storing it.
func (g *Generator) Sample() models.TrafficSample {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()

	return models.TrafficSample{
		Timestamp:   g.now().UTC(),
		Bandwidth:   g.rng.Intn(100) + 50,
		Latency:     g.rng.Intn(50) + 10,
		PacketLoss:  g.rng.Float64() * 2,
		Throughput:  g.rng.Intn(1000) + 500,
		Connections: g.rng.Intn(500) + 200,
	}
}

// Subscribe returns a channel receiving every new sample and a function that
// cancels the subscription. Samples are dropped for receivers that fall behind.
func (g *Generator) Subscribe() (<-chan models.TrafficSample, func()) {
	ch := make(chan models.TrafficSample, 4)
	g.subMu.Lock()
	g.subs[ch] = struct{}{}
	g.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			g.subMu.Lock()
			delete(g.subs, ch)
			g.subMu.Unlock()
		})
	}
}

func (g *Generator) publish(sample models.TrafficSample) {
	g.subMu.Lock()
	defer g.subMu.Unlock()

	for ch := range g.subs {
		select {
		case ch <- sample:
		default:
			g.logger.Debug("dropping traffic sample for slow subscriber")
		}
	}
}

func (g *Generator) run() {
	defer close(g.doneCh)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.Tick()
		case <-g.stopCh:
			return
		}
	}
}
