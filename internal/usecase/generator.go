package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"portfolio-studio/pkg/ai"
	"portfolio-studio/pkg/logger"
)

// GenerationStatus is the state of the generation workflow.
type GenerationStatus string

const (
	StatusIdle      GenerationStatus = "idle"
	StatusRunning   GenerationStatus = "running"
	StatusSucceeded GenerationStatus = "succeeded"
	StatusFailed    GenerationStatus = "failed"
)

// ErrGenerationInFlight rejects a request issued while another one is
// running. Requests are never queued; the caller retries once the current one
// resolves.
var ErrGenerationInFlight = errors.New("a generation request is already running")

// generationTimeout bounds the backing call so an unresolved request cannot
// hold the single-flight latch forever.
const generationTimeout = 30 * time.Second

// Generator runs the asynchronous content-generation workflow:
// idle -> running -> succeeded|failed -> idle. At most one request is in
// flight at a time. The text synthesis itself lives behind ai.Generator; this
// type only owns the latch, the simulated latency window, and the outcome
// bookkeeping. It never writes into the document: placing the returned text
// into a block is the caller's job.
type Generator struct {
	mu      sync.Mutex
	status  GenerationStatus
	last    GenerationResult
	backend ai.Generator
	latency func() time.Duration
	log     *logger.Logger
}

// GenerationResult records the outcome of the most recent request.
type GenerationResult struct {
	Kind   ai.Kind          `json:"kind"`
	Status GenerationStatus `json:"status"`
	Output string           `json:"output,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func NewGenerator(backend ai.Generator, log *logger.Logger) *Generator {
	return &Generator{
		status:  StatusIdle,
		backend: backend,
		latency: simulatedLatency,
		log:     log,
	}
}

// simulatedLatency is the historical 1.5-2.5s window of the mocked AI call.
func simulatedLatency() time.Duration {
	return 1500*time.Millisecond + time.Duration(rand.Intn(1000))*time.Millisecond
}

// SetLatency overrides the simulated latency window. Tests pass a zero delay.
func (g *Generator) SetLatency(f func() time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f != nil {
		g.latency = f
	}
}

func (g *Generator) Status() GenerationStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Last returns the outcome of the most recent resolved request.
func (g *Generator) Last() GenerationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// TryStart claims the single-flight latch for a request that will run later,
// typically in a background goroutine. It fails with ErrGenerationInFlight if
// a request is already running, so callers dispatching asynchronously get a
// deterministic rejection before they return. A successful claim must be
// followed by Run, which releases the latch when it resolves.
func (g *Generator) TryStart() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == StatusRunning {
		return ErrGenerationInFlight
	}
	g.status = StatusRunning
	return nil
}

// Generate runs one request to completion and returns the synthesized text.
// A request issued while another is running is rejected outright with
// ErrGenerationInFlight. Failures release the latch, record a failed outcome
// and leave the document untouched; the caller may retry immediately.
func (g *Generator) Generate(ctx context.Context, kind ai.Kind, state ai.State) (string, error) {
	if err := g.TryStart(); err != nil {
		return "", err
	}
	return g.Run(ctx, kind, state)
}

// Run executes a request whose latch was already claimed with TryStart.
func (g *Generator) Run(ctx context.Context, kind ai.Kind, state ai.State) (string, error) {
	g.mu.Lock()
	delay := g.latency()
	g.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.resolve(kind, "", ctx.Err())
			return "", ctx.Err()
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	out, err := g.backend.Generate(callCtx, kind, state)
	g.resolve(kind, out, err)
	if err != nil {
		g.log.Warn("generation failed", "kind", string(kind), "error", err)
		return "", err
	}
	g.log.Info("generation succeeded", "kind", string(kind), "chars", len(out))
	return out, nil
}

// resolve records the terminal outcome and returns the workflow to idle, so
// the next request can start.
func (g *Generator) resolve(kind ai.Kind, out string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		g.last = GenerationResult{Kind: kind, Status: StatusFailed, Error: err.Error()}
	} else {
		g.last = GenerationResult{Kind: kind, Status: StatusSucceeded, Output: out}
	}
	g.status = StatusIdle
}
