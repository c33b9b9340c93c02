// Package lifecycle drives a single user-triggered AI action through its
// idle, pending and resolved phases.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Zachkp/portfolio/internal/generate"
)

// ErrBusy is returned by Trigger while a call is already pending. The
// trigger is ignored.
var ErrBusy = errors.New("request already pending")

// PromptFunc builds the full prompt from user input and fixed instructions.
type PromptFunc func(input string) (string, error)

// Config wires a Controller. Backend, Prompt and FailureMessage are required.
type Config struct {
	Name    string
	Backend generate.Backend
	Prompt  PromptFunc

	// FailureMessage replaces every error shown to the user.
	FailureMessage string
	// DisabledMessage is shown when the backend reports the feature is off.
	// Empty means FailureMessage.
	DisabledMessage string

	// Context parents every backend call; cancelling it aborts them all.
	Context context.Context
	Logger  *slog.Logger
	// OnChange is called after every transition, outside the controller's
	// lock.
	OnChange func(Snapshot)
}

// Controller owns one action's phase. At most one backend call is in flight
// at a time; Reset abandons it.
type Controller struct {
	cfg Config

	mu         sync.Mutex
	snap       Snapshot
	generation uint64
	cancel     context.CancelFunc

	inflight sync.WaitGroup
}

func New(cfg Config) (*Controller, error) {
	if cfg.Backend == nil {
		return nil, errors.New("lifecycle: backend cannot be nil")
	}
	if cfg.Prompt == nil {
		return nil, errors.New("lifecycle: prompt builder cannot be nil")
	}
	if cfg.FailureMessage == "" {
		return nil, errors.New("lifecycle: failure message cannot be empty")
	}
	if cfg.DisabledMessage == "" {
		cfg.DisabledMessage = cfg.FailureMessage
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller{cfg: cfg}, nil
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Trigger starts a backend call for input and returns without waiting for
// it. It returns ErrBusy, changing nothing, if a call is already pending.
func (c *Controller) Trigger(input string) error {
	c.mu.Lock()
	if c.snap.Phase == Pending {
		c.mu.Unlock()
		return ErrBusy
	}

	prompt, err := c.cfg.Prompt(input)
	if err != nil {
		c.cfg.Logger.Error("failed to build prompt", "action", c.cfg.Name, "error", err)
		snap := c.transition(Snapshot{Phase: Failed, Message: c.cfg.FailureMessage})
		c.mu.Unlock()
		c.notify(snap)
		return nil
	}

	c.generation++
	generation := c.generation
	ctx, cancel := context.WithCancel(c.cfg.Context)
	c.cancel = cancel
	snap := c.transition(Snapshot{Phase: Pending})
	c.inflight.Add(1)
	c.mu.Unlock()

	c.notify(snap)
	go c.run(ctx, generation, prompt)
	return nil
}

// Reset forces the phase back to Idle. A pending call is cancelled and its
// eventual result discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.snap.Phase == Idle {
		c.mu.Unlock()
		return
	}
	snap := c.transition(Snapshot{Phase: Idle})
	c.mu.Unlock()
	c.notify(snap)
}

// Wait blocks until every call started by Trigger has returned from the
// backend, including abandoned ones.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) run(ctx context.Context, generation uint64, prompt string) {
	defer c.inflight.Done()

	text, err := c.cfg.Backend.Generate(ctx, prompt)

	c.mu.Lock()
	if generation != c.generation || c.snap.Phase != Pending {
		c.mu.Unlock()
		c.cfg.Logger.Debug("discarding result of abandoned request", "action", c.cfg.Name)
		return
	}
	c.cancel()
	c.cancel = nil

	var next Snapshot
	switch {
	case err == nil:
		next = Snapshot{Phase: Succeeded, Text: text}
	case errors.Is(err, generate.ErrFeatureDisabled):
		next = Snapshot{Phase: Failed, Message: c.cfg.DisabledMessage, Disabled: true}
	default:
		c.cfg.Logger.Error("text generation request failed", "action", c.cfg.Name, "error", err)
		next = Snapshot{Phase: Failed, Message: c.cfg.FailureMessage}
	}
	snap := c.transition(next)
	c.mu.Unlock()
	c.notify(snap)
}

// transition must be called with c.mu held.
func (c *Controller) transition(next Snapshot) Snapshot {
	next.Version = c.snap.Version + 1
	c.snap = next
	return next
}

func (c *Controller) notify(snap Snapshot) {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange(snap)
	}
}
