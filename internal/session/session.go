// Package session gives every visitor their own set of AI action
// controllers, keyed by a cookie id.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/generate"
	"github.com/Zachkp/portfolio/internal/lifecycle"
)

// Action describes one AI feature a session can trigger.
type Action struct {
	Name           string
	Prompt         lifecycle.PromptFunc
	FailureMessage string
}

type Config struct {
	Backend         generate.Backend
	Actions         []Action
	DisabledMessage string

	// RatePerMinute limits triggers per client across all actions and
	// sessions. Zero disables the limit.
	RatePerMinute float64
	Burst         int
	// TTL is how long an untouched session survives Sweep.
	TTL time.Duration

	Context context.Context
	Logger  *slog.Logger
	// OnChange receives every controller transition. It may run under the
	// manager lock and must not call back into the Manager.
	OnChange func(action string, snap lifecycle.Snapshot)
	// OnCount receives the session count whenever it changes.
	OnCount func(n int)
}

// ErrExpired is returned by Trigger for a session that has been swept or
// closed.
var ErrExpired = errors.New("session expired")

// ErrUnknownAction is returned by Trigger for an action the session lacks.
var ErrUnknownAction = errors.New("unknown action")

// Session is one visitor's set of controllers.
type Session struct {
	ID          string
	controllers map[string]*lifecycle.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// Controller returns the controller for action.
func (s *Session) Controller(action string) (*lifecycle.Controller, bool) {
	c, ok := s.controllers[action]
	return c, ok
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) reset() {
	for _, c := range s.controllers {
		c.Reset()
	}
}

// clientLimiter is the trigger budget of one client address.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Manager owns all live sessions and the per-client trigger limits.
type Manager struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	clients  map[string]*clientLimiter
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Backend == nil {
		return nil, errors.New("session: backend cannot be nil")
	}
	if len(cfg.Actions) == 0 {
		return nil, errors.New("session: at least one action is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 3
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
		clients:  make(map[string]*clientLimiter),
	}, nil
}

// Get returns the session for id, creating one when id is unknown. A
// malformed id is replaced with a fresh one; callers should persist the
// returned session's ID.
func (m *Manager) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		var err error
		s, err = m.newSession(id)
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		m.sessions[id] = s
	}
	n := len(m.sessions)
	m.mu.Unlock()

	s.touch(m.now())
	if !ok {
		m.cfg.Logger.Debug("session created", "session_id", id)
		m.count(n)
	}
	return s, nil
}

// Find returns the live session for id without creating one.
func (m *Manager) Find(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

// Allow reports whether client may trigger another action. The budget is
// shared by every session the client holds, so dropping the cookie does
// not reset it.
func (m *Manager) Allow(client string) bool {
	if m.cfg.RatePerMinute <= 0 {
		return true
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	cl, ok := m.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(m.cfg.RatePerMinute/60), m.cfg.Burst)}
		m.clients[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Trigger starts action on s. The membership check and the start happen
// under the manager lock, so Sweep and Close never miss a call.
func (m *Manager) Trigger(s *Session, action, input string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if live, ok := m.sessions[s.ID]; !ok || live != s {
		return ErrExpired
	}
	c, ok := s.controllers[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return c.Trigger(input)
}

func (m *Manager) newSession(id string) (*Session, error) {
	s := &Session{ID: id, controllers: make(map[string]*lifecycle.Controller, len(m.cfg.Actions))}
	for _, a := range m.cfg.Actions {
		name := a.Name
		var onChange func(lifecycle.Snapshot)
		if m.cfg.OnChange != nil {
			onChange = func(snap lifecycle.Snapshot) { m.cfg.OnChange(name, snap) }
		}
		c, err := lifecycle.New(lifecycle.Config{
			Name:            name,
			Backend:         m.cfg.Backend,
			Prompt:          a.Prompt,
			FailureMessage:  a.FailureMessage,
			DisabledMessage: m.cfg.DisabledMessage,
			Context:         m.cfg.Context,
			Logger:          m.cfg.Logger.With("session_id", id),
			OnChange:        onChange,
		})
		if err != nil {
			return nil, fmt.Errorf("session: action %s: %w", name, err)
		}
		s.controllers[name] = c
	}
	return s, nil
}

// Sweep drops sessions idle for longer than the TTL, abandoning any
// pending calls they own, and forgets clients idle for as long. It returns
// the number of sessions removed.
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince(now) > m.cfg.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	for client, cl := range m.clients {
		if now.Sub(cl.lastSeen) > m.cfg.TTL {
			delete(m.clients, client)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range expired {
		s.reset()
	}
	if len(expired) > 0 {
		m.cfg.Logger.Debug("swept idle sessions", "removed", len(expired), "remaining", n)
		m.count(n)
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close resets every session and waits for their backend calls to return.
func (m *Manager) Close() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.reset()
	}
	for _, s := range all {
		for _, c := range s.controllers {
			c.Wait()
		}
	}
	m.count(0)
}

func (m *Manager) count(n int) {
	if m.cfg.OnCount != nil {
		m.cfg.OnCount(n)
	}
}
