package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bft-labs/chatshell/internal/domain"
	"github.com/bft-labs/chatshell/pkg/log"
)

// ErrInvalidTransition is returned for transitions outside the state machine.
var ErrInvalidTransition = errors.New("lifecycle: invalid transition")

// Manager guards state transitions and tracks worker goroutines.
type Manager struct {
	mu      sync.RWMutex
	state   State
	wg      sync.WaitGroup
	logger  log.Logger
	emitter EventEmitter
}

// NewManager creates a manager in StateStopped. emitter may be nil.
func NewManager(logger log.Logger, emitter EventEmitter) *Manager {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Manager{
		state:   StateStopped,
		logger:  logger,
		emitter: emitter,
	}
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CanStart reports whether the component may be started.
func (m *Manager) CanStart() bool {
	s := m.State()
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether the component may be stopped.
func (m *Manager) CanStop() bool {
	s := m.State()
	return s == StateStarting || s == StateRunning
}

// TransitionTo moves to next, or returns an error wrapping ErrInvalidTransition.
// Starting a running component wraps domain.ErrAlreadyRunning; stopping a
// stopped one wraps domain.ErrNotRunning.
func (m *Manager) TransitionTo(next State, reason string) error {
	m.mu.Lock()
	prev := m.state
	if !CanTransition(prev, next) {
		m.mu.Unlock()
		return transitionError(prev, next)
	}
	m.state = next
	m.mu.Unlock()

	if m.emitter != nil {
		m.emitter.OnStateChange(prev, next, reason)
	}
	m.logger.Info("state transition",
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.String("reason", reason),
	)
	return nil
}

func transitionError(from, to State) error {
	base := ErrInvalidTransition
	switch {
	case to == StateStarting:
		base = domain.ErrAlreadyRunning
	case to == StateStopping && (from == StateStopped || from == StateCrashed):
		base = domain.ErrNotRunning
	}
	return fmt.Errorf("%w: %s -> %s", base, from, to)
}

// Go runs fn in a tracked goroutine.
func (m *Manager) Go(fn func()) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		fn()
	}()
}

// Wait blocks until every tracked goroutine returns or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		m.logger.Warn("workers still running at shutdown deadline", log.Err(ctx.Err()))
		return ctx.Err()
	}
}
