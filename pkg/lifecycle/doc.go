// Package lifecycle tracks the run state of a long-lived component such as
// the development server.
//
// # Usage
//
//	m := lifecycle.NewManager(logger, nil)
//	if err := m.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
//	    return err
//	}
//	m.Go(func() { serve() })
//	_ = m.TransitionTo(lifecycle.StateRunning, "listening")
//
//	// later
//	_ = m.TransitionTo(lifecycle.StateStopping, "Stop() called")
//	err := m.Wait(ctx)
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting
package lifecycle
