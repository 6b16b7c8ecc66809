// Package session holds the client-side chat session logic: the send
// state machine, shell-style input recall, token liveness polling, and
// conversation-id reconciliation. Everything here is pure state driven by
// the TUI loop, so it is testable without a terminal or a server.
package session

import "errors"

// ErrBusy is returned when a send is attempted while one is in flight.
var ErrBusy = errors.New("a send is already in flight")

// State is the send lifecycle state.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateThinking
	StateGenerating
	StateDone
)

// String returns the status-line label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateThinking:
		return "thinking"
	case StateGenerating:
		return "generating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Machine tracks the single in-flight send. The intermediate states are
// advanced by timer ticks for perceived-latency feedback; the response
// arrival wins over whichever intermediate state is active.
type Machine struct {
	state State
}

// NewMachine starts in idle.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.state
}

// CanSend reports whether a new send may start. Exactly one send may be
// in flight; only idle and done accept input.
func (m *Machine) CanSend() bool {
	return m.state == StateIdle || m.state == StateDone
}

// Submit moves into processing, or fails if a send is in flight.
func (m *Machine) Submit() error {
	if !m.CanSend() {
		return ErrBusy
	}
	m.state = StateProcessing
	return nil
}

// Tick advances the perceived-latency sequence. It has no effect outside
// processing and thinking, so stray timers after the response are harmless.
func (m *Machine) Tick() {
	switch m.state {
	case StateProcessing:
		m.state = StateThinking
	case StateThinking:
		m.state = StateGenerating
	}
}

// Respond records the arrival of the answer (or the error standing in for
// it) from any in-flight state.
func (m *Machine) Respond() {
	switch m.state {
	case StateProcessing, StateThinking, StateGenerating:
		m.state = StateDone
	}
}
