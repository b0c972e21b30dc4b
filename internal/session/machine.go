package session

import "log/slog"

// Transition records a state change caused by a command.
type Transition struct {
	From    State
	To      State
	Command Command
}

// Machine holds the state of one call session. It is not safe for concurrent
// use.
type Machine struct {
	state     State
	logger    *slog.Logger
	observers []func(Transition)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithObserver registers fn to be called after every state change.
func WithObserver(fn func(Transition)) Option {
	return func(m *Machine) { m.observers = append(m.observers, fn) }
}

// NewMachine returns a machine in StateIdle.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		state:  StateIdle,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current session state.
func (m *Machine) State() State {
	return m.state
}

// Flags returns the device flags of the current state.
func (m *Machine) Flags() Flags {
	return m.state.Flags()
}

// Apply applies cmd and reports whether the state changed.
func (m *Machine) Apply(cmd Command) bool {
	next := Next(m.state, cmd)
	if next == m.state {
		m.logger.Debug("command ignored", "state", m.state.String(), "command", cmd.String())
		return false
	}

	tr := Transition{From: m.state, To: next, Command: cmd}
	m.state = next
	flags := next.Flags()
	m.logger.Debug("session transition",
		"from", tr.From.String(),
		"to", tr.To.String(),
		"command", cmd.String(),
		"mic", flags.MicOn,
		"camera", flags.CameraOn)

	for _, fn := range m.observers {
		fn(tr)
	}
	return true
}
