package session

import (
	"errors"
	"fmt"
)

// ErrInvariantViolated is returned by CheckInvariant when a reachable state
// breaks the checked invariant.
var ErrInvariantViolated = errors.New("session: invariant violated")

// Invariant is a predicate over a state and its flags.
type Invariant func(State, Flags) bool

// CameraImpliesMic holds when the camera is only ever on together with the
// microphone.
func CameraImpliesMic(_ State, f Flags) bool {
	return !f.CameraOn || f.MicOn
}

// unrecognizedCommand stands in for every code outside the command set; all
// such codes behave the same.
const unrecognizedCommand Command = -1

// CheckInvariant explores every state reachable from StateIdle and checks
// inv in each of them.
func CheckInvariant(inv Invariant) error {
	alphabet := append([]Command{CmdExit, unrecognizedCommand}, Commands...)

	seen := map[State]bool{StateIdle: true}
	queue := []State{StateIdle}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		if !inv(s, s.Flags()) {
			return fmt.Errorf("state %s with flags %+v: %w", s, s.Flags(), ErrInvariantViolated)
		}
		for _, cmd := range alphabet {
			next := Next(s, cmd)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// Reachable returns the states reachable from StateIdle in discovery order.
func Reachable() []State {
	var out []State
	_ = CheckInvariant(func(s State, _ Flags) bool {
		out = append(out, s)
		return true
	})
	return out
}
