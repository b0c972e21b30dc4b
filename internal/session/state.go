// Package session models a call session that toggles microphone and camera
// as audio and video calls start and end.
package session

import "fmt"

// State is the current call type of a session.
type State int

const (
	StateIdle State = iota
	StateInAudioCall
	StateInVideoCall
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInAudioCall:
		return "InAudioCall"
	case StateInVideoCall:
		return "InVideoCall"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Flags are the device flags of a session.
type Flags struct {
	MicOn    bool
	CameraOn bool
}

// Flags derives the device flags from s.
func (s State) Flags() Flags {
	switch s {
	case StateInAudioCall:
		return Flags{MicOn: true}
	case StateInVideoCall:
		return Flags{MicOn: true, CameraOn: true}
	default:
		return Flags{}
	}
}

// Command is a session command code as produced by a CommandSource.
type Command int

const (
	CmdExit           Command = 0
	CmdStartAudioCall Command = 1
	CmdEndAudioCall   Command = 2
	CmdStartVideoCall Command = 3
	CmdEndVideoCall   Command = 4
)

// Commands lists every recognized command except CmdExit.
var Commands = []Command{CmdStartAudioCall, CmdEndAudioCall, CmdStartVideoCall, CmdEndVideoCall}

func (c Command) String() string {
	switch c {
	case CmdExit:
		return "Exit"
	case CmdStartAudioCall:
		return "StartAudioCall"
	case CmdEndAudioCall:
		return "EndAudioCall"
	case CmdStartVideoCall:
		return "StartVideoCall"
	case CmdEndVideoCall:
		return "EndVideoCall"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Next returns the state reached by applying cmd in s. Commands that are not
// valid in s leave it unchanged; so do CmdExit and unrecognized codes.
func Next(s State, cmd Command) State {
	switch s {
	case StateIdle:
		return idleNext(cmd)
	case StateInAudioCall:
		if cmd == CmdEndAudioCall {
			return StateIdle
		}
	case StateInVideoCall:
		if cmd == CmdEndVideoCall {
			return StateIdle
		}
	}
	return s
}

func idleNext(cmd Command) State {
	switch cmd {
	case CmdStartAudioCall:
		return StateInAudioCall
	case CmdStartVideoCall:
		return StateInVideoCall
	default:
		return StateIdle
	}
}
