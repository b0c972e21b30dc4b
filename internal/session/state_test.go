package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTransitionTable(t *testing.T) {
	tests := []struct {
		from State
		cmd  Command
		want State
	}{
		{StateIdle, CmdStartAudioCall, StateInAudioCall},
		{StateIdle, CmdEndAudioCall, StateIdle},
		{StateIdle, CmdStartVideoCall, StateInVideoCall},
		{StateIdle, CmdEndVideoCall, StateIdle},

		{StateInAudioCall, CmdStartAudioCall, StateInAudioCall},
		{StateInAudioCall, CmdEndAudioCall, StateIdle},
		{StateInAudioCall, CmdStartVideoCall, StateInAudioCall},
		{StateInAudioCall, CmdEndVideoCall, StateInAudioCall},

		{StateInVideoCall, CmdStartAudioCall, StateInVideoCall},
		{StateInVideoCall, CmdEndAudioCall, StateInVideoCall},
		{StateInVideoCall, CmdStartVideoCall, StateInVideoCall},
		{StateInVideoCall, CmdEndVideoCall, StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.cmd.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.from, tt.cmd))
		})
	}
}

func TestNextIgnoresExitAndUnknownCommands(t *testing.T) {
	for _, s := range []State{StateIdle, StateInAudioCall, StateInVideoCall} {
		for _, cmd := range []Command{CmdExit, -7, 5, 42, 1 << 20} {
			assert.Equal(t, s, Next(s, cmd), "state %s command %s", s, cmd)
		}
	}
}

func TestStateFlags(t *testing.T) {
	assert.Equal(t, Flags{}, StateIdle.Flags())
	assert.Equal(t, Flags{MicOn: true}, StateInAudioCall.Flags())
	assert.Equal(t, Flags{MicOn: true, CameraOn: true}, StateInVideoCall.Flags())
	assert.Equal(t, Flags{}, State(9).Flags())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "InVideoCall", StateInVideoCall.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.Equal(t, "EndAudioCall", CmdEndAudioCall.String())
	assert.Equal(t, "Command(99)", Command(99).String())
}
