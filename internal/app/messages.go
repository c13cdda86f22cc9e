package app

import "github.com/jwulff/onkey/internal/audio"

// PitchMsg wraps one detector update from the audio pump.
type PitchMsg struct {
	Update audio.Update
}

// pitchClosedMsg is sent when the pump's update channel closes.
type pitchClosedMsg struct{}

// saveDoneMsg carries the result of a background save.
type saveDoneMsg struct {
	err error
}

// toneDoneMsg is sent when a reference tone or beep finishes playing.
type toneDoneMsg struct {
	err error
}
