// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

// State is a step of one conversion run.
type State int

const (
	StateIdle State = iota
	StateFileLoaded
	StateExtractingText
	StateSerializing
	StatePackaging
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateFileLoaded:     "file loaded",
	StateExtractingText: "extracting text",
	StateSerializing:    "serializing",
	StatePackaging:      "packaging",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
