package engine

import "InkOverlay/internal/state"

// EventKind is the normalized kind of a pointer sample.
type EventKind int

const (
	Down EventKind = iota
	Move
	Up
	Leave
	Blur
)

func (k EventKind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Leave:
		return "leave"
	case Blur:
		return "blur"
	}
	return "unknown"
}

// Sample is one pointer or touch event in viewport space.
type Sample struct {
	Pos  state.Point
	Kind EventKind
	// Touches holds the contact ids of a touch event, first contact first.
	// It is nil for mouse and pen input.
	Touches []int
	// Touch marks a touch event, which must carry at least one contact.
	Touch bool
	// Contact is the id of the contact that produced this sample.
	Contact int
}

// MouseSample builds a sample for mouse or pen input.
func MouseSample(kind EventKind, x, y float32) Sample {
	return Sample{Pos: state.Point{X: x, Y: y}, Kind: kind}
}

// TouchSample builds a sample for the given contact of a touch event.
func TouchSample(kind EventKind, x, y float32, contact int, touches []int) Sample {
	return Sample{Pos: state.Point{X: x, Y: y}, Kind: kind, Touch: true, Contact: contact, Touches: touches}
}

// primary reports whether a sample should drive drawing. Touch samples are
// only honoured for the first contact; a touch event without contacts is
// dropped.
func (s Sample) primary() bool {
	if !s.Touch {
		return true
	}
	if len(s.Touches) == 0 {
		return s.Kind == Up || s.Kind == Leave || s.Kind == Blur
	}
	return s.Touches[0] == s.Contact
}
