package music

// Edge is a pointer transition on a key button, as reported by the host.
type Edge int

const (
	EdgeNone Edge = iota
	EdgePress
	EdgeRelease
)

// Interaction decides how edges change a key's pressed flag.
type Interaction int

const (
	// Momentary keys are down while the pointer is held.
	Momentary Interaction = iota
	// Toggle keys latch on one press and unlatch on the next.
	Toggle
)

func InteractionFor(hold bool) Interaction {
	if hold {
		return Toggle
	}
	return Momentary
}

// Interact applies edge to *pressed and reports whether the flag changed.
func (i Interaction) Interact(edge Edge, pressed *bool) bool {
	switch i {
	case Toggle:
		if edge != EdgePress {
			return false
		}
		*pressed = !*pressed
		return true
	default:
		switch edge {
		case EdgePress:
			if *pressed {
				return false
			}
			*pressed = true
			return true
		case EdgeRelease:
			if !*pressed {
				return false
			}
			*pressed = false
			return true
		}
		return false
	}
}
