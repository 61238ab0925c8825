package music

import (
	. "github.com/JeanRibes/midi-surface/shared"
)

// Kind is the high nibble of a channel voice status byte.
type Kind byte

const (
	NoteOff         Kind = 0x8
	NoteOn          Kind = 0x9
	KeyPressure     Kind = 0xA
	ControlChange   Kind = 0xB
	ProgramChange   Kind = 0xC
	ChannelPressure Kind = 0xD
	PitchBend       Kind = 0xE
)

var Kinds = []Kind{NoteOff, NoteOn, KeyPressure, ControlChange, ProgramChange, ChannelPressure, PitchBend}

func (k Kind) String() string {
	switch k {
	case NoteOff:
		return "NoteOff"
	case NoteOn:
		return "NoteOn"
	case KeyPressure:
		return "KeyPressure"
	case ControlChange:
		return "ControlChange"
	case ProgramChange:
		return "ProgramChange"
	case ChannelPressure:
		return "ChannelPressure"
	case PitchBend:
		return "PitchBend"
	default:
		return "Unknown"
	}
}

// Status builds a status byte for kind on channel (0-15).
func Status(k Kind, channel int) byte {
	return byte(k)<<4 | byte(channel)&0x0F
}

// KindOf returns the kind and channel encoded in a status byte.
func KindOf(status byte) (Kind, int) {
	return Kind(status >> 4), int(status & 0x0F)
}

// SplitBend turns a signed bend in [-8192, 8191] into the LSB and MSB data bytes.
func SplitBend(bend int) (lsb, msb byte) {
	value := bend + BendCenter
	return byte(value & 0x7F), byte(value >> 7)
}

func JoinBend(lsb, msb byte) int {
	return (int(msb)<<7 | int(lsb)) - BendCenter
}
