package shared

type Event int

const (
	Quit Event = iota
	Error
)

type Message struct {
	Type   Event
	String string
}

const (
	AppName      = "MIDI surface"
	WindowTitle  = AppName
	WindowWidth  = 1280
	WindowHeight = 720
	NUM_CONTROLS = 128
	NUM_KEYS     = 128
	NUM_CHANNELS = 16
	NoController = "-"
	MaxDataValue = 127
	MinBend      = -8192
	MaxBend      = 8191
	BendCenter   = 8192
	KeysPerRow   = 12
)

var keyNames = [KeysPerRow]string{
	"C", "C#", "D", "D#", "E",
	"F", "F#", "G", "G#", "A", "A#", "B",
}

// KeyName returns the chromatic name of a key index, cycling every octave.
func KeyName(key int) string {
	if key < 0 {
		return ""
	}
	return keyNames[key%KeysPerRow]
}

// MIDI 1.0 control change assignments, indexed by controller number.
var controllerNames = [NUM_CONTROLS]string{
	0:   "Bank Sel",
	1:   "Mod Wheel",
	2:   "Breath Con",
	4:   "Foot Con",
	5:   "Porta Time",
	6:   "Data MSB",
	7:   "Ch Volume",
	8:   "Balance",
	10:  "Pan",
	11:  "Expression",
	12:  "Fx 1",
	13:  "Fx 2",
	16:  "Gen 1",
	17:  "Gen 2",
	18:  "Gen 3",
	19:  "Gen 4",
	32:  "LSB 0",
	33:  "LSB 1",
	34:  "LSB 2",
	35:  "LSB 3",
	36:  "LSB 4",
	37:  "LSB 5",
	38:  "LSB 6",
	39:  "LSB 7",
	40:  "LSB 8",
	41:  "LSB 9",
	42:  "LSB 10",
	43:  "LSB 11",
	44:  "LSB 12",
	45:  "LSB 13",
	46:  "LSB 14",
	47:  "LSB 15",
	48:  "LSB 16",
	49:  "LSB 17",
	50:  "LSB 18",
	51:  "LSB 19",
	52:  "LSB 20",
	53:  "LSB 21",
	54:  "LSB 22",
	55:  "LSB 23",
	56:  "LSB 24",
	57:  "LSB 25",
	58:  "LSB 26",
	59:  "LSB 27",
	60:  "LSB 28",
	61:  "LSB 29",
	62:  "LSB 30",
	63:  "LSB 31",
	64:  "Damper Sw",
	65:  "Porta Sw",
	66:  "Sost Sw",
	67:  "Soft Sw",
	68:  "Legato Sw",
	69:  "Hold 2",
	70:  "Sound 1",
	71:  "Sound 2",
	72:  "Sound 3",
	73:  "Sound 4",
	74:  "Sound 5",
	75:  "Sound 6",
	76:  "Sound 7",
	77:  "Sound 8",
	78:  "Sound 9",
	79:  "Sound 10",
	80:  "General 5",
	81:  "General 6",
	82:  "General 7",
	83:  "General 8",
	84:  "Porta Con",
	88:  "Vel Prefix",
	91:  "Fx 1 Depth",
	92:  "Fx 2 Depth",
	93:  "Fx 3 Depth",
	94:  "Fx 4 Depth",
	95:  "Fx 5 Depth",
	96:  "Data +1",
	97:  "Data -1",
	98:  "NRPN LSB",
	99:  "NRPN MSB",
	100: "RPN LSB",
	101: "RPN MSB",
	120: "Sound Off",
	121: "Reset All",
	122: "Local Con",
	123: "Notes Off",
	124: "Omni Off",
	125: "Omni On",
	126: "Mono On",
	127: "Poly On",
}

// ControllerName returns the short display label of a controller number,
// "-" when the number is unassigned or out of range.
func ControllerName(cc int) string {
	if cc < 0 || cc >= NUM_CONTROLS || controllerNames[cc] == "" {
		return NoController
	}
	return controllerNames[cc]
}

// ControllerAt maps a panel slot to its controller number. The panel shows
// four columns of 32 controllers, filled row by row.
func ControllerAt(slot int) int {
	return (slot%4)*32 + (slot/4)%32
}

// ColumnTitle is the header of one of the four controller columns.
func ColumnTitle(column int) string {
	switch column {
	case 0:
		return "0 - 31"
	case 1:
		return "32 - 63"
	case 2:
		return "64 - 95"
	case 3:
		return "96 - 127"
	default:
		return ""
	}
}
