package music

import (
	. "github.com/JeanRibes/midi-surface/shared"

	charmlog "github.com/charmbracelet/log"
)

// Control identifies a widget of the surface. Controller sliders use their
// controller number, the other widgets come after them.
type Control int

const (
	ChannelSlider Control = NUM_CONTROLS + iota
	VelocityOnSlider
	VelocityOffSlider
	ProgramSlider
	BendSlider
	KeyAftertouchSlider
	ChannelAftertouchSlider
	HoldCheckbox
)

func ControllerSlider(cc int) Control {
	return Control(cc)
}

// Frame is the widget state of one UI frame, as seen by the surface.
type Frame interface {
	// Slider stores the widget value in *value and reports whether it changed.
	Slider(id Control, value *int, min, max int) bool
	Checkbox(id Control, value *bool) bool
	// KeyEdge pops the next pointer edge of a key button.
	KeyEdge(key int) Edge
}

type Option func(*Surface)

// WithChannel sets the starting channel, 0-based.
func WithChannel(channel int) Option {
	return func(s *Surface) { s.channel = channel }
}

func WithVelocities(on, off int) Option {
	return func(s *Surface) {
		s.keyOnVelocity = on
		s.keyOffVelocity = off
	}
}

func WithHold(hold bool) Option {
	return func(s *Surface) { s.hold = hold }
}

// WithReleaseOnHoldOff makes turning hold off send the off event of every
// latched key before clearing it.
func WithReleaseOnHoldOff(release bool) Option {
	return func(s *Surface) { s.releaseOnHoldOff = release }
}

func WithLogger(logger *charmlog.Logger) Option {
	return func(s *Surface) { s.logger = logger }
}

// Surface holds every control value and turns changes into MIDI messages.
type Surface struct {
	out *Writer

	channel           int
	program           int
	bend              int
	aftertouch        int
	channelAftertouch int
	keyOnVelocity     int
	keyOffVelocity    int
	selectedKey       int
	hold              bool
	releaseOnHoldOff  bool
	controllers       [NUM_CONTROLS]int
	keyPressed        [NUM_KEYS]bool

	logger *charmlog.Logger
}

func NewSurface(out *Writer, options ...Option) *Surface {
	s := &Surface{
		out:           out,
		keyOnVelocity: MaxDataValue,
		selectedKey:   -1,
		logger:        charmlog.Default(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Update runs one frame: every panel reads its widgets and sends what changed.
func (s *Surface) Update(f Frame) {
	s.updateControllers(f)
	s.updateKeys(f)
	s.updateOther(f)
}

func (s *Surface) updateControllers(f Frame) {
	for slot := 0; slot < NUM_CONTROLS; slot++ {
		cc := ControllerAt(slot)
		if f.Slider(ControllerSlider(cc), &s.controllers[cc], 0, MaxDataValue) {
			s.send3(Status(ControlChange, s.channel), byte(cc), byte(s.controllers[cc]))
		}
	}
}

func (s *Surface) updateKeys(f Frame) {
	interaction := InteractionFor(s.hold)
	for key := 0; key < NUM_KEYS; key++ {
		edge := f.KeyEdge(key)
		if edge == EdgeNone {
			continue
		}
		if interaction.Interact(edge, &s.keyPressed[key]) {
			if s.keyPressed[key] {
				s.send3(Status(NoteOn, s.channel), byte(key), byte(s.keyOnVelocity))
			} else {
				s.sendKeyOff(key)
			}
			s.selectedKey = key
		}
	}

	if f.Checkbox(HoldCheckbox, &s.hold) && !s.hold {
		for key := range s.keyPressed {
			if s.keyPressed[key] && s.releaseOnHoldOff {
				s.sendKeyOff(key)
			}
			s.keyPressed[key] = false
		}
	}
}

// sendKeyOff sends a zero velocity Note On when the off velocity is 0, a Note
// Off otherwise.
func (s *Surface) sendKeyOff(key int) {
	if s.keyOffVelocity == 0 {
		s.send3(Status(NoteOn, s.channel), byte(key), 0)
	} else {
		s.send3(Status(NoteOff, s.channel), byte(key), byte(s.keyOffVelocity))
	}
}

func (s *Surface) updateOther(f Frame) {
	channel := s.channel + 1
	f.Slider(ChannelSlider, &channel, 1, NUM_CHANNELS)
	s.channel = channel - 1

	f.Slider(VelocityOnSlider, &s.keyOnVelocity, 0, MaxDataValue)
	f.Slider(VelocityOffSlider, &s.keyOffVelocity, 0, MaxDataValue)

	if f.Slider(ProgramSlider, &s.program, 0, MaxDataValue) {
		s.send2(Status(ProgramChange, s.channel), byte(s.program))
	}
	if f.Slider(BendSlider, &s.bend, MinBend, MaxBend) {
		lsb, msb := SplitBend(s.bend)
		s.send3(Status(PitchBend, s.channel), lsb, msb)
	}
	if f.Slider(KeyAftertouchSlider, &s.aftertouch, 0, MaxDataValue) && s.selectedKey != -1 {
		s.send3(Status(KeyPressure, s.channel), byte(s.selectedKey), byte(s.aftertouch))
	}
	if f.Slider(ChannelAftertouchSlider, &s.channelAftertouch, 0, MaxDataValue) {
		s.send2(Status(ChannelPressure, s.channel), byte(s.channelAftertouch))
	}
}

func (s *Surface) send2(status, data byte) {
	if err := s.out.Send2(status, data); err != nil {
		s.logger.Error(err)
	}
}

func (s *Surface) send3(status, data1, data2 byte) {
	if err := s.out.Send3(status, data1, data2); err != nil {
		s.logger.Error(err)
	}
}

func (s *Surface) Channel() int {
	return s.channel
}

func (s *Surface) Program() int {
	return s.program
}

func (s *Surface) Bend() int {
	return s.bend
}

func (s *Surface) Aftertouch() int {
	return s.aftertouch
}

func (s *Surface) ChannelAftertouch() int {
	return s.channelAftertouch
}

func (s *Surface) VelocityOn() int {
	return s.keyOnVelocity
}

func (s *Surface) VelocityOff() int {
	return s.keyOffVelocity
}

func (s *Surface) SelectedKey() int {
	return s.selectedKey
}

func (s *Surface) Hold() bool {
	return s.hold
}

func (s *Surface) LastMessage() LastMessage {
	return s.out.Last()
}

func (s *Surface) Controller(cc int) int {
	if cc < 0 || cc >= NUM_CONTROLS {
		return 0
	}
	return s.controllers[cc]
}

func (s *Surface) KeyPressed(key int) bool {
	if key < 0 || key >= NUM_KEYS {
		return false
	}
	return s.keyPressed[key]
}
