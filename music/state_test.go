package music_test

import (
	"testing"

	. "github.com/JeanRibes/midi-surface/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestNewSurfaceDefaults(t *testing.T) {
	s, port, frame := newTestSurface()
	s.Update(frame)

	assert.Empty(t, port.sent)
	assert.Equal(t, 0, s.Channel())
	assert.Equal(t, 127, s.VelocityOn())
	assert.Equal(t, 0, s.VelocityOff())
	assert.Equal(t, -1, s.SelectedKey())
	assert.False(t, s.Hold())
	assert.Equal(t, "-- -- --", s.LastMessage().String())
}

func TestControllerSlider(t *testing.T) {
	s, port, frame := newTestSurface(WithChannel(2))
	frame.sliders[ControllerSlider(74)] = 90
	s.Update(frame)

	require.Len(t, port.sent, 1)
	assert.Equal(t, []byte{0xB2, 74, 90}, port.sent[0])
	assert.Equal(t, 90, s.Controller(74))
	assert.Equal(t, "B2 4A 5A", s.LastMessage().String())

	var ch, cc, val uint8
	assert.True(t, midi.Message(port.sent[0]).GetControlChange(&ch, &cc, &val))
	assert.Equal(t, []uint8{2, 74, 90}, []uint8{ch, cc, val})

	// unchanged widget, nothing more
	s.Update(frame)
	assert.Len(t, port.sent, 1)
}

func TestEveryControllerSendsItsNumber(t *testing.T) {
	s, port, frame := newTestSurface()
	for cc := 0; cc < 128; cc++ {
		frame.sliders[ControllerSlider(cc)] = 1
	}
	s.Update(frame)

	require.Len(t, port.sent, 128)
	seen := map[byte]bool{}
	for _, msg := range port.sent {
		assert.Equal(t, byte(0xB0), msg[0])
		seen[msg[1]] = true
	}
	assert.Len(t, seen, 128)
	// panel order: four columns of 32, row by row
	assert.Equal(t, []byte{0, 32, 64, 96, 1}, []byte{port.sent[0][1], port.sent[1][1], port.sent[2][1], port.sent[3][1], port.sent[4][1]})
}

func TestMomentaryKeyOffAsNoteOnZero(t *testing.T) {
	s, port, frame := newTestSurface(WithVelocities(100, 0))
	frame.click(60)

	s.Update(frame)
	require.Len(t, port.sent, 1)
	assert.Equal(t, []byte{0x90, 60, 100}, port.sent[0])
	assert.True(t, s.KeyPressed(60))
	assert.Equal(t, 60, s.SelectedKey())

	s.Update(frame)
	require.Len(t, port.sent, 2)
	assert.Equal(t, []byte{0x90, 60, 0}, port.sent[1])
	assert.False(t, s.KeyPressed(60))

	var ch, key uint8
	assert.True(t, midi.Message(port.sent[1]).GetNoteEnd(&ch, &key))
	assert.Equal(t, uint8(60), key)
}

func TestMomentaryKeyOffAsNoteOff(t *testing.T) {
	s, port, frame := newTestSurface(WithChannel(9), WithVelocities(80, 40))
	frame.click(36)

	s.Update(frame)
	s.Update(frame)
	require.Len(t, port.sent, 2)
	assert.Equal(t, []byte{0x99, 36, 80}, port.sent[0])
	assert.Equal(t, []byte{0x89, 36, 40}, port.sent[1])
	assert.Equal(t, "89 24 28", s.LastMessage().String())
}

func TestToggleKeys(t *testing.T) {
	s, port, frame := newTestSurface(WithHold(true))
	frame.click(64)
	s.Update(frame)
	s.Update(frame)

	// latched: one Note On, release ignored
	require.Len(t, port.sent, 1)
	assert.Equal(t, []byte{0x90, 64, 127}, port.sent[0])
	assert.True(t, s.KeyPressed(64))

	frame.click(64)
	s.Update(frame)
	s.Update(frame)
	require.Len(t, port.sent, 2)
	assert.Equal(t, []byte{0x90, 64, 0}, port.sent[1])
	assert.False(t, s.KeyPressed(64))
}

func TestHoldOffClearsKeysSilently(t *testing.T) {
	s, port, frame := newTestSurface()
	frame.checks[HoldCheckbox] = true
	s.Update(frame)
	require.True(t, s.Hold())

	for _, key := range []int{0, 60, 127} {
		frame.click(key)
	}
	s.Update(frame)
	s.Update(frame)
	require.Len(t, port.sent, 3)
	port.reset()

	frame.checks[HoldCheckbox] = false
	s.Update(frame)
	assert.False(t, s.Hold())
	assert.Empty(t, port.sent)
	for key := 0; key < 128; key++ {
		assert.False(t, s.KeyPressed(key), "key %d", key)
	}
}

func TestHoldOffReleasesKeys(t *testing.T) {
	s, port, frame := newTestSurface(WithHold(true), WithReleaseOnHoldOff(true), WithVelocities(127, 10))
	frame.click(48)
	frame.click(52)
	s.Update(frame)
	port.reset()

	frame.checks[HoldCheckbox] = false
	s.Update(frame)
	assert.Equal(t, [][]byte{{0x80, 48, 10}, {0x80, 52, 10}}, port.sent)
	assert.False(t, s.KeyPressed(48))
	assert.False(t, s.KeyPressed(52))
}

func TestKeyAftertouchNeedsSelectedKey(t *testing.T) {
	s, port, frame := newTestSurface()
	frame.sliders[KeyAftertouchSlider] = 50
	s.Update(frame)
	assert.Empty(t, port.sent)
	assert.Equal(t, 50, s.Aftertouch())

	frame.click(61)
	frame.sliders[KeyAftertouchSlider] = 70
	s.Update(frame)
	require.Len(t, port.sent, 2)
	assert.Equal(t, []byte{0x90, 61, 127}, port.sent[0])
	assert.Equal(t, []byte{0xA0, 61, 70}, port.sent[1])
}

func TestChannelSlider(t *testing.T) {
	s, port, frame := newTestSurface()
	frame.sliders[ChannelSlider] = 16
	s.Update(frame)
	assert.Equal(t, 15, s.Channel())
	assert.Empty(t, port.sent)

	frame.sliders[ProgramSlider] = 5
	s.Update(frame)
	assert.Equal(t, [][]byte{{0xCF, 5}}, port.sent)
	assert.Equal(t, "CF 05 --", s.LastMessage().String())
}

func TestVelocitySlidersOnlyParameterize(t *testing.T) {
	s, port, frame := newTestSurface()
	frame.sliders[VelocityOnSlider] = 33
	frame.sliders[VelocityOffSlider] = 22
	s.Update(frame)
	assert.Empty(t, port.sent)

	frame.click(10)
	s.Update(frame)
	s.Update(frame)
	assert.Equal(t, [][]byte{{0x90, 10, 33}, {0x80, 10, 22}}, port.sent)
}

func TestBendSlider(t *testing.T) {
	s, port, frame := newTestSurface(WithChannel(1))
	frame.sliders[BendSlider] = 8191
	s.Update(frame)
	frame.sliders[BendSlider] = -8192
	s.Update(frame)
	frame.sliders[BendSlider] = 1
	s.Update(frame)

	assert.Equal(t, [][]byte{{0xE1, 0x7F, 0x7F}, {0xE1, 0x00, 0x00}, {0xE1, 0x01, 0x40}}, port.sent)
	assert.Equal(t, 1, s.Bend())

	var ch uint8
	var rel int16
	var abs uint16
	assert.True(t, midi.Message(port.sent[2]).GetPitchBend(&ch, &rel, &abs))
	assert.Equal(t, int16(1), rel)
}

func TestChannelAftertouch(t *testing.T) {
	s, port, frame := newTestSurface()
	frame.sliders[ChannelAftertouchSlider] = 99
	s.Update(frame)
	assert.Equal(t, [][]byte{{0xD0, 99}}, port.sent)
	assert.Equal(t, 99, s.ChannelAftertouch())
	assert.Equal(t, 2, s.LastMessage().Len)
}

func TestPortErrorDoesNotStopUpdate(t *testing.T) {
	s, port, frame := newTestSurface()
	port.err = errUnplugged
	frame.sliders[ControllerSlider(1)] = 10
	frame.sliders[ProgramSlider] = 3
	s.Update(frame)

	assert.Len(t, port.sent, 2)
	assert.Equal(t, 10, s.Controller(1))
	assert.Equal(t, 3, s.Program())
}

func TestAccessorsOutOfRange(t *testing.T) {
	s, _, _ := newTestSurface()
	assert.Equal(t, 0, s.Controller(-1))
	assert.Equal(t, 0, s.Controller(128))
	assert.False(t, s.KeyPressed(-1))
	assert.False(t, s.KeyPressed(128))
}
