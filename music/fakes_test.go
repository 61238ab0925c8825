package music_test

import (
	"errors"

	. "github.com/JeanRibes/midi-surface/music"
)

type fakePort struct {
	sent   [][]byte
	err    error
	closed bool
}

func (p *fakePort) Send(msg []byte) error {
	p.sent = append(p.sent, append([]byte(nil), msg...))
	return p.err
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func (p *fakePort) String() string {
	return "fake"
}

func (p *fakePort) reset() {
	p.sent = nil
}

var errUnplugged = errors.New("unplugged")

// fakeFrame keeps widget values across frames like a real toolkit does; a
// slider reports a change while its value differs from the surface's.
type fakeFrame struct {
	sliders map[Control]int
	checks  map[Control]bool
	edges   map[int][]Edge
}

func newFakeFrame() *fakeFrame {
	return &fakeFrame{
		sliders: map[Control]int{},
		checks:  map[Control]bool{},
		edges:   map[int][]Edge{},
	}
}

func (f *fakeFrame) Slider(id Control, value *int, min, max int) bool {
	v, ok := f.sliders[id]
	if !ok {
		return false
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	if v == *value {
		return false
	}
	*value = v
	return true
}

func (f *fakeFrame) Checkbox(id Control, value *bool) bool {
	v, ok := f.checks[id]
	if !ok || v == *value {
		return false
	}
	*value = v
	return true
}

func (f *fakeFrame) KeyEdge(key int) Edge {
	queue := f.edges[key]
	if len(queue) == 0 {
		return EdgeNone
	}
	f.edges[key] = queue[1:]
	return queue[0]
}

func (f *fakeFrame) click(key int) {
	f.edges[key] = append(f.edges[key], EdgePress, EdgeRelease)
}

func newTestSurface(options ...Option) (*Surface, *fakePort, *fakeFrame) {
	port := &fakePort{}
	return NewSurface(NewWriter(port, nil), options...), port, newFakeFrame()
}
