package ui

import (
	"context"
	"math"
	"time"

	"github.com/JeanRibes/midi-surface/music"
	. "github.com/JeanRibes/midi-surface/shared"

	"github.com/gotk3/gotk3/glib"
)

// edgeQueue holds the pointer edges of the key buttons until the next tick.
// Signal handlers and the tick both run on the GTK main loop.
type edgeQueue struct {
	keys [NUM_KEYS][]music.Edge
}

func (q *edgeQueue) push(key int, edge music.Edge) {
	q.keys[key] = append(q.keys[key], edge)
}

func (q *edgeQueue) pop(key int) music.Edge {
	if key < 0 || key >= NUM_KEYS || len(q.keys[key]) == 0 {
		return music.EdgeNone
	}
	edge := q.keys[key][0]
	q.keys[key] = q.keys[key][1:]
	return edge
}

// frame reads the widgets for Surface.Update.
type frame struct {
	edges *edgeQueue
}

func (f *frame) Slider(id music.Control, value *int, lo, hi int) bool {
	scale := otherScales[id]
	if id >= 0 && int(id) < NUM_CONTROLS {
		scale = controllerScales[id]
	}
	if scale == nil {
		return false
	}
	v := int(math.Round(scale.GetValue()))
	v = max(lo, min(v, hi))
	if v == *value {
		return false
	}
	*value = v
	return true
}

func (f *frame) Checkbox(id music.Control, value *bool) bool {
	if id != music.HoldCheckbox || holdChb == nil {
		return false
	}
	v := holdChb.GetActive()
	if v == *value {
		return false
	}
	*value = v
	return true
}

func (f *frame) KeyEdge(key int) music.Edge {
	return f.edges.pop(key)
}

// rendered is what the window currently shows of the surface state.
type rendered struct {
	pressed  [NUM_KEYS]bool
	selected int
	last     music.LastMessage
}

func (u *UI) loop(ctx context.Context) {
	f := &frame{edges: u.edges}
	shown := &rendered{selected: -1}
	interval := uint(time.Second / time.Duration(u.cfg.FPS) / time.Millisecond)
	u.logger.Debug("tick", "interval_ms", interval)

	glib.TimeoutAdd(interval, func() bool {
		if ctx.Err() != nil {
			return false
		}
		u.surface.Update(f)
		refresh(u.surface, shown)
		return true
	})
}

func refresh(surface *music.Surface, shown *rendered) {
	for key, btn := range keyBtns {
		if btn == nil {
			continue
		}
		if pressed := surface.KeyPressed(key); pressed != shown.pressed[key] {
			setClass(btn, "pressed", pressed)
			shown.pressed[key] = pressed
		}
	}

	if selected := surface.SelectedKey(); selected != shown.selected {
		if shown.selected >= 0 && keyBtns[shown.selected] != nil {
			setClass(keyBtns[shown.selected], "selected", false)
		}
		if selected >= 0 && keyBtns[selected] != nil {
			setClass(keyBtns[selected], "selected", true)
		}
		if currentKeyLabel != nil {
			currentKeyLabel.SetText(currentKeyText(selected))
		}
		shown.selected = selected
	}

	if last := surface.LastMessage(); last != shown.last {
		if statusLabel != nil {
			statusLabel.SetMarkup(statusMarkup(last))
		}
		shown.last = last
	}
}
