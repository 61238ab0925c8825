package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JeanRibes/midi-surface/music"
	. "github.com/JeanRibes/midi-surface/shared"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

var mainWin *gtk.Window
var statusLabel *gtk.Label
var currentKeyLabel *gtk.Label
var holdChb *gtk.CheckButton
var controllerScales [NUM_CONTROLS]*gtk.Scale
var keyBtns [NUM_KEYS]*gtk.Button
var otherScales = map[music.Control]*gtk.Scale{}

// buildErr collects widget construction errors, loadUI returns it.
var buildErr error

func built[T any](widget T, err error) T {
	buildErr = errors.Join(buildErr, err)
	return widget
}

func addClass(widget interface {
	GetStyleContext() (*gtk.StyleContext, error)
}, classes ...string) {
	sc := built(widget.GetStyleContext())
	if sc == nil {
		return
	}
	for _, c := range classes {
		sc.AddClass(c)
	}
}

func setClass(widget interface {
	GetStyleContext() (*gtk.StyleContext, error)
}, class string, on bool) {
	sc, err := widget.GetStyleContext()
	if err != nil {
		return
	}
	if on {
		sc.AddClass(class)
	} else {
		sc.RemoveClass(class)
	}
}

func newScale(min, max, value int) *gtk.Scale {
	scale := built(gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, float64(min), float64(max), 1))
	if scale == nil {
		return nil
	}
	scale.SetDigits(0)
	scale.SetValue(float64(value))
	scale.SetHExpand(true)
	return scale
}

func newFrame(title string, child gtk.IWidget) *gtk.Frame {
	frame := built(gtk.FrameNew(title))
	if frame == nil || child == nil {
		return nil
	}
	frame.SetBorderWidth(5)
	frame.Add(child)
	return frame
}

func loadUI(cfg WindowConfig, surface *music.Surface, edges *edgeQueue) error {
	buildErr = nil
	mainWin = built(gtk.WindowNew(gtk.WINDOW_TOPLEVEL))
	if buildErr != nil {
		return buildErr
	}
	mainWin.SetTitle(WindowTitle)
	mainWin.SetDefaultSize(cfg.Width, cfg.Height)

	root := built(gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 5))
	bottom := built(gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 5))
	side := built(gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 5))
	if buildErr != nil {
		return buildErr
	}

	controllers := newFrame("Controllers", controllersPanel(surface))
	if controllers != nil {
		controllers.SetVExpand(true)
		root.PackStart(controllers, true, true, 0)
	}
	if keys := newFrame("Keys", keysPanel(surface, edges)); keys != nil {
		keys.SetHExpand(true)
		bottom.PackStart(keys, true, true, 0)
	}
	if status := newFrame("Status", statusPanel(surface)); status != nil {
		side.PackStart(status, false, false, 0)
	}
	if other := newFrame("Other", otherPanel(surface)); other != nil {
		side.PackStart(other, true, true, 0)
	}
	bottom.PackStart(side, false, true, 0)
	root.PackStart(bottom, false, true, 0)
	mainWin.Add(root)
	return buildErr
}

func controllersPanel(surface *music.Surface) gtk.IWidget {
	scroll := built(gtk.ScrolledWindowNew(nil, nil))
	grid := built(gtk.GridNew())
	if scroll == nil || grid == nil {
		return nil
	}
	scroll.SetPolicy(gtk.POLICY_NEVER, gtk.POLICY_AUTOMATIC)
	grid.SetColumnSpacing(10)
	grid.SetColumnHomogeneous(true)

	for col := 0; col < 4; col++ {
		title := built(gtk.LabelNew(ColumnTitle(col)))
		if title == nil {
			continue
		}
		addClass(title, "column-title")
		grid.Attach(title, col, 0, 1, 1)
	}
	for slot := 0; slot < NUM_CONTROLS; slot++ {
		cc := ControllerAt(slot)
		cell := built(gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 5))
		label := built(gtk.LabelNew(fmt.Sprintf("CC %d\n%s", cc, ControllerName(cc))))
		scale := newScale(0, MaxDataValue, surface.Controller(cc))
		if cell == nil || label == nil || scale == nil {
			continue
		}
		label.SetWidthChars(10)
		label.SetXAlign(0)
		addClass(cell, "controller")
		cell.PackStart(label, false, false, 0)
		cell.PackStart(scale, true, true, 0)
		controllerScales[cc] = scale
		grid.Attach(cell, slot%4, slot/4+1, 1, 1)
	}
	scroll.Add(grid)
	return scroll
}

func keysPanel(surface *music.Surface, edges *edgeQueue) gtk.IWidget {
	box := built(gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 5))
	grid := built(gtk.GridNew())
	if box == nil || grid == nil {
		return nil
	}
	grid.SetRowSpacing(2)
	grid.SetColumnSpacing(2)

	for key := 0; key < NUM_KEYS; key++ {
		btn := built(gtk.ButtonNewWithLabel(fmt.Sprintf("%3d\n%s", key, KeyName(key))))
		if btn == nil {
			continue
		}
		addClass(btn, "key")
		if strings.HasSuffix(KeyName(key), "#") {
			addClass(btn, "sharp")
		}
		btn.Connect("button-press-event", func(self *gtk.Button, event *gdk.Event) bool {
			if gdk.EventButtonNewFromEvent(event).Button() == gdk.BUTTON_PRIMARY {
				edges.push(key, music.EdgePress)
			}
			return false
		})
		btn.Connect("button-release-event", func(self *gtk.Button, event *gdk.Event) bool {
			if gdk.EventButtonNewFromEvent(event).Button() == gdk.BUTTON_PRIMARY {
				edges.push(key, music.EdgeRelease)
			}
			return false
		})
		keyBtns[key] = btn
		grid.Attach(btn, key%KeysPerRow, key/KeysPerRow, 1, 1)
	}
	box.PackStart(grid, true, true, 0)

	holdChb = built(gtk.CheckButtonNewWithLabel("Hold"))
	if holdChb != nil {
		holdChb.SetActive(surface.Hold())
		box.PackStart(holdChb, false, false, 0)
	}
	return box
}

func statusPanel(surface *music.Surface) gtk.IWidget {
	statusLabel = built(gtk.LabelNew(""))
	if statusLabel == nil {
		return nil
	}
	addClass(statusLabel, "status")
	statusLabel.SetMarkup(statusMarkup(surface.LastMessage()))
	return statusLabel
}

func statusMarkup(last music.LastMessage) string {
	return fmt.Sprintf(`<span foreground="#ffe600">%s</span>`, last)
}

func currentKeyText(key int) string {
	if key == -1 {
		return "Current key: none"
	}
	return fmt.Sprintf("Current key: %d %s", key, KeyName(key))
}

func otherPanel(surface *music.Surface) gtk.IWidget {
	grid := built(gtk.GridNew())
	if grid == nil {
		return nil
	}
	grid.SetColumnSpacing(10)
	grid.SetRowSpacing(5)

	row := 0
	slider := func(name string, id music.Control, min, max, value int) {
		label := built(gtk.LabelNew(name))
		scale := newScale(min, max, value)
		if label == nil || scale == nil {
			return
		}
		label.SetXAlign(0)
		scale.SetSizeRequest(200, -1)
		otherScales[id] = scale
		grid.Attach(label, 0, row, 1, 1)
		grid.Attach(scale, 1, row, 1, 1)
		row++
	}

	slider("Channel", music.ChannelSlider, 1, NUM_CHANNELS, surface.Channel()+1)
	slider("Velocity on", music.VelocityOnSlider, 0, MaxDataValue, surface.VelocityOn())
	slider("Velocity off", music.VelocityOffSlider, 0, MaxDataValue, surface.VelocityOff())
	slider("Program", music.ProgramSlider, 0, MaxDataValue, surface.Program())
	slider("Bend", music.BendSlider, MinBend, MaxBend, surface.Bend())

	currentKeyLabel = built(gtk.LabelNew(currentKeyText(surface.SelectedKey())))
	if currentKeyLabel != nil {
		currentKeyLabel.SetXAlign(0)
		grid.Attach(currentKeyLabel, 0, row, 2, 1)
		row++
	}

	slider("Key Aftertouch", music.KeyAftertouchSlider, 0, MaxDataValue, surface.Aftertouch())
	slider("Ch Aftertouch", music.ChannelAftertouchSlider, 0, MaxDataValue, surface.ChannelAftertouch())
	return grid
}
