package ui

import (
	"context"
	_ "embed"

	"github.com/JeanRibes/midi-surface/music"
	. "github.com/JeanRibes/midi-surface/shared"

	charmlog "github.com/charmbracelet/log"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

//go:embed ui.css
var stylesheet string

// UI is the GTK window hosting a surface. There is one per process.
type UI struct {
	cfg       WindowConfig
	surface   *music.Surface
	edges     *edgeQueue
	control   chan<- Message
	logger    *charmlog.Logger
	destroy   glib.SignalHandle
	destroyed bool
}

// New initializes GTK and builds the window. control receives Quit when the
// window is closed.
func New(ctx context.Context, cfg WindowConfig, surface *music.Surface, control chan<- Message) (*UI, error) {
	logger := charmlog.FromContext(ctx).WithPrefix("UI")
	gtk.Init(nil)

	u := &UI{
		cfg:     cfg,
		surface: surface,
		edges:   &edgeQueue{},
		control: control,
		logger:  logger,
	}
	if err := loadUI(cfg, surface, u.edges); err != nil {
		return nil, err
	}

	u.destroy = mainWin.Connect("destroy", func() {
		logger.Debug("close win, sending quit event")
		u.destroyed = true
		u.send(Message{Type: Quit})
	})

	prov, err := gtk.CssProviderNew()
	if err == nil {
		err = prov.LoadFromData(stylesheet)
	}
	if err != nil {
		u.send(Message{Type: Error, String: "stylesheet: " + err.Error()})
	} else if screen, err := gdk.ScreenGetDefault(); err == nil {
		gtk.AddProviderForScreen(screen, prov, uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION))
	}
	return u, nil
}

func (u *UI) send(msg Message) {
	select {
	case u.control <- msg:
	default:
		u.logger.Warn("control channel full, dropping", "event", msg.Type)
	}
}

// Run shows the window and blocks in the GTK main loop until ctx is done.
func (u *UI) Run(ctx context.Context) {
	u.logger.Info("start")
	mainWin.ShowAll()

	go func() {
		<-ctx.Done()
		u.logger.Debug("ctx done, quitting")
		glib.IdleAdd(gtk.MainQuit)
	}()
	u.loop(ctx)

	gtk.Main()
	u.logger.Info("stop")
	if !u.destroyed {
		mainWin.HandlerDisconnect(u.destroy)
		mainWin.Destroy()
	}
}
