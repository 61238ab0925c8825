package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JeanRibes/midi-surface/music"
	"github.com/JeanRibes/midi-surface/port"
	. "github.com/JeanRibes/midi-surface/shared"
	"github.com/JeanRibes/midi-surface/ui"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
)

func main() {
	configFile := flag.String("config", DefaultConfigFile, "YAML config file")
	portName := flag.String("port", "", "name of the virtual output port")
	connect := flag.String("connect", "", "connect to an existing MIDI output instead of opening a virtual one")
	serialDev := flag.String("serial", "", "send raw MIDI on a serial device, e.g. /dev/ttyUSB0")
	baud := flag.Int("baud", 0, "serial baud rate (31250 for DIN MIDI, 115200 for USB bridges)")
	recordFile := flag.String("record", "", "record the session to a MIDI file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		charmlog.Fatal("config", "err", err)
	}
	if *portName != "" {
		cfg.Port.Name = *portName
	}
	if *connect != "" {
		cfg.Port.Connect = *connect
	}
	if *serialDev != "" {
		cfg.Port.Serial = *serialDev
	}
	if *baud != 0 {
		cfg.Port.Baud = *baud
	}
	if *recordFile != "" {
		cfg.Record.File = *recordFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		charmlog.Fatal("config", "err", err)
	}

	level, err := charmlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		charmlog.Fatal("config", "err", err)
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportCaller:    level == charmlog.DebugLevel,
		ReportTimestamp: false,
		Prefix:          "main",
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

// run owns the MIDI driver and the output port; both are released before it
// returns, errors included.
func run(cfg *Config, logger *charmlog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer midi.CloseDriver()
	out, err := port.OpenConfigured(charmlog.WithContext(ctx, logger.WithPrefix("port")), cfg.Port)
	if err != nil {
		return fmt.Errorf("can't open output: %w", err)
	}
	logger.Info("output", "port", out)

	var sink music.Port = out
	if cfg.Record.File != "" {
		sink = music.NewRecorder(out, cfg.Record.File, cfg.Record.BPM, cfg.Record.Quantize, logger.WithPrefix("record"))
	}
	writer := music.NewWriter(sink, logger.WithPrefix("port"))
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("closing output", "err", err)
		}
	}()

	surface := music.NewSurface(writer,
		music.WithChannel(cfg.Surface.Channel-1),
		music.WithVelocities(cfg.Surface.VelocityOn, cfg.Surface.VelocityOff),
		music.WithHold(cfg.Surface.Hold),
		music.WithReleaseOnHoldOff(cfg.Surface.ReleaseOnHoldOff),
		music.WithLogger(logger.WithPrefix("surface")),
	)

	control := make(chan Message, 4)
	window, err := ui.New(charmlog.WithContext(ctx, logger), cfg.Window, surface, control)
	if err != nil {
		return fmt.Errorf("can't build window: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-control:
				switch msg.Type {
				case Quit:
					logger.Info("window closed")
					cancel()
				case Error:
					logger.Error(msg.String)
				}
			}
		}
	}()

	window.Run(ctx)
	cancel()
	logger.Info("bye")
	return nil
}
