package port

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeanRibes/midi-surface/music"
	. "github.com/JeanRibes/midi-surface/shared"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Out is an rtmidi output port.
type Out struct {
	out     drivers.Out
	send    func(msg midi.Message) error
	virtual bool
}

func driver() (*rtmididrv.Driver, error) {
	drv, ok := drivers.Get().(*rtmididrv.Driver)
	if !ok || drv == nil {
		return nil, fmt.Errorf("rtmidi driver not registered")
	}
	return drv, nil
}

// OpenVirtual creates a virtual output other programs can connect to.
func OpenVirtual(name string) (*Out, error) {
	drv, err := driver()
	if err != nil {
		return nil, err
	}
	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		return nil, fmt.Errorf("open virtual output %q: %w", name, err)
	}
	return newOut(out, true)
}

// Open connects to an existing output port.
func Open(name string) (*Out, error) {
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("find output %q: %w (available: %s)", name, err, midi.GetOutPorts().String())
	}
	return newOut(out, false)
}

func newOut(out drivers.Out, virtual bool) (*Out, error) {
	send, err := midi.SendTo(out)
	if err != nil {
		err = fmt.Errorf("open output %s: %w", out, err)
		return nil, errors.Join(err, out.Close())
	}
	return &Out{out: out, send: send, virtual: virtual}, nil
}

func (o *Out) Send(msg []byte) error {
	return o.send(midi.Message(msg))
}

func (o *Out) Close() error {
	return o.out.Close()
}

func (o *Out) String() string {
	if o.virtual {
		return "virtual:" + o.out.String()
	}
	return o.out.String()
}

// OpenConfigured opens the port described by c: a serial line, an existing
// output, or a new virtual output, in that order of precedence.
func OpenConfigured(ctx context.Context, c PortConfig) (music.Port, error) {
	logger := charmlog.FromContext(ctx)
	switch {
	case c.Serial != "":
		logger.Info("opening serial port", "device", c.Serial, "baud", c.Baud)
		p, err := OpenSerial(c.Serial, c.Baud)
		if err != nil {
			return nil, err
		}
		return p, nil
	case c.Connect != "":
		logger.Info("connecting to", "output", c.Connect)
		p, err := Open(c.Connect)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		logger.Info("opening virtual port", "name", c.Name)
		p, err := OpenVirtual(c.Name)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
