package port

import (
	"fmt"
	"strings"

	"github.com/albenik/go-serial/v2"
)

const (
	DINBaudRate    = 31250
	BridgeBaudRate = 115200
)

// Serial writes raw MIDI bytes to a serial line, either a DIN MIDI interface
// or a USB-serial bridge.
type Serial struct {
	name string
	port *serial.Port
}

func OpenSerial(name string, baud int) (*Serial, error) {
	if baud <= 0 {
		return nil, fmt.Errorf("serial %s: invalid baud rate %d", name, baud)
	}
	p, err := serial.Open(name,
		serial.WithBaudrate(baud),
		serial.WithDataBits(8),
		serial.WithParity(serial.NoParity),
		serial.WithStopBits(serial.OneStopBit),
	)
	if err != nil {
		if ports, lerr := serial.GetPortsList(); lerr == nil && len(ports) > 0 {
			return nil, fmt.Errorf("open serial %s: %w (found: %s)", name, err, strings.Join(ports, ", "))
		}
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	return &Serial{name: name, port: p}, nil
}

func (s *Serial) Send(msg []byte) error {
	n, err := s.port.Write(msg)
	if err != nil {
		return err
	}
	if n != len(msg) {
		return fmt.Errorf("serial %s: short write %d/%d", s.name, n, len(msg))
	}
	return nil
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) String() string {
	return "serial:" + s.name
}
