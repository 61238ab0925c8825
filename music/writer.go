package music

import (
	"errors"
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
)

var ErrEmptyMessage = errors.New("empty MIDI message")

// Port is where raw MIDI messages end up.
type Port interface {
	Send(msg []byte) error
	Close() error
	String() string
}

// LastMessage is what the status panel shows: the bytes of the last message
// sent, zero padded, and how many of them were sent.
type LastMessage struct {
	Bytes [3]byte
	Len   int
}

// Cells returns the three display cells, "--" for absent bytes.
func (m LastMessage) Cells() [3]string {
	cells := [3]string{}
	for i := range cells {
		if i < m.Len {
			cells[i] = fmt.Sprintf("%02X", m.Bytes[i])
		} else {
			cells[i] = "--"
		}
	}
	return cells
}

func (m LastMessage) String() string {
	cells := m.Cells()
	return strings.Join(cells[:], " ")
}

// Writer encodes channel voice messages and forwards them to a Port.
type Writer struct {
	port   Port
	last   LastMessage
	logger *charmlog.Logger
}

func NewWriter(port Port, logger *charmlog.Logger) *Writer {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Writer{
		port:   port,
		logger: logger,
	}
}

// Send forwards msg verbatim and records it as the last message, whether or
// not the port accepted it.
func (w *Writer) Send(msg []byte) error {
	if len(msg) == 0 {
		return ErrEmptyMessage
	}
	err := w.port.Send(msg)

	for i := range w.last.Bytes {
		if i < len(msg) {
			w.last.Bytes[i] = msg[i]
		} else {
			w.last.Bytes[i] = 0
		}
	}
	w.last.Len = len(msg)

	w.logger.Debug("send", "bytes", w.last, "msg", midi.Message(msg))
	if err != nil {
		return fmt.Errorf("send to %s: %w", w.port, err)
	}
	return nil
}

func (w *Writer) Send2(status, data byte) error {
	return w.Send([]byte{status, data})
}

func (w *Writer) Send3(status, data1, data2 byte) error {
	return w.Send([]byte{status, data1, data2})
}

func (w *Writer) Last() LastMessage {
	return w.last
}

func (w *Writer) Close() error {
	return w.port.Close()
}
