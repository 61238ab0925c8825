package music

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	. "github.com/JeanRibes/midi-surface/shared"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2/smf"
	"gitlab.com/gomidi/quantizer/lib/quantizer"
)

const TICKS = smf.MetricTicks(960)

const RECORD_PREALLOCATION = 128

// Recorder is a Port that keeps a copy of everything sent through it and
// writes it as a Standard MIDI File when closed.
type Recorder struct {
	port     Port
	file     string
	bpm      float64
	quantize bool

	track   smf.Track
	started bool
	last    time.Time
	now     func() time.Time

	logger *charmlog.Logger
}

func NewRecorder(port Port, file string, bpm float64, quantize bool, logger *charmlog.Logger) *Recorder {
	if logger == nil {
		logger = charmlog.Default()
	}
	r := &Recorder{
		port:     port,
		file:     file,
		bpm:      bpm,
		quantize: quantize,
		track:    make(smf.Track, 0, RECORD_PREALLOCATION),
		now:      time.Now,
		logger:   logger,
	}
	r.track.Add(0, smf.MetaTrackSequenceName(AppName))
	r.track.Add(0, smf.MetaTempo(bpm))
	return r
}

// Send forwards msg to the wrapped port and records it, even if the port
// failed, so the file shows what the surface produced.
func (r *Recorder) Send(msg []byte) error {
	err := r.port.Send(msg)
	r.record(msg)
	return err
}

func (r *Recorder) record(msg []byte) {
	now := r.now()
	var delta uint32
	if r.started {
		delta = TICKS.Ticks(r.bpm, now.Sub(r.last))
	}
	r.started = true
	r.last = now
	r.track.Add(delta, append([]byte(nil), msg...))
}

// Len is the number of recorded messages.
func (r *Recorder) Len() int {
	// two meta events at the start
	return len(r.track) - 2
}

func (r *Recorder) String() string {
	return r.port.String()
}

// WriteTo writes the recording as a single track SMF.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	track := append(smf.Track(nil), r.track...)
	track.Close(0)

	f := smf.New()
	f.TimeFormat = TICKS
	if err := f.Add(track); err != nil {
		return 0, err
	}
	if !r.quantize {
		return f.WriteTo(w)
	}

	var raw, quantized bytes.Buffer
	if _, err := f.WriteTo(&raw); err != nil {
		return 0, err
	}
	if err := quantizer.Quantize(&raw, &quantized); err != nil {
		return 0, fmt.Errorf("quantize: %w", err)
	}
	return quantized.WriteTo(w)
}

func (r *Recorder) save() error {
	out, err := os.Create(r.file)
	if err != nil {
		return err
	}
	if _, err := r.WriteTo(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Close writes the file and closes the wrapped port.
func (r *Recorder) Close() (errs error) {
	if r.Len() > 0 {
		if err := r.save(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("record %s: %w", r.file, err))
		} else {
			r.logger.Info("saved recording", "path", r.file, "messages", r.Len())
		}
	} else {
		r.logger.Info("nothing recorded", "path", r.file)
	}
	if err := r.port.Close(); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}
