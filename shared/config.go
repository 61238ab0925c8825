package shared

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "config.yaml"

type PortConfig struct {
	Name    string `yaml:"name"`    // name of the virtual port we open
	Connect string `yaml:"connect"` // existing output port, instead of a virtual one
	Serial  string `yaml:"serial"`  // serial device, instead of rtmidi
	Baud    int    `yaml:"baud"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type SurfaceConfig struct {
	Channel          int  `yaml:"channel"` // 1-16, as displayed
	VelocityOn       int  `yaml:"velocity_on"`
	VelocityOff      int  `yaml:"velocity_off"`
	Hold             bool `yaml:"hold"`
	ReleaseOnHoldOff bool `yaml:"release_on_hold_off"`
}

type RecordConfig struct {
	File     string  `yaml:"file"`
	BPM      float64 `yaml:"bpm"`
	Quantize bool    `yaml:"quantize"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Port    PortConfig    `yaml:"port"`
	Window  WindowConfig  `yaml:"window"`
	Surface SurfaceConfig `yaml:"surface"`
	Record  RecordConfig  `yaml:"record"`
	Log     LogConfig     `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Port: PortConfig{
			Name: AppName,
			Baud: 31250,
		},
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			FPS:    60,
		},
		Surface: SurfaceConfig{
			Channel:    1,
			VelocityOn: MaxDataValue,
		},
		Record: RecordConfig{
			BPM: 120,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. A missing file is only an
// error when it is not the default one.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && filename == DefaultConfigFile {
			return config, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	if err := config.Decode(file); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) Decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() (errs error) {
	if c.Port.Name == "" && c.Port.Connect == "" && c.Port.Serial == "" {
		errs = errors.Join(errs, errors.New("port: one of name, connect or serial is required"))
	}
	if c.Port.Serial != "" && c.Port.Baud <= 0 {
		errs = errors.Join(errs, fmt.Errorf("port.baud: must be positive, got %d", c.Port.Baud))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = errors.Join(errs, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS <= 0 || c.Window.FPS > 1000 {
		errs = errors.Join(errs, fmt.Errorf("window.fps: must be in 1-1000, got %d", c.Window.FPS))
	}
	if c.Surface.Channel < 1 || c.Surface.Channel > NUM_CHANNELS {
		errs = errors.Join(errs, fmt.Errorf("surface.channel: must be in 1-%d, got %d", NUM_CHANNELS, c.Surface.Channel))
	}
	if !isData(c.Surface.VelocityOn) {
		errs = errors.Join(errs, fmt.Errorf("surface.velocity_on: must be in 0-127, got %d", c.Surface.VelocityOn))
	}
	if !isData(c.Surface.VelocityOff) {
		errs = errors.Join(errs, fmt.Errorf("surface.velocity_off: must be in 0-127, got %d", c.Surface.VelocityOff))
	}
	if c.Record.File != "" && c.Record.BPM <= 0 {
		errs = errors.Join(errs, fmt.Errorf("record.bpm: must be positive, got %g", c.Record.BPM))
	}
	return errs
}

func isData(v int) bool {
	return v >= 0 && v <= MaxDataValue
}
