// This file is part of ledcylinder.
//
// ledcylinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ledcylinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ledcylinder.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/prefs"
	"github.com/ledcylinder/ledcylinder/sign"
)

// Error patterns for the config package.
const (
	InvalidValue = "config: %s"
	FileError    = "config: %s: %v"
)

// List of keys used by the Config type.
const (
	KeyWidth        = "display.width"
	KeyHeight       = "display.height"
	KeyBrightness   = "display.brightness"
	KeySink         = "display.sink"
	KeyScale        = "display.scale"
	KeyFPS          = "sign.fps"
	KeyPageTime     = "sign.page"
	KeyFadeTime     = "sign.fade"
	KeyRandom       = "sign.random"
	KeyOPCAddress   = "opc.address"
	KeyEvdevPath    = "evdev.path"
	KeyWebPort      = "web.port"
	KeyMQTTBroker   = "mqtt.broker"
	KeyMQTTControl  = "mqtt.control"
	KeyMQTTStatus   = "mqtt.status"
	KeyMQTTInterval = "mqtt.interval"
)

// SinkKinds lists the valid values for the display.sink key.
var SinkKinds = []string{"usb", "sdl", "term", "opc", "headless"}

// Config is the collection of startup parameters.
type Config struct {
	dict *prefs.Dict

	// display dimensions in LEDs
	Width  prefs.Int
	Height prefs.Int

	// the maximum value of any colour channel in loaded content
	Brightness prefs.Int

	// the kind of display and, for the SDL display, the size of each LED
	// in screen pixels
	Sink  prefs.String
	Scale prefs.Int

	FPS      prefs.Int
	PageTime prefs.Duration
	FadeTime prefs.Duration
	Random   prefs.Bool

	OPCAddress prefs.String
	EvdevPath  prefs.String

	// zero disables the web API
	WebPort prefs.Int

	// an empty broker disables MQTT
	MQTTBroker   prefs.String
	MQTTControl  prefs.String
	MQTTStatus   prefs.String
	MQTTInterval prefs.Duration
}

// NewConfig is the preferred method of initialisation for the Config type.
// All values are set to their defaults.
func NewConfig() (*Config, error) {
	cfg := &Config{
		dict: prefs.NewDict(),
	}

	entries := []struct {
		key  string
		pref prefs.Pref
	}{
		{KeyWidth, &cfg.Width},
		{KeyHeight, &cfg.Height},
		{KeyBrightness, &cfg.Brightness},
		{KeySink, &cfg.Sink},
		{KeyScale, &cfg.Scale},
		{KeyFPS, &cfg.FPS},
		{KeyPageTime, &cfg.PageTime},
		{KeyFadeTime, &cfg.FadeTime},
		{KeyRandom, &cfg.Random},
		{KeyOPCAddress, &cfg.OPCAddress},
		{KeyEvdevPath, &cfg.EvdevPath},
		{KeyWebPort, &cfg.WebPort},
		{KeyMQTTBroker, &cfg.MQTTBroker},
		{KeyMQTTControl, &cfg.MQTTControl},
		{KeyMQTTStatus, &cfg.MQTTStatus},
		{KeyMQTTInterval, &cfg.MQTTInterval},
	}
	for _, e := range entries {
		if err := cfg.dict.Add(e.key, e.pref); err != nil {
			return nil, err
		}
	}

	cfg.Width.SetHookPre(positiveInt("display width"))
	cfg.Height.SetHookPre(positiveInt("display height"))
	cfg.Scale.SetHookPre(positiveInt("display scale"))
	cfg.FPS.SetHookPre(func(v prefs.Value) error {
		if f := v.(int); f < 1 || f > sign.MaxFPS {
			return curated.Errorf(InvalidValue, fmt.Sprintf("fps must be between 1 and %d (%d)", sign.MaxFPS, f))
		}
		return nil
	})
	cfg.PageTime.SetHookPre(positiveDuration("page time"))
	cfg.FadeTime.SetHookPre(positiveDuration("fade time"))
	cfg.MQTTInterval.SetHookPre(positiveDuration("mqtt status interval"))

	cfg.Brightness.SetHookPre(func(v prefs.Value) error {
		if b := v.(int); b < 1 || b > 255 {
			return curated.Errorf(InvalidValue, fmt.Sprintf("brightness must be between 1 and 255 (%d)", b))
		}
		return nil
	})

	cfg.Sink.SetHookPre(func(v prefs.Value) error {
		if !slices.Contains(SinkKinds, v.(string)) {
			return curated.Errorf(InvalidValue, fmt.Sprintf("unknown sink (%s)", v))
		}
		return nil
	})

	cfg.WebPort.SetHookPre(func(v prefs.Value) error {
		if p := v.(int); p < 0 || p > 65535 {
			return curated.Errorf(InvalidValue, fmt.Sprintf("web port out of range (%d)", p))
		}
		return nil
	})

	defaults := []struct {
		key   string
		value prefs.Value
	}{
		{KeyWidth, 128},
		{KeyHeight, 8},
		{KeyBrightness, 255},
		{KeySink, "usb"},
		{KeyScale, 5},
		{KeyFPS, 60},
		{KeyPageTime, 5 * time.Second},
		{KeyFadeTime, time.Second},
		{KeyRandom, false},
		{KeyOPCAddress, "localhost:7890"},
		{KeyEvdevPath, ""},
		{KeyWebPort, 0},
		{KeyMQTTBroker, ""},
		{KeyMQTTControl, "ledcylinder/control"},
		{KeyMQTTStatus, "ledcylinder/status"},
		{KeyMQTTInterval, time.Second},
	}
	for _, d := range defaults {
		if err := cfg.dict.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func positiveInt(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if v.(int) <= 0 {
			return curated.Errorf(InvalidValue, fmt.Sprintf("%s must be positive (%d)", name, v))
		}
		return nil
	}
}

func positiveDuration(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if v.(time.Duration) <= 0 {
			return curated.Errorf(InvalidValue, fmt.Sprintf("%s must be positive (%s)", name, v))
		}
		return nil
	}
}

// Set the value for the key.
func (cfg *Config) Set(key string, value prefs.Value) error {
	return cfg.dict.Set(key, value)
}

// ApplyCommandLine applies any values in the prefs command line stack.
func (cfg *Config) ApplyCommandLine() error {
	return cfg.dict.ApplyCommandLine()
}

// LoadFile reads a YAML document and applies the values it contains. Unknown
// keys are logged and otherwise ignored. An invalid value for a known key is
// an error.
func (cfg *Config) LoadFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return curated.Errorf(FileError, path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return curated.Errorf(FileError, path, err)
	}

	values := make(map[string]any)
	flatten("", doc, values)

	for _, key := range sortedKeys(values) {
		if _, ok := cfg.dict.Lookup(key); !ok {
			logger.Logf(logger.Allow, "config", "%s: ignoring unknown key (%s)", path, key)
			continue
		}
		if values[key] == nil {
			continue
		}
		if err := cfg.dict.Set(key, values[key]); err != nil {
			return curated.Errorf(FileError, path, err)
		}
	}

	return nil
}

// flatten nested maps into dotted keys
func flatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Params returns the parameters for the sign controller.
func (cfg *Config) Params() sign.Params {
	return sign.Params{
		FPS:            cfg.FPS.Get().(int),
		PageTime:       cfg.PageTime.Get().(time.Duration),
		FadeTime:       cfg.FadeTime.Get().(time.Duration),
		RandomizePages: cfg.Random.Get().(bool),
	}
}

func (cfg *Config) String() string {
	return cfg.dict.String()
}
