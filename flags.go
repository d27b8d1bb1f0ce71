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

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ledcylinder/ledcylinder/config"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/modalflag"
	"github.com/ledcylinder/ledcylinder/prefs"
	"github.com/ledcylinder/ledcylinder/resources"
)

// flags shared by every mode that drives a display.
type displayFlags struct {
	width       *int
	height      *int
	fps         *int
	page        *time.Duration
	fade        *time.Duration
	limit       *int
	random      *bool
	sink        *string
	scale       *int
	opc         *string
	evdev       *string
	web         *int
	mqtt        *string
	configFile  *string
	prefs       *string
	testPattern *bool
	log         *bool
	verbose     *bool

	// the configuration key for flags that have one. only flags that appear
	// on the command line (or in the environment) are applied
	keys map[string]func() (string, prefs.Value)
}

func addDisplayFlags(md *modalflag.Modes) *displayFlags {
	df := &displayFlags{
		width:       md.AddInt("W", 128, "display width in LEDs"),
		height:      md.AddInt("H", 8, "display height in LEDs"),
		fps:         md.AddInt("fps", 60, "frames per second"),
		page:        md.AddDuration("page", 5*time.Second, "time each page is shown"),
		fade:        md.AddDuration("fade", time.Second, "cross-fade time between pages"),
		limit:       md.AddInt("limit", 255, "brightness limit for loaded content (1 to 255)"),
		random:      md.AddBool("random", false, "show pages in random order"),
		sink:        md.AddString("sink", "usb", fmt.Sprintf("display: %s", strings.Join(config.SinkKinds, ", "))),
		scale:       md.AddInt("scale", 5, "size of each LED in pixels (sdl display only)"),
		opc:         md.AddString("opc", "localhost:7890", "address of OPC server (opc display only)"),
		evdev:       md.AddString("evdev", "", "input event device for the flash and power keys"),
		web:         md.AddInt("web", 0, "port for web API. zero disables"),
		mqtt:        md.AddString("mqtt", "", "address of MQTT broker. empty disables"),
		configFile:  md.AddString("config", "", "YAML configuration file. the default file is used if it exists"),
		prefs:       md.AddString("prefs", "", "configuration values. eg. \"sign.fps::30; display.width::64\""),
		testPattern: md.AddBool("testpattern", false, "add a test pattern as the first page"),
		log:         md.AddBool("log", false, "echo log to stdout"),
		verbose:     md.AddBool("v", false, "verbose logging"),
	}

	df.keys = map[string]func() (string, prefs.Value){
		"W":      func() (string, prefs.Value) { return config.KeyWidth, *df.width },
		"H":      func() (string, prefs.Value) { return config.KeyHeight, *df.height },
		"fps":    func() (string, prefs.Value) { return config.KeyFPS, *df.fps },
		"page":   func() (string, prefs.Value) { return config.KeyPageTime, *df.page },
		"fade":   func() (string, prefs.Value) { return config.KeyFadeTime, *df.fade },
		"limit":  func() (string, prefs.Value) { return config.KeyBrightness, *df.limit },
		"random": func() (string, prefs.Value) { return config.KeyRandom, *df.random },
		"sink":   func() (string, prefs.Value) { return config.KeySink, *df.sink },
		"scale":  func() (string, prefs.Value) { return config.KeyScale, *df.scale },
		"opc":    func() (string, prefs.Value) { return config.KeyOPCAddress, *df.opc },
		"evdev":  func() (string, prefs.Value) { return config.KeyEvdevPath, *df.evdev },
		"web":    func() (string, prefs.Value) { return config.KeyWebPort, *df.web },
		"mqtt":   func() (string, prefs.Value) { return config.KeyMQTTBroker, *df.mqtt },
	}

	return df
}

// flags used only by the RUN mode.
type runFlags struct {
	keys      *bool
	statsview *bool
}

func addRunFlags(md *modalflag.Modes) *runFlags {
	return &runFlags{
		keys:      md.AddBool("keys", false, "read flash and power keys from the terminal"),
		statsview: md.AddBool("statsview", false, "run stats server"),
	}
}

// config creates the configuration for the mode. Values are applied in order
// of increasing precedence: defaults, the configuration file, the -prefs
// string and finally individual flags.
func (df *displayFlags) config(md *modalflag.Modes) (*config.Config, error) {
	if *df.log {
		logger.SetEcho(md.Output, false)
	} else {
		logger.SetEcho(nil, false)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	if *df.configFile != "" {
		if err := cfg.LoadFile(fs, *df.configFile); err != nil {
			return nil, err
		}
	} else if fn, err := resources.JoinPath(fs, resources.DefaultConfigFile); err != nil {
		logger.Logf(logger.Allow, "config", "%v", err)
	} else if ok, _ := afero.Exists(fs, fn); ok {
		if err := cfg.LoadFile(fs, fn); err != nil {
			return nil, err
		}
	}

	if *df.prefs != "" {
		prefs.PushCommandLineStack(*df.prefs)
		err := cfg.ApplyCommandLine()
		unused := prefs.PopCommandLineStack()
		if err != nil {
			return nil, err
		}
		if unused != "" {
			logger.Logf(logger.Allow, "config", "ignoring unknown values: %s", unused)
		}
	}

	var ferr error
	md.Visit(func(flag string) {
		if ferr != nil {
			return
		}
		if f, ok := df.keys[flag]; ok {
			key, value := f()
			ferr = cfg.Set(key, value)
		}
	})
	if ferr != nil {
		return nil, ferr
	}

	return cfg, nil
}
