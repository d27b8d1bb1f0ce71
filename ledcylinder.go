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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/config"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/hardware/headless"
	"github.com/ledcylinder/ledcylinder/hardware/opc"
	"github.com/ledcylinder/ledcylinder/hardware/sdlsim"
	"github.com/ledcylinder/ledcylinder/hardware/termsim"
	"github.com/ledcylinder/ledcylinder/hardware/usb"
	"github.com/ledcylinder/ledcylinder/loader"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/modalflag"
	"github.com/ledcylinder/ledcylinder/mqttcontrol"
	"github.com/ledcylinder/ledcylinder/page"
	"github.com/ledcylinder/ledcylinder/performance"
	"github.com/ledcylinder/ledcylinder/prefs"
	"github.com/ledcylinder/ledcylinder/sign"
	"github.com/ledcylinder/ledcylinder/statsview"
	"github.com/ledcylinder/ledcylinder/userinput/evdev"
	"github.com/ledcylinder/ledcylinder/userinput/terminal"
	"github.com/ledcylinder/ledcylinder/version"
	"github.com/ledcylinder/ledcylinder/webapi"
)

// flags can be set from the environment with this prefix.
const envPrefix = "LEDCYLINDER_"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// stop the main thread's interrupt signal handling. used when the mode
	// provides its own handler so that the sign can be stopped gracefully.
	//
	// takes a chan struct{} argument, which is closed once the main thread's
	// handler has been removed.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of windows
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the window how we want. Instead the creator is a channel which
// accepts a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread. It
	// should service all gui events that are not safe to do in sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this is
// required because SDL requires window event handling (including creation) to
// occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// noIntSig asks the main thread to stop handling interrupt signals and waits
// until it has done so. a handler registered after noIntSig() returns will not
// be affected by the main thread.
func (ms *mainSync) noIntSig() {
	done := make(chan struct{})
	ms.state <- stateRequest{req: reqNoIntSig, args: done}
	<-done
}

// stopIntSig removes the main thread's interrupt handler and acknowledges the
// reqNoIntSig request. other handlers for the signal are left in place
func stopIntSig(intChan chan os.Signal, state stateRequest) {
	done, ok := state.args.(chan struct{})
	if !ok {
		panic(fmt.Sprintf("%s requires a chan struct{} argument", reqNoIntSig))
	}
	signal.Stop(intChan)
	close(done)
}

func newMainSync() *mainSync {
	return &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}
}

// #mainthread
func main() {
	sync := newMainSync()

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Args[1:])

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// an interface holding a nil pointer is not itself nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				stopIntSig(intChan, state)
			}

		default:
			// service the most recently created gui. when there is no gui
			// the loop sleeps briefly rather than spinning
			if gui != nil {
				gui.Service()
			} else {
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout, EnvPrefix: envPrefix}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "CHECK", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		// 10
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "CHECK":
		err = check(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		ver, rev, _ := version.Version()
		fmt.Fprintf(md.Output, "%s %s (%s)\n", version.ApplicationName, ver, rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		// 20
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func run(md *modalflag.Modes, ms *mainSync) error {
	md.NewMode()

	df := addDisplayFlags(md)
	rf := addRunFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := df.config(md)
	if err != nil {
		return err
	}

	pages, err := loadPages(cfg, md.RemainingArgs(), *df.testPattern)
	if err != nil {
		return err
	}

	logger.Log(logger.Allow, "ledcylinder", version.String())
	if *df.verbose {
		logger.Log(logger.Allow, "config", "\n"+cfg.String())
	}

	width := cfg.Width.Get().(int)
	height := cfg.Height.Get().(int)
	queue := &command.Queue{}

	var sink hardware.Sink

	switch cfg.Sink.Get().(string) {
	case "usb":
		sink, err = usb.NewUSB(width, height)
		if err != nil {
			return err
		}
	case "opc":
		sink = opc.NewOPC(cfg.OPCAddress.Get().(string), width, height)
	case "term":
		sink, err = termsim.NewTerm(width, height, queue)
		if err != nil {
			return err
		}
	case "headless":
		sink = headless.NewHeadless(width, height, 0)
	case "sdl":
		scale := cfg.Scale.Get().(int)
		ms.creator <- func() (GuiCreator, error) {
			return sdlsim.NewSDL(width, height, scale, queue)
		}

		// wait for creator result. the window is destroyed by the main
		// thread when the quit request is received
		select {
		case g := <-ms.creation:
			sink = g.(*sdlsim.SDL)
		case err := <-ms.creationError:
			return err
		}
	}

	ctl, err := sign.NewController(cfg.Params(), sink, queue)
	if err != nil {
		sink.Stop()
		return err
	}
	ctl.Verbose = logger.Verbosity(*df.verbose)
	for _, p := range pages {
		if err := ctl.AddPage(p); err != nil {
			sink.Stop()
			return err
		}
	}

	// turn off fallback ctrl-c handling so that the sign can be stopped
	// gracefully. the display is blanked and released by the sink
	ms.noIntSig()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *rf.statsview {
		statsview.Launch(ctx, os.Stdout)
	}

	var producers []command.Producer

	if path := cfg.EvdevPath.Get().(string); path != "" {
		producers = append(producers, evdev.NewEvdev(path))
	}

	if *rf.keys {
		if cfg.Sink.Get().(string) == "term" {
			logger.Log(logger.Allow, "ledcylinder", "ignoring -keys. the term display reads the keyboard itself")
		} else {
			producers = append(producers, terminal.NewTerminal(os.Stdin))
		}
	}

	if port := cfg.WebPort.Get().(int); port > 0 {
		producers = append(producers, webapi.NewServer(port, ctl))
	}

	if broker := cfg.MQTTBroker.Get().(string); broker != "" {
		producers = append(producers, mqttcontrol.NewControl(mqttcontrol.Options{
			Broker:       broker,
			ControlTopic: cfg.MQTTControl.Get().(string),
			StatusTopic:  cfg.MQTTStatus.Get().(string),
			Interval:     cfg.MQTTInterval.Get().(time.Duration),
		}, ctl))
	}

	pctx, cancelProducers := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for _, pr := range producers {
		wg.Add(1)
		go func(pr command.Producer) {
			defer wg.Done()
			if err := pr.Run(pctx, queue); err != nil {
				logger.Logf(logger.Allow, "ledcylinder", "%v", err)
			}
		}(pr)
	}

	err = ctl.Run(ctx)

	cancelProducers()
	wg.Wait()

	return err
}

func check(md *modalflag.Modes) error {
	md.NewMode()

	df := addDisplayFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg, err := df.config(md)
	if err != nil {
		return err
	}

	if *df.verbose {
		fmt.Fprint(md.Output, cfg.String())
	}

	if *df.testPattern {
		fmt.Fprintln(md.Output, "test pattern")
	}

	ld, err := loader.NewLoader(afero.NewOsFs(), cfg.Width.Get().(int), cfg.Height.Get().(int), cfg.Brightness.Get().(int))
	if err != nil {
		return err
	}
	ld.Verbose = logger.Verbosity(*df.verbose)

	var loaded int
	for _, fn := range md.RemainingArgs() {
		pages, err := ld.LoadAll([]string{fn})
		if err != nil {
			fmt.Fprintf(md.Output, "%s: %v\n", fn, err)
			continue
		}
		for _, p := range pages {
			fmt.Fprintf(md.Output, "%s: %s\n", fn, loader.Describe(p))
		}
		loaded += len(pages)
	}

	if loaded == 0 && !*df.testPattern {
		return fmt.Errorf("no pages loaded")
	}

	fmt.Fprintf(md.Output, "%d pages ok\n", loaded)

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	df := addDisplayFlags(md)
	uncapped := md.AddBool("uncapped", false, "produce frames as quickly as possible")
	duration := md.AddDuration("duration", 5*time.Second, "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	cfg, err := df.config(md)
	if err != nil {
		return err
	}

	pages, err := loadPages(cfg, md.RemainingArgs(), *df.testPattern || len(md.RemainingArgs()) == 0)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, cfg.Params(), cfg.Width.Get().(int), cfg.Height.Get().(int),
		pages, *uncapped, *duration)
}

// loadPages loads content for the display described by the configuration. The
// test pattern, if requested, is the first page.
func loadPages(cfg *config.Config, paths []string, testPattern bool) ([]page.Page, error) {
	width := cfg.Width.Get().(int)
	height := cfg.Height.Get().(int)
	limit := cfg.Brightness.Get().(int)

	ld, err := loader.NewLoader(afero.NewOsFs(), width, height, limit)
	if err != nil {
		return nil, err
	}

	var pages []page.Page
	if testPattern {
		pages = append(pages, page.NewTestPattern(width, height, float64(limit)/255.0))
		if len(paths) == 0 {
			return pages, nil
		}
	}

	loaded, err := ld.LoadAll(paths)
	if err != nil && len(pages) == 0 {
		return nil, err
	}

	return append(pages, loaded...), nil
}
