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

package performance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/hardware/headless"
	"github.com/ledcylinder/ledcylinder/page"
	"github.com/ledcylinder/ledcylinder/sign"
)

// LeadTime is the time the controller runs for before measurement begins.
// This allows the frame rate to settle down.
var LeadTime = 2 * time.Second

// Check the performance of the sign controller with the supplied pages and
// parameters. The controller runs with a headless sink of the given size
// for the specified duration, after the lead time has elapsed.
//
// If uncapped is true then the controller is stepped as quickly as possible,
// otherwise it runs at the frame rate in the parameters.
func Check(output io.Writer, profile Profile, params sign.Params, width int, height int,
	pages []page.Page, uncapped bool, duration time.Duration) error {

	if duration <= 0 {
		return curated.Errorf("performance: duration must be positive")
	}

	sink := headless.NewHeadless(width, height, 0)

	ctl, err := sign.NewController(params, sink, &command.Queue{})
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	for _, p := range pages {
		if err := ctl.AddPage(p); err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}
	if ctl.NumPages() == 0 {
		return curated.Errorf(sign.NoPages)
	}

	var startFrame int
	var endFrame int

	runner := func() error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// the lead time and the measurement period. the start frame is
		// recorded when the lead time has elapsed
		lead := time.AfterFunc(LeadTime, func() {
			startFrame = sink.Frames()
			time.AfterFunc(duration, cancel)
		})
		defer lead.Stop()

		if uncapped {
			defer sink.Stop()
			for ctx.Err() == nil {
				ctl.Step()
			}
			return nil
		}

		return ctl.Run(ctx)
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	endFrame = sink.Frames()

	numFrames := endFrame - startFrame
	fps, accuracy := CalcFPS(params.FPS, numFrames, duration)
	if uncapped {
		output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) uncapped\n", fps, numFrames, duration.Seconds())))
	} else {
		output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, duration.Seconds(), accuracy)))
	}

	return nil
}
