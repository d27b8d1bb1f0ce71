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

package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/sign"
)

// Sentinal error returned when the server cannot listen on the requested
// port.
const ListenError = "webapi: %v"

// the time allowed for open requests to finish when the server is shutdown
const shutdownTimeout = time.Second

// StatusProvider returns the current status of the sign. It is implemented by
// sign.Controller.
type StatusProvider interface {
	Status() sign.Status
}

// Server implements the command.Producer interface.
type Server struct {
	port   int
	status StatusProvider
}

// NewServer is the preferred method of initialisation for the Server type. A
// port of zero chooses a free port when the server is run.
func NewServer(port int, status StatusProvider) *Server {
	return &Server{
		port:   port,
		status: status,
	}
}

// Run implements the command.Producer interface. The server is shutdown when
// the context is done.
func (srv *Server) Run(ctx context.Context, q *command.Queue) error {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", srv.port))
	if err != nil {
		return curated.Errorf(ListenError, err)
	}
	logger.Logf(logger.Allow, "webapi", "listening on %s", l.Addr())

	hs := &http.Server{
		Handler:           Handler(srv.status, q),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		hs.Shutdown(sctx)
	})
	defer stop()

	err = hs.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	logger.Logf(logger.Allow, "webapi", "%v", err)
	return curated.Errorf(ListenError, err)
}

// Handler returns the http.Handler for the web interface. Control requests
// push commands onto the queue.
func Handler(status StatusProvider, q *command.Queue) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status.Status()); err != nil {
			logger.Logf(logger.Allow, "webapi", "%v", err)
		}
	})

	push := func(cmd command.Command) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			q.Push(cmd)
			ok(w)
		}
	}

	mux.HandleFunc("/flash_on", push(command.FlashOn))
	mux.HandleFunc("/flash_off", push(command.FlashOff))
	mux.HandleFunc("/toggle_power", push(command.TogglePower))

	var out outputTracker
	output := func(on bool) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if out.set(status.Status().Output, on) {
				q.Push(command.TogglePower)
			}
			ok(w)
		}
	}

	mux.HandleFunc("/output_on", output(true))
	mux.HandleFunc("/output_off", output(false))

	return mux
}

// outputTracker counts the TogglePower commands pushed by the output requests
// that the published status has not caught up with yet
type outputTracker struct {
	crit    sync.Mutex
	pending int
	seen    bool
}

// set returns true if a TogglePower command is needed to move the output to
// the requested state. the current value is the output in the latest status
func (tr *outputTracker) set(current bool, on bool) bool {
	tr.crit.Lock()
	defer tr.crit.Unlock()

	// a change in the status means the pending toggles have been applied
	if current != tr.seen {
		tr.seen = current
		tr.pending = 0
	}

	expected := current != (tr.pending%2 == 1)
	if expected == on {
		return false
	}
	tr.pending++
	return true
}

func ok(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
