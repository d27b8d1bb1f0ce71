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

package webapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/sign"
	"github.com/ledcylinder/ledcylinder/test"
	"github.com/ledcylinder/ledcylinder/webapi"
)

type fixedStatus struct {
	status sign.Status
}

func (f *fixedStatus) Status() sign.Status {
	return f.status
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	b, err := io.ReadAll(rec.Result().Body)
	test.DemandSuccess(t, err)
	return rec.Code, string(b)
}

func drain(q *command.Queue) []command.Command {
	var cmds []command.Command
	q.Drain(func(c command.Command) {
		cmds = append(cmds, c)
	})
	return cmds
}

func TestStatus(t *testing.T) {
	st := &fixedStatus{status: sign.Status{Pages: []int{2}, Output: true}}
	q := &command.Queue{}
	h := webapi.Handler(st, q)

	code, body := get(t, h, "/")
	test.ExpectEquality(t, code, http.StatusOK)

	var j map[string]any
	test.DemandSuccess(t, json.Unmarshal([]byte(body), &j))
	test.ExpectEquality(t, j["page"].(float64), 2)
	test.ExpectEquality(t, j["output"].(bool), true)
	test.ExpectEquality(t, j["flash"].(bool), false)

	st.status = sign.Status{Pages: []int{0, 1}, Output: true, Flash: true}
	_, body = get(t, h, "/")
	j = nil
	test.DemandSuccess(t, json.Unmarshal([]byte(body), &j))
	test.ExpectEquality(t, len(j["page"].([]any)), 2)
	test.ExpectEquality(t, j["flash"].(bool), true)

	code, _ = get(t, h, "/no_such_path")
	test.ExpectEquality(t, code, http.StatusNotFound)

	test.ExpectEquality(t, q.Len(), 0)
}

func TestControl(t *testing.T) {
	st := &fixedStatus{status: sign.Status{Pages: []int{0}, Output: true}}
	q := &command.Queue{}
	h := webapi.Handler(st, q)

	for _, p := range []string{"/flash_on", "/flash_off", "/toggle_power"} {
		code, body := get(t, h, p)
		test.ExpectEquality(t, code, http.StatusOK)
		test.ExpectEquality(t, body, "ok")
	}

	cmds := drain(q)
	test.DemandEquality(t, len(cmds), 3)
	test.ExpectEquality(t, cmds[0], command.FlashOn)
	test.ExpectEquality(t, cmds[1], command.FlashOff)
	test.ExpectEquality(t, cmds[2], command.TogglePower)
}

func TestOutput(t *testing.T) {
	st := &fixedStatus{status: sign.Status{Pages: []int{0}, Output: true}}
	q := &command.Queue{}
	h := webapi.Handler(st, q)

	// output is already on
	_, body := get(t, h, "/output_on")
	test.ExpectEquality(t, body, "ok")
	test.ExpectEquality(t, q.Len(), 0)

	_, body = get(t, h, "/output_off")
	test.ExpectEquality(t, body, "ok")
	cmds := drain(q)
	test.DemandEquality(t, len(cmds), 1)
	test.ExpectEquality(t, cmds[0], command.TogglePower)

	st.status.Output = false
	get(t, h, "/output_off")
	test.ExpectEquality(t, q.Len(), 0)
	get(t, h, "/output_on")
	test.ExpectEquality(t, q.Len(), 1)
}

func TestOutputRepeated(t *testing.T) {
	st := &fixedStatus{status: sign.Status{Pages: []int{0}, Output: true}}
	q := &command.Queue{}
	h := webapi.Handler(st, q)

	// requests arriving before the status changes do not undo each other
	get(t, h, "/output_off")
	get(t, h, "/output_off")
	test.ExpectEquality(t, q.Len(), 1)

	get(t, h, "/output_on")
	test.ExpectEquality(t, q.Len(), 2)
	get(t, h, "/output_on")
	test.ExpectEquality(t, q.Len(), 2)

	// the two toggles cancel out so the status is unchanged
	drain(q)
	get(t, h, "/output_on")
	test.ExpectEquality(t, q.Len(), 0)

	get(t, h, "/output_off")
	test.ExpectEquality(t, q.Len(), 1)
	drain(q)
	st.status.Output = false
	get(t, h, "/output_off")
	test.ExpectEquality(t, q.Len(), 0)
}

func TestRunShutdown(t *testing.T) {
	st := &fixedStatus{status: sign.Status{Pages: []int{0}, Output: true}}
	srv := webapi.NewServer(0, st)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, &command.Queue{})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		test.ExpectSuccess(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shutdown")
	}
}
