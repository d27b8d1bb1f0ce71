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

package command

import "sync"

// Queue is an unbounded, multi-producer, single-consumer queue of commands.
// Insertion order is preserved. The zero value is ready to use.
type Queue struct {
	crit sync.Mutex

	// commands waiting to be drained
	pending []Command

	// the slice handed to the consumer during Drain(). swapped with pending
	// so that neither slice is reallocated in the steady state
	draining []Command
}

// Push adds a command to the end of the queue. Push never blocks for longer
// than it takes to append to a slice and never fails.
func (q *Queue) Push(c Command) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.pending = append(q.pending, c)
}

// Drain calls f for every command queued at the time of the call, in arrival
// order, and removes them from the queue. If the queue is empty, f is not
// called and Drain returns immediately.
//
// Commands pushed while f is running are left for the next call to Drain.
func (q *Queue) Drain(f func(Command)) {
	q.crit.Lock()
	q.pending, q.draining = q.draining[:0], q.pending
	q.crit.Unlock()

	for _, c := range q.draining {
		f(c)
	}
}

// Len returns the number of commands waiting in the queue.
func (q *Queue) Len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return len(q.pending)
}
