// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package clsim

import (
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

type (
	eventCallback struct {
		status   cl.CommandExecutionStatus
		notify   cl.EventNotify
		userData any
	}

	event struct {
		objectHeader
		ctx *context
		// q is nil for user events.
		q         *queue
		cmdType   cl.CommandType
		status    cl.CommandExecutionStatus
		callbacks []eventCallback
		// Queued, submit, start, and end times.
		times [4]uint64
	}

	// command is a command waiting in a queue.
	command struct {
		ev       *event
		waitList []*event
		// exec runs the command and returns its status.
		exec func() cl.Int
	}
)

func (e *event) destroy(s *Sim) {
	if e.q != nil {
		s.release(e.q)
		return
	}
	s.release(e.ctx)
}

func (e *event) done() bool {
	return e.status <= cl.Complete
}

// setStatus changes the status of an event and schedules the callbacks
// registered for that status.
func (e *event) setStatus(deferred *[]func(), status cl.CommandExecutionStatus) {
	e.status = status
	id := cl.Event(e.id)
	kept := e.callbacks[:0]
	for _, cb := range e.callbacks {
		if cb.status < status && status >= cl.Complete {
			kept = append(kept, cb)
			continue
		}
		cb := cb
		// Errors are reported to callbacks registered for completion.
		*deferred = append(*deferred, func() { cb.notify(id, status, cb.userData) })
	}
	e.callbacks = kept
}

// waitEvents returns the events of a wait list.
func (s *Sim) waitEvents(ctx *context, waitList []cl.Event) ([]*event, cl.Int) {
	events := make([]*event, len(waitList))
	for i, id := range waitList {
		e, ok := lookup[*event](s, uintptr(id))
		if !ok {
			return nil, cl.InvalidEventWaitList
		}
		if e.ctx != ctx {
			return nil, cl.InvalidContext
		}
		events[i] = e
	}
	return events, cl.Success
}

// submit appends a command to a queue. The returned event is retained by
// the command until the command completes.
func (s *Sim) submit(q *queue, cmdType cl.CommandType, waitList []*event, exec func() cl.Int) *event {
	ev := &event{ctx: q.ctx, q: q, cmdType: cmdType, status: cl.Queued}
	ev.times[0] = s.now()
	s.add(ev, kindEvent)
	s.retain(q)
	for _, e := range waitList {
		s.retain(e)
	}
	q.pending = append(q.pending, &command{ev: ev, waitList: waitList, exec: exec})
	return ev
}

// step runs the first command of a queue if its wait list is complete. It
// returns false if the queue cannot progress.
func (s *Sim) step(q *queue, deferred *[]func()) bool {
	if len(q.pending) == 0 {
		return false
	}
	cmd := q.pending[0]
	status := cl.Complete
	for _, e := range cmd.waitList {
		if !e.done() {
			return false
		}
		if e.status < 0 {
			status = cl.CommandExecutionStatus(cl.ExecStatusErrorForEventsInWaitList)
		}
	}
	q.pending = q.pending[1:]
	ev := cmd.ev
	ev.times[1] = s.now()
	if status == cl.Complete {
		ev.setStatus(deferred, cl.Running)
		ev.times[2] = s.now()
		status = cl.CommandExecutionStatus(cmd.exec())
	}
	ev.times[3] = s.now()
	ev.setStatus(deferred, status)
	for _, e := range cmd.waitList {
		s.release(e)
	}
	s.release(ev)
	return true
}

// flush runs all the commands that can run. The simulator must be locked.
// It returns the callbacks to run once the simulator is unlocked.
func (s *Sim) flush() []func() {
	var deferred []func()
	for progress := true; progress; {
		progress = false
		var queues []*queue
		for _, obj := range s.objects {
			if q, ok := obj.(*queue); ok && len(q.pending) > 0 {
				queues = append(queues, q)
			}
		}
		for _, q := range queues {
			for s.step(q, &deferred) {
				progress = true
			}
		}
	}
	s.cond.Broadcast()
	return deferred
}

// wait blocks until all events are done. The simulator must be locked.
func (s *Sim) wait(events ...*event) cl.Int {
	for _, e := range events {
		for !e.done() {
			s.cond.Wait()
		}
	}
	for _, e := range events {
		if e.status < 0 {
			return cl.ExecStatusErrorForEventsInWaitList
		}
	}
	return cl.Success
}

// CreateUserEvent creates an event whose status is set by the user.
func (s *Sim) CreateUserEvent(ctxID cl.Context) (cl.Event, cl.Int) {
	defer s.enter("CreateUserEvent")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	s.retain(ctx)
	ev := &event{ctx: ctx, cmdType: cl.CommandUser, status: cl.Submitted}
	return cl.Event(s.add(ev, kindEvent)), cl.Success
}

// GetEventInfo queries an event.
func (s *Sim) GetEventInfo(id cl.Event, name cl.EventInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetEventInfo")()
	e, ok := lookup[*event](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidEvent
	}
	switch name {
	case cl.EventCommandQueue:
		var q cl.CommandQueue
		if e.q != nil {
			q = cl.CommandQueue(e.q.id)
		}
		return put(hostlayout.Put(value, q))
	case cl.EventCommandType:
		return put(hostlayout.Put(value, e.cmdType))
	case cl.EventReferenceCount:
		return put(hostlayout.Put(value, s.refCount(e)))
	case cl.EventCommandExecutionStatus:
		return put(hostlayout.Put(value, e.status))
	case cl.EventContext:
		return put(hostlayout.Put(value, cl.Context(e.ctx.id)))
	}
	return 0, cl.InvalidValue
}

// GetEventProfilingInfo returns the times of a command in nanoseconds. The
// times are only available for complete commands of queues created with
// cl.QueueProfilingEnable.
func (s *Sim) GetEventProfilingInfo(id cl.Event, name cl.ProfilingInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetEventProfilingInfo")()
	e, ok := lookup[*event](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidEvent
	}
	if e.q == nil || e.q.properties&cl.QueueProfilingEnable == 0 || e.status != cl.Complete {
		return 0, cl.ProfilingInfoNotAvailable
	}
	if name < cl.ProfilingCommandQueued || name > cl.ProfilingCommandEnd {
		return 0, cl.InvalidValue
	}
	return put(hostlayout.Put(value, e.times[name-cl.ProfilingCommandQueued]))
}

// WaitForEvents blocks until all events are complete.
func (s *Sim) WaitForEvents(ids []cl.Event) cl.Int {
	s.mu.Lock()
	s.calls["WaitForEvents"]++
	if len(ids) == 0 {
		s.mu.Unlock()
		return cl.InvalidValue
	}
	events := make([]*event, len(ids))
	for i, id := range ids {
		e, ok := lookup[*event](s, uintptr(id))
		if !ok {
			s.mu.Unlock()
			return cl.InvalidEvent
		}
		if i > 0 && e.ctx != events[0].ctx {
			s.mu.Unlock()
			return cl.InvalidContext
		}
		events[i] = e
	}
	for _, e := range events {
		s.retain(e)
	}
	deferred := s.flush()
	s.mu.Unlock()
	run(deferred)

	s.mu.Lock()
	status := s.wait(events...)
	for _, e := range events {
		s.release(e)
	}
	s.mu.Unlock()
	return status
}

// SetEventCallback registers a function called when an event reaches a
// status. The function is called immediately if the event already reached
// the status.
func (s *Sim) SetEventCallback(id cl.Event, status cl.CommandExecutionStatus, notify cl.EventNotify, userData any) cl.Int {
	return s.enterDeferred("SetEventCallback", func(deferred *[]func()) cl.Int {
		e, ok := lookup[*event](s, uintptr(id))
		if !ok {
			return cl.InvalidEvent
		}
		if notify == nil {
			return cl.InvalidValue
		}
		switch status {
		case cl.Complete, cl.Running, cl.Submitted:
		default:
			return cl.InvalidValue
		}
		e.callbacks = append(e.callbacks, eventCallback{status: status, notify: notify, userData: userData})
		if e.status <= status {
			e.setStatus(deferred, e.status)
		}
		return cl.Success
	})
}

// SetUserEventStatus completes a user event or sets it in error with a
// negative status.
func (s *Sim) SetUserEventStatus(id cl.Event, status cl.CommandExecutionStatus) cl.Int {
	return s.enterDeferred("SetUserEventStatus", func(deferred *[]func()) cl.Int {
		e, ok := lookup[*event](s, uintptr(id))
		if !ok || e.q != nil {
			return cl.InvalidEvent
		}
		if status > cl.Complete {
			return cl.InvalidValue
		}
		if e.status != cl.Submitted {
			return cl.InvalidOperation
		}
		e.setStatus(deferred, status)
		*deferred = append(*deferred, s.flush()...)
		return cl.Success
	})
}

// RetainEvent retains an event.
func (s *Sim) RetainEvent(id cl.Event) cl.Int {
	defer s.enter("RetainEvent")()
	return retainHandle[*event](s, uintptr(id), cl.InvalidEvent)
}

// ReleaseEvent releases an event.
func (s *Sim) ReleaseEvent(id cl.Event) cl.Int {
	defer s.enter("ReleaseEvent")()
	return releaseHandle[*event](s, uintptr(id), cl.InvalidEvent)
}
