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
	"slices"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

type (
	context struct {
		objectHeader
		properties []cl.ContextProperties
		devices    []*device
		notify     cl.ContextNotify
		userData   any
	}

	queue struct {
		objectHeader
		ctx        *context
		dev        *device
		properties cl.CommandQueueProperties
		// pending holds the commands not yet executed, in submission order.
		pending []*command
	}
)

func (c *context) destroy(s *Sim) {
	for _, d := range c.devices {
		s.release(d)
	}
}

func (q *queue) destroy(s *Sim) {
	s.release(q.ctx)
}

func (c *context) platform() *platform {
	return c.devices[0].plat
}

func (c *context) hasDevice(d *device) bool {
	return slices.Contains(c.devices, d)
}

// report calls the notification callback of the context. The callback runs
// once the simulator is unlocked.
func (c *context) report(deferred *[]func(), errInfo string) {
	if c.notify == nil {
		return
	}
	notify, userData := c.notify, c.userData
	*deferred = append(*deferred, func() { notify(errInfo, nil, userData) })
}

// CreateContext creates a context over devices of a single platform.
func (s *Sim) CreateContext(properties []cl.ContextProperties, devices []cl.DeviceID, notify cl.ContextNotify, userData any) (cl.Context, cl.Int) {
	defer s.enter("CreateContext")()
	if len(devices) == 0 {
		return 0, cl.InvalidValue
	}
	ctx := &context{notify: notify, userData: userData}
	for _, id := range devices {
		d, ok := lookup[*device](s, uintptr(id))
		if !ok {
			return 0, cl.InvalidDevice
		}
		if len(ctx.devices) > 0 && d.plat != ctx.devices[0].plat {
			return 0, cl.InvalidDevice
		}
		ctx.devices = append(ctx.devices, d)
	}
	for i := 0; i < len(properties) && properties[i] != 0; i += 2 {
		if i+1 >= len(properties) {
			return 0, cl.InvalidProperty
		}
		switch properties[i] {
		case cl.ContextPlatform:
			if uintptr(properties[i+1]) != ctx.platform().id {
				return 0, cl.InvalidPlatform
			}
		default:
			return 0, cl.InvalidProperty
		}
	}
	if len(properties) > 0 {
		ctx.properties = slices.Clone(properties)
	}
	for _, d := range ctx.devices {
		s.retain(d)
	}
	return cl.Context(s.add(ctx, kindContext)), cl.Success
}

// GetContextInfo queries a context.
func (s *Sim) GetContextInfo(id cl.Context, name cl.ContextInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetContextInfo")()
	ctx, ok := lookup[*context](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidContext
	}
	switch name {
	case cl.ContextReferenceCount:
		return put(hostlayout.Put(value, s.refCount(ctx)))
	case cl.ContextDevices:
		ids := make([]cl.DeviceID, len(ctx.devices))
		for i, d := range ctx.devices {
			ids[i] = cl.DeviceID(d.id)
		}
		return put(hostlayout.PutSlice(value, ids))
	case cl.ContextPropertiesInfo:
		return put(hostlayout.PutSlice(value, ctx.properties))
	case cl.ContextNumDevices:
		return put(hostlayout.Put(value, uint32(len(ctx.devices))))
	}
	return 0, cl.InvalidValue
}

// RetainContext retains a context.
func (s *Sim) RetainContext(id cl.Context) cl.Int {
	defer s.enter("RetainContext")()
	return retainHandle[*context](s, uintptr(id), cl.InvalidContext)
}

// ReleaseContext releases a context.
func (s *Sim) ReleaseContext(id cl.Context) cl.Int {
	defer s.enter("ReleaseContext")()
	return releaseHandle[*context](s, uintptr(id), cl.InvalidContext)
}

const knownQueueProperties = cl.QueueOutOfOrderExecModeEnable | cl.QueueProfilingEnable

func (s *Sim) createQueue(ctxID cl.Context, devID cl.DeviceID, properties cl.CommandQueueProperties) (cl.CommandQueue, cl.Int) {
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	d, ok := lookup[*device](s, uintptr(devID))
	if !ok || !ctx.hasDevice(d) {
		return 0, cl.InvalidDevice
	}
	if properties&^knownQueueProperties != 0 {
		return 0, cl.InvalidValue
	}
	s.retain(ctx)
	q := &queue{ctx: ctx, dev: d, properties: properties}
	return cl.CommandQueue(s.add(q, kindQueue)), cl.Success
}

// CreateCommandQueue creates a queue given a bitfield of properties.
func (s *Sim) CreateCommandQueue(ctx cl.Context, device cl.DeviceID, properties cl.CommandQueueProperties) (cl.CommandQueue, cl.Int) {
	defer s.enter("CreateCommandQueue")()
	return s.createQueue(ctx, device, properties)
}

// CreateCommandQueueWithProperties creates a queue given a property list.
// Platforms older than 2.0 do not implement it.
func (s *Sim) CreateCommandQueueWithProperties(ctxID cl.Context, device cl.DeviceID, properties []cl.QueueProperties) (cl.CommandQueue, cl.Int) {
	defer s.enter("CreateCommandQueueWithProperties")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if !ctx.platform().atLeast(2, 0) {
		return 0, cl.InvalidOperation
	}
	var props cl.CommandQueueProperties
	for i := 0; i < len(properties) && properties[i] != 0; i += 2 {
		if i+1 >= len(properties) || properties[i] != cl.QueuePropertiesKey {
			return 0, cl.InvalidValue
		}
		props = cl.CommandQueueProperties(properties[i+1])
	}
	return s.createQueue(ctxID, device, props)
}

// GetCommandQueueInfo queries a queue.
func (s *Sim) GetCommandQueueInfo(id cl.CommandQueue, name cl.CommandQueueInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetCommandQueueInfo")()
	q, ok := lookup[*queue](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidCommandQueue
	}
	switch name {
	case cl.QueueContext:
		return put(hostlayout.Put(value, cl.Context(q.ctx.id)))
	case cl.QueueDevice:
		return put(hostlayout.Put(value, cl.DeviceID(q.dev.id)))
	case cl.QueueReferenceCount:
		return put(hostlayout.Put(value, s.refCount(q)))
	case cl.QueuePropertiesInfo:
		return put(hostlayout.Put(value, q.properties))
	}
	return 0, cl.InvalidValue
}

// Finish blocks until all the commands of a queue have run.
func (s *Sim) Finish(id cl.CommandQueue) cl.Int {
	s.mu.Lock()
	s.calls["Finish"]++
	q, ok := lookup[*queue](s, uintptr(id))
	if !ok {
		s.mu.Unlock()
		return cl.InvalidCommandQueue
	}
	s.retain(q)
	deferred := s.flush()
	for len(q.pending) > 0 {
		s.cond.Wait()
	}
	s.release(q)
	s.mu.Unlock()
	run(deferred)
	return cl.Success
}

// RetainCommandQueue retains a queue.
func (s *Sim) RetainCommandQueue(id cl.CommandQueue) cl.Int {
	defer s.enter("RetainCommandQueue")()
	return retainHandle[*queue](s, uintptr(id), cl.InvalidCommandQueue)
}

// ReleaseCommandQueue releases a queue.
func (s *Sim) ReleaseCommandQueue(id cl.CommandQueue) cl.Int {
	defer s.enter("ReleaseCommandQueue")()
	return releaseHandle[*queue](s, uintptr(id), cl.InvalidCommandQueue)
}
