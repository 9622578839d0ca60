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

package backend

import (
	"github.com/gx-org/piopencl"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

func (b *Backend) eventCreate(ctx pi.Context) (pi.Event, pi.Result) {
	event, status := b.api.CreateUserEvent(piopencl.Contexts.Native(ctx))
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Events.Adapter(event), pi.Success
}

func (b *Backend) eventsWait(events []pi.Event) pi.Result {
	return piopencl.ToResult(b.api.WaitForEvents(piopencl.Events.NativeSlice(events)))
}

// eventSetCallback wraps the PI callback to receive PI handles and states.
func (b *Backend) eventSetCallback(event pi.Event, status pi.EventStatus, notify pi.EventNotify, userData any) pi.Result {
	var clNotify cl.EventNotify
	if notify != nil {
		clNotify = func(event cl.Event, status cl.CommandExecutionStatus, userData any) {
			notify(piopencl.Events.Adapter(event), pi.EventStatus(status), userData)
		}
	}
	return piopencl.ToResult(b.api.SetEventCallback(
		piopencl.Events.Native(event),
		cl.CommandExecutionStatus(status),
		clNotify,
		userData))
}

func (b *Backend) eventSetStatus(event pi.Event, status pi.EventStatus) pi.Result {
	return piopencl.ToResult(b.api.SetUserEventStatus(piopencl.Events.Native(event), cl.CommandExecutionStatus(status)))
}
