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

// contextCreate forwards the notification callback unchanged.
func (b *Backend) contextCreate(properties []pi.ContextProperties, devices []pi.Device, notify pi.ContextNotify, userData any) (pi.Context, pi.Result) {
	ctx, status := b.api.CreateContext(
		convertSlice[cl.ContextProperties](properties),
		piopencl.Devices.NativeSlice(devices),
		cl.ContextNotify(notify),
		userData)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Contexts.Adapter(ctx), pi.Success
}
