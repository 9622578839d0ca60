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
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

// queueCreate creates a queue with the creation call supported by the
// platform of the device.
func (b *Backend) queueCreate(ctx pi.Context, device pi.Device, properties pi.QueueProperties) (queue pi.Queue, res pi.Result) {
	res = pi.InvalidOperation
	clDevice := piopencl.Devices.Native(device)
	platform, status := b.devicePlatform(clDevice)
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot get the platform of device %#x: %s", device, res)
		return 0, res
	}
	caps, status := b.caps.get(platform)
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot get the capabilities of platform %#x: %s", platform, res)
		return 0, res
	}
	var clQueue cl.CommandQueue
	if caps.LegacyQueues() {
		klog.V(2).Infof("platform %#x version %s: creating a queue without a property list", platform, caps.Version)
		clQueue, status = b.api.CreateCommandQueue(
			piopencl.Contexts.Native(ctx),
			clDevice,
			cl.CommandQueueProperties(properties))
	} else {
		klog.V(2).Infof("platform %#x: creating a queue with a property list", platform)
		clQueue, status = b.api.CreateCommandQueueWithProperties(
			piopencl.Contexts.Native(ctx),
			clDevice,
			[]cl.QueueProperties{cl.QueuePropertiesKey, cl.QueueProperties(properties), 0})
	}
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot create a queue on device %#x: %s", device, res)
		return 0, res
	}
	return piopencl.Queues.Adapter(clQueue), pi.Success
}
