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

// platformsGet reports no platform as an empty list, not as an error.
func (b *Backend) platformsGet(platforms []pi.Platform) (num uint32, res pi.Result) {
	res = pi.InvalidOperation
	num, status := b.api.GetPlatformIDs(piopencl.Platforms.NativeSlice(platforms))
	switch status {
	case cl.Success:
		res = pi.Success
	case cl.PlatformNotFoundKHR:
		num, res = 0, pi.Success
	default:
		num, res = 0, piopencl.ToResult(status)
		klog.V(1).Infof("cannot get platforms: %s", res)
	}
	return num, res
}

// devicesGet reports no device of the requested type as an empty list, not
// as an error.
func (b *Backend) devicesGet(platform pi.Platform, deviceType pi.DeviceType, devices []pi.Device) (num uint32, res pi.Result) {
	res = pi.InvalidOperation
	num, status := b.api.GetDeviceIDs(
		piopencl.Platforms.Native(platform),
		cl.DeviceType(deviceType),
		piopencl.Devices.NativeSlice(devices))
	switch status {
	case cl.Success:
		res = pi.Success
	case cl.DeviceNotFound:
		num, res = 0, pi.Success
	default:
		num, res = 0, piopencl.ToResult(status)
		klog.V(1).Infof("cannot get devices of type %#x on platform %#x: %s", deviceType, platform, res)
	}
	return num, res
}

func (b *Backend) devicePartition(device pi.Device, properties []pi.DevicePartitionProperty, devices []pi.Device) (uint32, pi.Result) {
	num, status := b.api.CreateSubDevices(
		piopencl.Devices.Native(device),
		convertSlice[cl.DevicePartitionProperty](properties),
		piopencl.Devices.NativeSlice(devices))
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return num, pi.Success
}

// deviceGetFunctionPointer returns pi.InvalidDevice with a zero address if
// the platform of the device does not support function pointers.
func (b *Backend) deviceGetFunctionPointer(device pi.Device, program pi.Program, name string) (addr uint64, res pi.Result) {
	res = pi.InvalidOperation
	clDevice := piopencl.Devices.Native(device)
	platform, status := b.devicePlatform(clDevice)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	caps, status := b.caps.get(platform)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	fn, ok := caps.DeviceFunctionPointer()
	if !ok {
		klog.V(1).Infof("platform %#x of device %#x does not support function pointers", platform, device)
		return 0, pi.InvalidDevice
	}
	addr, status = fn(clDevice, piopencl.Programs.Native(program), name)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return addr, pi.Success
}
