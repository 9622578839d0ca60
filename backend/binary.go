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
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

// TargetFor returns the binary target tag preferred by a device type.
// The default bit of the device type is ignored.
func TargetFor(deviceType pi.DeviceType) string {
	switch deviceType &^ pi.DeviceTypeDefault {
	case pi.DeviceTypeCPU:
		return pi.TargetSPIRV64X86_64
	case pi.DeviceTypeGPU:
		return pi.TargetSPIRV64Gen
	case pi.DeviceTypeAccelerator:
		return pi.TargetSPIRV64FPGA
	}
	return pi.TargetSPIRV64
}

// SelectBinary returns the binary of binaries compiled for a device type.
//
// The first binary targeting exactly the device type is selected. Otherwise,
// the last generic binary is selected. Nil binaries are skipped. Returns
// pi.InvalidBinary if no binary fits.
func SelectBinary(deviceType pi.DeviceType, binaries []*pi.DeviceBinary) (*pi.DeviceBinary, pi.Result) {
	target := TargetFor(deviceType)
	var fallback *pi.DeviceBinary
	for _, binary := range binaries {
		if binary == nil {
			continue
		}
		if binary.DeviceTargetSpec == target {
			return binary, pi.Success
		}
		if binary.DeviceTargetSpec == pi.TargetSPIRV64 {
			fallback = binary
		}
	}
	if fallback == nil {
		return nil, pi.InvalidBinary
	}
	return fallback, pi.Success
}

func (b *Backend) deviceSelectBinary(device pi.Device, binaries []*pi.DeviceBinary) (selected *pi.DeviceBinary, res pi.Result) {
	res = pi.InvalidOperation
	deviceType, status := hostlayout.Query[cl.DeviceType](func(value []byte) (uint, cl.Int) {
		return b.api.GetDeviceInfo(piopencl.Devices.Native(device), cl.DeviceTypeInfo, value)
	})
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot query the type of device %#x: %s", device, res)
		return nil, res
	}
	selected, res = SelectBinary(pi.DeviceType(deviceType), binaries)
	if res != pi.Success {
		klog.V(2).Infof("device %#x of type %#x: no binary among %d for target %s", device, deviceType, len(binaries), TargetFor(pi.DeviceType(deviceType)))
		return nil, res
	}
	klog.V(2).Infof("device %#x of type %#x: selected %s", device, deviceType, selected)
	return selected, res
}
