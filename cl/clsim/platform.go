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
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

type (
	platform struct {
		objectHeader
		cfg          PlatformConfig
		major, minor int
		devices      []*device
	}

	device struct {
		objectHeader
		plat   *platform
		cfg    DeviceConfig
		typ    cl.DeviceType
		parent *device
	}
)

func (*platform) destroy(*Sim) {}

func (d *device) destroy(s *Sim) {
	if d.parent != nil {
		s.release(d.parent)
	}
}

// parseVersion extracts the version numbers of "OpenCL <major>.<minor> ...".
// Unknown formats are the latest version.
func parseVersion(version string) (major, minor int) {
	if _, err := fmt.Sscanf(version, "OpenCL %d.%d", &major, &minor); err != nil {
		return 3, 0
	}
	return major, minor
}

func (p *platform) atLeast(major, minor int) bool {
	return p.major > major || p.major == major && p.minor >= minor
}

func (p *platform) hasExtension(name string) bool {
	return slices.Contains(p.cfg.Extensions, name)
}

func (s *Sim) addPlatform(cfg *PlatformConfig) error {
	p := &platform{cfg: *cfg}
	if p.cfg.Profile == "" {
		p.cfg.Profile = defaultProfile
	}
	p.major, p.minor = parseVersion(p.cfg.Version)
	s.add(p, kindPlatform)
	p.static = true
	for i := range cfg.Devices {
		devCfg, err := cfg.Devices[i].withDefaults(&p.cfg)
		if err != nil {
			return errors.WithMessagef(err, "platform %q", cfg.Name)
		}
		d := &device{plat: p, cfg: devCfg, typ: deviceTypes[devCfg.Type]}
		s.add(d, kindDevice)
		d.static = true
		p.devices = append(p.devices, d)
	}
	s.platforms = append(s.platforms, p)
	return nil
}

// GetPlatformIDs returns the platforms of the simulator.
func (s *Sim) GetPlatformIDs(platforms []cl.PlatformID) (uint32, cl.Int) {
	defer s.enter("GetPlatformIDs")()
	if len(s.platforms) == 0 {
		return 0, cl.PlatformNotFoundKHR
	}
	for i := 0; i < len(platforms) && i < len(s.platforms); i++ {
		platforms[i] = cl.PlatformID(s.platforms[i].id)
	}
	return uint32(len(s.platforms)), cl.Success
}

// GetPlatformInfo queries a platform.
func (s *Sim) GetPlatformInfo(id cl.PlatformID, name cl.PlatformInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetPlatformInfo")()
	p, ok := lookup[*platform](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidPlatform
	}
	switch name {
	case cl.PlatformProfile:
		return put(hostlayout.PutString(value, p.cfg.Profile))
	case cl.PlatformVersion:
		return put(hostlayout.PutString(value, p.cfg.Version))
	case cl.PlatformName:
		return put(hostlayout.PutString(value, p.cfg.Name))
	case cl.PlatformVendor:
		return put(hostlayout.PutString(value, p.cfg.Vendor))
	case cl.PlatformExtensions:
		return put(hostlayout.PutString(value, strings.Join(p.cfg.Extensions, " ")))
	}
	return 0, cl.InvalidValue
}

// GetExtensionFunctionAddressForPlatform returns an extension entry point
// if the platform reports the corresponding extension.
func (s *Sim) GetExtensionFunctionAddressForPlatform(id cl.PlatformID, name string) any {
	defer s.enter("GetExtensionFunctionAddressForPlatform")()
	p, ok := lookup[*platform](s, uintptr(id))
	if !ok || slices.Contains(p.cfg.HiddenFunctions, name) {
		return nil
	}
	switch name {
	case cl.CreateProgramWithILKHR:
		if !p.hasExtension(cl.ILProgramExtension) {
			return nil
		}
		return cl.CreateProgramWithILFunc(func(ctx cl.Context, il []byte) (cl.Program, cl.Int) {
			defer s.enter(cl.CreateProgramWithILKHR)()
			return s.createProgramWithIL(ctx, il)
		})
	case cl.GetDeviceFunctionPointerINTEL:
		if !p.hasExtension(cl.FunctionPointersINTELExtension) {
			return nil
		}
		return cl.GetDeviceFunctionPointerFunc(func(dev cl.DeviceID, program cl.Program, name string) (uint64, cl.Int) {
			defer s.enter(cl.GetDeviceFunctionPointerINTEL)()
			return s.deviceFunctionPointer(dev, program, name)
		})
	}
	return nil
}

// GetDeviceIDs returns the devices of a platform matching a device type.
func (s *Sim) GetDeviceIDs(id cl.PlatformID, deviceType cl.DeviceType, devices []cl.DeviceID) (uint32, cl.Int) {
	defer s.enter("GetDeviceIDs")()
	p, ok := lookup[*platform](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidPlatform
	}
	known := cl.DeviceTypeDefault | cl.DeviceTypeCPU | cl.DeviceTypeGPU | cl.DeviceTypeAccelerator | cl.DeviceTypeCustom
	if deviceType == 0 || deviceType != cl.DeviceTypeAll && deviceType&^known != 0 {
		return 0, cl.InvalidDeviceType
	}
	var matched []*device
	for i, d := range p.devices {
		switch {
		case deviceType == cl.DeviceTypeAll:
		case deviceType&cl.DeviceTypeDefault != 0 && i == 0:
		case deviceType&d.typ != 0:
		default:
			continue
		}
		matched = append(matched, d)
	}
	if len(matched) == 0 {
		return 0, cl.DeviceNotFound
	}
	for i := 0; i < len(devices) && i < len(matched); i++ {
		devices[i] = cl.DeviceID(matched[i].id)
	}
	return uint32(len(matched)), cl.Success
}

// GetDeviceInfo queries a device.
func (s *Sim) GetDeviceInfo(id cl.DeviceID, name cl.DeviceInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetDeviceInfo")()
	d, ok := lookup[*device](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidDevice
	}
	switch name {
	case cl.DeviceTypeInfo:
		return put(hostlayout.Put(value, d.typ))
	case cl.DeviceVendorID:
		return put(hostlayout.Put(value, d.cfg.VendorID))
	case cl.DeviceMaxComputeUnits:
		return put(hostlayout.Put(value, d.cfg.ComputeUnits))
	case cl.DeviceMaxWorkGroupSize:
		return put(hostlayout.Put(value, d.cfg.MaxWorkGroup))
	case cl.DeviceGlobalMemSize:
		return put(hostlayout.Put(value, d.cfg.GlobalMemSize))
	case cl.DeviceAvailable:
		return put(hostlayout.Put(value, cl.True))
	case cl.DeviceName:
		return put(hostlayout.PutString(value, d.cfg.Name))
	case cl.DeviceVendor:
		return put(hostlayout.PutString(value, d.plat.cfg.Vendor))
	case cl.DriverVersion:
		return put(hostlayout.PutString(value, "clsim"))
	case cl.DeviceProfile:
		return put(hostlayout.PutString(value, d.plat.cfg.Profile))
	case cl.DeviceVersion:
		return put(hostlayout.PutString(value, d.cfg.Version))
	case cl.DeviceExtensions:
		return put(hostlayout.PutString(value, strings.Join(d.plat.cfg.Extensions, " ")))
	case cl.DevicePlatform:
		return put(hostlayout.Put(value, cl.PlatformID(d.plat.id)))
	case cl.DeviceParentDevice:
		var parent cl.DeviceID
		if d.parent != nil {
			parent = cl.DeviceID(d.parent.id)
		}
		return put(hostlayout.Put(value, parent))
	case cl.DevicePartitionMaxSubDevices:
		return put(hostlayout.Put(value, d.cfg.MaxSubDevices))
	case cl.DeviceReferenceCount:
		return put(hostlayout.Put(value, s.refCount(d)))
	}
	return 0, cl.InvalidValue
}

// partitionCounts returns the number of compute units of each sub-device of
// a partition.
func partitionCounts(d *device, properties []cl.DevicePartitionProperty) ([]uint32, cl.Int) {
	if len(properties) < 2 {
		return nil, cl.InvalidValue
	}
	var counts []uint32
	switch properties[0] {
	case cl.DevicePartitionEqually:
		n := uint32(properties[1])
		if n == 0 {
			return nil, cl.InvalidValue
		}
		if n > d.cfg.ComputeUnits {
			return nil, cl.DevicePartitionFailed
		}
		for i := uint32(0); i < d.cfg.ComputeUnits/n; i++ {
			counts = append(counts, n)
		}
	case cl.DevicePartitionByCounts:
		total := uint32(0)
		for _, prop := range properties[1:] {
			if prop == cl.DevicePartitionByCountsListEnd {
				break
			}
			counts = append(counts, uint32(prop))
			total += uint32(prop)
		}
		if len(counts) == 0 {
			return nil, cl.InvalidValue
		}
		if total > d.cfg.ComputeUnits {
			return nil, cl.InvalidDevicePartitionCount
		}
	default:
		return nil, cl.InvalidValue
	}
	if uint32(len(counts)) > d.cfg.MaxSubDevices {
		return nil, cl.InvalidDevicePartitionCount
	}
	return counts, cl.Success
}

// CreateSubDevices partitions a device. A nil devices only counts the
// sub-devices of the partition.
func (s *Sim) CreateSubDevices(id cl.DeviceID, properties []cl.DevicePartitionProperty, devices []cl.DeviceID) (uint32, cl.Int) {
	defer s.enter("CreateSubDevices")()
	d, ok := lookup[*device](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidDevice
	}
	counts, status := partitionCounts(d, properties)
	if status != cl.Success {
		return 0, status
	}
	if devices == nil {
		return uint32(len(counts)), cl.Success
	}
	if len(devices) < len(counts) {
		return 0, cl.InvalidValue
	}
	for i, n := range counts {
		cfg := d.cfg
		cfg.Name = fmt.Sprintf("%s.%d", d.cfg.Name, i)
		cfg.ComputeUnits = n
		cfg.MaxSubDevices = n
		sub := &device{plat: d.plat, cfg: cfg, typ: d.typ, parent: d}
		s.retain(d)
		devices[i] = cl.DeviceID(s.add(sub, kindDevice))
	}
	return uint32(len(counts)), cl.Success
}

// RetainDevice retains a sub-device. Root devices are not reference counted.
func (s *Sim) RetainDevice(id cl.DeviceID) cl.Int {
	defer s.enter("RetainDevice")()
	return retainHandle[*device](s, uintptr(id), cl.InvalidDevice)
}

// ReleaseDevice releases a sub-device. Root devices are not reference
// counted.
func (s *Sim) ReleaseDevice(id cl.DeviceID) cl.Int {
	defer s.enter("ReleaseDevice")()
	return releaseHandle[*device](s, uintptr(id), cl.InvalidDevice)
}
