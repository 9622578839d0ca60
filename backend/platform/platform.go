// Copyright 2024 Google LLC
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
// Package platform exposes the devices of a PI plugin as a GX platform.
package platform

import (
	"github.com/gx-org/backend/platform"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

// Platform is a PI platform with one context over its devices and one queue
// per device.
type Platform struct {
	table   pi.Table
	id      pi.Platform
	name    string
	ctx     pi.Context
	devices []*Device
}

var _ platform.Platform = (*Platform)(nil)

// New returns the first platform of a plugin with devices of type devType.
func New(table pi.Table, devType pi.DeviceType) (*Platform, error) {
	n, res := table.Platform.Get(nil)
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot count platforms")
	}
	platforms := make([]pi.Platform, n)
	if n > 0 {
		if _, res := table.Platform.Get(platforms); res != pi.Success {
			return nil, errors.Wrap(res, "cannot get platforms")
		}
	}
	for _, id := range platforms {
		numDevices, res := table.Device.Get(id, devType, nil)
		if res != pi.Success || numDevices == 0 {
			klog.V(2).Infof("platform %#x: no device of type %#x (%s)", id, devType, res)
			continue
		}
		devices := make([]pi.Device, numDevices)
		if _, res := table.Device.Get(id, devType, devices); res != pi.Success {
			return nil, errors.Wrapf(res, "cannot get the devices of platform %#x", id)
		}
		return newPlatform(table, id, devices)
	}
	return nil, errors.Errorf("no platform with devices of type %#x among %d platform(s)", devType, n)
}

func newPlatform(table pi.Table, id pi.Platform, devices []pi.Device) (*Platform, error) {
	name, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return table.Platform.GetInfo(id, pi.PlatformInfoName, value)
	})
	if res != pi.Success {
		return nil, errors.Wrapf(res, "cannot get the name of platform %#x", id)
	}
	ctx, res := table.Context.Create(nil, devices, nil, nil)
	if res != pi.Success {
		return nil, errors.Wrapf(res, "cannot create a context on platform %q", name)
	}
	plat := &Platform{table: table, id: id, name: name, ctx: ctx}
	for i, devID := range devices {
		dev, err := newDevice(plat, i, devID)
		if err != nil {
			plat.Close()
			return nil, err
		}
		plat.devices = append(plat.devices, dev)
	}
	return plat, nil
}

// Name of the platform.
func (plat *Platform) Name() string {
	return plat.name
}

// Device returns a device given its ordinal.
// The same pointer will be returned for the same ordinal.
func (plat *Platform) Device(ordinal int) (platform.Device, error) {
	if ordinal < 0 || ordinal >= len(plat.devices) {
		return nil, errors.Errorf("device ordinal %d out of range [0, %d)", ordinal, len(plat.devices))
	}
	return plat.devices[ordinal], nil
}

// NumDevices returns the number of devices of the platform.
func (plat *Platform) NumDevices() int {
	return len(plat.devices)
}

// Table returns the PI entry points used by the platform.
func (plat *Platform) Table() pi.Table {
	return plat.table
}

// Context returns the PI context shared by all the devices.
func (plat *Platform) Context() pi.Context {
	return plat.ctx
}

// Close releases the queues and the context of the platform.
func (plat *Platform) Close() error {
	var first error
	for _, dev := range plat.devices {
		if res := plat.table.Queue.Release(dev.queue); res != pi.Success && first == nil {
			first = errors.Wrapf(res, "cannot release the queue of device %q", dev.name)
		}
	}
	plat.devices = nil
	if res := plat.table.Context.Release(plat.ctx); res != pi.Success && first == nil {
		first = errors.Wrapf(res, "cannot release the context of platform %q", plat.name)
	}
	return first
}
