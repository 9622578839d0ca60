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
package platform

import (
	"github.com/gx-org/backend/platform"
	"github.com/gx-org/backend/shape"
	"github.com/pkg/errors"

	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

// Device is a PI device with its queue.
type Device struct {
	plat  *Platform
	ord   int
	id    pi.Device
	queue pi.Queue
	name  string
}

var _ platform.Device = (*Device)(nil)

func newDevice(plat *Platform, ord int, id pi.Device) (*Device, error) {
	name, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return plat.table.Device.GetInfo(id, pi.DeviceInfoName, value)
	})
	if res != pi.Success {
		return nil, errors.Wrapf(res, "cannot get the name of device %#x", id)
	}
	queue, res := plat.table.Queue.Create(plat.ctx, id, 0)
	if res != pi.Success {
		return nil, errors.Wrapf(res, "cannot create a queue on device %q", name)
	}
	return &Device{plat: plat, ord: ord, id: id, queue: queue, name: name}, nil
}

// Platform owning the device.
func (dev *Device) Platform() platform.Platform {
	return dev.plat
}

// Ordinal of the device on the platform.
func (dev *Device) Ordinal() int {
	return dev.ord
}

// Name of the device.
func (dev *Device) Name() string {
	return dev.name
}

// ID returns the PI handle of the device.
func (dev *Device) ID() pi.Device {
	return dev.id
}

// Queue returns the queue of the device.
func (dev *Device) Queue() pi.Queue {
	return dev.queue
}

// alloc creates a buffer of size bytes, initialized with data if not nil.
// Buffers are never empty: a zero size allocates one byte.
func (dev *Device) alloc(size uint, data []byte) (pi.Mem, error) {
	flags := pi.MemFlagsReadWrite
	allocSize := max(size, 1)
	var hostPtr []byte
	if data != nil {
		flags |= pi.MemFlagsCopyHostPtr
		hostPtr = data
		if uint(len(hostPtr)) < allocSize {
			hostPtr = make([]byte, allocSize)
			copy(hostPtr, data)
		}
	}
	mem, res := dev.plat.table.Mem.BufferCreate(dev.plat.ctx, flags, allocSize, hostPtr)
	if res != pi.Success {
		return 0, errors.Wrapf(res, "cannot allocate %d bytes on device %q", size, dev.name)
	}
	return mem, nil
}

// Send raw data to the device. Return a handle from this package.
func (dev *Device) send(data []byte, sh *shape.Shape) (*Handle, error) {
	want, err := byteSize(sh)
	if err != nil {
		return nil, err
	}
	if want != uint(len(data)) {
		return nil, errors.Errorf("cannot send %d bytes to a %s buffer of %d bytes", len(data), sh.String(), want)
	}
	mem, err := dev.alloc(uint(len(data)), data)
	if err != nil {
		return nil, err
	}
	return newHandle(dev, mem, want, sh), nil
}

func (dev *Device) sendFromHost(handle platform.HostBuffer) (*Handle, error) {
	data := handle.Acquire()
	defer handle.Release()
	return dev.send(data, handle.Shape())
}

// Send raw data to the device.
func (dev *Device) Send(data []byte, sh *shape.Shape) (platform.DeviceHandle, error) {
	return dev.send(data, sh)
}
