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
	"fmt"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/platform"
	"github.com/gx-org/backend/shape"
	"github.com/pkg/errors"

	"github.com/gx-org/piopencl/pi"
)

// Handle of a PI buffer.
type Handle struct {
	device *Device
	mem    pi.Mem
	size   uint
	shape  *shape.Shape
}

var _ platform.DeviceHandle = (*Handle)(nil)

func newHandle(dev *Device, mem pi.Mem, size uint, sh *shape.Shape) *Handle {
	return &Handle{
		device: dev,
		mem:    mem,
		size:   size,
		shape:  sh,
	}
}

// byteSize returns the number of bytes of an array given its shape.
func byteSize(sh *shape.Shape) (uint, error) {
	var elt uint
	switch sh.DType {
	case dtype.Bool:
		elt = 1
	case dtype.Bfloat16:
		elt = 2
	case dtype.Float32, dtype.Int32, dtype.Uint32:
		elt = 4
	case dtype.Float64, dtype.Int64, dtype.Uint64:
		elt = 8
	default:
		return 0, errors.Errorf("data type %v not supported", sh.DType)
	}
	return elt * uint(sh.Size()), nil
}

// Shape of the underlying array.
func (h *Handle) Shape() *shape.Shape {
	return h.shape
}

// Mem returns the PI buffer of the handle.
func (h *Handle) Mem() pi.Mem {
	return h.mem
}

// Device on which the array is located.
func (h *Handle) Device() platform.Device {
	return h.device
}

// Platform on which the array is located.
func (h *Handle) Platform() platform.Platform {
	return h.device.plat
}

func (h *Handle) read(data []byte) error {
	if uint(len(data)) < h.size {
		return errors.Errorf("cannot read %d bytes into a buffer of %d bytes", h.size, len(data))
	}
	if h.size == 0 {
		return nil
	}
	res := h.device.plat.table.Enqueue.MemBufferRead(h.device.queue, h.mem, true, 0, data[:h.size], nil, nil)
	if res != pi.Success {
		return errors.Wrapf(res, "cannot read %s from device %q", h.shape.String(), h.device.name)
	}
	return nil
}

// ToHost fetches the data from the handle and write it to buffer.
func (h *Handle) ToHost(buf platform.HostBuffer) error {
	data := buf.Acquire()
	defer buf.Release()
	return h.read(data)
}

// Bytes returns a copy of the content of the buffer.
func (h *Handle) Bytes() ([]byte, error) {
	data := make([]byte, h.size)
	if err := h.read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ToDevice transfers the handle to a device.
func (h *Handle) ToDevice(dev platform.Device) (platform.DeviceHandle, error) {
	piDev, ok := dev.(*Device)
	if ok {
		return ToDevice(piDev, h)
	}
	return nil, errors.Errorf("cannot transfer a PI buffer to a %T device", dev)
}

// toDevice copies the buffer to another device of the same context.
func (h *Handle) toDevice(dev *Device) (*Handle, error) {
	if h.device == dev {
		return h, nil
	}
	if h.device.plat != dev.plat {
		data, err := h.Bytes()
		if err != nil {
			return nil, err
		}
		return dev.send(data, h.shape)
	}
	mem, err := dev.alloc(h.size, nil)
	if err != nil {
		return nil, err
	}
	table := dev.plat.table
	if h.size > 0 {
		res := table.Enqueue.MemBufferCopy(dev.queue, h.mem, mem, 0, 0, h.size, nil, nil)
		if res == pi.Success {
			res = table.Queue.Finish(dev.queue)
		}
		if res != pi.Success {
			table.Mem.Release(mem)
			return nil, errors.Wrapf(res, "cannot copy %s to device %q", h.shape.String(), dev.name)
		}
	}
	return newHandle(dev, mem, h.size, h.shape), nil
}

// Release the buffer of the handle.
func (h *Handle) Release() error {
	if h.mem == 0 {
		return nil
	}
	res := h.device.plat.table.Mem.Release(h.mem)
	h.mem = 0
	if res != pi.Success {
		return errors.Wrapf(res, "cannot release buffer %s", h.shape.String())
	}
	return nil
}

// String representation of the handle.
func (h *Handle) String() string {
	return fmt.Sprintf("PI %T: %s", h, h.shape.String())
}

// ToDevice sends a generic handle to a device.
func ToDevice(dev *Device, handle platform.Handle) (*Handle, error) {
	switch handleT := handle.(type) {
	case *Handle:
		return handleT.toDevice(dev)
	case platform.HostBuffer:
		return dev.sendFromHost(handleT)
	}
	return nil, errors.Errorf("cannot transfer a %T to a PI device", handle)
}
