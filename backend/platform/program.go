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
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

// Program is a program built for a device.
type Program struct {
	device *Device
	id     pi.Program
	image  *pi.DeviceBinary
}

// BuildProgram selects the image of images best suited to the device and
// builds it. SPIR-V images are loaded as intermediate language, other
// images as native binaries.
func (dev *Device) BuildProgram(images []*pi.DeviceBinary) (*Program, error) {
	table := dev.plat.table
	image, res := table.Device.SelectBinary(dev.id, images)
	if res != pi.Success {
		return nil, errors.Wrapf(res, "no image among %d image(s) for device %q", len(images), dev.name)
	}
	klog.V(2).Infof("device %q: building %s", dev.name, image)
	var program pi.Program
	if image.Format == pi.BinaryFormatSPIRV {
		program, res = table.Program.Create(dev.plat.ctx, image.Image)
	} else {
		status := make([]pi.Result, 1)
		program, res = table.Program.CreateWithBinary(dev.plat.ctx, []pi.Device{dev.id}, [][]byte{image.Image}, status)
	}
	if res != pi.Success {
		return nil, errors.Wrapf(res, "cannot create a program from %s", image)
	}
	if res := table.Program.Build(program, []pi.Device{dev.id}, image.CompileOptions, nil, nil); res != pi.Success {
		log, _ := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
			return table.Program.GetBuildInfo(program, dev.id, pi.ProgramBuildInfoLog, value)
		})
		table.Program.Release(program)
		return nil, errors.Wrapf(res, "cannot build %s for device %q:\n%s", image, dev.name, log)
	}
	return &Program{device: dev, id: program, image: image}, nil
}

// ID returns the PI handle of the program.
func (p *Program) ID() pi.Program {
	return p.id
}

// Image returns the image the program has been built from.
func (p *Program) Image() *pi.DeviceBinary {
	return p.image
}

// LocalMem declares a local memory kernel argument of the given size in
// bytes.
type LocalMem uint

func scalarArg[T hostlayout.Scalar](v T) []byte {
	value := make([]byte, unsafe.Sizeof(v))
	hostlayout.Put(value, v)
	return value
}

func (p *Program) setArg(kernel pi.Kernel, index uint32, arg any) error {
	var size uint
	var value []byte
	switch argT := arg.(type) {
	case *Handle:
		if argT.device.plat != p.device.plat {
			return errors.Errorf("buffer %s is not on platform %q", argT.shape.String(), p.device.plat.name)
		}
		value = scalarArg(argT.mem)
	case LocalMem:
		size = uint(argT)
	case []byte:
		value = argT
	case int32:
		value = scalarArg(argT)
	case uint32:
		value = scalarArg(argT)
	case int64:
		value = scalarArg(argT)
	case uint64:
		value = scalarArg(argT)
	case float32:
		value = scalarArg(argT)
	case float64:
		value = scalarArg(argT)
	default:
		return errors.Errorf("kernel argument type %T not supported", arg)
	}
	if value != nil {
		size = uint(len(value))
	}
	if res := p.device.plat.table.Kernel.SetArg(kernel, index, size, value); res != pi.Success {
		return errors.Wrapf(res, "cannot set argument %d", index)
	}
	return nil
}

// Launch runs a kernel of the program over a global range and waits for
// its completion. Arguments are buffer handles, LocalMem, raw bytes, or
// fixed size scalars.
func (p *Program) Launch(name string, global []uint, args ...any) error {
	table := p.device.plat.table
	kernel, res := table.Kernel.Create(p.id, name)
	if res != pi.Success {
		return errors.Wrapf(res, "cannot create kernel %q", name)
	}
	defer table.Kernel.Release(kernel)
	for i, arg := range args {
		if err := p.setArg(kernel, uint32(i), arg); err != nil {
			return errors.WithMessagef(err, "kernel %q", name)
		}
	}
	queue := p.device.queue
	if res := table.Enqueue.KernelLaunch(queue, kernel, uint32(len(global)), nil, global, nil, nil, nil); res != pi.Success {
		return errors.Wrapf(res, "cannot launch kernel %q over %v", name, global)
	}
	if res := table.Queue.Finish(queue); res != pi.Success {
		return errors.Wrapf(res, "kernel %q", name)
	}
	return nil
}

// FunctionPointer returns the device address of a function of the program.
func (p *Program) FunctionPointer(name string) (uint64, error) {
	ptr, res := p.device.plat.table.Device.GetFunctionPointer(p.device.id, p.id, name)
	if res != pi.Success {
		return 0, errors.Wrapf(res, "cannot get the address of function %q", name)
	}
	return ptr, nil
}

// Release the program.
func (p *Program) Release() error {
	if p.id == 0 {
		return nil
	}
	res := p.device.plat.table.Program.Release(p.id)
	p.id = 0
	if res != pi.Success {
		return errors.Wrap(res, "cannot release program")
	}
	return nil
}
