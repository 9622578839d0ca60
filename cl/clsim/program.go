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
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

type (
	// Arg is the value of a kernel argument at launch.
	Arg struct {
		// Buffer is the storage of a memory object argument.
		Buffer []byte
		// Value holds the bytes of any other argument.
		Value []byte
		// LocalSize is the size of a local memory argument.
		LocalSize uint
	}

	// Kernel is a Go implementation of a kernel.
	Kernel struct {
		// NumArgs is the number of arguments of the kernel.
		NumArgs int
		// Run executes all the work items of a launch. global is the number
		// of work items in each dimension.
		Run func(args []Arg, global []uint)
	}
)

// RegisterKernel provides the implementation of the kernels named name in
// all the programs of the simulator.
func (s *Sim) RegisterKernel(name string, k Kernel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kernels[name] = k
}

type programSource int

const (
	fromSource programSource = iota
	fromIL
	fromBinary
	fromLink
)

type (
	program struct {
		objectHeader
		ctx     *context
		devices []*device
		origin  programSource
		source  string
		il      []byte
		// kernelNames lists the kernels in declaration order.
		kernelNames []string
		// numArgs is the number of arguments of a kernel when known.
		numArgs map[string]int

		status     cl.BuildStatus
		binaryType cl.ProgramBinaryType
		options    string
		log        string
		// kernels is the number of kernel objects of the program.
		kernels int
	}

	kernelArg struct {
		set   bool
		value []byte
		local uint
	}

	kernel struct {
		objectHeader
		prog *program
		name string
		// numArgs is negative for kernels with an unknown signature.
		numArgs int
		args    []kernelArg
	}
)

func (p *program) destroy(s *Sim) {
	s.release(p.ctx)
}

func (k *kernel) destroy(s *Sim) {
	k.prog.kernels--
	s.release(k.prog)
}

func (p *program) hasDevice(d *device) bool {
	return slices.Contains(p.devices, d)
}

func (p *program) built() bool {
	return p.status == cl.BuildSuccess && p.binaryType == cl.ProgramBinaryTypeExecutable
}

func (p *program) addKernel(name string, numArgs int) {
	if p.numArgs == nil {
		p.numArgs = make(map[string]int)
	}
	if _, ok := p.numArgs[name]; ok {
		return
	}
	p.kernelNames = append(p.kernelNames, name)
	p.numArgs[name] = numArgs
}

var (
	kernelDecl = regexp.MustCompile(`\b(?:__)?kernel\s+void\s+([A-Za-z_]\w*)\s*\(([^)]*)\)`)
	errorDecl  = regexp.MustCompile(`(?m)^\s*#\s*error\b(.*)$`)
)

// parseSource discovers the kernels declared in a source program.
func (p *program) parseSource() {
	for _, match := range kernelDecl.FindAllStringSubmatch(p.source, -1) {
		params := strings.TrimSpace(match[2])
		numArgs := 0
		if params != "" && params != "void" {
			numArgs = strings.Count(params, ",") + 1
		}
		p.addKernel(match[1], numArgs)
	}
}

const binaryMagic = "#clsim-binary"

// binary returns the binary of a program for its devices. The binary is a
// text listing the kernels of the program.
func (p *program) binary() []byte {
	if p.binaryType == cl.ProgramBinaryTypeNone {
		return nil
	}
	var b bytes.Buffer
	fmt.Fprintln(&b, binaryMagic)
	fmt.Fprintf(&b, "type %d\n", p.binaryType)
	for _, name := range p.kernelNames {
		fmt.Fprintf(&b, "kernel %s %d\n", name, p.numArgs[name])
	}
	return b.Bytes()
}

// parseBinary loads a binary returned by the simulator or a SPIR-V module.
func (p *program) parseBinary(image []byte) bool {
	if IsSPIRV(image) {
		names, err := spirvEntryPoints(image)
		if err != nil {
			return false
		}
		for _, name := range names {
			p.addKernel(name, -1)
		}
		p.binaryType = cl.ProgramBinaryTypeCompiledObject
		return true
	}
	scanner := bufio.NewScanner(bytes.NewReader(image))
	if !scanner.Scan() || scanner.Text() != binaryMagic {
		return false
	}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 2 && fields[0] == "type":
			typ, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return false
			}
			p.binaryType = cl.ProgramBinaryType(typ)
		case len(fields) == 3 && fields[0] == "kernel":
			numArgs, err := strconv.Atoi(fields[2])
			if err != nil {
				return false
			}
			p.addKernel(fields[1], numArgs)
		default:
			return false
		}
	}
	return p.binaryType != cl.ProgramBinaryTypeNone
}

func (s *Sim) newProgram(ctx *context, origin programSource) *program {
	s.retain(ctx)
	return &program{
		ctx:     ctx,
		devices: slices.Clone(ctx.devices),
		origin:  origin,
		status:  cl.BuildNone,
	}
}

// CreateProgramWithSource creates a program from OpenCL C sources.
func (s *Sim) CreateProgramWithSource(ctxID cl.Context, sources []string) (cl.Program, cl.Int) {
	defer s.enter("CreateProgramWithSource")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if len(sources) == 0 {
		return 0, cl.InvalidValue
	}
	p := s.newProgram(ctx, fromSource)
	p.source = strings.Join(sources, "")
	p.parseSource()
	return cl.Program(s.add(p, kindProgram)), cl.Success
}

// CreateProgramWithBinary creates a program from binaries returned by the
// simulator or SPIR-V modules, one per device.
func (s *Sim) CreateProgramWithBinary(ctxID cl.Context, devices []cl.DeviceID, binaries [][]byte, binaryStatus []cl.Int) (cl.Program, cl.Int) {
	defer s.enter("CreateProgramWithBinary")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if len(devices) == 0 || len(binaries) != len(devices) {
		return 0, cl.InvalidValue
	}
	if binaryStatus != nil && len(binaryStatus) < len(devices) {
		return 0, cl.InvalidValue
	}
	p := &program{ctx: ctx, origin: fromBinary, status: cl.BuildNone}
	for i, id := range devices {
		d, ok := lookup[*device](s, uintptr(id))
		if !ok || !ctx.hasDevice(d) {
			return 0, cl.InvalidDevice
		}
		p.devices = append(p.devices, d)
		if len(binaries[i]) == 0 {
			return 0, cl.InvalidValue
		}
	}
	status := cl.Success
	for i, image := range binaries {
		st := cl.Success
		if !p.parseBinary(image) {
			st = cl.InvalidBinary
			status = cl.InvalidBinary
		}
		if binaryStatus != nil {
			binaryStatus[i] = st
		}
	}
	if status != cl.Success {
		return 0, status
	}
	s.retain(ctx)
	return cl.Program(s.add(p, kindProgram)), cl.Success
}

// createProgramWithIL creates a program from a SPIR-V module. The simulator
// must be locked.
func (s *Sim) createProgramWithIL(ctxID cl.Context, il []byte) (cl.Program, cl.Int) {
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	names, err := spirvEntryPoints(il)
	if err != nil {
		return 0, cl.InvalidValue
	}
	p := s.newProgram(ctx, fromIL)
	p.il = slices.Clone(il)
	for _, name := range names {
		p.addKernel(name, -1)
	}
	return cl.Program(s.add(p, kindProgram)), cl.Success
}

// CreateProgramWithIL creates a program from a SPIR-V module. Platforms
// older than 2.1 do not implement it.
func (s *Sim) CreateProgramWithIL(ctxID cl.Context, il []byte) (cl.Program, cl.Int) {
	defer s.enter("CreateProgramWithIL")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if !ctx.platform().atLeast(2, 1) {
		return 0, cl.InvalidOperation
	}
	return s.createProgramWithIL(ctxID, il)
}

// deviceFunctionPointer returns the address of a kernel of a built program.
// The simulator must be locked.
func (s *Sim) deviceFunctionPointer(devID cl.DeviceID, programID cl.Program, name string) (uint64, cl.Int) {
	d, ok := lookup[*device](s, uintptr(devID))
	if !ok {
		return 0, cl.InvalidDevice
	}
	p, ok := lookup[*program](s, uintptr(programID))
	if !ok {
		return 0, cl.InvalidProgram
	}
	if !p.hasDevice(d) {
		return 0, cl.InvalidDevice
	}
	if !p.built() {
		return 0, cl.InvalidProgramExecutable
	}
	i := slices.Index(p.kernelNames, name)
	if i < 0 {
		return 0, cl.InvalidKernelName
	}
	return uint64(p.id)<<16 | uint64(i+1), cl.Success
}

// programDevices checks that devices belong to a program. Empty devices
// select all the devices of the program.
func (s *Sim) programDevices(devices []cl.DeviceID, inProgram func(*device) bool) cl.Int {
	for _, id := range devices {
		d, ok := lookup[*device](s, uintptr(id))
		if !ok || !inProgram(d) {
			return cl.InvalidDevice
		}
	}
	return cl.Success
}

// checkSource compiles the source of a program.
func (p *program) checkSource() bool {
	if match := errorDecl.FindStringSubmatch(p.source); match != nil {
		p.status = cl.BuildError
		p.log = "error:" + match[1]
		return false
	}
	return true
}

func notifyProgram(deferred *[]func(), p *program, notify cl.ProgramNotify, userData any) {
	if notify == nil {
		return
	}
	id := cl.Program(p.id)
	*deferred = append(*deferred, func() { notify(id, userData) })
}

// BuildProgram compiles and links a program into an executable.
func (s *Sim) BuildProgram(id cl.Program, devices []cl.DeviceID, options string, notify cl.ProgramNotify, userData any) cl.Int {
	return s.enterDeferred("BuildProgram", func(deferred *[]func()) cl.Int {
		p, ok := lookup[*program](s, uintptr(id))
		if !ok {
			return cl.InvalidProgram
		}
		if status := s.programDevices(devices, p.hasDevice); status != cl.Success {
			return status
		}
		if p.kernels > 0 {
			return cl.InvalidOperation
		}
		p.options = options
		p.log = ""
		defer notifyProgram(deferred, p, notify, userData)
		if p.origin == fromSource && !p.checkSource() {
			p.ctx.report(deferred, "build failed: "+p.log)
			return cl.BuildProgramFailure
		}
		p.status = cl.BuildSuccess
		p.binaryType = cl.ProgramBinaryTypeExecutable
		return cl.Success
	})
}

// CompileProgram compiles a source program into an object.
func (s *Sim) CompileProgram(id cl.Program, devices []cl.DeviceID, options string, headers []cl.Program, headerNames []string, notify cl.ProgramNotify, userData any) cl.Int {
	return s.enterDeferred("CompileProgram", func(deferred *[]func()) cl.Int {
		p, ok := lookup[*program](s, uintptr(id))
		if !ok {
			return cl.InvalidProgram
		}
		if len(headers) != len(headerNames) {
			return cl.InvalidValue
		}
		for _, h := range headers {
			if _, ok := lookup[*program](s, uintptr(h)); !ok {
				return cl.InvalidProgram
			}
		}
		if status := s.programDevices(devices, p.hasDevice); status != cl.Success {
			return status
		}
		if p.origin != fromSource || p.kernels > 0 {
			return cl.InvalidOperation
		}
		p.options = options
		p.log = ""
		defer notifyProgram(deferred, p, notify, userData)
		if !p.checkSource() {
			p.ctx.report(deferred, "compilation failed: "+p.log)
			return cl.CompileProgramFailure
		}
		p.status = cl.BuildSuccess
		p.binaryType = cl.ProgramBinaryTypeCompiledObject
		return cl.Success
	})
}

const createLibraryOption = "-create-library"

// LinkProgram links compiled objects and libraries into a new program.
func (s *Sim) LinkProgram(ctxID cl.Context, devices []cl.DeviceID, options string, inputs []cl.Program, notify cl.ProgramNotify, userData any) (cl.Program, cl.Int) {
	var linked cl.Program
	status := s.enterDeferred("LinkProgram", func(deferred *[]func()) cl.Int {
		ctx, ok := lookup[*context](s, uintptr(ctxID))
		if !ok {
			return cl.InvalidContext
		}
		if len(inputs) == 0 {
			return cl.InvalidValue
		}
		if status := s.programDevices(devices, ctx.hasDevice); status != cl.Success {
			return status
		}
		p := &program{ctx: ctx, origin: fromLink, options: options}
		for _, id := range devices {
			d, _ := lookup[*device](s, uintptr(id))
			p.devices = append(p.devices, d)
		}
		if len(p.devices) == 0 {
			p.devices = slices.Clone(ctx.devices)
		}
		for _, id := range inputs {
			in, ok := lookup[*program](s, uintptr(id))
			if !ok || in.ctx != ctx {
				return cl.InvalidProgram
			}
			if in.status != cl.BuildSuccess || (in.binaryType != cl.ProgramBinaryTypeCompiledObject && in.binaryType != cl.ProgramBinaryTypeLibrary) {
				return cl.InvalidOperation
			}
			for _, name := range in.kernelNames {
				if _, dup := p.numArgs[name]; dup {
					ctx.report(deferred, fmt.Sprintf("link failed: kernel %s defined more than once", name))
					return cl.LinkProgramFailure
				}
				p.addKernel(name, in.numArgs[name])
			}
		}
		p.status = cl.BuildSuccess
		p.binaryType = cl.ProgramBinaryTypeExecutable
		if slices.Contains(strings.Fields(options), createLibraryOption) {
			p.binaryType = cl.ProgramBinaryTypeLibrary
		}
		s.retain(ctx)
		linked = cl.Program(s.add(p, kindProgram))
		notifyProgram(deferred, p, notify, userData)
		return cl.Success
	})
	return linked, status
}

// GetProgramInfo queries a program. cl.ProgramBinaries returns the binaries
// of all the devices of the program, concatenated.
func (s *Sim) GetProgramInfo(id cl.Program, name cl.ProgramInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetProgramInfo")()
	p, ok := lookup[*program](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidProgram
	}
	switch name {
	case cl.ProgramReferenceCount:
		return put(hostlayout.Put(value, s.refCount(p)))
	case cl.ProgramContext:
		return put(hostlayout.Put(value, cl.Context(p.ctx.id)))
	case cl.ProgramNumDevices:
		return put(hostlayout.Put(value, uint32(len(p.devices))))
	case cl.ProgramDevices:
		ids := make([]cl.DeviceID, len(p.devices))
		for i, d := range p.devices {
			ids[i] = cl.DeviceID(d.id)
		}
		return put(hostlayout.PutSlice(value, ids))
	case cl.ProgramSource:
		return put(hostlayout.PutString(value, p.source))
	case cl.ProgramIL:
		return put(hostlayout.PutBytes(value, p.il))
	case cl.ProgramBinarySizes:
		sizes := make([]uint, len(p.devices))
		for i := range sizes {
			sizes[i] = uint(len(p.binary()))
		}
		return put(hostlayout.PutSlice(value, sizes))
	case cl.ProgramBinaries:
		return put(hostlayout.PutBytes(value, bytes.Repeat(p.binary(), len(p.devices))))
	case cl.ProgramNumKernels:
		if !p.built() {
			return 0, cl.InvalidProgramExecutable
		}
		return put(hostlayout.Put(value, uint(len(p.kernelNames))))
	case cl.ProgramKernelNames:
		if !p.built() {
			return 0, cl.InvalidProgramExecutable
		}
		return put(hostlayout.PutString(value, strings.Join(p.kernelNames, ";")))
	}
	return 0, cl.InvalidValue
}

// GetProgramBuildInfo queries the build of a program for a device.
func (s *Sim) GetProgramBuildInfo(id cl.Program, devID cl.DeviceID, name cl.ProgramBuildInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetProgramBuildInfo")()
	p, ok := lookup[*program](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidProgram
	}
	d, ok := lookup[*device](s, uintptr(devID))
	if !ok || !p.hasDevice(d) {
		return 0, cl.InvalidDevice
	}
	switch name {
	case cl.ProgramBuildStatus:
		return put(hostlayout.Put(value, p.status))
	case cl.ProgramBuildOptions:
		return put(hostlayout.PutString(value, p.options))
	case cl.ProgramBuildLog:
		return put(hostlayout.PutString(value, p.log))
	case cl.ProgramBuildBinaryType:
		return put(hostlayout.Put(value, p.binaryType))
	}
	return 0, cl.InvalidValue
}

// RetainProgram retains a program.
func (s *Sim) RetainProgram(id cl.Program) cl.Int {
	defer s.enter("RetainProgram")()
	return retainHandle[*program](s, uintptr(id), cl.InvalidProgram)
}

// ReleaseProgram releases a program.
func (s *Sim) ReleaseProgram(id cl.Program) cl.Int {
	defer s.enter("ReleaseProgram")()
	return releaseHandle[*program](s, uintptr(id), cl.InvalidProgram)
}

// CreateKernel creates a kernel of a built program.
func (s *Sim) CreateKernel(id cl.Program, name string) (cl.Kernel, cl.Int) {
	defer s.enter("CreateKernel")()
	p, ok := lookup[*program](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidProgram
	}
	if !p.built() {
		return 0, cl.InvalidProgramExecutable
	}
	numArgs, ok := p.numArgs[name]
	if !ok {
		return 0, cl.InvalidKernelName
	}
	if impl, ok := s.kernels[name]; ok {
		numArgs = impl.NumArgs
	}
	k := &kernel{prog: p, name: name, numArgs: numArgs}
	if numArgs > 0 {
		k.args = make([]kernelArg, numArgs)
	}
	p.kernels++
	s.retain(p)
	return cl.Kernel(s.add(k, kindKernel)), cl.Success
}

// SetKernelArg binds an argument of a kernel.
func (s *Sim) SetKernelArg(id cl.Kernel, index uint32, size uint, value []byte) cl.Int {
	defer s.enter("SetKernelArg")()
	k, ok := lookup[*kernel](s, uintptr(id))
	if !ok {
		return cl.InvalidKernel
	}
	if k.numArgs >= 0 && int(index) >= k.numArgs {
		return cl.InvalidArgIndex
	}
	arg := kernelArg{set: true}
	switch {
	case value == nil && size == 0:
		return cl.InvalidArgValue
	case value == nil:
		arg.local = size
	case uint(len(value)) != size:
		return cl.InvalidArgSize
	default:
		arg.value = slices.Clone(value)
	}
	for int(index) >= len(k.args) {
		k.args = append(k.args, kernelArg{})
	}
	k.args[index] = arg
	return cl.Success
}

// GetKernelInfo queries a kernel.
func (s *Sim) GetKernelInfo(id cl.Kernel, name cl.KernelInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetKernelInfo")()
	k, ok := lookup[*kernel](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidKernel
	}
	switch name {
	case cl.KernelFunctionName:
		return put(hostlayout.PutString(value, k.name))
	case cl.KernelNumArgs:
		numArgs := k.numArgs
		if numArgs < 0 {
			numArgs = len(k.args)
		}
		return put(hostlayout.Put(value, uint32(numArgs)))
	case cl.KernelReferenceCount:
		return put(hostlayout.Put(value, s.refCount(k)))
	case cl.KernelContext:
		return put(hostlayout.Put(value, cl.Context(k.prog.ctx.id)))
	case cl.KernelProgram:
		return put(hostlayout.Put(value, cl.Program(k.prog.id)))
	case cl.KernelAttributes:
		return put(hostlayout.PutString(value, ""))
	}
	return 0, cl.InvalidValue
}

// kernelDevice returns the device of a per-device kernel query. The device
// may be null if the program has a single device.
func (s *Sim) kernelDevice(k *kernel, id cl.DeviceID) (*device, cl.Int) {
	if id == 0 {
		if len(k.prog.devices) != 1 {
			return nil, cl.InvalidDevice
		}
		return k.prog.devices[0], cl.Success
	}
	d, ok := lookup[*device](s, uintptr(id))
	if !ok || !k.prog.hasDevice(d) {
		return nil, cl.InvalidDevice
	}
	return d, cl.Success
}

func (k *kernel) localMemSize() uint64 {
	var size uint64
	for _, arg := range k.args {
		size += uint64(arg.local)
	}
	return size
}

// GetKernelWorkGroupInfo queries a kernel for a device.
func (s *Sim) GetKernelWorkGroupInfo(id cl.Kernel, devID cl.DeviceID, name cl.KernelWorkGroupInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetKernelWorkGroupInfo")()
	k, ok := lookup[*kernel](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidKernel
	}
	d, status := s.kernelDevice(k, devID)
	if status != cl.Success {
		return 0, status
	}
	switch name {
	case cl.KernelWorkGroupSize:
		return put(hostlayout.Put(value, uint(d.cfg.MaxWorkGroup)))
	case cl.KernelCompileWorkGroupSize:
		return put(hostlayout.PutSlice(value, []uint{0, 0, 0}))
	case cl.KernelLocalMemSize:
		return put(hostlayout.Put(value, k.localMemSize()))
	case cl.KernelPreferredWorkGroupSizeMultiple:
		return put(hostlayout.Put(value, uint(subGroupSize)))
	case cl.KernelPrivateMemSize:
		return put(hostlayout.Put(value, uint64(0)))
	}
	return 0, cl.InvalidValue
}

// subGroupSize is the number of work items of a sub-group on all devices.
const subGroupSize = 8

// GetKernelSubGroupInfo queries the sub-groups of a kernel for a device.
// Platforms older than 2.1 do not implement it.
func (s *Sim) GetKernelSubGroupInfo(id cl.Kernel, devID cl.DeviceID, name cl.KernelSubGroupInfo, input []byte, value []byte) (uint, cl.Int) {
	defer s.enter("GetKernelSubGroupInfo")()
	k, ok := lookup[*kernel](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidKernel
	}
	if !k.prog.ctx.platform().atLeast(2, 1) {
		return 0, cl.InvalidOperation
	}
	d, status := s.kernelDevice(k, devID)
	if status != cl.Success {
		return 0, status
	}
	maxWorkGroup := uint(d.cfg.MaxWorkGroup)
	localSize := func() (uint, cl.Int) {
		local := hostlayout.GetSlice[uint](input)
		if len(local) == 0 || len(local) > 3 {
			return 0, cl.InvalidValue
		}
		size := uint(1)
		for _, l := range local {
			size *= l
		}
		if size == 0 || size > maxWorkGroup {
			return 0, cl.InvalidValue
		}
		return size, cl.Success
	}
	switch name {
	case cl.KernelMaxSubGroupSizeForNDRange:
		size, status := localSize()
		if status != cl.Success {
			return 0, status
		}
		return put(hostlayout.Put(value, min(size, subGroupSize)))
	case cl.KernelSubGroupCountForNDRange:
		size, status := localSize()
		if status != cl.Success {
			return 0, status
		}
		return put(hostlayout.Put(value, (size+subGroupSize-1)/subGroupSize))
	case cl.KernelLocalSizeForSubGroupCount:
		count := hostlayout.Get[uint](input)
		local := count * subGroupSize
		if local > maxWorkGroup {
			local = 0
		}
		return put(hostlayout.Put(value, local))
	case cl.KernelMaxNumSubGroups:
		return put(hostlayout.Put(value, maxWorkGroup/subGroupSize))
	case cl.KernelCompileNumSubGroups:
		return put(hostlayout.Put(value, uint(0)))
	}
	return 0, cl.InvalidValue
}

// RetainKernel retains a kernel.
func (s *Sim) RetainKernel(id cl.Kernel) cl.Int {
	defer s.enter("RetainKernel")()
	return retainHandle[*kernel](s, uintptr(id), cl.InvalidKernel)
}

// ReleaseKernel releases a kernel.
func (s *Sim) ReleaseKernel(id cl.Kernel) cl.Int {
	defer s.enter("ReleaseKernel")()
	return releaseHandle[*kernel](s, uintptr(id), cl.InvalidKernel)
}
