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

// Package clsim implements the native compute API in Go.
//
// The simulator keeps all its objects in host memory. Commands run in
// submission order on each queue once the events they wait on complete.
// Kernels do nothing unless a Go implementation has been registered with
// RegisterKernel.
//
// The simulator is registered as "sim". Its configuration string is the
// path of a TOML configuration file; an empty string selects DefaultConfig.
package clsim

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl/cl"
)

// Name of the simulator in the registry of native APIs.
const Name = "sim"

func init() {
	cl.Register(Name, func(config string) (cl.API, error) {
		if config == "" {
			return New(DefaultConfig())
		}
		cfg, err := LoadConfig(config)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// handleBase is the value of the first handle. Handles of different
// simulators do not overlap in practice but are not checked across
// simulators.
const handleBase = 0x51_0000_0000

type objectKind int

const (
	kindPlatform objectKind = iota
	kindDevice
	kindContext
	kindQueue
	kindMem
	kindProgram
	kindKernel
	kindEvent
	kindSampler
)

var kindNames = [...]string{
	kindPlatform: "platform",
	kindDevice:   "device",
	kindContext:  "context",
	kindQueue:    "queue",
	kindMem:      "mem",
	kindProgram:  "program",
	kindKernel:   "kernel",
	kindEvent:    "event",
	kindSampler:  "sampler",
}

func (k objectKind) String() string {
	return kindNames[k]
}

type (
	object interface {
		header() *objectHeader
		// destroy releases the objects retained by the object.
		destroy(s *Sim)
	}

	objectHeader struct {
		id   uintptr
		kind objectKind
		refs uint32
		// static objects live as long as the simulator and ignore reference
		// counting.
		static bool
	}
)

func (h *objectHeader) header() *objectHeader { return h }

// Sim is a simulated native API.
type Sim struct {
	mu      sync.Mutex
	cond    *sync.Cond
	nextID  uintptr
	objects map[uintptr]object
	calls   map[string]int
	kernels map[string]Kernel
	start   time.Time

	platforms []*platform
}

var _ cl.API = (*Sim)(nil)

// New returns a new simulator.
func New(cfg *Config) (*Sim, error) {
	s := &Sim{
		nextID:  handleBase,
		objects: make(map[uintptr]object),
		calls:   make(map[string]int),
		kernels: make(map[string]Kernel),
		start:   time.Now(),
	}
	s.cond = sync.NewCond(&s.mu)
	for i := range cfg.Platforms {
		if err := s.addPlatform(&cfg.Platforms[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// enter locks the simulator and counts a call to an entry point. The
// returned function unlocks the simulator.
func (s *Sim) enter(name string) func() {
	s.mu.Lock()
	s.calls[name]++
	return s.mu.Unlock
}

// Calls returns the number of calls to an entry point.
func (s *Sim) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

// ResetCalls sets all the call counters to zero.
func (s *Sim) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

// LiveObjects returns the number of objects created through the API and not
// yet destroyed. Platforms and root devices are not counted.
func (s *Sim) LiveObjects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, obj := range s.objects {
		if !obj.header().static {
			n++
		}
	}
	return n
}

// DumpObjects returns a description of the live objects.
func (s *Sim) DumpObjects() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []string
	for id, obj := range s.objects {
		h := obj.header()
		if h.static {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %#x: %d references", h.kind, id, h.refs))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// add registers an object with one reference and returns its handle.
func (s *Sim) add(obj object, kind objectKind) uintptr {
	h := obj.header()
	h.id = s.nextID
	h.kind = kind
	h.refs = 1
	s.nextID++
	s.objects[h.id] = obj
	return h.id
}

// lookup returns the object of a handle if it has the expected type.
func lookup[T object](s *Sim, id uintptr) (T, bool) {
	obj, ok := s.objects[id]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := obj.(T)
	return t, ok
}

func (s *Sim) retain(obj object) {
	h := obj.header()
	if !h.static {
		h.refs++
	}
}

func (s *Sim) release(obj object) {
	h := obj.header()
	if h.static {
		return
	}
	h.refs--
	if h.refs > 0 {
		return
	}
	klog.V(3).Infof("clsim: destroying %s %#x", h.kind, h.id)
	delete(s.objects, h.id)
	obj.destroy(s)
}

// retainHandle retains the object of a handle of type T.
func retainHandle[T object](s *Sim, id uintptr, invalid cl.Int) cl.Int {
	obj, ok := lookup[T](s, id)
	if !ok {
		return invalid
	}
	s.retain(obj)
	return cl.Success
}

// releaseHandle releases the object of a handle of type T.
func releaseHandle[T object](s *Sim, id uintptr, invalid cl.Int) cl.Int {
	obj, ok := lookup[T](s, id)
	if !ok {
		return invalid
	}
	s.release(obj)
	return cl.Success
}

func (s *Sim) refCount(obj object) uint32 {
	h := obj.header()
	if h.static {
		return 1
	}
	return h.refs
}

// now returns the device time in nanoseconds.
func (s *Sim) now() uint64 {
	return uint64(time.Since(s.start).Nanoseconds())
}

// put writes an info value. A value too small for the result fails with
// cl.InvalidValue.
func put(size uint, fits bool) (uint, cl.Int) {
	if !fits {
		return size, cl.InvalidValue
	}
	return size, cl.Success
}

// enterDeferred is enter for entry points calling back the user: fn runs
// with the simulator locked and appends callbacks to deferred, which run once
// the simulator is unlocked.
func (s *Sim) enterDeferred(name string, fn func(deferred *[]func()) cl.Int) cl.Int {
	var deferred []func()
	status := func() cl.Int {
		defer s.enter(name)()
		return fn(&deferred)
	}()
	run(deferred)
	return status
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
