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

// Package testing provides helpers to test code driving the simulated
// native compute API.
package testing

import (
	"testing"

	"github.com/gx-org/piopencl/backend"
	"github.com/gx-org/piopencl/cl/clsim"
)

// NewSim returns a simulator given a TOML configuration. An empty
// configuration returns a simulator with the default configuration.
func NewSim(t testing.TB, config string) *clsim.Sim {
	t.Helper()
	cfg := clsim.DefaultConfig()
	if config != "" {
		var err error
		if cfg, err = clsim.ParseConfig(config); err != nil {
			t.Fatalf("cannot parse simulator configuration: %v", err)
		}
	}
	sim, err := clsim.New(cfg)
	if err != nil {
		t.Fatalf("cannot create simulator: %v", err)
	}
	return sim
}

// NewBackend returns a simulator and a backend driving it.
func NewBackend(t testing.TB, config string) (*clsim.Sim, *backend.Backend) {
	t.Helper()
	sim := NewSim(t, config)
	b, err := backend.New(sim, backend.Config{})
	if err != nil {
		t.Fatalf("cannot create backend: %v", err)
	}
	return sim, b
}

// CheckObjectCount compares the number of live simulated objects to a
// reference. Signal a testing error if the two counts do not match.
func CheckObjectCount(t testing.TB, sim *clsim.Sim, startCount int) {
	t.Helper()
	endCount := sim.LiveObjects()
	if endCount != startCount {
		t.Errorf("objects are leaking: started with %d and ended with %d\nLive objects:\n%s", startCount, endCount, sim.DumpObjects())
	}
}
