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

// Package plugin loads a PI plugin driving a native compute API.
//
// A plugin is selected by a configuration string "<backend>:<backend
// config>" where backend is the name under which a native API has been
// registered in package cl.
package plugin

import (
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl/backend"
	"github.com/gx-org/piopencl/backend/platform"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"

	// Register the simulated native API.
	_ "github.com/gx-org/piopencl/cl/clsim"
)

// EnvBackend is the environment variable holding the configuration used by
// New.
const EnvBackend = "PI_OPENCL_BACKEND"

// DefaultConfig is used by New if EnvBackend is not set.
// If empty, New uses the first registered backend.
var DefaultConfig = ""

var (
	mu     sync.Mutex
	loaded = make(map[string]*backend.Backend)
)

// ParseConfig splits a configuration string into a backend name and the
// configuration of the backend.
func ParseConfig(config string) (name, backendConfig string, err error) {
	name, backendConfig, _ = strings.Cut(config, ":")
	if name == "" {
		return "", "", errors.Errorf("no backend name in plugin configuration %q", config)
	}
	return name, backendConfig, nil
}

// Load returns the plugin of a configuration. Plugins are loaded once per
// configuration: later calls return the same plugin.
func Load(config string) (*backend.Backend, error) {
	mu.Lock()
	defer mu.Unlock()
	if b, ok := loaded[config]; ok {
		return b, nil
	}
	name, backendConfig, err := ParseConfig(config)
	if err != nil {
		return nil, err
	}
	api, err := cl.New(name, backendConfig)
	if err != nil {
		return nil, err
	}
	b, err := backend.New(api, backend.Config{})
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot load plugin %q", config)
	}
	klog.V(1).Infof("loaded PI plugin %q", config)
	loaded[config] = b
	return b, nil
}

// Resolve returns the configuration used by New.
func Resolve() string {
	if config := os.Getenv(EnvBackend); config != "" {
		return config
	}
	if DefaultConfig != "" {
		return DefaultConfig
	}
	return cl.Default()
}

// New returns the plugin of the configuration returned by Resolve.
func New() (*backend.Backend, error) {
	config := Resolve()
	if config == "" {
		return nil, errors.Errorf("no native compute API registered and %s not set", EnvBackend)
	}
	return Load(config)
}

// NewGXPlatform returns a GX platform over the first platform of a plugin
// with devices of type devType. An empty config selects the configuration
// returned by Resolve.
func NewGXPlatform(config string, devType pi.DeviceType) (*platform.Platform, error) {
	if config == "" {
		config = Resolve()
	}
	b, err := Load(config)
	if err != nil {
		return nil, err
	}
	return platform.New(b.Table(), devType)
}
