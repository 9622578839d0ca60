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

// Package backend provides the Plugin Interface on top of a native compute
// API.
//
// The adapter holds no state on the resources it hands out: every handle is
// owned by the native API and entry points may be called concurrently. The
// only state is a cache of the capabilities of each platform.
package backend

import (
	"github.com/pkg/errors"

	"github.com/gx-org/piopencl"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

// Backend adapts a native compute API to the Plugin Interface.
type Backend struct {
	api   cl.API
	cfg   Config
	caps  *capabilityCache
	table pi.Table
}

// New returns a new adapter given a native API.
func New(api cl.API, cfg Config) (*Backend, error) {
	cfg = cfg.withDefaults()
	caps, err := newCapabilityCache(api, cfg.CapabilityCacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create a capability cache of size %d", cfg.CapabilityCacheSize)
	}
	b := &Backend{
		api:  api,
		cfg:  cfg,
		caps: caps,
	}
	if b.table, err = pi.NewTable(b.entries()); err != nil {
		return nil, errors.Wrap(err, "cannot build the dispatch table")
	}
	return b, nil
}

// Table returns the entry points of the adapter.
func (b *Backend) Table() pi.Table {
	return b.table
}

// API returns the native API driven by the adapter.
func (b *Backend) API() cl.API {
	return b.api
}

// Config returns the configuration of the adapter with defaults applied.
func (b *Backend) Config() Config {
	return b.cfg
}

// Capabilities returns the capabilities of a platform.
func (b *Backend) Capabilities(platform pi.Platform) (*Capabilities, pi.Result) {
	caps, status := b.caps.get(piopencl.Platforms.Native(platform))
	return caps, piopencl.ToResult(status)
}

// PurgeCapabilities drops all cached capability records. Call it when the
// platforms of the native API may have changed.
func (b *Backend) PurgeCapabilities() {
	b.caps.purge()
}

// devicePlatform returns the platform of a device.
func (b *Backend) devicePlatform(device cl.DeviceID) (cl.PlatformID, cl.Int) {
	return hostlayout.Query[cl.PlatformID](func(value []byte) (uint, cl.Int) {
		return b.api.GetDeviceInfo(device, cl.DevicePlatform, value)
	})
}
