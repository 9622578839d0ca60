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
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/gx-org/piopencl/cl"
)

type (
	// Config describes the platforms of a simulator.
	Config struct {
		Platforms []PlatformConfig `toml:"platform"`
	}

	// PlatformConfig describes a platform.
	PlatformConfig struct {
		Name    string `toml:"name"`
		Vendor  string `toml:"vendor"`
		Version string `toml:"version"`
		Profile string `toml:"profile"`
		// Extensions lists the reported extension tokens.
		Extensions []string `toml:"extensions"`
		// HiddenFunctions lists extension entry points the platform does
		// not return even if it reports the corresponding extension.
		HiddenFunctions []string       `toml:"hidden_functions"`
		Devices         []DeviceConfig `toml:"device"`
	}

	// DeviceConfig describes a device.
	DeviceConfig struct {
		Name string `toml:"name"`
		// Type is one of "cpu", "gpu", "accelerator", or "custom".
		Type          string `toml:"type"`
		VendorID      uint32 `toml:"vendor_id"`
		ComputeUnits  uint32 `toml:"compute_units"`
		GlobalMemSize uint64 `toml:"global_mem_size"`
		MaxWorkGroup  uint   `toml:"max_work_group_size"`
		// Version defaults to the version of the platform.
		Version string `toml:"version"`
		// MaxSubDevices defaults to ComputeUnits.
		MaxSubDevices uint32 `toml:"max_sub_devices"`
	}
)

const (
	defaultProfile       = "FULL_PROFILE"
	defaultComputeUnits  = 4
	defaultGlobalMemSize = 1 << 30
	defaultMaxWorkGroup  = 256
)

// DefaultConfig returns a configuration with one platform implementing the
// latest version and providing a CPU and a GPU device.
func DefaultConfig() *Config {
	return &Config{
		Platforms: []PlatformConfig{{
			Name:    "Simulated Platform",
			Vendor:  "GX",
			Version: "OpenCL 3.0 clsim",
			Extensions: []string{
				cl.ILProgramExtension,
				cl.FunctionPointersINTELExtension,
			},
			Devices: []DeviceConfig{
				{Name: "Simulated CPU", Type: "cpu"},
				{Name: "Simulated GPU", Type: "gpu", ComputeUnits: 16},
			},
		}},
	}
}

// ParseConfig parses a TOML configuration.
func ParseConfig(text string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse simulator configuration")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, errors.Errorf("unknown simulator configuration keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load simulator configuration %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("%s: unknown simulator configuration key %s", path, undecoded[0])
	}
	return cfg, nil
}

var deviceTypes = map[string]cl.DeviceType{
	"cpu":         cl.DeviceTypeCPU,
	"gpu":         cl.DeviceTypeGPU,
	"accelerator": cl.DeviceTypeAccelerator,
	"custom":      cl.DeviceTypeCustom,
}

func (cfg *DeviceConfig) withDefaults(plat *PlatformConfig) (DeviceConfig, error) {
	dev := *cfg
	if _, ok := deviceTypes[dev.Type]; !ok {
		return dev, errors.Errorf("device %q: unknown device type %q", dev.Name, dev.Type)
	}
	if dev.ComputeUnits == 0 {
		dev.ComputeUnits = defaultComputeUnits
	}
	if dev.GlobalMemSize == 0 {
		dev.GlobalMemSize = defaultGlobalMemSize
	}
	if dev.MaxWorkGroup == 0 {
		dev.MaxWorkGroup = defaultMaxWorkGroup
	}
	if dev.Version == "" {
		dev.Version = plat.Version
	}
	if dev.MaxSubDevices == 0 {
		dev.MaxSubDevices = dev.ComputeUnits
	}
	return dev, nil
}
