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
// Package plugin loads a PI plugin driving a native compute API.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/gx-org/piopencl/backend"
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
	"github.com/gx-org/piopencl/plugin"
)

var (
	platformsCommand = &cli.Command{
		Name:   "platforms",
		Usage:  "list the platforms and their capabilities",
		Action: listPlatforms,
	}
	devicesCommand = &cli.Command{
		Name:   "devices",
		Usage:  "list the devices of all the platforms",
		Action: listDevices,
	}
	selectCommand = &cli.Command{
		Name:      "select",
		Usage:     "select a binary for each device given binary target tags",
		ArgsUsage: "<target>...",
		Action:    selectBinaries,
	}
)

func load(ctx *cli.Context) (*backend.Backend, error) {
	config := ctx.String(backendFlag.Name)
	if config == "" {
		config = plugin.Resolve()
	}
	return plugin.Load(config)
}

func platforms(table pi.Table) ([]pi.Platform, error) {
	n, res := table.Platform.Get(nil)
	if res != pi.Success {
		return nil, errors.Wrap(res, "cannot count platforms")
	}
	ids := make([]pi.Platform, n)
	if n == 0 {
		return ids, nil
	}
	if _, res := table.Platform.Get(ids); res != pi.Success {
		return nil, errors.Wrap(res, "cannot get platforms")
	}
	return ids, nil
}

func devices(table pi.Table, platform pi.Platform) ([]pi.Device, error) {
	n, res := table.Device.Get(platform, pi.DeviceTypeAll, nil)
	if res != pi.Success {
		return nil, errors.Wrapf(res, "cannot count the devices of platform %#x", platform)
	}
	ids := make([]pi.Device, n)
	if n == 0 {
		return ids, nil
	}
	if _, res := table.Device.Get(platform, pi.DeviceTypeAll, ids); res != pi.Success {
		return nil, errors.Wrapf(res, "cannot get the devices of platform %#x", platform)
	}
	return ids, nil
}

func platformInfo(table pi.Table, platform pi.Platform, name pi.PlatformInfo) string {
	s, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return table.Platform.GetInfo(platform, name, value)
	})
	if res != pi.Success {
		return res.String()
	}
	return s
}

func deviceInfo(table pi.Table, device pi.Device, name pi.DeviceInfo) string {
	s, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return table.Device.GetInfo(device, name, value)
	})
	if res != pi.Success {
		return res.String()
	}
	return s
}

func deviceType(table pi.Table, device pi.Device) (pi.DeviceType, pi.Result) {
	return hostlayout.Query[pi.DeviceType](func(value []byte) (uint, pi.Result) {
		return table.Device.GetInfo(device, pi.DeviceInfoType, value)
	})
}

var deviceTypeNames = map[pi.DeviceType]string{
	pi.DeviceTypeCPU:         "cpu",
	pi.DeviceTypeGPU:         "gpu",
	pi.DeviceTypeAccelerator: "accelerator",
	pi.DeviceTypeCustom:      "custom",
}

func deviceTypeName(typ pi.DeviceType) string {
	if name, ok := deviceTypeNames[typ&^pi.DeviceTypeDefault]; ok {
		return name
	}
	return fmt.Sprintf("%#x", uint64(typ))
}

func newTable(ctx *cli.Context, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	return table
}

func listPlatforms(ctx *cli.Context) error {
	b, err := load(ctx)
	if err != nil {
		return err
	}
	ids, err := platforms(b.Table())
	if err != nil {
		return err
	}
	out := newTable(ctx, "Platform", "Name", "Vendor", "Version", "Queues", "IL programs", "Extensions")
	for _, id := range ids {
		caps, res := b.Capabilities(id)
		if res != pi.Success {
			return errors.Wrapf(res, "cannot get the capabilities of platform %#x", id)
		}
		queues := "properties"
		if caps.LegacyQueues() {
			queues = "legacy"
		}
		il := "core"
		if !caps.CoreIL() {
			il = "none"
			if caps.HasExtension("cl_khr_il_program") {
				il = "extension"
			}
		}
		exts := caps.Extensions.ToSlice()
		sort.Strings(exts)
		out.Append([]string{
			fmt.Sprintf("%#x", id),
			platformInfo(b.Table(), id, pi.PlatformInfoName),
			platformInfo(b.Table(), id, pi.PlatformInfoVendor),
			caps.VersionString,
			queues,
			il,
			strings.Join(exts, " "),
		})
	}
	out.Render()
	return nil
}

func listDevices(ctx *cli.Context) error {
	b, err := load(ctx)
	if err != nil {
		return err
	}
	table := b.Table()
	ids, err := platforms(table)
	if err != nil {
		return err
	}
	out := newTable(ctx, "Platform", "Device", "Name", "Type", "Version", "Target")
	for _, platform := range ids {
		devs, err := devices(table, platform)
		if err != nil {
			return err
		}
		for _, dev := range devs {
			typ, res := deviceType(table, dev)
			if res != pi.Success {
				return errors.Wrapf(res, "cannot get the type of device %#x", dev)
			}
			out.Append([]string{
				fmt.Sprintf("%#x", platform),
				fmt.Sprintf("%#x", dev),
				deviceInfo(table, dev, pi.DeviceInfoName),
				deviceTypeName(typ),
				deviceInfo(table, dev, pi.DeviceInfoVersion),
				backend.TargetFor(typ),
			})
		}
	}
	out.Render()
	return nil
}

// binariesFor returns one binary descriptor per target tag. Generic targets
// are SPIR-V images, other targets native images.
func binariesFor(targets []string) []*pi.DeviceBinary {
	binaries := make([]*pi.DeviceBinary, len(targets))
	for i, target := range targets {
		format := pi.BinaryFormatNative
		if target == pi.TargetSPIRV64 {
			format = pi.BinaryFormatSPIRV
		}
		binaries[i] = &pi.DeviceBinary{Format: format, DeviceTargetSpec: target}
	}
	return binaries
}

func selectBinaries(ctx *cli.Context) error {
	targets := ctx.Args().Slice()
	if len(targets) == 0 {
		return errors.Errorf("missing binary targets")
	}
	b, err := load(ctx)
	if err != nil {
		return err
	}
	table := b.Table()
	ids, err := platforms(table)
	if err != nil {
		return err
	}
	binaries := binariesFor(targets)
	out := newTable(ctx, "Device", "Name", "Selected")
	for _, platform := range ids {
		devs, err := devices(table, platform)
		if err != nil {
			return err
		}
		for _, dev := range devs {
			selected := "none"
			binary, res := table.Device.SelectBinary(dev, binaries)
			switch res {
			case pi.Success:
				selected = binary.DeviceTargetSpec
			case pi.InvalidBinary:
			default:
				return errors.Wrapf(res, "cannot select a binary for device %#x", dev)
			}
			out.Append([]string{
				fmt.Sprintf("%#x", dev),
				deviceInfo(table, dev, pi.DeviceInfoName),
				selected,
			})
		}
	}
	out.Render()
	return nil
}
