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
// Command piinfo lists the platforms and devices seen through a PI plugin.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl/plugin"
)

var (
	backendFlag = &cli.StringFlag{
		Name:    "backend",
		Usage:   "plugin configuration \"<backend>:<backend config>\"",
		EnvVars: []string{plugin.EnvBackend},
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity",
	}
)

func setVerbosity(v int) error {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	return fs.Set("v", strconv.Itoa(v))
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "piinfo",
		Usage:  "list the platforms and devices of a PI plugin",
		Writer: out,
		Flags:  []cli.Flag{backendFlag, verbosityFlag},
		Before: func(ctx *cli.Context) error {
			return setVerbosity(ctx.Int(verbosityFlag.Name))
		},
		Commands: []*cli.Command{
			platformsCommand,
			devicesCommand,
			selectCommand,
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
