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

package piopencl

import (
	"unsafe"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

var (
	_ [unsafe.Sizeof(pi.Result(0)) - unsafe.Sizeof(cl.Int(0))]struct{}
	_ [unsafe.Sizeof(cl.Int(0)) - unsafe.Sizeof(pi.Result(0))]struct{}
)

// ToResult translates a native status code. The two code spaces share their
// numeric values: unnamed codes keep their value.
func ToResult(status cl.Int) pi.Result {
	return pi.Result(status)
}

// Bool converts a Go boolean to the native boolean.
func Bool(b bool) cl.Bool {
	return cl.BoolOf(b)
}
