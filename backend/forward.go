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

package backend

import (
	"github.com/gx-org/piopencl"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

// Entry points with no adaptation beyond the conversion of their arguments
// are built from the functions below.

type infoName interface{ ~uint32 }

// getInfo forwards an info query on a handle.
func getInfo[PN infoName, P, C piopencl.Handle, CN infoName](cast piopencl.HandleCast[P, C], query func(C, CN, []byte) (uint, cl.Int)) func(P, PN, []byte) (uint, pi.Result) {
	return func(h P, name PN, value []byte) (uint, pi.Result) {
		size, status := query(cast.Native(h), CN(name), value)
		return size, piopencl.ToResult(status)
	}
}

// getDeviceInfo forwards a per-device info query on a handle.
func getDeviceInfo[PN infoName, P, C piopencl.Handle, CN infoName](cast piopencl.HandleCast[P, C], query func(C, cl.DeviceID, CN, []byte) (uint, cl.Int)) func(P, pi.Device, PN, []byte) (uint, pi.Result) {
	return func(h P, device pi.Device, name PN, value []byte) (uint, pi.Result) {
		size, status := query(cast.Native(h), piopencl.Devices.Native(device), CN(name), value)
		return size, piopencl.ToResult(status)
	}
}

// apply forwards a call taking a single handle, such as retain and release.
func apply[P, C piopencl.Handle](cast piopencl.HandleCast[P, C], fn func(C) cl.Int) func(P) pi.Result {
	return func(h P) pi.Result {
		return piopencl.ToResult(fn(cast.Native(h)))
	}
}

// convertSlice converts the elements of a slice. nil stays nil.
func convertSlice[T, S ~uintptr | ~uint64](s []S) []T {
	if s == nil {
		return nil
	}
	t := make([]T, len(s))
	for i, v := range s {
		t[i] = T(v)
	}
	return t
}
