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

// Package hostlayout reads and writes info query values.
//
// Values are stored exactly as the host lays them out in memory, which is the
// representation the native API uses for its param_value buffers.
package hostlayout

import (
	"bytes"
	"unsafe"
)

type (
	// Scalar is a fixed size value stored in an info buffer.
	Scalar interface {
		~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 |
			~int | ~uint | ~uintptr | ~float32 | ~float64
	}

	// Status is a result code where zero means success.
	Status interface{ ~int32 }
)

func bytesOf[T Scalar](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

func bytesOfSlice[T Scalar](vs []T) []byte {
	if len(vs) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(vs))), uintptr(len(vs))*unsafe.Sizeof(zero))
}

func put(value, src []byte) (uint, bool) {
	if value == nil {
		return uint(len(src)), true
	}
	if len(value) < len(src) {
		return uint(len(src)), false
	}
	copy(value, src)
	return uint(len(src)), true
}

// Put writes v to value. It returns the size of v and false if value is
// not nil and too small to hold v.
func Put[T Scalar](value []byte, v T) (uint, bool) {
	return put(value, bytesOf(&v))
}

// PutSlice writes the elements of vs contiguously to value.
func PutSlice[T Scalar](value []byte, vs []T) (uint, bool) {
	return put(value, bytesOfSlice(vs))
}

// PutString writes s followed by a NUL byte to value.
func PutString(value []byte, s string) (uint, bool) {
	return put(value, append([]byte(s), 0))
}

// PutBytes writes b to value.
func PutBytes(value []byte, b []byte) (uint, bool) {
	return put(value, b)
}

// Get reads a T from the start of value. Missing bytes read as zero.
func Get[T Scalar](value []byte) T {
	var v T
	copy(bytesOf(&v), value)
	return v
}

// GetSlice reads as many T as value holds.
func GetSlice[T Scalar](value []byte) []T {
	var zero T
	n := uintptr(len(value)) / unsafe.Sizeof(zero)
	vs := make([]T, n)
	copy(bytesOfSlice(vs), value)
	return vs
}

// GetString reads a string up to the first NUL byte.
func GetString(value []byte) string {
	if i := bytes.IndexByte(value, 0); i >= 0 {
		value = value[:i]
	}
	return string(value)
}

// Query runs an info query for a fixed size value.
func Query[T Scalar, S Status](query func(value []byte) (uint, S)) (T, S) {
	var v T
	_, status := query(bytesOf(&v))
	return v, status
}

// QueryBytes runs the size-then-fetch protocol of info queries.
func QueryBytes[S Status](query func(value []byte) (uint, S)) ([]byte, S) {
	size, status := query(nil)
	if status != 0 {
		return nil, status
	}
	value := make([]byte, size)
	if size == 0 {
		return value, status
	}
	_, status = query(value)
	if status != 0 {
		return nil, status
	}
	return value, status
}

// QueryString runs the size-then-fetch protocol for a string value.
func QueryString[S Status](query func(value []byte) (uint, S)) (string, S) {
	value, status := QueryBytes(query)
	if status != 0 {
		return "", status
	}
	return GetString(value), status
}

// QuerySlice runs the size-then-fetch protocol for an array value.
func QuerySlice[T Scalar, S Status](query func(value []byte) (uint, S)) ([]T, S) {
	value, status := QueryBytes(query)
	if status != 0 {
		return nil, status
	}
	return GetSlice[T](value), status
}
