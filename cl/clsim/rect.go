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

import "github.com/gx-org/piopencl/cl"

// rect is a 3D copy between two pitched memory regions. The first component
// of origins and of the region is in bytes.
type rect struct {
	srcOrigin, dstOrigin [3]uint
	// Row and slice pitches.
	srcPitch, dstPitch [2]uint
	region             [3]uint
}

func offset(origin [3]uint, pitch [2]uint) uint {
	return origin[0] + origin[1]*pitch[0] + origin[2]*pitch[1]
}

// extentOf returns the number of bytes spanned by region at origin.
func extentOf(origin, region [3]uint, pitch [2]uint) uint {
	return offset(origin, pitch) + (region[2]-1)*pitch[1] + (region[1]-1)*pitch[0] + region[0]
}

func (r *rect) srcEnd() uint { return extentOf(r.srcOrigin, r.region, r.srcPitch) }

func (r *rect) dstEnd() uint { return extentOf(r.dstOrigin, r.region, r.dstPitch) }

func copyRect(dst, src []byte, r rect) {
	for z := uint(0); z < r.region[2]; z++ {
		for y := uint(0); y < r.region[1]; y++ {
			srcOff := offset([3]uint{r.srcOrigin[0], r.srcOrigin[1] + y, r.srcOrigin[2] + z}, r.srcPitch)
			dstOff := offset([3]uint{r.dstOrigin[0], r.dstOrigin[1] + y, r.dstOrigin[2] + z}, r.dstPitch)
			copy(dst[dstOff:dstOff+r.region[0]], src[srcOff:srcOff+r.region[0]])
		}
	}
}

// pitches returns the pitches of a buffer rectangle, computing the
// defaults of zero pitches.
func pitches(region [3]uint, row, slice uint) ([2]uint, cl.Int) {
	if row == 0 {
		row = region[0]
	}
	if slice == 0 {
		slice = row * region[1]
	}
	if row < region[0] || slice < row*region[1] {
		return [2]uint{}, cl.InvalidValue
	}
	return [2]uint{row, slice}, cl.Success
}

func validRegion(region [3]uint) bool {
	return region[0] != 0 && region[1] != 0 && region[2] != 0
}

// bufferRect builds the copy between a buffer and host memory. The buffer
// is the source if toHost is true.
func bufferRect(bufferOrigin, hostOrigin, region [3]uint, bufferRow, bufferSlice, hostRow, hostSlice uint, toHost bool) (rect, cl.Int) {
	if !validRegion(region) {
		return rect{}, cl.InvalidValue
	}
	bufferPitch, status := pitches(region, bufferRow, bufferSlice)
	if status != cl.Success {
		return rect{}, status
	}
	hostPitch, status := pitches(region, hostRow, hostSlice)
	if status != cl.Success {
		return rect{}, status
	}
	if toHost {
		return rect{srcOrigin: bufferOrigin, dstOrigin: hostOrigin, srcPitch: bufferPitch, dstPitch: hostPitch, region: region}, cl.Success
	}
	return rect{srcOrigin: hostOrigin, dstOrigin: bufferOrigin, srcPitch: hostPitch, dstPitch: bufferPitch, region: region}, cl.Success
}

// imageRect converts an image region in elements to bytes and checks that
// it fits in the image.
func imageRect(m *mem, origin, region [3]uint) ([3]uint, [3]uint, cl.Int) {
	if !validRegion(region) {
		return origin, region, cl.InvalidValue
	}
	ext := m.extent()
	for i := range ext {
		if origin[i]+region[i] > ext[i] {
			return origin, region, cl.InvalidValue
		}
	}
	origin[0] *= m.elemSize
	region[0] *= m.elemSize
	return origin, region, cl.Success
}

// imagePitch returns the row and slice pitches of an image. 1D arrays store
// their elements as rows.
func (m *mem) imagePitch() [2]uint {
	return [2]uint{m.rowPitch, m.slicePitch}
}

// overlaps reports whether two copies within the same storage overlap.
func overlaps(r *rect) bool {
	srcStart, dstStart := offset(r.srcOrigin, r.srcPitch), offset(r.dstOrigin, r.dstPitch)
	return srcStart < r.dstEnd() && dstStart < r.srcEnd()
}
