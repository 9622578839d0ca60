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
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

// channelComponents maps the channels of an element to the components of a
// fill color.
var channelComponents = map[cl.ChannelOrder][]int{
	cl.ChannelR:    {0},
	cl.ChannelA:    {3},
	cl.ChannelRG:   {0, 1},
	cl.ChannelRA:   {0, 3},
	cl.ChannelRGB:  {0, 1, 2},
	cl.ChannelRGBA: {0, 1, 2, 3},
	cl.ChannelBGRA: {2, 1, 0, 3},
}

func normalized(f float32, lo float32, scale float32) float64 {
	return math.Round(float64(min(max(f, lo), 1) * scale))
}

func saturate(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}

// encodePixel converts a fill color to an image element. The color is four
// floats for normalized and float formats, four int32 for signed formats,
// and four uint32 for unsigned formats.
func encodePixel(format cl.ImageFormat, color []byte) []byte {
	components := hostlayout.GetSlice[uint32](color)
	var pixel []byte
	for _, c := range channelComponents[format.ChannelOrder] {
		bits := components[c]
		f := math.Float32frombits(bits)
		i := int64(int32(bits))
		u := int64(bits)
		switch format.ChannelDataType {
		case cl.UnormInt8:
			pixel = append(pixel, uint8(normalized(f, 0, math.MaxUint8)))
		case cl.UnormInt16:
			pixel = binary.NativeEndian.AppendUint16(pixel, uint16(normalized(f, 0, math.MaxUint16)))
		case cl.SnormInt8:
			pixel = append(pixel, uint8(int8(normalized(f, -1, math.MaxInt8))))
		case cl.SnormInt16:
			pixel = binary.NativeEndian.AppendUint16(pixel, uint16(int16(normalized(f, -1, math.MaxInt16))))
		case cl.SignedInt8:
			pixel = append(pixel, uint8(int8(saturate(i, math.MinInt8, math.MaxInt8))))
		case cl.SignedInt16:
			pixel = binary.NativeEndian.AppendUint16(pixel, uint16(int16(saturate(i, math.MinInt16, math.MaxInt16))))
		case cl.SignedInt32:
			pixel = binary.NativeEndian.AppendUint32(pixel, bits)
		case cl.UnsignedInt8:
			pixel = append(pixel, uint8(saturate(u, 0, math.MaxUint8)))
		case cl.UnsignedInt16:
			pixel = binary.NativeEndian.AppendUint16(pixel, uint16(saturate(u, 0, math.MaxUint16)))
		case cl.UnsignedInt32:
			pixel = binary.NativeEndian.AppendUint32(pixel, bits)
		case cl.HalfFloat:
			pixel = binary.NativeEndian.AppendUint16(pixel, float16.Fromfloat32(f).Bits())
		case cl.Float:
			pixel = binary.NativeEndian.AppendUint32(pixel, bits)
		}
	}
	return pixel
}
