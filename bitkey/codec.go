// Copyright 2024 the blocksort authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package bitkey maps fixed-width numeric keys to unsigned bit patterns
// whose unsigned lexicographic order equals the natural ascending order
// of the keys.
//
// The transform is a bijection: Decode inverts Encode for every
// representable bit pattern, including NaNs and the two floating-point
// zeros. Radix-sorting the encoded patterns as plain unsigned integers
// therefore sorts the original keys, regardless of their encoding:
//
//   - unsigned integers pass through unchanged;
//   - signed integers get their sign bit complemented;
//   - floats get the sign bit complemented when non-negative and all
//     bits inverted when negative, which reverses the ordering of the
//     negative range and folds NaNs to the two ends of the total order.
package bitkey

import (
	"math"
	"reflect"
)

// Key enumerates the supported key encodings.
type Key interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Codec is an order-preserving bijection between keys of type K and
// unsigned bit patterns stored in the low Width bits of a uint64.
type Codec[K Key] struct {
	// Width is the key width in bits.
	Width int
	// Unsigned reports whether K is an unsigned integer encoding.
	// Windowed comparison over a sub-range of bits is defined only
	// for unsigned keys.
	Unsigned bool

	encode func(K) uint64
	decode func(uint64) K
}

// Encode returns the order-preserving unsigned image of k.
func (c *Codec[K]) Encode(k K) uint64 { return c.encode(k) }

// Decode inverts Encode.
func (c *Codec[K]) Decode(bits uint64) K { return c.decode(bits) }

// CodecFor returns the codec for the key type K.
func CodecFor[K Key]() Codec[K] {
	kind := reflect.TypeOf((*K)(nil)).Elem().Kind()
	switch kind {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		width := widthOf(kind)
		mask := widthMask(width)
		return Codec[K]{
			Width:    width,
			Unsigned: true,
			encode:   func(k K) uint64 { return uint64(k) & mask },
			decode:   func(bits uint64) K { return K(bits) },
		}

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		width := widthOf(kind)
		mask := widthMask(width)
		sign := uint64(1) << (width - 1)
		return Codec[K]{
			Width: width,
			encode: func(k K) uint64 { return (uint64(int64(k)) & mask) ^ sign },
			decode: func(bits uint64) K {
				shift := 64 - width
				return K(int64((bits^sign)<<shift) >> shift)
			},
		}

	case reflect.Float32:
		return Codec[K]{
			Width:  32,
			encode: func(k K) uint64 { return uint64(twiddleIn32(math.Float32bits(float32(k)))) },
			decode: func(bits uint64) K { return K(math.Float32frombits(twiddleOut32(uint32(bits)))) },
		}

	case reflect.Float64:
		return Codec[K]{
			Width:  64,
			encode: func(k K) uint64 { return twiddleIn64(math.Float64bits(float64(k))) },
			decode: func(bits uint64) K { return K(math.Float64frombits(twiddleOut64(bits))) },
		}
	}
	panic("bitkey: unsupported key kind " + kind.String())
}

// Width returns the bit width of the key type K.
func Width[K Key]() int {
	c := CodecFor[K]()
	return c.Width
}

func widthOf(kind reflect.Kind) int {
	switch kind {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	}
	return 64
}

func widthMask(width int) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<width - 1
}

// twiddleIn64 makes the unsigned order of float64 bit patterns agree
// with the numeric order: negative values (sign bit set) are fully
// inverted, non-negative values get the sign bit set.
func twiddleIn64(bits uint64) uint64 {
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | 1<<63
}

func twiddleOut64(bits uint64) uint64 {
	if bits&(1<<63) != 0 {
		return bits &^ (1 << 63)
	}
	return ^bits
}

func twiddleIn32(bits uint32) uint32 {
	if bits&(1<<31) != 0 {
		return ^bits
	}
	return bits | 1<<31
}

func twiddleOut32(bits uint32) uint32 {
	if bits&(1<<31) != 0 {
		return bits &^ (1 << 31)
	}
	return ^bits
}
