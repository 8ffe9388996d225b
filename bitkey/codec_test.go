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

package bitkey

import (
	"math"
	"math/rand"
	"testing"
)

func testRoundTrip[K Key](t *testing.T, keys []K) {
	t.Helper()
	codec := CodecFor[K]()
	for _, k := range keys {
		got := codec.Decode(codec.Encode(k))
		if got != k {
			t.Errorf("round trip of %v returned %v", k, got)
		}
	}
}

// testOrder checks that a strictly ascending list of keys encodes to
// strictly ascending unsigned patterns.
func testOrder[K Key](t *testing.T, ascending []K) {
	t.Helper()
	codec := CodecFor[K]()
	for i := 1; i < len(ascending); i++ {
		prev := codec.Encode(ascending[i-1])
		cur := codec.Encode(ascending[i])
		if prev >= cur {
			t.Errorf("Encode(%v) = %#x is not below Encode(%v) = %#x",
				ascending[i-1], prev, ascending[i], cur)
		}
	}
}

// testBijection checks that Encode inverts Decode over random
// Width-bit patterns, i.e. the codec is a bijection on the whole
// pattern space, NaNs included.
func testBijection[K Key](t *testing.T) {
	t.Helper()
	codec := CodecFor[K]()
	mask := uint64(1)<<(codec.Width-1)<<1 - 1
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 10000; i++ {
		pattern := rng.Uint64() & mask
		got := codec.Encode(codec.Decode(pattern))
		if got != pattern {
			t.Fatalf("Encode(Decode(%#x)) = %#x", pattern, got)
		}
	}
}

func TestUnsignedCodec(t *testing.T) {
	testRoundTrip(t, []uint8{0, 1, 127, 128, 255})
	testRoundTrip(t, []uint16{0, 1, math.MaxUint16})
	testRoundTrip(t, []uint32{0, 1, math.MaxUint32})
	testRoundTrip(t, []uint64{0, 1, math.MaxUint64})

	testOrder(t, []uint8{0, 1, 127, 128, 255})
	testOrder(t, []uint16{0, 255, 256, math.MaxUint16})
	testOrder(t, []uint32{0, 1, 1 << 16, math.MaxUint32})
	testOrder(t, []uint64{0, 1, 1 << 32, math.MaxUint64})

	testBijection[uint8](t)
	testBijection[uint64](t)

	if c := CodecFor[uint32](); !c.Unsigned || c.Width != 32 {
		t.Errorf("uint32 codec: unsigned=%v width=%d", c.Unsigned, c.Width)
	}
}

func TestSignedCodec(t *testing.T) {
	all := make([]int8, 0, 256)
	for i := math.MinInt8; i <= math.MaxInt8; i++ {
		all = append(all, int8(i))
	}
	testRoundTrip(t, all)
	testOrder(t, all)

	testRoundTrip(t, []int16{math.MinInt16, -1, 0, 1, math.MaxInt16})
	testRoundTrip(t, []int32{math.MinInt32, -1, 0, 1, math.MaxInt32})
	testRoundTrip(t, []int64{math.MinInt64, -1, 0, 1, math.MaxInt64})

	testOrder(t, []int16{math.MinInt16, -256, -1, 0, 1, 256, math.MaxInt16})
	testOrder(t, []int32{math.MinInt32, -1, 0, 1, math.MaxInt32})
	testOrder(t, []int64{math.MinInt64, -(1 << 40), -1, 0, 1, 1 << 40, math.MaxInt64})

	testBijection[int8](t)
	testBijection[int64](t)

	if c := CodecFor[int64](); c.Unsigned || c.Width != 64 {
		t.Errorf("int64 codec: unsigned=%v width=%d", c.Unsigned, c.Width)
	}
}

func TestFloat64Codec(t *testing.T) {
	testRoundTrip(t, []float64{
		math.Inf(-1), -math.MaxFloat64, -1.5, -math.SmallestNonzeroFloat64,
		0, math.SmallestNonzeroFloat64, 1.5, math.MaxFloat64, math.Inf(1),
	})
	testOrder(t, []float64{
		math.Inf(-1), -math.MaxFloat64, -1.5, -math.SmallestNonzeroFloat64,
		math.Copysign(0, -1), 0, math.SmallestNonzeroFloat64, 1.5,
		math.MaxFloat64, math.Inf(1),
	})
	testBijection[float64](t)

	codec := CodecFor[float64]()

	// NaN does not round trip under ==; compare bit patterns
	nan := math.Float64bits(math.NaN())
	got := math.Float64bits(codec.Decode(codec.Encode(math.Float64frombits(nan))))
	if got != nan {
		t.Errorf("NaN round trip: %#x != %#x", got, nan)
	}

	// positive NaN sorts above +Inf, negative NaN below -Inf
	posNaN := codec.Encode(math.Float64frombits(nan &^ (1 << 63)))
	negNaN := codec.Encode(math.Float64frombits(nan | 1<<63))
	if posNaN <= codec.Encode(math.Inf(1)) {
		t.Errorf("positive NaN (%#x) does not sort above +Inf", posNaN)
	}
	if negNaN >= codec.Encode(math.Inf(-1)) {
		t.Errorf("negative NaN (%#x) does not sort below -Inf", negNaN)
	}
}

func TestFloat32Codec(t *testing.T) {
	testRoundTrip(t, []float32{
		float32(math.Inf(-1)), -math.MaxFloat32, -1.5, 0, 1.5,
		math.MaxFloat32, float32(math.Inf(1)),
	})
	testOrder(t, []float32{
		float32(math.Inf(-1)), -math.MaxFloat32, -1.5,
		float32(math.Copysign(0, -1)), 0, 1.5, math.MaxFloat32,
		float32(math.Inf(1)),
	})
	testBijection[float32](t)

	codec := CodecFor[float32]()
	nan := math.Float32bits(float32(math.NaN()))
	got := math.Float32bits(codec.Decode(codec.Encode(math.Float32frombits(nan))))
	if got != nan {
		t.Errorf("NaN round trip: %#x != %#x", got, nan)
	}
}

func TestNamedKeyTypes(t *testing.T) {
	type epoch uint32
	testRoundTrip(t, []epoch{0, 1, math.MaxUint32})
	testOrder(t, []epoch{0, 1, math.MaxUint32})
	if c := CodecFor[epoch](); !c.Unsigned {
		t.Errorf("named unsigned type not detected as unsigned")
	}
}
