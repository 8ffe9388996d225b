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

// Package sorttest provides common functions used in tests of the
// block radix sort: randomized input generation, a host-side oracle
// ordering, and an order-independent batch digest.
package sorttest

import (
	"math"
	"math/rand"
	"reflect"

	"github.com/parallelkit/blocksort/bitkey"
)

// Keys returns n random keys of type K. Integer keys are drawn from
// the full range of the encoding; float keys are finite values with
// occasional infinities and exact zeros. NaN is never generated,
// since the oracle comparison relies on the natural < operator.
func Keys[K bitkey.Key](rng *rand.Rand, n int) []K {
	kind := reflect.TypeOf((*K)(nil)).Elem().Kind()
	out := make([]K, n)
	switch kind {
	case reflect.Float32, reflect.Float64:
		for i := range out {
			switch rng.Intn(32) {
			case 0:
				out[i] = K(math.Inf(1))
			case 1:
				out[i] = K(math.Inf(-1))
			case 2:
				out[i] = 0
			default:
				out[i] = K((rng.Float64() - 0.5) * 1e6)
			}
		}
	default:
		// every Width-bit pattern decodes to a distinct integer key,
		// so this draws uniformly from the whole range
		codec := bitkey.CodecFor[K]()
		mask := uint64(1)<<(codec.Width-1)<<1 - 1
		for i := range out {
			out[i] = codec.Decode(rng.Uint64() & mask)
		}
	}
	return out
}

// SmallKeys returns n random keys drawn from [0, distinct), so that
// duplicates are frequent. Meant for stability tests; K should be an
// unsigned encoding wide enough to hold distinct-1.
func SmallKeys[K bitkey.Key](rng *rand.Rand, n, distinct int) []K {
	out := make([]K, n)
	for i := range out {
		out[i] = K(rng.Intn(distinct))
	}
	return out
}

// Indices returns the values 0..n-1, the canonical payload for
// stability checks: after a stable sort the payload of equal keys
// must remain in increasing order.
func Indices(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
