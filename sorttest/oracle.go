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

package sorttest

import (
	"sort"

	"github.com/parallelkit/blocksort/bitkey"
	"github.com/parallelkit/blocksort/radix"
)

// Permutation returns the expected sorted order of keys as a
// permutation of original indices: a stable comparison sort, computed
// independently from the radix machinery. A full window compares with
// the natural < of the key type (which is why test inputs avoid NaN);
// a narrowed window compares only the selected bits, interpreted as
// an unsigned value, and is meaningful for unsigned keys only.
func Permutation[K bitkey.Key](keys []K, dir radix.Direction, win radix.Window) []int {
	var less func(a, b K) bool
	if win.Full() {
		less = func(a, b K) bool { return a < b }
	} else {
		mask := uint64(1)<<(win.End-win.Begin) - 1
		shift := uint(win.Begin)
		less = func(a, b K) bool {
			return uint64(a)>>shift&mask < uint64(b)>>shift&mask
		}
	}
	if dir == radix.Descending {
		asc := less
		less = func(a, b K) bool { return asc(b, a) }
	}

	perm := make([]int, len(keys))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return less(keys[perm[i]], keys[perm[j]])
	})
	return perm
}

// Apply returns in reordered by the permutation: out[i] = in[perm[i]].
func Apply[T any](perm []int, in []T) []T {
	out := make([]T, len(perm))
	for i, p := range perm {
		out[i] = in[p]
	}
	return out
}
