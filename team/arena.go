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

package team

import (
	"fmt"
	"unsafe"

	"github.com/parallelkit/blocksort/ints"
)

// Arena is a fixed-size scratch region shared by the workers of a
// team. Different phases of a collective operation view the same bytes
// as different typed structures; only one view may be live at a time,
// and ownership transfers only across a completed team barrier. The
// arena is sized once to the largest view it has to carry, so the
// memory footprint is that of the single largest phase, not the sum of
// all phases.
type Arena struct {
	// backing storage is []uint64 so every view of a type with
	// alignment up to 8 starts on a properly aligned address
	words []uint64
}

// NewArena allocates an arena of at least size bytes.
func NewArena(size int) *Arena {
	if size < 0 {
		panic(fmt.Sprintf("team: negative arena size %d", size))
	}
	return &Arena{words: make([]uint64, ints.AlignUp(size, 8)/8)}
}

// Size returns the arena capacity in bytes.
func (a *Arena) Size() int { return len(a.words) * 8 }

// View reinterprets the front of the arena as a slice of n values of
// type T. It panics if the arena is too small. The caller owns the
// returned slice until the next team barrier after it stops using it;
// views handed out for different phases alias the same memory.
//
// T must not contain pointers: the backing words are opaque to the
// garbage collector, so a referent held only through a view can be
// collected while the view still names it.
func View[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	need := n * int(unsafe.Sizeof(zero))
	if need > a.Size() {
		panic(fmt.Sprintf("team: arena view of %d bytes exceeds arena size %d", need, a.Size()))
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&a.words[0])), n)
}
