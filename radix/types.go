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

package radix

// Direction encodes a sorting direction
type Direction int

const (
	Ascending  Direction = 1  // Sort ascending
	Descending Direction = -1 // Sort descending
)

// Layout encodes how the sorted batch is distributed across the
// workers of a team on output.
type Layout int

const (
	// Blocked assigns global position p to worker p/I at slot p%I,
	// where I is the items-per-worker count: each worker holds a
	// contiguous run of the sorted order.
	Blocked Layout = iota
	// Striped assigns global position p to worker p%W at slot p/W,
	// where W is the worker count: each worker holds every W-th item.
	Striped
)

// Window selects the half-open bit range [Begin, End) of a key that
// participates in comparison. The zero value selects the full key
// width.
//
// Narrowed windows are defined only for unsigned key encodings.
type Window struct {
	Begin, End int
}

// Full reports whether the window is the zero value, i.e. the full
// key width.
func (w Window) Full() bool { return w.Begin == 0 && w.End == 0 }

// NullValue is the sentinel value type of a keys-only sorter. A
// Sorter whose value type is NullValue skips value movement entirely.
type NullValue struct{}
