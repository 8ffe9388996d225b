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

import (
	"github.com/parallelkit/blocksort/team"
)

// exchangeKeys redistributes the encoded keys through the shared
// arena so that every worker ends up holding its positions under the
// requested layout.
func (s *Sorter[K, V]) exchangeKeys(w *team.Worker, bits []uint64, ranks []int32, layout Layout) {
	scatterGather(w, team.View[uint64](s.scratch, s.total), bits, ranks, layout)
}

// exchangeValues moves values in lockstep with their keys. For a
// keys-only sorter it is a no-op: no barrier, no shared traffic.
// Values travel through the sorter's typed buffer, never the arena:
// any pointers they carry must stay visible to the collector for the
// whole window between scatter and gather.
func (s *Sorter[K, V]) exchangeValues(w *team.Worker, values []V, ranks []int32, layout Layout) {
	if s.keysOnly {
		return
	}
	w.Sync() // the key exchange may still be reading the arena
	scatterGather(w, s.vals, values, ranks, layout)
}

// scatterGather writes every local item to its rank in the shared
// buffer, barriers, and reads back the items this worker owns under
// the layout. The team must be synchronized before entry (ranks and
// source items stable and visible everywhere) and is desynchronized
// on return; callers must barrier again before shm is reused.
func scatterGather[T any](w *team.Worker, shm []T, items []T, ranks []int32, layout Layout) {
	for i, r := range ranks {
		shm[r] = items[i]
	}

	w.Sync()

	me := w.ID()
	if layout == Striped {
		workers := w.Team().Workers()
		for i := range items {
			items[i] = shm[i*workers+me]
		}
		return
	}
	copy(items, shm[me*len(items):(me+1)*len(items)])
}
