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

// LoadBlocked copies this worker's contiguous run of buf into items:
// global position me*len(items)+i lands at local slot i. buf holds
// the whole team's batch.
func LoadBlocked[T any](w *team.Worker, buf []T, items []T) {
	n := len(items)
	copy(items, buf[w.ID()*n:(w.ID()+1)*n])
}

// StoreBlocked writes a blocked arrangement back to buf, inverting
// LoadBlocked.
func StoreBlocked[T any](w *team.Worker, buf []T, items []T) {
	n := len(items)
	copy(buf[w.ID()*n:(w.ID()+1)*n], items)
}

// StoreStriped writes a striped arrangement back to buf: local slot i
// holds global position i*W+me.
func StoreStriped[T any](w *team.Worker, buf []T, items []T) {
	me, workers := w.ID(), w.Team().Workers()
	for i := range items {
		buf[i*workers+me] = items[i]
	}
}
