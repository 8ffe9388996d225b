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

// rankScratch is the ranking phase's view of the shared arena: a
// counter grid with one row per digit and one cell per worker,
// followed by a per-digit total. The grid order (digit-major, then
// worker id, then slot within worker) is the stable order of the
// counting sort.
type rankScratch struct {
	counts  []int32 // counts[d*workers+w]
	totals  []int32 // one per digit
	workers int
}

func (s *Sorter[K, V]) rankView() rankScratch {
	digits := 1 << s.radixBits
	n := s.tm.Workers()
	grid := team.View[int32](s.scratch, digits*n+digits)
	return rankScratch{counts: grid[:digits*n], totals: grid[digits*n:], workers: n}
}

// rankKeys produces, for every local key, its destination position in
// the stable total order of the whole team's batch restricted to the
// digit window [beginBit, beginBit+passBits).
func (s *Sorter[K, V]) rankKeys(w *team.Worker, bits []uint64, ranks []int32, beginBit, passBits int, dir Direction) {
	if dir == Descending {
		descendingRanker{s.rankView()}.rankKeys(w, bits, ranks, beginBit, passBits)
		return
	}
	ascendingRanker{s.rankView()}.rankKeys(w, bits, ranks, beginBit, passBits)
}

// count runs the shared half of a ranking pass: every worker counts
// its own digits into its column of the grid, then the columns are
// turned into exclusive per-digit prefixes across workers. Two team
// barriers; on return the grid and totals are visible to all workers.
func (r rankScratch) count(w *team.Worker, bits []uint64, beginBit, passBits int) {
	me := w.ID()
	digits := 1 << passBits
	mask := uint64(digits - 1)

	for d := 0; d < digits; d++ {
		r.counts[d*r.workers+me] = 0
	}
	for _, b := range bits {
		d := int(b >> uint(beginBit) & mask)
		r.counts[d*r.workers+me]++
	}

	w.Sync()

	// each worker scans its strided share of the digit rows: an
	// exclusive prefix across workers in id order plus the row total
	for d := me; d < digits; d += r.workers {
		row := r.counts[d*r.workers : d*r.workers+r.workers]
		sum := int32(0)
		for i := range row {
			c := row[i]
			row[i] = sum
			sum += c
		}
		r.totals[d] = sum
	}

	w.Sync()
}

// ascendingRanker ranks for ascending polarity: digit bases grow from
// the lowest digit up.
type ascendingRanker struct {
	rankScratch
}

func (r ascendingRanker) rankKeys(w *team.Worker, bits []uint64, ranks []int32, beginBit, passBits int) {
	r.count(w, bits, beginBit, passBits)

	me := w.ID()
	digits := 1 << passBits
	mask := uint64(digits - 1)

	// every worker derives the same bases from the shared totals;
	// redundant work, but it saves a third barrier
	base := make([]int32, digits)
	sum := int32(0)
	for d := 0; d < digits; d++ {
		base[d] = sum
		sum += r.totals[d]
	}

	for i, b := range bits {
		d := int(b >> uint(beginBit) & mask)
		cell := &r.counts[d*r.workers+me]
		ranks[i] = base[d] + *cell
		*cell++
	}
}

// descendingRanker ranks for descending polarity: digit bases grow
// from the highest digit down. Worker and slot order within a digit
// stay ascending, which keeps the sort stable.
type descendingRanker struct {
	rankScratch
}

func (r descendingRanker) rankKeys(w *team.Worker, bits []uint64, ranks []int32, beginBit, passBits int) {
	r.count(w, bits, beginBit, passBits)

	me := w.ID()
	digits := 1 << passBits
	mask := uint64(digits - 1)

	base := make([]int32, digits)
	sum := int32(0)
	for d := digits - 1; d >= 0; d-- {
		base[d] = sum
		sum += r.totals[d]
	}

	for i, b := range bits {
		d := int(b >> uint(beginBit) & mask)
		cell := &r.counts[d*r.workers+me]
		ranks[i] = base[d] + *cell
		*cell++
	}
}
