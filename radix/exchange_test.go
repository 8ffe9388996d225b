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
	"testing"

	"github.com/parallelkit/blocksort/team"
)

// runExchange pushes the whole batch through one scatterGather and
// returns every worker's private slice afterwards, worker-major.
func runExchange(t *testing.T, workers, items int, ranks []int32, layout Layout) []uint64 {
	t.Helper()

	tm, err := team.New(team.Shape{X: workers})
	if err != nil {
		t.Fatal(err)
	}
	total := workers * items
	shm := team.View[uint64](team.NewArena(total*8), total)

	out := make([]uint64, total)
	err = tm.Run(func(w *team.Worker) error {
		local := make([]uint64, items)
		localRanks := make([]int32, items)
		for i := range local {
			local[i] = uint64(w.ID()*items + i) // item id == original position
			localRanks[i] = ranks[w.ID()*items+i]
		}
		scatterGather(w, shm, local, localRanks, layout)
		copy(out[w.ID()*items:], local)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func reversed(total int) []int32 {
	ranks := make([]int32, total)
	for i := range ranks {
		ranks[i] = int32(total - 1 - i)
	}
	return ranks
}

func TestScatterToBlocked(t *testing.T) {
	const workers, items = 4, 3
	total := workers * items

	out := runExchange(t, workers, items, reversed(total), Blocked)

	// blocked: worker w slot i holds the item ranked w*items+i;
	// under the reversal that item is total-1-(w*items+i)
	for w := 0; w < workers; w++ {
		for i := 0; i < items; i++ {
			want := uint64(total - 1 - (w*items + i))
			if got := out[w*items+i]; got != want {
				t.Errorf("worker %d slot %d: got item %d, want %d", w, i, got, want)
			}
		}
	}
}

func TestScatterToStriped(t *testing.T) {
	const workers, items = 4, 3
	total := workers * items

	out := runExchange(t, workers, items, reversed(total), Striped)

	// striped: worker w slot i holds the item ranked i*workers+w
	for w := 0; w < workers; w++ {
		for i := 0; i < items; i++ {
			want := uint64(total - 1 - (i*workers + w))
			if got := out[w*items+i]; got != want {
				t.Errorf("worker %d slot %d: got item %d, want %d", w, i, got, want)
			}
		}
	}
}

func TestScatterIdentity(t *testing.T) {
	const workers, items = 6, 2
	total := workers * items

	identity := make([]int32, total)
	for i := range identity {
		identity[i] = int32(i)
	}

	out := runExchange(t, workers, items, identity, Blocked)
	for i := range out {
		if out[i] != uint64(i) {
			t.Errorf("identity exchange moved item %d to %d", i, out[i])
		}
	}
}
