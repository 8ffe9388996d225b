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
	"fmt"
	"reflect"

	"github.com/parallelkit/blocksort/bitkey"
	"github.com/parallelkit/blocksort/ints"
	"github.com/parallelkit/blocksort/team"
)

// DefaultRadixBits is the number of key bits consumed per pass when
// Config.RadixBits is left zero.
const DefaultRadixBits = 4

// maxRadixBits bounds the counter grid to 256 rows
const maxRadixBits = 8

// Config parameterizes a Sorter.
type Config struct {
	// ItemsPerWorker is the length of every worker's private key
	// (and value) slice.
	ItemsPerWorker int
	// RadixBits is the maximum number of key bits consumed per
	// pass; zero selects DefaultRadixBits.
	RadixBits int
	// Scratch, when non-nil, is a caller-supplied arena used for
	// ranking and the key exchange, allowing several cooperating
	// primitives to share one region. It must hold at least
	// ScratchSize bytes and is never freed by the sorter. When nil
	// the sorter allocates a private arena of exactly that size.
	Scratch *team.Arena
}

// Sorter sorts batches of ItemsPerWorker x Workers keys of type K,
// optionally paired with values of type V, distributed across the
// private slices of a team's workers. Use NullValue for V to disable
// value movement entirely.
//
// A Sorter carries no state between calls; only its scratch arena is
// reused.
type Sorter[K bitkey.Key, V any] struct {
	tm        *team.Team
	codec     bitkey.Codec[K]
	items     int // per worker
	total     int // whole team
	radixBits int
	keysOnly  bool
	scratch   *team.Arena

	// vals is the shared value exchange buffer. Values may carry
	// pointers, so they never pass through the untyped arena, whose
	// backing words the collector does not scan; this buffer is an
	// ordinary typed allocation instead.
	vals []V
}

// ScratchSize returns the arena size in bytes that a Sorter for K, V
// with the given team width and configuration requires: the larger of
// the ranking counter grid and the encoded-key exchange buffer. The
// value exchange buffer is typed storage owned by the sorter and is
// not part of the arena.
func ScratchSize[K bitkey.Key, V any](workers int, cfg Config) int {
	bits := cfg.RadixBits
	if bits == 0 {
		bits = DefaultRadixBits
	}
	digits := 1 << bits
	total := workers * cfg.ItemsPerWorker

	size := (digits*workers + digits) * 4 // counter grid plus digit totals, int32 each
	return ints.Max(size, total*8)        // encoded keys travel as uint64
}

func valueless[V any]() bool {
	return reflect.TypeOf((*V)(nil)).Elem() == reflect.TypeOf(NullValue{})
}

// New creates a sorter bound to tm. Every worker's private slices
// must have exactly cfg.ItemsPerWorker elements.
func New[K bitkey.Key, V any](tm *team.Team, cfg Config) (*Sorter[K, V], error) {
	if cfg.ItemsPerWorker < 1 {
		return nil, fmt.Errorf("radix: items per worker must be at least 1, got %d", cfg.ItemsPerWorker)
	}
	bits := cfg.RadixBits
	if bits == 0 {
		bits = DefaultRadixBits
	}
	if bits < 1 || bits > maxRadixBits {
		return nil, fmt.Errorf("radix: radix bits must be in [1, %d], got %d", maxRadixBits, bits)
	}

	need := ScratchSize[K, V](tm.Workers(), cfg)
	scratch := cfg.Scratch
	if scratch == nil {
		scratch = team.NewArena(need)
	} else if scratch.Size() < need {
		return nil, fmt.Errorf("radix: borrowed scratch holds %d bytes, need %d", scratch.Size(), need)
	}

	s := &Sorter[K, V]{
		tm:        tm,
		codec:     bitkey.CodecFor[K](),
		items:     cfg.ItemsPerWorker,
		total:     tm.Workers() * cfg.ItemsPerWorker,
		radixBits: bits,
		keysOnly:  valueless[V](),
		scratch:   scratch,
	}
	if !s.keysOnly {
		s.vals = make([]V, s.total)
	}
	return s, nil
}

// Team returns the team the sorter is bound to.
func (s *Sorter[K, V]) Team() *team.Team { return s.tm }

// Sort sorts the batch ascending into a blocked arrangement. values
// may be nil for a keys-only sorter. Collective: every worker of the
// team must call it with an agreeing window.
func (s *Sorter[K, V]) Sort(w *team.Worker, keys []K, values []V, win Window) {
	s.sortBlocked(w, keys, values, win, Ascending)
}

// SortDescending sorts the batch descending into a blocked
// arrangement. Collective.
func (s *Sorter[K, V]) SortDescending(w *team.Worker, keys []K, values []V, win Window) {
	s.sortBlocked(w, keys, values, win, Descending)
}

// SortToStriped sorts the batch ascending into a striped arrangement.
// Collective.
func (s *Sorter[K, V]) SortToStriped(w *team.Worker, keys []K, values []V, win Window) {
	s.sortToStriped(w, keys, values, win, Ascending)
}

// SortDescendingToStriped sorts the batch descending into a striped
// arrangement. Collective.
func (s *Sorter[K, V]) SortDescendingToStriped(w *team.Worker, keys []K, values []V, win Window) {
	s.sortToStriped(w, keys, values, win, Descending)
}

// sortBlocked runs the full pass loop with a blocked exchange on
// every pass, including the last.
func (s *Sorter[K, V]) sortBlocked(w *team.Worker, keys []K, values []V, win Window, dir Direction) {
	s.check(keys, values)
	begin, end := s.window(win)

	bits := make([]uint64, s.items)
	for i := range keys {
		bits[i] = s.codec.Encode(keys[i])
	}

	ranks := make([]int32, s.items)
	for {
		passBits := ints.Min(s.radixBits, end-begin)
		s.rankKeys(w, bits, ranks, begin, passBits, dir)
		begin += s.radixBits

		w.Sync()

		s.exchangeKeys(w, bits, ranks, Blocked)
		s.exchangeValues(w, values, ranks, Blocked)

		if begin >= end {
			break
		}
		w.Sync()
	}

	for i := range bits {
		keys[i] = s.codec.Decode(bits[i])
	}
}

// sortToStriped runs the same loop but exchanges the final pass into
// a striped arrangement; intermediate passes stay blocked so that the
// next pass ranks contiguous per-worker data.
func (s *Sorter[K, V]) sortToStriped(w *team.Worker, keys []K, values []V, win Window, dir Direction) {
	s.check(keys, values)
	begin, end := s.window(win)

	bits := make([]uint64, s.items)
	for i := range keys {
		bits[i] = s.codec.Encode(keys[i])
	}

	ranks := make([]int32, s.items)
	for {
		passBits := ints.Min(s.radixBits, end-begin)
		s.rankKeys(w, bits, ranks, begin, passBits, dir)
		begin += s.radixBits

		w.Sync()

		if begin >= end {
			s.exchangeKeys(w, bits, ranks, Striped)
			s.exchangeValues(w, values, ranks, Striped)
			break
		}

		s.exchangeKeys(w, bits, ranks, Blocked)
		s.exchangeValues(w, values, ranks, Blocked)

		w.Sync()
	}

	for i := range bits {
		keys[i] = s.codec.Decode(bits[i])
	}
}

func (s *Sorter[K, V]) check(keys []K, values []V) {
	if len(keys) != s.items {
		panic(fmt.Sprintf("radix: worker holds %d keys, sorter configured for %d", len(keys), s.items))
	}
	if !s.keysOnly && len(values) != s.items {
		panic(fmt.Sprintf("radix: worker holds %d values, sorter configured for %d", len(values), s.items))
	}
}

// window resolves win against the key width. Narrowed windows are a
// documented precondition violation for signed and floating keys: the
// per-pass digit is extracted from the encoded bit pattern, which
// matches the raw key bits only for unsigned encodings.
func (s *Sorter[K, V]) window(win Window) (begin, end int) {
	if win.Full() {
		return 0, s.codec.Width
	}
	if !s.codec.Unsigned {
		panic("radix: narrowed bit windows are defined only for unsigned key encodings")
	}
	if win.Begin < 0 || win.Begin >= win.End || win.End > s.codec.Width {
		panic(fmt.Sprintf("radix: invalid bit window [%d, %d) for %d-bit keys", win.Begin, win.End, s.codec.Width))
	}
	return win.Begin, win.End
}
