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
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"

	"github.com/parallelkit/blocksort/bitkey"
)

// fixed siphash key; the digest only has to be stable within a test run
const (
	sipK0 = 0x736f727474657374
	sipK1 = 0x626c6f636b736f72
)

// Checksum returns an order-independent digest of the multiset of
// keys: the wrapping sum of one siphash per key. Two slices digest
// equal exactly when they hold the same keys with the same
// multiplicities, so it detects created, lost or corrupted items
// regardless of their arrangement.
func Checksum[K bitkey.Key](keys []K) uint64 {
	codec := bitkey.CodecFor[K]()
	var buf [8]byte
	var sum uint64
	for _, k := range keys {
		binary.LittleEndian.PutUint64(buf[:], codec.Encode(k))
		sum += siphash.Hash(sipK0, sipK1, buf[:])
	}
	return sum
}

// PairChecksum is Checksum over (key, value) pairs.
func PairChecksum[K bitkey.Key, V any](keys []K, values []V) uint64 {
	codec := bitkey.CodecFor[K]()
	var sum uint64
	for i, k := range keys {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], codec.Encode(k))
		pair := append(buf[:], fmt.Sprintf("%v", values[i])...)
		sum += siphash.Hash(sipK0, sipK1, pair)
	}
	return sum
}
