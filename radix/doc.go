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

/*
Package radix implements a cooperative, block-scoped radix sort: a
fixed team of workers jointly sorts a small batch of keys (optionally
paired with values) that is distributed across the workers' private
slices, coordinating through a shared scratch arena.

# Overview

A Sorter is bound to a team and a per-worker item count at
construction. Every worker of the team calls one of the public sort
operations collectively, passing its own private key (and value)
slices; on return the batch is a sorted permutation of the input,
redistributed across the workers in the requested layout.

Sorting proceeds in passes over windows of at most RadixBits key
bits, least-significant first. Each pass ranks all keys by the
current digit (a stable counting sort over the whole team's batch)
and then exchanges keys, and values in lockstep, through the scratch
arena so that every worker ends up holding the items at its assigned
positions. Keys of any supported encoding are transformed once, up
front, into unsigned bit patterns whose unsigned order matches the
keys' natural order (see package bitkey), so the per-pass machinery
is oblivious to signs and floating-point representation; the
transform is undone once after the last pass.

# Collective-call discipline

All workers of the team must call the same operation with agreeing
arguments; divergent collective calls are undefined and typically
deadlock. A sort call suspends only at team barriers. When a sorter
(or a borrowed scratch arena) is reused for a subsequent collective
call, the team must synchronize (Worker.Sync) between the calls, since
the first phase of a pass reuses scratch that the tail of the previous
call may still be reading.

# Scratch

The scratch arena is sized to the larger of its two phases: the
ranking counter grid and the encoded-key exchange buffer. It may be
supplied by the caller (to share one region among several cooperating
primitives within a kernel) or allocated privately by the sorter;
behavior is identical either way. Values are exchanged through a
separate typed buffer owned by the sorter, never through the arena:
the arena's backing words are invisible to the garbage collector, and
value types may carry pointers.
*/
package radix
