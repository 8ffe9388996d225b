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

// Package team runs a fixed-size group of cooperating goroutines that
// execute one collective operation together, in the manner of a GPU
// thread block: every worker holds private data, cross-worker data
// dependencies are ordered exclusively by team-wide barriers, and
// shared scratch memory is reused across phases under that barrier
// discipline.
package team

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Shape describes the dimensions of a team. Zero dimensions are
// treated as 1, so Shape{X: 64} is a one-dimensional team of 64
// workers.
type Shape struct {
	X, Y, Z int
}

func (s Shape) normalized() Shape {
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	return s
}

// Count returns the total number of workers described by the shape.
func (s Shape) Count() int {
	s = s.normalized()
	return s.X * s.Y * s.Z
}

// Linear returns the row-major linear identifier of the worker at
// coordinates (x, y, z).
func (s Shape) Linear(x, y, z int) int {
	s = s.normalized()
	return (z*s.Y+y)*s.X + x
}

// Team is a fixed-size group of workers sharing one barrier.
type Team struct {
	shape   Shape
	workers int
	barrier *Barrier
}

// New creates a team with the given shape.
func New(shape Shape) (*Team, error) {
	n := shape.Count()
	if n < 1 {
		return nil, fmt.Errorf("team: invalid shape %+v", shape)
	}
	return &Team{
		shape:   shape.normalized(),
		workers: n,
		barrier: NewBarrier(n),
	}, nil
}

// Workers returns the number of workers in the team.
func (t *Team) Workers() int { return t.workers }

// Shape returns the team's shape.
func (t *Team) Shape() Shape { return t.shape }

// Run executes fn once per worker, each call on its own goroutine with
// that worker's handle. It returns after every worker has finished; the
// first non-nil error is returned. fn must execute the same sequence of
// collective operations on every worker, or the team deadlocks.
func (t *Team) Run(fn func(*Worker) error) error {
	var group errgroup.Group
	for i := 0; i < t.workers; i++ {
		w := &Worker{team: t, id: i}
		group.Go(func() error { return fn(w) })
	}
	return group.Wait()
}

// Worker is the per-goroutine handle of one team member.
type Worker struct {
	team *Team
	id   int
}

// ID returns the worker's linear identifier, in [0, Workers()).
func (w *Worker) ID() int { return w.id }

// Team returns the team the worker belongs to.
func (w *Worker) Team() *Team { return w.team }

// Sync blocks until every worker of the team has called Sync. It is
// the only suspension point of a collective operation.
func (w *Worker) Sync() { w.team.barrier.Wait() }
