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

package ints

import (
	"golang.org/x/exp/constraints"
)

// AlignUp returns v aligned up to a given alignment.
func AlignUp[T constraints.Integer](v, alignment T) T {
	return ((v + alignment - 1) / alignment) * alignment
}
