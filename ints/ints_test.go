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
	"testing"
)

func TestAlignUp(t *testing.T) {
	for v := 0; v < 100; v++ {
		for _, a := range []int{1, 2, 4, 8, 16} {
			up := AlignUp(v, a)
			if up%a != 0 || up < v || up-v >= a {
				t.Errorf("AlignUp(%d, %d) = %d", v, a, up)
			}
			if v%a == 0 && up != v {
				t.Errorf("aligned %d moved to %d for alignment %d", v, up, a)
			}
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max")
	}
}
