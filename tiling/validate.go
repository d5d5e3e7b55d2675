// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tiling

import "fmt"

// Validate checks p against the profile and workload it was built for and
// returns an *InvariantError for the first violation. Profile and workload
// errors are returned as from Partition.
func (p TilingPlan) Validate(hw HardwareProfile, wl WorkloadDescriptor) error {
	alignElems, err := wl.AlignmentElements(hw)
	if err != nil {
		return err
	}

	if p.UsedCoreCount < 1 || p.UsedCoreCount > hw.CoreCount {
		return invariantf("core-count", "used %d cores of %d", p.UsedCoreCount, hw.CoreCount)
	}
	if p.BigCoreCount > p.UsedCoreCount {
		return invariantf("core-count", "%d big cores exceed %d used", p.BigCoreCount, p.UsedCoreCount)
	}

	covered, ok := p.coveredElements()
	if !ok {
		return invariantf("coverage", "%d big x %d + %d small x %d elements overflow 64 bits",
			p.BigCoreCount, p.Big.ElementsPerCore, p.SmallCoreCount(), p.Small.ElementsPerCore)
	}
	if covered < wl.TotalElements {
		return invariantf("coverage", "%d elements covered, %d required", covered, wl.TotalElements)
	}
	if covered-wl.TotalElements >= alignElems {
		return invariantf("coverage", "%d padding elements, want < %d", covered-wl.TotalElements, alignElems)
	}

	switch {
	case p.BigCoreCount == 0:
		if p.Big != p.Small {
			return invariantf("big-small-delta", "no big cores but big %+v differs from small %+v", p.Big, p.Small)
		}
	case p.BigCoreCount < p.UsedCoreCount:
		if p.Big.ElementsPerCore != p.Small.ElementsPerCore+alignElems {
			return invariantf("big-small-delta", "big %d != small %d + %d", p.Big.ElementsPerCore, p.Small.ElementsPerCore, alignElems)
		}
	}

	if err := validateClass("big", p.Big); err != nil {
		return err
	}
	return validateClass("small", p.Small)
}

func validateClass(name string, c CoreClassPlan) error {
	if c.ElementsPerCore == 0 {
		if c != (CoreClassPlan{}) {
			return invariantf("empty-class", "%s class has no work but %+v", name, c)
		}
		return nil
	}
	switch {
	case c.TileElementCount == 0:
		return invariantf("tile-size", "%s class has zero-sized tiles", name)
	case c.TileCount == 0:
		return invariantf("tile-count", "%s class has no tiles", name)
	case c.TailElementCount == 0 || c.TailElementCount > c.TileElementCount:
		return invariantf("tail-bound", "%s tail %d not in (0, %d]", name, c.TailElementCount, c.TileElementCount)
	}
	if c.TileElementCount*(c.TileCount-1)+c.TailElementCount != c.ElementsPerCore {
		return invariantf("tile-exactness", "%s %d*(%d-1)+%d != %d", name, c.TileElementCount, c.TileCount, c.TailElementCount, c.ElementsPerCore)
	}
	return nil
}

func invariantf(name, format string, args ...any) *InvariantError {
	return &InvariantError{Invariant: name, Detail: fmt.Sprintf(format, args...)}
}
