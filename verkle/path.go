// Copyright 2020 ConsenSys Software Inc.
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

package verkle

import "github.com/kzgverkle/kzgverkle/curve"

// IndexValue names a child index together with the value the prover claims
// it holds; used only by LeafSelector, where the verifier cannot recompute
// the expected value from a commitment and must be told it directly.
type IndexValue struct {
	Index int
	Value curve.Scalar
}

// Path is the recursive selector that names a sub-tree of interest: either a
// LeafSelector or a BranchSelector. Modeled as a tagged variant rather than a
// heterogeneous map, so the shape is checked by the compiler.
type Path interface {
	isPath()
}

// LeafSelector names which children of a leaf-containing internal node to
// open, and the value each is expected to hold.
type LeafSelector struct {
	Entries []IndexValue
}

func (LeafSelector) isPath() {}

// BranchSelector names which children to descend into, one sub-path per
// selected index.
type BranchSelector struct {
	Children map[int]Path
}

func (BranchSelector) isPath() {}
