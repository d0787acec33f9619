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

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/kzgverkle/kzgverkle/kzg"
)

// ErrInvalidPath is returned when a Path references a child index out of
// range for the current node, or selects a leaf selector against a node
// whose children are not leaves (and vice versa).
var ErrInvalidPath = errors.New("verkle: path does not match tree shape at this node")

// GenerateProof answers path by structural recursion on its shape: a
// LeafSelector yields a batch opening of this node's leaf values; a
// BranchSelector yields either a single-point or batch opening of this
// node's own polynomial (depending on how many keys are selected) plus one
// recursively-generated sub-proof per selected child. Independent sub-trees
// are proved concurrently via an errgroup, since proof generation down
// disjoint branches has no shared state and the result stays deterministic
// regardless of scheduling order.
func (n *InternalNode) GenerateProof(path Path) (ProofTree, error) {
	switch p := path.(type) {
	case LeafSelector:
		return n.proveLeafSelector(p)
	case BranchSelector:
		return n.proveBranchSelector(p)
	default:
		return nil, fmt.Errorf("verkle: unknown path variant %T", path)
	}
}

func (n *InternalNode) proveLeafSelector(sel LeafSelector) (ProofTree, error) {
	if len(sel.Entries) == 0 {
		return nil, fmt.Errorf("%w: empty leaf selector", ErrInvalidPath)
	}
	seen := bitset.New(uint(len(n.children)))
	pts := make([]kzg.Point, len(sel.Entries))
	for i, entry := range sel.Entries {
		if entry.Index < 0 || entry.Index >= len(n.children) {
			return nil, fmt.Errorf("%w: leaf index %d out of range", ErrInvalidPath, entry.Index)
		}
		if _, ok := n.children[entry.Index].(*Leaf); !ok {
			return nil, fmt.Errorf("%w: leaf selector against non-leaf child %d", ErrInvalidPath, entry.Index)
		}
		if seen.Test(uint(entry.Index)) {
			return nil, fmt.Errorf("%w: duplicate leaf index %d", ErrInvalidPath, entry.Index)
		}
		seen.Set(uint(entry.Index))
		pts[i] = kzg.Point{Z: scalarOfInt(entry.Index), V: entry.Value}
	}

	w, err := n.engine.OpenBatch(n.poly, pts)
	if err != nil {
		return nil, err
	}
	return LeafProof{Commitment: n.commitment, Proof: w}, nil
}

func (n *InternalNode) proveBranchSelector(sel BranchSelector) (ProofTree, error) {
	if len(sel.Children) == 0 {
		return nil, fmt.Errorf("%w: empty branch selector", ErrInvalidPath)
	}

	indices := make([]int, 0, len(sel.Children))
	for i := range sel.Children {
		if i < 0 || i >= len(n.children) {
			return nil, fmt.Errorf("%w: branch index %d out of range", ErrInvalidPath, i)
		}
		if _, ok := n.children[i].(*InternalNode); !ok {
			return nil, fmt.Errorf("%w: branch selector against leaf child %d", ErrInvalidPath, i)
		}
		indices = append(indices, i)
	}

	var self kzg.Proof
	var err error
	if len(indices) == 1 {
		i := indices[0]
		self, err = n.engine.OpenPoint(n.poly, kzg.Point{
			Z: scalarOfInt(i),
			V: n.children[i].NodeValue(),
		})
	} else {
		pts := make([]kzg.Point, len(indices))
		for k, i := range indices {
			pts[k] = kzg.Point{Z: scalarOfInt(i), V: n.children[i].NodeValue()}
		}
		self, err = n.engine.OpenBatch(n.poly, pts)
	}
	if err != nil {
		return nil, err
	}

	subProofs := make(map[int]ProofTree, len(indices))
	var mu sync.Mutex
	g := new(errgroup.Group)
	for _, i := range indices {
		i := i
		child := n.children[i].(*InternalNode)
		subPath := sel.Children[i]
		g.Go(func() error {
			sub, err := child.GenerateProof(subPath)
			if err != nil {
				return err
			}
			mu.Lock()
			subProofs[i] = sub
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BranchProof{
		Self:     LeafProof{Commitment: n.commitment, Proof: self},
		Children: subProofs,
	}, nil
}
