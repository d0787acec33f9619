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

// Package verkletest builds smoke-test Verkle trees and matching path
// descriptors for exercising the prover/verifier without a real dataset.
// There is no single canonical way to carve a path through an arbitrary
// tree shape for production use, so this package only covers the shapes its
// own tree builder produces; it is kept out of the public verkle API so
// production callers cannot reach for it by accident.
package verkletest

import (
	"fmt"
	"math/rand"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
	"github.com/kzgverkle/kzgverkle/verkle"
)

// BuildMockTree builds a tree of the given depth and per-node width: at
// depth 1 it returns a random Leaf; otherwise it builds two subtrees of
// depth-1 once each, repeats them to fill width slots, shuffles the slots,
// and commits the result. The two distinct subtrees keep the parent's
// interpolant from being constant whenever width >= 2; the shuffle only
// changes which slots hold which subtree.
// rnd lets callers get deterministic trees in tests.
func BuildMockTree(engine *kzg.Engine, rnd *rand.Rand, depth, width int) (verkle.Node, error) {
	if depth <= 1 {
		v, err := curve.RandomScalar()
		if err != nil {
			return nil, err
		}
		return verkle.NewLeaf(v), nil
	}

	t1, err := BuildMockTree(engine, rnd, depth-1, width)
	if err != nil {
		return nil, err
	}
	t2, err := BuildMockTree(engine, rnd, depth-1, width)
	if err != nil {
		return nil, err
	}

	half := width / 2
	children := make([]verkle.Node, 0, width)
	for i := 0; i < half; i++ {
		children = append(children, t1)
	}
	for i := half; i < width; i++ {
		children = append(children, t2)
	}
	rnd.Shuffle(len(children), func(i, j int) {
		children[i], children[j] = children[j], children[i]
	})

	return verkle.BuildFromChildren(engine, children)
}

// BuildPath walks tree to a path matching BuildMockTree's shape: at a leaf,
// select it under index 0; at a node whose children are leaves, select the
// first two leaf children (with their expected values for the prover side);
// otherwise descend into child 0 only.
func BuildPath(tree verkle.Node) (verkle.Path, error) {
	switch t := tree.(type) {
	case *verkle.Leaf:
		return verkle.LeafSelector{Entries: []verkle.IndexValue{{Index: 0, Value: t.NodeValue()}}}, nil
	case *verkle.InternalNode:
		children := t.Children()
		if len(children) == 0 {
			return nil, fmt.Errorf("verkletest: node has no children")
		}
		if _, leafChildren := children[0].(*verkle.Leaf); leafChildren {
			entries := make([]verkle.IndexValue, 0, 2)
			for i := 0; i < len(children) && i < 2; i++ {
				entries = append(entries, verkle.IndexValue{Index: i, Value: children[i].NodeValue()})
			}
			return verkle.LeafSelector{Entries: entries}, nil
		}
		sub, err := BuildPath(children[0])
		if err != nil {
			return nil, err
		}
		return verkle.BranchSelector{Children: map[int]verkle.Path{0: sub}}, nil
	default:
		return nil, fmt.Errorf("verkletest: unknown node type %T", tree)
	}
}
