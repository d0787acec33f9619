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

// Package verkle is the Verkle node model, prover and verifier: internal
// nodes commit, via the kzg package, to a polynomial interpolating their
// children's hashed values, and proofs compose those commitments recursively
// along a path descriptor. Path and ProofTree are modeled as tagged variants
// (a LeafSelector/LeafProof or a BranchSelector/BranchProof), which suits a
// statically typed language better than the heterogeneous map/list shape a
// dynamically typed sketch of this idea would use.
package verkle

import (
	"errors"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
	"github.com/kzgverkle/kzgverkle/polynomial"
)

// ErrDegenerateChildren is returned by BuildFromChildren when every child
// produces the same node value: the parent's interpolant would collapse to
// the constant polynomial, which weakens the soundness of any opening built
// over it and so is rejected at construction time rather than built
// silently. A partial collision among siblings (some, not all, equal) does
// not trip this — the interpolant still varies across indices. A tree
// builder that intentionally shares sub-trees across sibling slots to fill
// out a level (rather than constructing a fresh node per slot) relies on
// exactly that: it only needs to avoid the all-equal case, not pairwise
// duplicates.
var ErrDegenerateChildren = errors.New("verkle: sibling children all produced the same node value")

// Node is either a Leaf or an *InternalNode. It exposes only the one
// operation the tree-building algorithm needs: the scalar fed into the
// parent's Lagrange interpolation.
type Node interface {
	// NodeValue is the scalar used as this node's y-value in its parent's
	// interpolation: the leaf's stored scalar, or hash(commitment) for an
	// internal node.
	NodeValue() curve.Scalar

	// LeafCount is the number of leaves in the subtree rooted here.
	LeafCount() int
}

// Leaf holds a single integer-valued scalar.
type Leaf struct {
	Value curve.Scalar
}

// NewLeaf wraps v as a Leaf.
func NewLeaf(v curve.Scalar) *Leaf { return &Leaf{Value: v} }

// NodeValue returns the leaf's stored scalar.
func (l *Leaf) NodeValue() curve.Scalar { return l.Value }

// LeafCount is always 1 for a Leaf.
func (l *Leaf) LeafCount() int { return 1 }

// InternalNode is an ordered, index-addressable list of children whose
// polynomial P interpolates (i, children[i].NodeValue()).
type InternalNode struct {
	children   []Node
	poly       polynomial.Polynomial
	commitment kzg.Commitment
	engine     *kzg.Engine
}

// Children returns the node's children in index order. The caller must not
// mutate the returned slice.
func (n *InternalNode) Children() []Node { return n.children }

// Commitment returns [P(tau)]_1, the KZG commitment to this node's
// interpolating polynomial.
func (n *InternalNode) Commitment() kzg.Commitment { return n.commitment }

// NodeValue is hash(commitment).
func (n *InternalNode) NodeValue() curve.Scalar { return NodeHash(n.commitment) }

// LeafCount sums the leaf counts of this node's children.
func (n *InternalNode) LeafCount() int {
	total := 0
	for _, c := range n.children {
		total += c.LeafCount()
	}
	return total
}

// BuildFromChildren constructs an InternalNode over children: it
// interpolates (i, children[i].NodeValue()) into a polynomial P and commits
// to it via engine. It requires len(children)-1 <= the engine's SRS degree,
// and rejects a fully degenerate, all-equal-valued child set
// (ErrDegenerateChildren), since that would silently collapse P to a
// constant rather than raise a clear construction-time error.
func BuildFromChildren(engine *kzg.Engine, children []Node) (*InternalNode, error) {
	if len(children) == 0 {
		return nil, errors.New("verkle: BuildFromChildren requires at least one child")
	}

	m := len(children)
	values := make([]curve.Scalar, m)
	allEqual := true
	for i, c := range children {
		values[i] = c.NodeValue()
		if i > 0 && !values[i].Equal(&values[0]) {
			allEqual = false
		}
	}
	if m >= 2 && allEqual {
		return nil, ErrDegenerateChildren
	}

	xs := make([]curve.Scalar, m)
	for i := range xs {
		xs[i] = scalarOfInt(i)
	}

	poly, err := polynomial.Lagrange(xs, values)
	if err != nil {
		return nil, err
	}

	commitment, err := engine.Commit(poly)
	if err != nil {
		return nil, err
	}

	return &InternalNode{children: children, poly: poly, commitment: commitment, engine: engine}, nil
}

func scalarOfInt(i int) curve.Scalar {
	var s curve.Scalar
	s.SetInt64(int64(i))
	return s
}
