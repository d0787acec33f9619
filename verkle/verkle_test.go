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

package verkle_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
	"github.com/kzgverkle/kzgverkle/setup"
	"github.com/kzgverkle/kzgverkle/verkle"
	"github.com/kzgverkle/kzgverkle/verkle/verkletest"
)

func newEngine(t *testing.T, degree int) *kzg.Engine {
	t.Helper()
	srs, err := setup.Generate(degree)
	require.NoError(t, err)
	return kzg.New(srs)
}

func scalarOf(v int64) curve.Scalar {
	var s curve.Scalar
	s.SetInt64(v)
	return s
}

func TestDepth2Width4FullPathValidates(t *testing.T) {
	engine := newEngine(t, 8)

	leaves := make([]verkle.Node, 4)
	for i := range leaves {
		leaves[i] = verkle.NewLeaf(scalarOf(int64(100 + i)))
	}
	root, err := verkle.BuildFromChildren(engine, leaves)
	require.NoError(t, err)

	path := verkle.LeafSelector{Entries: []verkle.IndexValue{
		{Index: 0, Value: scalarOf(100)},
		{Index: 1, Value: scalarOf(101)},
		{Index: 2, Value: scalarOf(102)},
		{Index: 3, Value: scalarOf(103)},
	}}

	proof, err := root.GenerateProof(path)
	require.NoError(t, err)

	v := &verkle.Verifier{Root: root.Commitment(), Engine: engine}
	require.NoError(t, v.Validate(path, proof))
}

func TestSingleKeyBranchSelector(t *testing.T) {
	engine := newEngine(t, 8)

	leftLeaves := []verkle.Node{verkle.NewLeaf(scalarOf(1)), verkle.NewLeaf(scalarOf(2))}
	rightLeaves := []verkle.Node{verkle.NewLeaf(scalarOf(3)), verkle.NewLeaf(scalarOf(4))}

	left, err := verkle.BuildFromChildren(engine, leftLeaves)
	require.NoError(t, err)
	right, err := verkle.BuildFromChildren(engine, rightLeaves)
	require.NoError(t, err)

	root, err := verkle.BuildFromChildren(engine, []verkle.Node{left, right})
	require.NoError(t, err)

	path := verkle.BranchSelector{Children: map[int]verkle.Path{
		0: verkle.LeafSelector{Entries: []verkle.IndexValue{
			{Index: 0, Value: scalarOf(1)},
			{Index: 1, Value: scalarOf(2)},
		}},
	}}

	proof, err := root.GenerateProof(path)
	require.NoError(t, err)

	v := &verkle.Verifier{Root: root.Commitment(), Engine: engine}
	require.NoError(t, v.Validate(path, proof))
}

func TestTwoKeyBranchSelector(t *testing.T) {
	engine := newEngine(t, 8)

	leftLeaves := []verkle.Node{verkle.NewLeaf(scalarOf(1)), verkle.NewLeaf(scalarOf(2))}
	rightLeaves := []verkle.Node{verkle.NewLeaf(scalarOf(3)), verkle.NewLeaf(scalarOf(4))}

	left, err := verkle.BuildFromChildren(engine, leftLeaves)
	require.NoError(t, err)
	right, err := verkle.BuildFromChildren(engine, rightLeaves)
	require.NoError(t, err)

	root, err := verkle.BuildFromChildren(engine, []verkle.Node{left, right})
	require.NoError(t, err)

	path := verkle.BranchSelector{Children: map[int]verkle.Path{
		0: verkle.LeafSelector{Entries: []verkle.IndexValue{
			{Index: 0, Value: scalarOf(1)},
			{Index: 1, Value: scalarOf(2)},
		}},
		1: verkle.LeafSelector{Entries: []verkle.IndexValue{
			{Index: 0, Value: scalarOf(3)},
			{Index: 1, Value: scalarOf(4)},
		}},
	}}

	proof, err := root.GenerateProof(path)
	require.NoError(t, err)

	v := &verkle.Verifier{Root: root.Commitment(), Engine: engine}
	require.NoError(t, v.Validate(path, proof))
}

func TestChangingALeafChangesTheRootAndRejectsOldProof(t *testing.T) {
	engine := newEngine(t, 8)

	leaves := []verkle.Node{
		verkle.NewLeaf(scalarOf(10)),
		verkle.NewLeaf(scalarOf(20)),
		verkle.NewLeaf(scalarOf(30)),
		verkle.NewLeaf(scalarOf(40)),
	}
	root, err := verkle.BuildFromChildren(engine, leaves)
	require.NoError(t, err)

	path := verkle.LeafSelector{Entries: []verkle.IndexValue{
		{Index: 0, Value: scalarOf(10)},
	}}
	proof, err := root.GenerateProof(path)
	require.NoError(t, err)

	alteredLeaves := []verkle.Node{
		verkle.NewLeaf(scalarOf(11)),
		verkle.NewLeaf(scalarOf(20)),
		verkle.NewLeaf(scalarOf(30)),
		verkle.NewLeaf(scalarOf(40)),
	}
	alteredRoot, err := verkle.BuildFromChildren(engine, alteredLeaves)
	require.NoError(t, err)
	require.False(t, curve.EqualG1(root.Commitment(), alteredRoot.Commitment()))

	v := &verkle.Verifier{Root: alteredRoot.Commitment(), Engine: engine}
	require.ErrorIs(t, v.Validate(path, proof), verkle.ErrRootMismatch)
}

func TestTamperedProofValueRejected(t *testing.T) {
	engine := newEngine(t, 8)

	leaves := []verkle.Node{
		verkle.NewLeaf(scalarOf(10)),
		verkle.NewLeaf(scalarOf(20)),
	}
	root, err := verkle.BuildFromChildren(engine, leaves)
	require.NoError(t, err)

	path := verkle.LeafSelector{Entries: []verkle.IndexValue{
		{Index: 0, Value: scalarOf(10)},
		{Index: 1, Value: scalarOf(20)},
	}}
	proof, err := root.GenerateProof(path)
	require.NoError(t, err)

	tamperedPath := verkle.LeafSelector{Entries: []verkle.IndexValue{
		{Index: 0, Value: scalarOf(99)},
		{Index: 1, Value: scalarOf(20)},
	}}

	v := &verkle.Verifier{Root: root.Commitment(), Engine: engine}
	require.ErrorIs(t, v.Validate(tamperedPath, proof), verkle.ErrProofRejected)
}

func TestSwappingSiblingSubProofsRejected(t *testing.T) {
	engine := newEngine(t, 8)

	leftLeaves := []verkle.Node{verkle.NewLeaf(scalarOf(1)), verkle.NewLeaf(scalarOf(2))}
	rightLeaves := []verkle.Node{verkle.NewLeaf(scalarOf(3)), verkle.NewLeaf(scalarOf(4))}

	left, err := verkle.BuildFromChildren(engine, leftLeaves)
	require.NoError(t, err)
	right, err := verkle.BuildFromChildren(engine, rightLeaves)
	require.NoError(t, err)

	root, err := verkle.BuildFromChildren(engine, []verkle.Node{left, right})
	require.NoError(t, err)

	path := verkle.BranchSelector{Children: map[int]verkle.Path{
		0: verkle.LeafSelector{Entries: []verkle.IndexValue{{Index: 0, Value: scalarOf(1)}, {Index: 1, Value: scalarOf(2)}}},
		1: verkle.LeafSelector{Entries: []verkle.IndexValue{{Index: 0, Value: scalarOf(3)}, {Index: 1, Value: scalarOf(4)}}},
	}}

	proof, err := root.GenerateProof(path)
	require.NoError(t, err)
	bp := proof.(verkle.BranchProof)
	bp.Children[0], bp.Children[1] = bp.Children[1], bp.Children[0]

	v := &verkle.Verifier{Root: root.Commitment(), Engine: engine}
	require.Error(t, v.Validate(path, bp))
}

func TestDegenerateChildrenRejectConstruction(t *testing.T) {
	engine := newEngine(t, 8)
	same := scalarOf(42)
	leaves := []verkle.Node{verkle.NewLeaf(same), verkle.NewLeaf(same)}

	_, err := verkle.BuildFromChildren(engine, leaves)
	require.ErrorIs(t, err, verkle.ErrDegenerateChildren)
}

func TestMockTreeEndToEnd(t *testing.T) {
	engine := newEngine(t, 16)
	rnd := rand.New(rand.NewSource(1))

	root, err := verkletest.BuildMockTree(engine, rnd, 3, 4)
	require.NoError(t, err)
	internalRoot, ok := root.(*verkle.InternalNode)
	require.True(t, ok)

	path, err := verkletest.BuildPath(root)
	require.NoError(t, err)

	proof, err := internalRoot.GenerateProof(path)
	require.NoError(t, err)

	v := &verkle.Verifier{Root: internalRoot.Commitment(), Engine: engine}
	require.NoError(t, v.Validate(path, proof))
	require.Equal(t, 4*4, root.LeafCount())
}
