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

import "github.com/kzgverkle/kzgverkle/kzg"

// ProofTree matches the shape of the Path it answers: a LeafProof for a
// LeafSelector, a BranchProof for a BranchSelector. A node's own opening at
// a branch (what a map-based proof representation would key by a sentinel
// index such as -1) becomes the BranchProof.Self field here.
type ProofTree interface {
	isProofTree()

	// TopCommitment is the commitment reported at this level: the node's
	// own commitment, whether the tree is a leaf or a branch proof.
	TopCommitment() kzg.Commitment
}

// LeafProof is a single (commitment, proof) pair opening a batch of leaf
// values.
type LeafProof struct {
	Commitment kzg.Commitment
	Proof      kzg.Proof
}

func (LeafProof) isProofTree() {}

// TopCommitment returns the leaf proof's own commitment.
func (p LeafProof) TopCommitment() kzg.Commitment { return p.Commitment }

// BranchProof carries the current node's own opening (Self) plus one
// recursively-shaped sub-proof per selected child index.
type BranchProof struct {
	Self     LeafProof
	Children map[int]ProofTree
}

func (BranchProof) isProofTree() {}

// TopCommitment returns the branch's own commitment.
func (p BranchProof) TopCommitment() kzg.Commitment { return p.Self.Commitment }
