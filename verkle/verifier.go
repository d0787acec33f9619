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

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
)

// ErrRootMismatch is returned by Validate when the proof's top-level
// commitment disagrees with the verifier's expected root.
var ErrRootMismatch = errors.New("verkle: proof root does not match expected commitment")

// ErrProofRejected is returned by Validate when a KZG pairing check fails
// anywhere along the path.
var ErrProofRejected = errors.New("verkle: proof rejected")

// HashFunc reduces a commitment to the scalar fed into a parent's KZG
// verification. Defaults to NodeHash. It applies to the verifier only:
// InternalNode.NodeValue always uses NodeHash, so a HashFunc other than
// NodeHash (such as TranscriptHash) rejects branch proofs from GenerateProof.
type HashFunc func(kzg.Commitment) curve.Scalar

// Verifier checks proofs against an expected root commitment. It never
// trusts a y-value reported by the prover directly — every y-value fed into
// a KZG verification is recomputed from the child sub-proof's own
// commitment. This is the binding that ties levels of the tree together: a
// forged commitment at one depth would force a specific y-value one level
// up, which is fixed by that level's committed polynomial, and so on to the
// root.
type Verifier struct {
	Root   kzg.Commitment
	Engine *kzg.Engine

	// HashFunc defaults to NodeHash if left nil.
	HashFunc HashFunc
}

func (v *Verifier) hash(c kzg.Commitment) curve.Scalar {
	if v.HashFunc != nil {
		return v.HashFunc(c)
	}
	return NodeHash(c)
}

// Validate checks that proof answers path against v.Root.
func (v *Verifier) Validate(path Path, proof ProofTree) error {
	if !curve.EqualG1(v.Root, proof.TopCommitment()) {
		return ErrRootMismatch
	}
	return v.validate(path, proof)
}

func (v *Verifier) validate(path Path, proof ProofTree) error {
	switch p := path.(type) {
	case LeafSelector:
		lp, ok := proof.(LeafProof)
		if !ok {
			return fmt.Errorf("%w: expected leaf proof, got %T", ErrInvalidPath, proof)
		}
		pts := make([]kzg.Point, len(p.Entries))
		for i, e := range p.Entries {
			pts[i] = kzg.Point{Z: scalarOfInt(e.Index), V: e.Value}
		}
		if !v.Engine.VerifyBatch(lp.Commitment, pts, lp.Proof) {
			return ErrProofRejected
		}
		return nil

	case BranchSelector:
		bp, ok := proof.(BranchProof)
		if !ok {
			return fmt.Errorf("%w: expected branch proof, got %T", ErrInvalidPath, proof)
		}

		indices := make([]int, 0, len(p.Children))
		for i := range p.Children {
			if _, ok := bp.Children[i]; !ok {
				return fmt.Errorf("%w: proof missing sub-proof for index %d", ErrInvalidPath, i)
			}
			indices = append(indices, i)
		}

		if len(indices) == 1 {
			i := indices[0]
			childCommit := bp.Children[i].TopCommitment()
			pt := kzg.Point{Z: scalarOfInt(i), V: v.hash(childCommit)}
			if !v.Engine.VerifyPoint(bp.Self.Commitment, pt, bp.Self.Proof) {
				return ErrProofRejected
			}
		} else {
			pts := make([]kzg.Point, len(indices))
			for k, i := range indices {
				childCommit := bp.Children[i].TopCommitment()
				pts[k] = kzg.Point{Z: scalarOfInt(i), V: v.hash(childCommit)}
			}
			if !v.Engine.VerifyBatch(bp.Self.Commitment, pts, bp.Self.Proof) {
				return ErrProofRejected
			}
		}

		for i, subPath := range p.Children {
			if err := v.validate(subPath, bp.Children[i]); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("verkle: unknown path variant %T", path)
	}
}
