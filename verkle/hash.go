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
	"golang.org/x/crypto/sha3"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
)

// NodeHash reduces a commitment P = (x, y) to a scalar by taking int(x) mod
// p. It is adequate for domain-separation within the tree but is not a
// random oracle — it is a policy choice a serious deployment should harden,
// which TranscriptHash does.
func NodeHash(p kzg.Commitment) curve.Scalar {
	var x curve.Scalar
	xBytes := p.X.Bytes()
	x.SetBytes(xBytes[:])
	return x
}

// TranscriptHash is a collision-resistant alternative to NodeHash: it folds
// both coordinates of the commitment through SHAKE-256 before reducing mod
// p, rather than only reading the x-coordinate. Verifier.HashFunc may be set
// to this; the zero value keeps NodeHash. Tree construction does not use it:
// InternalNode.NodeValue is always NodeHash, so a Verifier with HashFunc set
// to TranscriptHash rejects branch proofs produced by GenerateProof.
func TranscriptHash(p kzg.Commitment) curve.Scalar {
	xBytes := p.X.Bytes()
	yBytes := p.Y.Bytes()

	h := sha3.NewShake256()
	h.Write(xBytes[:])
	h.Write(yBytes[:])
	digest := make([]byte, 64)
	h.Read(digest)

	var s curve.Scalar
	s.SetBytes(digest)
	return s
}
