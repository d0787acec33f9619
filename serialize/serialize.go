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

// Package serialize is an optional wire format for paths and proof trees,
// unambiguous between branch and leaf selectors and between bare
// (commitment, proof) leaves and map-shaped branch sub-proofs. Each value is
// a compact bit-packed shape header (one tag bit per tree node, written
// with icza/bitio) followed by a CBOR body (fxamacker/cbor/v2) carrying the
// actual field values: the header lets a reader establish branch-vs-leaf
// shape before touching the CBOR payload at all, and the CBOR Branch field
// on every node makes the payload self-checking against that header.
package serialize

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/icza/bitio"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
	"github.com/kzgverkle/kzgverkle/verkle"
)

// ErrShapeMismatch is returned on decode when the bit-packed shape header
// disagrees with the CBOR body's own per-node Branch flags.
var ErrShapeMismatch = errors.New("serialize: shape header disagrees with payload")

const (
	tagLeaf   = false
	tagBranch = true
)

// --- wire-level mirrors of verkle.ProofTree / verkle.Path ---

type proofWire struct {
	Branch     bool
	Commitment []byte
	Proof      []byte
	Children   map[int]proofWire
}

type indexValueWire struct {
	Index int
	Value []byte
}

type pathWire struct {
	Branch   bool
	Entries  []indexValueWire
	Children map[int]pathWire
}

// EncodeProof serializes proof into the header+CBOR wire format.
func EncodeProof(proof verkle.ProofTree) ([]byte, error) {
	var bitBuf bytes.Buffer
	bw := bitio.NewWriter(&bitBuf)
	wire, err := writeProofShape(bw, proof)
	if err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("serialize: flushing proof shape header: %w", err)
	}

	body, err := cbor.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("serialize: encoding proof body: %w", err)
	}

	return packHeaderAndBody(bitBuf.Bytes(), body), nil
}

// DecodeProof reverses EncodeProof, cross-checking the bit header against
// the CBOR body's own shape tags.
func DecodeProof(data []byte) (verkle.ProofTree, error) {
	header, body, err := splitHeaderAndBody(data)
	if err != nil {
		return nil, err
	}

	var wire proofWire
	if err := cbor.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("serialize: decoding proof body: %w", err)
	}

	br := bitio.NewReader(bytes.NewReader(header))
	tree, err := readProofShape(br, wire)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func writeProofShape(bw *bitio.Writer, p verkle.ProofTree) (proofWire, error) {
	switch t := p.(type) {
	case verkle.LeafProof:
		if err := bw.WriteBool(tagLeaf); err != nil {
			return proofWire{}, err
		}
		return proofWire{Branch: false, Commitment: t.Commitment.Marshal(), Proof: t.Proof.Marshal()}, nil

	case verkle.BranchProof:
		if err := bw.WriteBool(tagBranch); err != nil {
			return proofWire{}, err
		}
		wire := proofWire{
			Branch:     true,
			Commitment: t.Self.Commitment.Marshal(),
			Proof:      t.Self.Proof.Marshal(),
			Children:   make(map[int]proofWire, len(t.Children)),
		}
		for _, i := range sortedIntKeysProof(t.Children) {
			childWire, err := writeProofShape(bw, t.Children[i])
			if err != nil {
				return proofWire{}, err
			}
			wire.Children[i] = childWire
		}
		return wire, nil

	default:
		return proofWire{}, fmt.Errorf("serialize: unknown proof variant %T", p)
	}
}

func readProofShape(br *bitio.Reader, w proofWire) (verkle.ProofTree, error) {
	tag, err := br.ReadBool()
	if err != nil {
		return nil, fmt.Errorf("serialize: reading proof shape bit: %w", err)
	}
	if tag != w.Branch {
		return nil, ErrShapeMismatch
	}

	var commitment kzg.Commitment
	if err := commitment.Unmarshal(w.Commitment); err != nil {
		return nil, fmt.Errorf("serialize: decoding commitment: %w", err)
	}
	var proof kzg.Proof
	if err := proof.Unmarshal(w.Proof); err != nil {
		return nil, fmt.Errorf("serialize: decoding proof point: %w", err)
	}

	if !w.Branch {
		return verkle.LeafProof{Commitment: commitment, Proof: proof}, nil
	}

	children := make(map[int]verkle.ProofTree, len(w.Children))
	for _, i := range sortedIntKeysProofWire(w.Children) {
		child, err := readProofShape(br, w.Children[i])
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return verkle.BranchProof{
		Self:     verkle.LeafProof{Commitment: commitment, Proof: proof},
		Children: children,
	}, nil
}

// EncodePath serializes a Path into the header+CBOR wire format.
func EncodePath(path verkle.Path) ([]byte, error) {
	var bitBuf bytes.Buffer
	bw := bitio.NewWriter(&bitBuf)
	wire, err := writePathShape(bw, path)
	if err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("serialize: flushing path shape header: %w", err)
	}

	body, err := cbor.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("serialize: encoding path body: %w", err)
	}

	return packHeaderAndBody(bitBuf.Bytes(), body), nil
}

// DecodePath reverses EncodePath.
func DecodePath(data []byte) (verkle.Path, error) {
	header, body, err := splitHeaderAndBody(data)
	if err != nil {
		return nil, err
	}

	var wire pathWire
	if err := cbor.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("serialize: decoding path body: %w", err)
	}

	br := bitio.NewReader(bytes.NewReader(header))
	return readPathShape(br, wire)
}

func writePathShape(bw *bitio.Writer, p verkle.Path) (pathWire, error) {
	switch t := p.(type) {
	case verkle.LeafSelector:
		if err := bw.WriteBool(tagLeaf); err != nil {
			return pathWire{}, err
		}
		entries := make([]indexValueWire, len(t.Entries))
		for i, e := range t.Entries {
			b := e.Value.Bytes()
			entries[i] = indexValueWire{Index: e.Index, Value: b[:]}
		}
		return pathWire{Branch: false, Entries: entries}, nil

	case verkle.BranchSelector:
		if err := bw.WriteBool(tagBranch); err != nil {
			return pathWire{}, err
		}
		wire := pathWire{Branch: true, Children: make(map[int]pathWire, len(t.Children))}
		for _, i := range sortedIntKeysPath(t.Children) {
			subWire, err := writePathShape(bw, t.Children[i])
			if err != nil {
				return pathWire{}, err
			}
			wire.Children[i] = subWire
		}
		return wire, nil

	default:
		return pathWire{}, fmt.Errorf("serialize: unknown path variant %T", p)
	}
}

func readPathShape(br *bitio.Reader, w pathWire) (verkle.Path, error) {
	tag, err := br.ReadBool()
	if err != nil {
		return nil, fmt.Errorf("serialize: reading path shape bit: %w", err)
	}
	if tag != w.Branch {
		return nil, ErrShapeMismatch
	}

	if !w.Branch {
		entries := make([]verkle.IndexValue, len(w.Entries))
		for i, e := range w.Entries {
			var v curve.Scalar
			v.SetBytes(e.Value)
			entries[i] = verkle.IndexValue{Index: e.Index, Value: v}
		}
		return verkle.LeafSelector{Entries: entries}, nil
	}

	children := make(map[int]verkle.Path, len(w.Children))
	for _, i := range sortedIntKeysPathWire(w.Children) {
		sub, err := readPathShape(br, w.Children[i])
		if err != nil {
			return nil, err
		}
		children[i] = sub
	}
	return verkle.BranchSelector{Children: children}, nil
}

// sortedIntKeys* give the bit-packed shape header a traversal order that is
// independent of Go's randomized map iteration. The encoder and decoder walk
// a branch's children in the same deterministic (sorted) order on both sides,
// since the shape header carries one bit per node and nothing else ties a
// given bit back to the child it describes.
func sortedIntKeysProof(m map[int]verkle.ProofTree) []int {
	keys := make([]int, 0, len(m))
	for i := range m {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	return keys
}

func sortedIntKeysProofWire(m map[int]proofWire) []int {
	keys := make([]int, 0, len(m))
	for i := range m {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	return keys
}

func sortedIntKeysPath(m map[int]verkle.Path) []int {
	keys := make([]int, 0, len(m))
	for i := range m {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	return keys
}

func sortedIntKeysPathWire(m map[int]pathWire) []int {
	keys := make([]int, 0, len(m))
	for i := range m {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	return keys
}

func packHeaderAndBody(header, body []byte) []byte {
	out := make([]byte, 4+len(header)+len(body))
	binary.BigEndian.PutUint32(out[:4], uint32(len(header)))
	copy(out[4:], header)
	copy(out[4+len(header):], body)
	return out
}

func splitHeaderAndBody(data []byte) (header, body []byte, err error) {
	if len(data) < 4 {
		return nil, nil, io.ErrUnexpectedEOF
	}
	n := binary.BigEndian.Uint32(data[:4])
	if uint64(4+n) > uint64(len(data)) {
		return nil, nil, io.ErrUnexpectedEOF
	}
	return data[4 : 4+n], data[4+n:], nil
}
