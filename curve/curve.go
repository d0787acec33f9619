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

// Package curve is the field and group context the rest of this module
// builds on: it is the one place we import github.com/consensys/gnark-crypto,
// and it exposes just the surface a KZG/Verkle implementation needs — a
// scalar field element, the two pairing groups, the pairing itself, and a
// cryptographic RNG over [1, p-1]. Every other package talks to curve types
// only, never to gnark-crypto directly, so the field/group arithmetic stays
// a swappable black box behind this package.
package curve

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Scalar is an element of F_p, p the bn254 scalar field order.
type Scalar = fr.Element

// G1Point and G2Point are elements of the two pairing groups.
type G1Point = bn254.G1Affine
type G2Point = bn254.G2Affine

// GT is the pairing target group.
type GT = bn254.GT

var (
	g1Gen G1Point
	g2Gen G2Point
	z1    G1Point
)

func init() {
	_, _, g1Gen, g2Gen = bn254.Generators()
	z1.X.SetZero()
	z1.Y.SetZero()
}

// G1 is the fixed G1 generator.
func G1() G1Point { return g1Gen }

// G2 is the fixed G2 generator.
func G2() G2Point { return g2Gen }

// Z1 is the G1 identity element.
func Z1() G1Point { return z1 }

// Modulus returns p, the scalar field order.
func Modulus() *big.Int {
	return fr.Modulus()
}

// ErrShortRead names a read from the randomness source that returned fewer
// bytes than requested. RandomScalar does not return it: rand.Int reports a
// failed read as its own error, which RandomScalar passes through unchanged.
var ErrShortRead = errors.New("curve: short read from randomness source")

// RandomScalar samples a uniformly random element of [1, p-1] using a
// cryptographically secure source. This is the one sampler the trusted
// setup's secret and any other caller needing fresh randomness should use.
func RandomScalar() (Scalar, error) {
	var s Scalar
	for {
		v, err := rand.Int(rand.Reader, Modulus())
		if err != nil {
			return s, err
		}
		if v.Sign() != 0 {
			s.SetBigInt(v)
			return s, nil
		}
	}
}

// ScalarMulG1 returns k*p.
func ScalarMulG1(p G1Point, k *Scalar) G1Point {
	var res G1Point
	var kBig big.Int
	k.BigInt(&kBig)
	res.ScalarMultiplication(&p, &kBig)
	return res
}

// ScalarMulG2 returns k*p.
func ScalarMulG2(p G2Point, k *Scalar) G2Point {
	var res G2Point
	var kBig big.Int
	k.BigInt(&kBig)
	res.ScalarMultiplication(&p, &kBig)
	return res
}

// AddG1 returns p+q.
func AddG1(p, q G1Point) G1Point {
	var res G1Point
	res.Add(&p, &q)
	return res
}

// NegG1 returns -p.
func NegG1(p G1Point) G1Point {
	var res G1Point
	res.Neg(&p)
	return res
}

// SubG2 returns p-q.
func SubG2(p, q G2Point) G2Point {
	var nq G2Point
	nq.Neg(&q)
	var res G2Point
	res.Add(&p, &nq)
	return res
}

// EqualG1 reports whether p and q are the same point.
func EqualG1(p, q G1Point) bool {
	return p.Equal(&q)
}

// Pair computes e(a, b).
func Pair(a G1Point, b G2Point) (GT, error) {
	return bn254.Pair([]G1Point{a}, []G2Point{b})
}

// PairingsEqual reports whether e(a1,b1) == e(a2,b2), the core primitive
// every KZG verification check reduces to. It is computed as a single
// product-equals-one pairing check (e(a1,b1)·e(-a2,b2) == 1), which is both
// the idiomatic and the efficient way to do it.
func PairingsEqual(a1 G1Point, b1 G2Point, a2 G1Point, b2 G2Point) (bool, error) {
	na2 := NegG1(a2)
	return bn254.PairingCheck([]G1Point{a1, na2}, []G2Point{b1, b2})
}

// MultiExpG1 computes sum(scalars[i] * points[i]) via gnark-crypto's
// multi-scalar multiplication, splitting work across nbTasks goroutines
// when the vector is large enough to be worth it; gnark-crypto's MultiExp
// does this internally given a task count.
func MultiExpG1(points []G1Point, scalars []Scalar, nbTasks int) (G1Point, error) {
	var res G1Point
	cfg := ecc.MultiExpConfig{}
	if nbTasks > 0 {
		cfg.NbTasks = nbTasks
	}
	if _, err := res.MultiExp(points, scalars, cfg); err != nil {
		return res, err
	}
	return res, nil
}

// MultiExpG2 is MultiExpG1's G2 counterpart, used when a verifier needs
// [g(tau)]_2 for some polynomial g — the batch-opening identity commits the
// vanishing polynomial in G2.
func MultiExpG2(points []G2Point, scalars []Scalar, nbTasks int) (G2Point, error) {
	var res G2Point
	cfg := ecc.MultiExpConfig{}
	if nbTasks > 0 {
		cfg.NbTasks = nbTasks
	}
	if _, err := res.MultiExp(points, scalars, cfg); err != nil {
		return res, err
	}
	return res, nil
}
