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

// Package kzg implements KZG polynomial commitments: commitment,
// single-point and batch opening proofs, and their pairing-based
// verification. It is implemented directly against the curve package's
// field/group primitives rather than against gnark-crypto's own
// ecc/bn254/kzg package, which already is a full KZG engine and would make
// the commitment scheme itself nothing more than a re-export.
package kzg

import (
	"errors"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/polynomial"
	"github.com/kzgverkle/kzgverkle/setup"
)

// ErrDegreeExceeded is returned by Commit when deg(f) > the SRS degree.
var ErrDegreeExceeded = errors.New("kzg: polynomial degree exceeds SRS degree")

// ErrPointNotOnPolynomial is returned by OpenPoint/OpenBatch when the
// claimed evaluation(s) do not lie on the polynomial.
var ErrPointNotOnPolynomial = errors.New("kzg: claimed evaluation is not on the polynomial")

// Commitment is [f(tau)]_1 for some polynomial f of degree <= the SRS
// degree.
type Commitment = curve.G1Point

// Proof is a single G1 point: an opening proof for either one point or a
// batch of points — the batch case folds every claimed evaluation into one
// quotient via the shared vanishing polynomial, so the proof size does not
// grow with the number of points opened.
type Proof = curve.G1Point

// Point is an (x, y) = (z, v) evaluation claim: f(z) = v.
type Point struct {
	Z curve.Scalar
	V curve.Scalar
}

// nbMultiExpGoroutines is the goroutine count Engine.commitUnbounded hands
// to gnark-crypto's MultiExp. 0 lets it pick its own default; a fixed count
// only pays off once the SRS slice being summed is large enough to amortize
// scheduling overhead.
const nbMultiExpGoroutines = 0 // 0 lets gnark-crypto pick its own default

// Engine commits to and opens/verifies polynomials against one SRS. It
// borrows the SRS and never mutates it, so the same *setup.SRS can back
// several Engines concurrently.
type Engine struct {
	srs *setup.SRS
}

// New builds an Engine over srs. The Engine never outlives the SRS handed
// to it, but it does not take ownership — the same *setup.SRS may back
// several Engines.
func New(srs *setup.SRS) *Engine {
	return &Engine{srs: srs}
}

// Degree is the maximum polynomial degree this Engine can commit to.
func (e *Engine) Degree() int {
	return e.srs.Degree()
}

// Commit computes C = sum(c_i * SRS1[i]) via multi-scalar multiplication.
// It fails with ErrDegreeExceeded if deg(f) exceeds the SRS degree.
func (e *Engine) Commit(f polynomial.Polynomial) (Commitment, error) {
	coeffs := f.Coefficients()
	if len(coeffs)-1 > e.srs.Degree() {
		return Commitment{}, ErrDegreeExceeded
	}
	if len(coeffs) == 0 {
		return curve.Z1(), nil
	}
	return curve.MultiExpG1(e.srs.SRS1()[:len(coeffs)], coeffs, nbMultiExpGoroutines)
}

// OpenPoint produces W = [w(tau)]_1 where w(X) = (f(X) - v) / (X - z),
// proving f(z) = v. It returns ErrPointNotOnPolynomial if f(z) != v (the
// division is not exact).
func (e *Engine) OpenPoint(f polynomial.Polynomial, pt Point) (Proof, error) {
	numerator := f.SubScalar(pt.V)
	denom := linearFactor(pt.Z)

	w, err := numerator.Div(denom)
	if err != nil {
		return Proof{}, ErrPointNotOnPolynomial
	}
	return e.commitUnbounded(w)
}

// OpenBatch produces W = [psi(tau)]_1 where psi(X) = (f(X) - r(X)) / Z(X),
// r is the Lagrange interpolant through pts and Z(X) = prod(X - z_i). It
// returns ErrPointNotOnPolynomial if any claimed evaluation does not lie on
// f (the division is not exact), and requires pairwise distinct z_i
// (enforced by the Lagrange interpolation beneath it).
func (e *Engine) OpenBatch(f polynomial.Polynomial, pts []Point) (Proof, error) {
	if len(pts) == 0 {
		return Proof{}, errors.New("kzg: OpenBatch requires at least one point")
	}
	xs, ys := splitPoints(pts)
	r, err := polynomial.Lagrange(xs, ys)
	if err != nil {
		return Proof{}, err
	}

	zPoly := vanishing(xs)
	numerator := f.Sub(r)

	psi, err := numerator.Div(zPoly)
	if err != nil {
		return Proof{}, ErrPointNotOnPolynomial
	}
	return e.commitUnbounded(psi)
}

// commitUnbounded commits a quotient or interpolant polynomial with the same
// degree check Commit performs: w and psi above are always degree <=
// deg(f)-1 <= the SRS degree whenever f itself was validly committed, but the
// check still guards against a caller handing OpenPoint/OpenBatch a
// polynomial never checked against this Engine's SRS.
func (e *Engine) commitUnbounded(f polynomial.Polynomial) (curve.G1Point, error) {
	coeffs := f.Coefficients()
	if len(coeffs)-1 > e.srs.Degree() {
		return curve.G1Point{}, ErrDegreeExceeded
	}
	if len(coeffs) == 0 {
		return curve.Z1(), nil
	}
	return curve.MultiExpG1(e.srs.SRS1()[:len(coeffs)], coeffs, nbMultiExpGoroutines)
}

// linearFactor returns (X - z).
func linearFactor(z curve.Scalar) polynomial.Polynomial {
	var negZ curve.Scalar
	negZ.Neg(&z)
	var one curve.Scalar
	one.SetOne()
	return polynomial.New([]curve.Scalar{negZ, one})
}

// vanishing returns Z(X) = prod_i (X - xs[i]).
func vanishing(xs []curve.Scalar) polynomial.Polynomial {
	var one curve.Scalar
	one.SetOne()
	z := polynomial.New([]curve.Scalar{one})
	for _, x := range xs {
		z = z.MulLinear(x)
	}
	return z
}

func splitPoints(pts []Point) (xs, ys []curve.Scalar) {
	xs = make([]curve.Scalar, len(pts))
	ys = make([]curve.Scalar, len(pts))
	for i, pt := range pts {
		xs[i] = pt.Z
		ys[i] = pt.V
	}
	return
}
