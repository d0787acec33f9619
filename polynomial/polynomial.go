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

// Package polynomial implements dense univariate polynomial algebra over
// the bn254 scalar field, in the coefficient-vector style gnark-crypto's own
// fr/fft and fr/iop packages use: a plain []fr.Element, canonicalized by
// trimming trailing zeros, rather than a sparse or symbolic representation.
package polynomial

import (
	"errors"

	"github.com/kzgverkle/kzgverkle/curve"
)

// ErrNonExactDivision is returned by Div when the remainder of f/g is not
// the zero polynomial.
var ErrNonExactDivision = errors.New("polynomial: division is not exact")

// ErrDuplicateInterpolationNode is returned by Lagrange when two samples
// share an x-coordinate.
var ErrDuplicateInterpolationNode = errors.New("polynomial: duplicate interpolation node")

// Polynomial is a_0 + a_1*X + ... + a_n*X^n, stored as coefficients in
// ascending degree order. The zero polynomial is the empty slice; callers
// must not rely on trailing-zero coefficients surviving construction —
// every operation below returns a canonically trimmed result.
type Polynomial struct {
	coeffs []curve.Scalar
}

// New builds a Polynomial from coefficients in ascending degree order,
// canonicalizing by trimming trailing zeros.
func New(coeffs []curve.Scalar) Polynomial {
	cp := make([]curve.Scalar, len(coeffs))
	copy(cp, coeffs)
	return Polynomial{coeffs: trim(cp)}
}

// Zero is the zero polynomial.
func Zero() Polynomial { return Polynomial{} }

func trim(c []curve.Scalar) []curve.Scalar {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

// Coefficients returns the canonical coefficient slice, ascending degree.
// The caller must not mutate it.
func (p Polynomial) Coefficients() []curve.Scalar {
	return p.coeffs
}

// Degree returns deg(p), or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.coeffs) == 0
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	res := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		var a, b curve.Scalar
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(q.coeffs) {
			b = q.coeffs[i]
		}
		res[i].Add(&a, &b)
	}
	return Polynomial{coeffs: trim(res)}
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	res := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		var a, b curve.Scalar
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(q.coeffs) {
			b = q.coeffs[i]
		}
		res[i].Sub(&a, &b)
	}
	return Polynomial{coeffs: trim(res)}
}

// ScalarMul returns c*p.
func (p Polynomial) ScalarMul(c curve.Scalar) Polynomial {
	res := make([]curve.Scalar, len(p.coeffs))
	for i := range p.coeffs {
		res[i].Mul(&p.coeffs[i], &c)
	}
	return Polynomial{coeffs: trim(res)}
}

// SubScalar returns p - c, i.e. p minus the constant polynomial c.
func (p Polynomial) SubScalar(c curve.Scalar) Polynomial {
	return p.Sub(New([]curve.Scalar{c}))
}

// Mul returns p * q via schoolbook multiplication (O(n*m), acceptable at
// the polynomial sizes this module deals with).
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Zero()
	}
	res := make([]curve.Scalar, len(p.coeffs)+len(q.coeffs)-1)
	var term curve.Scalar
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			term.Mul(&a, &b)
			res[i+j].Add(&res[i+j], &term)
		}
	}
	return Polynomial{coeffs: trim(res)}
}

// MulLinear returns p * (X - root), the linear-factor multiplication
// Lagrange's basis-polynomial construction repeats.
func (p Polynomial) MulLinear(root curve.Scalar) Polynomial {
	var negRoot curve.Scalar
	negRoot.Neg(&root)
	linear := Polynomial{coeffs: []curve.Scalar{negRoot, one()}}
	return p.Mul(linear)
}

// Eval evaluates p(x) using Horner's method.
func (p Polynomial) Eval(x curve.Scalar) curve.Scalar {
	var res curve.Scalar
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		res.Mul(&res, &x)
		res.Add(&res, &p.coeffs[i])
	}
	return res
}

// Div computes the exact quotient p / q. It returns ErrNonExactDivision if
// the remainder is nonzero — this is a structural correctness check, not a
// performance shortcut, so it is always performed.
func (p Polynomial) Div(q Polynomial) (Polynomial, error) {
	quot, rem := p.divMod(q)
	if !rem.IsZero() {
		return Zero(), ErrNonExactDivision
	}
	return quot, nil
}

// divMod implements standard long division of dense polynomials, used
// internally by Div and unexported because the remainder only matters here
// as a zero/nonzero structural correctness check.
func (p Polynomial) divMod(q Polynomial) (quotient, remainder Polynomial) {
	if q.IsZero() {
		panic("polynomial: division by zero polynomial")
	}
	rem := make([]curve.Scalar, len(p.coeffs))
	copy(rem, p.coeffs)

	qDeg := q.Degree()
	leadInv := new(curve.Scalar).Inverse(&q.coeffs[qDeg])

	remDeg := len(rem) - 1
	for remDeg >= 0 && rem[remDeg].IsZero() {
		remDeg--
	}

	if remDeg < qDeg {
		return Zero(), New(rem)
	}

	quotCoeffs := make([]curve.Scalar, remDeg-qDeg+1)
	for remDeg >= qDeg {
		var coef curve.Scalar
		coef.Mul(&rem[remDeg], leadInv)
		quotCoeffs[remDeg-qDeg] = coef

		for j := 0; j <= qDeg; j++ {
			var term curve.Scalar
			term.Mul(&coef, &q.coeffs[j])
			rem[remDeg-qDeg+j].Sub(&rem[remDeg-qDeg+j], &term)
		}

		for remDeg >= 0 && rem[remDeg].IsZero() {
			remDeg--
		}
	}

	return New(quotCoeffs), New(rem[:remDeg+1])
}

func one() curve.Scalar {
	var s curve.Scalar
	s.SetOne()
	return s
}
