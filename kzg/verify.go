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

package kzg

import (
	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/internal/logger"
	"github.com/kzgverkle/kzgverkle/polynomial"
)

// VerifyPoint checks W proves C commits to some f with f(z) = v, via the
// pairing identity:
//
//	e(C - [v]_1, G2) == e(W, [tau]_2 - [z]_2)
//
// It reports false (never an error) on a mismatch; a pairing engine failure
// is logged and also reported as false, since callers only need a yes/no
// verification outcome, not a reason.
func (e *Engine) VerifyPoint(c Commitment, pt Point, w Proof) bool {
	srs2 := e.srs.SRS2()
	if len(srs2) < 2 {
		logger.Logger().Warn().Int("degree", e.srs.Degree()).Msg("kzg: VerifyPoint needs an SRS of degree >= 1")
		return false
	}

	lhs := curve.AddG1(c, curve.NegG1(curve.ScalarMulG1(curve.G1(), &pt.V)))

	tau2 := srs2[1]
	rhs := curve.SubG2(tau2, curve.ScalarMulG2(curve.G2(), &pt.Z))

	ok, err := curve.PairingsEqual(lhs, curve.G2(), w, rhs)
	if err != nil {
		logger.Logger().Warn().Err(err).Msg("kzg: VerifyPoint pairing check failed")
		return false
	}
	return ok
}

// VerifyBatch checks W proves C commits to some f with f(z_i) = v_i for
// every claimed point, via the generalized pairing identity:
//
//	e(C - [r(tau)]_1, G2) == e(W, [Z(tau)]_2)
//
// where r interpolates pts and Z(X) = prod(X - z_i). It reports false on any
// mismatch, duplicate z_i, or pairing engine failure.
func (e *Engine) VerifyBatch(c Commitment, pts []Point, w Proof) bool {
	if len(pts) == 0 {
		return false
	}
	xs, ys := splitPoints(pts)

	r, err := polynomial.Lagrange(xs, ys)
	if err != nil {
		return false
	}
	rComm, err := e.commitUnbounded(r)
	if err != nil {
		return false
	}

	lhs := curve.AddG1(c, curve.NegG1(rComm))

	zPoly := vanishing(xs)
	zCoeffs := zPoly.Coefficients()
	degZ := len(zCoeffs) - 1
	if degZ > e.srs.Degree() {
		// k = srs.Degree()+1 points fully pin down any f of degree <=
		// srs.Degree(): the Lagrange interpolant r is f itself, the quotient
		// is the zero polynomial, and an honest proof is the identity
		// commitment. There is no SRS2 element at index srs.Degree()+1 to
		// commit Z(tau) with, but none is needed: in that degenerate case
		// C == rComm and W is the identity, so check that directly instead
		// of pairing against it.
		if degZ != e.srs.Degree()+1 {
			return false
		}
		return curve.EqualG1(w, curve.Z1()) && curve.EqualG1(lhs, curve.Z1())
	}

	zComm2, err := curve.MultiExpG2(e.srs.SRS2()[:len(zCoeffs)], zCoeffs, nbMultiExpGoroutines)
	if err != nil {
		return false
	}

	ok, err := curve.PairingsEqual(lhs, curve.G2(), w, zComm2)
	if err != nil {
		logger.Logger().Warn().Err(err).Msg("kzg: VerifyBatch pairing check failed")
		return false
	}
	return ok
}
