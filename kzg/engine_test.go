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

package kzg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/kzg"
	"github.com/kzgverkle/kzgverkle/polynomial"
	"github.com/kzgverkle/kzgverkle/setup"
)

func scalarOf(v int64) curve.Scalar {
	var s curve.Scalar
	s.SetInt64(v)
	return s
}

func randomPoly(t *testing.T, degree int) polynomial.Polynomial {
	t.Helper()
	coeffs := make([]curve.Scalar, degree+1)
	for i := range coeffs {
		s, err := curve.RandomScalar()
		require.NoError(t, err)
		coeffs[i] = s
	}
	return polynomial.New(coeffs)
}

func TestCommitOpenVerifyPoint(t *testing.T) {
	srs, err := setup.Generate(8)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 5)
	c, err := e.Commit(f)
	require.NoError(t, err)

	z := scalarOf(7)
	v := f.Eval(z)

	w, err := e.OpenPoint(f, kzg.Point{Z: z, V: v})
	require.NoError(t, err)

	require.True(t, e.VerifyPoint(c, kzg.Point{Z: z, V: v}, w))
}

func TestOpenPointRejectsWrongValue(t *testing.T) {
	srs, err := setup.Generate(8)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 5)
	z := scalarOf(7)
	wrong := f.Eval(z)
	one := scalarOf(1)
	wrong.Add(&wrong, &one)

	_, err = e.OpenPoint(f, kzg.Point{Z: z, V: wrong})
	require.ErrorIs(t, err, kzg.ErrPointNotOnPolynomial)
}

func TestVerifyPointRejectsTamperedProof(t *testing.T) {
	srs, err := setup.Generate(8)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 5)
	c, err := e.Commit(f)
	require.NoError(t, err)

	z := scalarOf(3)
	v := f.Eval(z)
	w, err := e.OpenPoint(f, kzg.Point{Z: z, V: v})
	require.NoError(t, err)

	badV := v
	one := scalarOf(1)
	badV.Add(&badV, &one)

	require.False(t, e.VerifyPoint(c, kzg.Point{Z: z, V: badV}, w))
}

func TestCommitRejectsOverDegree(t *testing.T) {
	srs, err := setup.Generate(2)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 5)
	_, err = e.Commit(f)
	require.ErrorIs(t, err, kzg.ErrDegreeExceeded)
}

func TestCommitOpenVerifyBatch(t *testing.T) {
	srs, err := setup.Generate(10)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 6)
	c, err := e.Commit(f)
	require.NoError(t, err)

	pts := []kzg.Point{
		{Z: scalarOf(1), V: f.Eval(scalarOf(1))},
		{Z: scalarOf(2), V: f.Eval(scalarOf(2))},
		{Z: scalarOf(3), V: f.Eval(scalarOf(3))},
	}

	w, err := e.OpenBatch(f, pts)
	require.NoError(t, err)
	require.True(t, e.VerifyBatch(c, pts, w))
}

func TestOpenBatchRejectsInconsistentPoint(t *testing.T) {
	srs, err := setup.Generate(10)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 6)
	bad := f.Eval(scalarOf(2))
	one := scalarOf(1)
	bad.Add(&bad, &one)

	pts := []kzg.Point{
		{Z: scalarOf(1), V: f.Eval(scalarOf(1))},
		{Z: scalarOf(2), V: bad},
	}

	_, err = e.OpenBatch(f, pts)
	require.ErrorIs(t, err, kzg.ErrPointNotOnPolynomial)
}

func TestVerifyBatchAcceptsFullDegreePlusOneBoundary(t *testing.T) {
	srs, err := setup.Generate(4)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 4)
	c, err := e.Commit(f)
	require.NoError(t, err)

	// Exactly degree+1 = 5 points: they fully pin down f, so r == f, the
	// quotient is the zero polynomial, and the identity proof must verify.
	pts := make([]kzg.Point, 5)
	for i := range pts {
		z := scalarOf(int64(i + 1))
		pts[i] = kzg.Point{Z: z, V: f.Eval(z)}
	}

	w, err := e.OpenBatch(f, pts)
	require.NoError(t, err)
	require.True(t, e.VerifyBatch(c, pts, w))
}

func TestVerifyPointRejectsOnDegreeZeroSRS(t *testing.T) {
	srs, err := setup.Generate(0)
	require.NoError(t, err)
	e := kzg.New(srs)

	var f polynomial.Polynomial
	z := scalarOf(7)
	c, err := e.Commit(f)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.False(t, e.VerifyPoint(c, kzg.Point{Z: z, V: f.Eval(z)}, curve.Z1()))
	})
}

func TestVerifyBatchRejectsForgedProof(t *testing.T) {
	srs, err := setup.Generate(10)
	require.NoError(t, err)
	e := kzg.New(srs)

	f := randomPoly(t, 6)
	c, err := e.Commit(f)
	require.NoError(t, err)

	pts := []kzg.Point{
		{Z: scalarOf(1), V: f.Eval(scalarOf(1))},
		{Z: scalarOf(2), V: f.Eval(scalarOf(2))},
	}
	_, err = e.OpenBatch(f, pts)
	require.NoError(t, err)

	forged := curve.G1()
	require.False(t, e.VerifyBatch(c, pts, forged))
}
