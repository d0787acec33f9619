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

package setup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/setup"
)

func TestGenerateProducesEvaluationInTheExponentIdentity(t *testing.T) {
	srs, err := setup.Generate(6)
	require.NoError(t, err)
	require.Equal(t, 6, srs.Degree())

	srs1 := srs.SRS1()
	srs2 := srs.SRS2()
	require.Len(t, srs1, 7)
	require.Len(t, srs2, 7)

	// tau^0 = 1, so SRS1[0]/SRS2[0] must be the plain generators.
	require.True(t, curve.EqualG1(srs1[0], curve.G1()))
	g2 := curve.G2()
	require.True(t, srs2[0].Equal(&g2))

	// Both vectors hold the same powers of one tau: e(SRS1[i], G2) ==
	// e(G1, SRS2[i]), and each SRS1 entry is tau times the one before it:
	// e(SRS1[i+1], G2) == e(SRS1[i], SRS2[1]).
	for i := range srs1 {
		ok, err := curve.PairingsEqual(srs1[i], curve.G2(), curve.G1(), srs2[i])
		require.NoError(t, err)
		require.True(t, ok)
		if i+1 < len(srs1) {
			ok, err = curve.PairingsEqual(srs1[i+1], curve.G2(), srs1[i], srs2[1])
			require.NoError(t, err)
			require.True(t, ok)
		}
	}
}

func TestGenerateRejectsNegativeDegree(t *testing.T) {
	_, err := setup.Generate(-1)
	require.Error(t, err)
}

func TestSRS1AccessorReturnsIndependentCopy(t *testing.T) {
	srs, err := setup.Generate(3)
	require.NoError(t, err)

	cp := srs.SRS1()
	cp[0] = curve.Z1()

	fresh := srs.SRS1()
	require.False(t, curve.EqualG1(fresh[0], curve.Z1()))
}

func TestCompatibleWithChecksMajorVersion(t *testing.T) {
	srs, err := setup.Generate(1)
	require.NoError(t, err)

	require.True(t, srs.CompatibleWith(setup.FormatVersion))
}
