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

package polynomial

import "github.com/kzgverkle/kzgverkle/curve"

// Lagrange computes the unique polynomial of degree < len(xs) passing
// through (xs[i], ys[i]) for every i:
//
//	P(X) = sum_j y_j * L_j(X),   L_j(X) = prod_{k!=j} (X - x_k)/(x_j - x_k)
//
// Each basis polynomial is built by repeated multiplication by the linear
// factor (X - x_k) followed by a scalar division by (x_j - x_k).
//
// Lagrange fails with ErrDuplicateInterpolationNode if any two x-coordinates
// coincide — a duplicate would make (x_j - x_k) singular.
func Lagrange(xs, ys []curve.Scalar) (Polynomial, error) {
	if len(xs) != len(ys) {
		panic("polynomial: Lagrange requires matching x/y slice lengths")
	}
	n := len(xs)
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			if xs[j].Equal(&xs[k]) {
				return Zero(), ErrDuplicateInterpolationNode
			}
		}
	}

	result := Zero()
	for j := 0; j < n; j++ {
		basis := lagrangeBasis(j, xs)
		result = result.Add(basis.ScalarMul(ys[j]))
	}
	return result, nil
}

// lagrangeBasis builds L_j(X) = prod_{k!=j} (X - x_k)/(x_j - x_k).
func lagrangeBasis(j int, xs []curve.Scalar) Polynomial {
	basis := New([]curve.Scalar{one()})
	for k, xk := range xs {
		if k == j {
			continue
		}
		basis = basis.MulLinear(xk)

		var denom curve.Scalar
		denom.Sub(&xs[j], &xk)
		var denomInv curve.Scalar
		denomInv.Inverse(&denom)
		basis = basis.ScalarMul(denomInv)
	}
	return basis
}
