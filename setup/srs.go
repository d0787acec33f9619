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

// Package setup implements the trusted setup: a one-shot generator that
// samples a secret tau, derives the two SRS vectors, and drops tau before
// returning — the same one-shot, tau-discarding lifecycle gnark's own
// circuit-specific setup ceremonies follow (see backend/plonk/<curve>/setup.go
// in the teacher, which likewise turns a borrowed SRS into a
// ProvingKey/VerifyingKey pair without ever seeing the secret that produced
// it).
package setup

import (
	"fmt"
	"time"

	"github.com/blang/semver/v4"
	"github.com/kzgverkle/kzgverkle/curve"
	"github.com/kzgverkle/kzgverkle/internal/logger"
)

// FormatVersion is the SRS wire/in-memory format this build produces and
// accepts. Bumping the major component is a breaking change to the SRS
// layout; CompatibleWith rejects an SRS whose major version differs, the
// same role semver plays in gnark's own object-versioning checks.
var FormatVersion = semver.MustParse("1.0.0")

// SRS is the immutable pair (SRS1, SRS2): there exists a secret tau, now
// irrecoverable, such that SRS1[i] = G1*tau^i and SRS2[i] = G2*tau^i for i
// in [0, Degree]. Exported accessors return copies of the backing slices so
// callers cannot mutate a shared SRS out from under other borrowers —
// Engine, Prover, and Verifier all borrow the same SRS concurrently.
type SRS struct {
	srs1    []curve.G1Point
	srs2    []curve.G2Point
	version semver.Version
}

// Degree is the maximum polynomial degree this SRS supports.
func (s *SRS) Degree() int {
	return len(s.srs1) - 1
}

// Version reports the SRS format version.
func (s *SRS) Version() semver.Version {
	return s.version
}

// CompatibleWith reports whether s can be consumed by code built against
// want: the major component must match exactly.
func (s *SRS) CompatibleWith(want semver.Version) bool {
	return s.version.Major == want.Major
}

// SRS1 returns a copy of the G1 SRS vector [G1*tau^i].
func (s *SRS) SRS1() []curve.G1Point {
	cp := make([]curve.G1Point, len(s.srs1))
	copy(cp, s.srs1)
	return cp
}

// SRS2 returns a copy of the G2 SRS vector [G2*tau^i].
func (s *SRS) SRS2() []curve.G2Point {
	cp := make([]curve.G2Point, len(s.srs2))
	copy(cp, s.srs2)
	return cp
}

// Generate runs the trusted setup: sample tau uniformly from [1, p-1] via a
// cryptographically strong source, build SRS1/SRS2 up to degree, and
// overwrite the variable holding tau before returning. Callers that need
// the stronger "tau is provably gone from process state" guarantee should
// run Generate in a short-lived, isolated process; this function only
// guarantees tau is not retained by this module's own state.
func Generate(degree int) (*SRS, error) {
	if degree < 0 {
		return nil, fmt.Errorf("setup: degree must be >= 0, got %d", degree)
	}
	start := time.Now()
	log := logger.Logger()
	log.Debug().Int("degree", degree).Msg("trusted setup: sampling tau")

	tau, err := curve.RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("setup: sampling tau: %w", err)
	}

	srs1 := make([]curve.G1Point, degree+1)
	srs2 := make([]curve.G2Point, degree+1)

	power := newScalarOne()
	for i := 0; i <= degree; i++ {
		srs1[i] = curve.ScalarMulG1(curve.G1(), &power)
		srs2[i] = curve.ScalarMulG2(curve.G2(), &power)
		power.Mul(&power, &tau)
	}

	// tau has served its purpose; overwrite it in place rather than letting
	// it linger under a live name. Go's GC means this does not erase every
	// copy the runtime may have made internally, but it does remove the
	// only copy this function held under a live, inspectable name.
	tau.SetZero()

	log.Debug().Dur("elapsed", time.Since(start)).Msg("trusted setup: complete")

	return &SRS{srs1: srs1, srs2: srs2, version: FormatVersion}, nil
}

func newScalarOne() curve.Scalar {
	var s curve.Scalar
	s.SetOne()
	return s
}
