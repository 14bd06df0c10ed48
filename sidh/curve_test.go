package sidh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var baseCurve = ProjectiveCurveParameters{C: P751.OneFp2}

func TestAliceBasisHasExactOrder(t *testing.T) {
	require := require.New(t)

	p := ProjectivePoint{X: P751.A.AffineP, Z: P751.OneFp2}
	cleared := xDBLe(&p, &baseCurve, eA)
	require.True(cleared.Z.isZero(), "2^eA * P must be the point at infinity")

	notYet := xDBLe(&p, &baseCurve, eA-1)
	require.False(notYet.Z.isZero(), "2^(eA-1) * P must not yet be infinity")
}

func TestBobBasisHasExactOrder(t *testing.T) {
	require := require.New(t)

	p := ProjectivePoint{X: P751.B.AffineP, Z: P751.OneFp2}
	cleared := xTPLe(&p, &baseCurve, eB)
	require.True(cleared.Z.isZero(), "3^eB * P must be the point at infinity")

	notYet := xTPLe(&p, &baseCurve, eB-1)
	require.False(notYet.Z.isZero(), "3^(eB-1) * P must not yet be infinity")
}

func TestRecoverABaseCurve(t *testing.T) {
	require := require.New(t)

	recovered := recoverA(&P751.A.AffineP, &P751.A.AffineQ, &P751.A.AffineR)
	require.True(recovered.A.isZero(), "basis points were generated on A=0, recoverA must return A=0")
}

func TestJInvariantIsScaleInvariant(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(3))

	curve := ProjectiveCurveParameters{A: P751.A.AffineP, C: P751.OneFp2}
	j1 := jInvariant(&curve)

	lambda := randFp2(rnd)
	if lambda.isZero() {
		lambda = P751.OneFp2
	}
	var scaled ProjectiveCurveParameters
	mul(&scaled.A, &curve.A, &lambda)
	mul(&scaled.C, &curve.C, &lambda)
	j2 := jInvariant(&scaled)

	require.True(j1.equal(j2), "j-invariant must be unchanged by scaling (A:C) by a common factor")
}

func TestIsogeny4KernelPointMapsToInfinity(t *testing.T) {
	require := require.New(t)

	// The kernel generator of a 4-isogeny must map to the identity on
	// the codomain curve.
	kernelGen := ProjectivePoint{X: P751.A.AffineP, Z: P751.OneFp2}
	// Clear down to a point of order exactly 4: ((2^eA)/4) * P.
	fourTorsion := xDBLe(&kernelGen, &baseCurve, eA-2)

	phi := newIsogeny4()
	phi.generateCurve(&fourTorsion)
	image := phi.evaluatePoint(&fourTorsion)
	require.True(image.Z.isZero(), "the 4-isogeny kernel generator must map to infinity")
}

func TestIsogeny3KernelPointMapsToInfinity(t *testing.T) {
	require := require.New(t)

	kernelGen := ProjectivePoint{X: P751.B.AffineP, Z: P751.OneFp2}
	threeTorsion := xTPLe(&kernelGen, &baseCurve, eB-1)

	phi := newIsogeny3()
	phi.generateCurve(&threeTorsion)
	image := phi.evaluatePoint(&threeTorsion)
	require.True(image.Z.isZero(), "the 3-isogeny kernel generator must map to infinity")
}
