package sidh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFpMontgomeryRoundTrip(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		var plain Fp
		for j := range plain {
			plain[j] = rnd.Uint64()
		}
		plain[FP_WORDS-1] %= p751[FP_WORDS-1] + 1
		if greaterOrEqual(&plain, &p751) {
			continue
		}

		var mont, back Fp
		fpToMont(&mont, &plain)
		fpFromMont(&back, &mont)
		require.Equal(plain, back, "fpFromMont(fpToMont(x)) must equal x")
	}
}

func TestFpInversionAgreesWithBinGCD(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(7))

	for i := 0; i < 25; i++ {
		x := randFp(rnd)
		if x == (Fp{}) {
			continue
		}

		xA := x
		fpInvMont(&xA)

		xB := x
		fpInvMontBinGCD(&xB)

		require.Equal(xA, xB, "fpInvMont and fpInvMontBinGCD must agree")

		var check Fp
		fpMulRdc(&check, &x, &xA)
		var one Fp
		one[0] = 1
		fpToMont(&one, &one)
		require.Equal(one, check, "x * x^-1 must equal 1 in Montgomery form")
	}
}

func TestFpDiv2(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(99))

	for i := 0; i < 25; i++ {
		x := randFp(rnd)
		var half, doubled Fp
		fpDiv2(&half, &x)
		fpAddRdc(&doubled, &half, &half)
		fpCorrection(&x)
		fpCorrection(&doubled)
		require.Equal(x, doubled, "2*(x/2) must equal x")
	}
}

func TestGreaterOrEqual(t *testing.T) {
	require := require.New(t)
	var a, b Fp
	a[0], b[0] = 5, 3
	require.True(greaterOrEqual(&a, &b))
	require.True(greaterOrEqual(&a, &a))
	require.False(greaterOrEqual(&b, &a))
}
