package sidh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// orderTwoGenerator returns an element of order exactly 2^k, 1 <= k <=
// maxK, together with k. A random norm-1 element's order divides p+1 =
// 2^eA*3^eB; cubing it eB times and then squaring it eA-maxK times leaves
// an element whose order divides 2^maxK, and repeated squaring then finds
// that order. An element that lands on 1 is discarded and another drawn.
func orderTwoGenerator(rnd *rand.Rand, maxK int) (Fp2, int) {
	for attempt := 0; attempt < 64; attempt++ {
		x := randNormOneFp2(rnd)
		x = cyclotomicPow(cyclotomicPow(x, 3, eB), 2, eA-maxK)
		k := 0
		cur := x
		for k < maxK {
			var sq Fp2
			cyclotomicSquare(&sq, &cur)
			if sq.equal(P751.OneFp2) {
				if !cur.equal(P751.OneFp2) {
					return x, k + 1
				}
				break
			}
			cur = sq
			k++
		}
	}
	return Fp2{}, 0
}

func TestPohligHellmanRoundTrip(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(11))

	g, k := orderTwoGenerator(rnd, 12)
	require.Greater(k, 0, "must find an element of order exactly 2^k for some k>0")

	x0 := int(rnd.Uint64() % (uint64(1) << uint(k)))
	h := P751.OneFp2
	for i := 0; i < x0; i++ {
		mul(&h, &h, &g)
	}

	recovered := pohligHellman(g, h, 2, k)
	require.EqualValues(x0, recovered.Int64(), "pohligHellman must recover the discrete log exactly")
}

func TestCyclotomicPowMatchesRepeatedSquaring(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(23))

	x := randNormOneFp2(rnd)
	var manual Fp2 = x
	for i := 0; i < 5; i++ {
		cyclotomicSquare(&manual, &manual)
	}
	viaPow := cyclotomicPow(x, 2, 5)
	require.True(manual.equal(viaPow), "cyclotomicPow(x,2,5) must equal 5 repeated squarings")
}
