package sidh

// 4-isogeny and 3-isogeny kernels: given an x-only point generating the
// kernel subgroup, compute the codomain curve and the map that pushes
// other points through it. Grounded on the teacher's
// `phi := NewIsogeny4(); cparam = phi.GenerateCurve(xR); points[k] =
// phi.EvaluatePoint(&points[k])` call shape in `traverseTreePublicKeyA`;
// the formulas themselves follow the standard Montgomery-curve isogeny
// construction (Costello-Longa-Naehrig), since the teacher's own
// `get_4_isog`/`eval_4_isog`-equivalent bodies fall outside the retrieved
// file slice.

// isogeny4 holds the three Fp2 coefficients a 4-isogeny's point map needs,
// computed once by generateCurve and reused by every evaluatePoint call.
type isogeny4 struct {
	k1, k2, k3 Fp2
}

func newIsogeny4() *isogeny4 {
	return &isogeny4{}
}

// generateCurve computes the codomain curve of the 4-isogeny with kernel
// generated by p (an order-4 point), and caches the coefficients
// evaluatePoint needs.
func (phi *isogeny4) generateCurve(p *ProjectivePoint) ProjectiveCurveParameters {
	sub(&phi.k1, &p.X, &p.Z) // k1 = X4-Z4
	add(&phi.k2, &p.X, &p.Z) // k2 = X4+Z4

	var t0, a24plus, c24 Fp2
	sqr(&t0, &p.Z)
	add(&t0, &t0, &t0)     // t0 = 2*Z4^2
	sqr(&c24, &t0)         // c24 = 4*Z4^4
	add(&t0, &t0, &t0)     // t0 = 4*Z4^2, reused below as phi.k3
	phi.k3 = t0
	sqr(&a24plus, &p.X)
	add(&a24plus, &a24plus, &a24plus) // 2*X4^2
	sqr(&a24plus, &a24plus)           // a24plus = 4*X4^4

	// Convert the (A24plus,C24) doubling-constant pair into plain (A,C):
	// C = C24/4, A = A24plus - 2*C.
	var c Fp2
	fp2Div2(&c, &c24)
	fp2Div2(&c, &c)
	var twoC Fp2
	add(&twoC, &c, &c)
	var a Fp2
	sub(&a, &a24plus, &twoC)
	return ProjectiveCurveParameters{A: a, C: c}
}

// evaluatePoint pushes q through the 4-isogeny generated by the most
// recent generateCurve call.
func (phi *isogeny4) evaluatePoint(q *ProjectivePoint) ProjectivePoint {
	var t0, t1 Fp2
	add(&t0, &q.X, &q.Z)
	sub(&t1, &q.X, &q.Z)

	var x, z Fp2
	mul(&x, &t0, &phi.k1)
	mul(&z, &t1, &phi.k2)

	var t2 Fp2
	mul(&t2, &t0, &t1)
	mul(&t2, &t2, &phi.k3)

	var t3, t4 Fp2
	add(&t3, &z, &x)
	sub(&t4, &z, &x)
	sqr(&t3, &t3)
	sqr(&t4, &t4)

	var xOut, zOut Fp2
	add(&xOut, &t2, &t3)
	mul(&xOut, &xOut, &t3)
	sub(&zOut, &t4, &t2)
	mul(&zOut, &zOut, &t4)

	return ProjectivePoint{X: xOut, Z: zOut}
}

// isogeny3 holds the two Fp2 coefficients a 3-isogeny's point map needs.
type isogeny3 struct {
	k1, k2 Fp2
}

func newIsogeny3() *isogeny3 {
	return &isogeny3{}
}

// generateCurve computes the codomain curve of the 3-isogeny with kernel
// generated by p (an order-3 point), and caches the coefficients
// evaluatePoint needs.
func (phi *isogeny3) generateCurve(p *ProjectivePoint) ProjectiveCurveParameters {
	sub(&phi.k1, &p.X, &p.Z) // k1 = X3-Z3
	add(&phi.k2, &p.X, &p.Z) // k2 = X3+Z3

	var t0, t1, t2, t3, t4 Fp2
	sqr(&t0, &phi.k1)
	sqr(&t1, &phi.k2)
	add(&t2, &t0, &t1)
	add(&t3, &phi.k1, &phi.k2)
	sqr(&t3, &t3)
	sub(&t3, &t3, &t2)

	add(&t4, &t2, &t3)
	add(&t4, &t4, &t4)
	add(&t4, &t1, &t4)
	mul(&t4, &t4, &t3)
	var a24plus Fp2
	mul(&a24plus, &t4, &phi.k2)

	add(&t4, &t0, &t3)
	add(&t4, &t4, &t4)
	add(&t4, &t0, &t4)
	mul(&t4, &t4, &t3)
	var c24 Fp2
	mul(&c24, &t4, &phi.k1)

	var c Fp2
	fp2Div2(&c, &c24)
	fp2Div2(&c, &c)
	var twoC Fp2
	add(&twoC, &c, &c)
	var a Fp2
	sub(&a, &a24plus, &twoC)
	return ProjectiveCurveParameters{A: a, C: c}
}

// evaluatePoint pushes q through the 3-isogeny generated by the most
// recent generateCurve call.
func (phi *isogeny3) evaluatePoint(q *ProjectivePoint) ProjectivePoint {
	var t0, t1, t2 Fp2
	add(&t0, &q.X, &q.Z)
	sub(&t1, &q.X, &q.Z)
	mul(&t0, &t0, &phi.k1)
	mul(&t1, &t1, &phi.k2)
	add(&t2, &t0, &t1)
	sub(&t1, &t0, &t1)
	sqr(&t2, &t2)
	sqr(&t1, &t1)

	var x, z Fp2
	mul(&x, &q.X, &t2)
	mul(&z, &q.Z, &t1)
	return ProjectivePoint{X: x, Z: z}
}
