package sidh

// Projective Montgomery-curve arithmetic: C*y^2 = x^3 + A*x^2 + C*x,
// points carried as x-only projective pairs (X:Z). Grounded on the
// teacher's call shapes (`Pow2k(xR, &cparam, 2*k)`, `Pow3k(xR, &cparam, k)`,
// `ScalarMul3Pt(&tmp, &xPA, &xQA, &xRA, bitlen, scalar)`,
// `RecoverCoordinateA`, `Jinvariant`) in sike.go; function bodies follow
// the standard SIDH formulas spec.md §4.3 names.

// ProjectivePoint is an x-only projective point (X:Z); Z=0 is infinity.
type ProjectivePoint struct {
	X, Z Fp2
}

// ProjectiveCurveParameters holds the projective Montgomery coefficients
// (A:C); affine a = A/C.
type ProjectiveCurveParameters struct {
	A, C Fp2
}

// a24 returns (A+2C, 4C), the constants xDBL's doubling formula consumes.
func (c *ProjectiveCurveParameters) a24() (A24, C24 Fp2) {
	var two, four Fp2
	two.A[0], four.A[0] = 2, 4
	fpToMont(&two.A, &two.A)
	fpToMont(&four.A, &four.A)

	var twoC Fp2
	mul(&twoC, &two, &c.C)
	add(&A24, &c.A, &twoC)
	mul(&C24, &four, &c.C)
	return
}

// xDBL computes [2]P given P and the curve's (A24,C24) doubling constants.
func xDBL(p *ProjectivePoint, A24, C24 *Fp2) ProjectivePoint {
	var t0, t1, t2, t3, x2, z2 Fp2
	sub(&t0, &p.X, &p.Z)
	add(&t1, &p.X, &p.Z)
	sqr(&t0, &t0)
	sqr(&t1, &t1)
	mul(&z2, C24, &t0)
	mul(&x2, &z2, &t1)
	sub(&t2, &t1, &t0)
	mul(&t3, A24, &t2)
	add(&z2, &z2, &t3)
	mul(&z2, &z2, &t2)
	return ProjectivePoint{X: x2, Z: z2}
}

// xDBLe applies xDBL e times on the same curve.
func xDBLe(p *ProjectivePoint, curve *ProjectiveCurveParameters, e int) ProjectivePoint {
	A24, C24 := curve.a24()
	r := *p
	for i := 0; i < e; i++ {
		r = xDBL(&r, &A24, &C24)
	}
	return r
}

// xTPL computes [3]P using the Costello-Hisil tripling formula.
func xTPL(p *ProjectivePoint, curve *ProjectiveCurveParameters) ProjectivePoint {
	var t0, t1, t2, t3, t4, t5, t6 Fp2
	var x3, z3 Fp2

	a, c := curve.A, curve.C
	var twoC Fp2
	var two Fp2
	two.A[0] = 2
	fpToMont(&two.A, &two.A)
	mul(&twoC, &two, &c)

	sub(&t0, &p.X, &p.Z)
	sqr(&t2, &t0)
	add(&t1, &p.X, &p.Z)
	sqr(&t3, &t1)
	add(&t4, &t1, &t0)
	sub(&t0, &t1, &t0)
	sqr(&t1, &t4)
	sub(&t1, &t1, &t3)
	sub(&t1, &t1, &t2)
	var aPlus2c Fp2
	add(&aPlus2c, &a, &twoC)
	mul(&t5, &t3, &aPlus2c)
	mul(&t3, &t3, &t5)
	mul(&t6, &t2, &a)
	add(&t6, &t6, &t6)
	add(&t6, &t6, &t6)
	add(&t2, &t2, &t6)
	mul(&t2, &t2, &t5)
	mul(&t3, &t3, &t4)
	sub(&t2, &t2, &t3)
	mul(&t2, &t2, &t0)
	add(&t3, &t1, &t2)
	sqr(&t3, &t3)
	mul(&x3, &t3, &t4)
	sub(&t2, &t1, &t2)
	sqr(&t2, &t2)
	mul(&z3, &t2, &t0)

	return ProjectivePoint{X: x3, Z: z3}
}

// xTPLe applies xTPL e times on the same curve.
func xTPLe(p *ProjectivePoint, curve *ProjectiveCurveParameters, e int) ProjectivePoint {
	r := *p
	for i := 0; i < e; i++ {
		r = xTPL(&r, curve)
	}
	return r
}

// xADD computes P+Q given P, Q and the affine x-coordinate of P-Q:
//
//	X3 = (t0+t1)^2,  Z3 = x(P-Q) * (t0-t1)^2
//	t0 = (X_P-Z_P)(X_Q+Z_Q),  t1 = (X_P+Z_P)(X_Q-Z_Q)
func xADD(p, q *ProjectivePoint, xMinus *Fp2) ProjectivePoint {
	var pSum, pDiff, qSum, qDiff Fp2
	add(&pSum, &p.X, &p.Z)
	sub(&pDiff, &p.X, &p.Z)
	add(&qSum, &q.X, &q.Z)
	sub(&qDiff, &q.X, &q.Z)

	var t0, t1 Fp2
	mul(&t0, &pDiff, &qSum)
	mul(&t1, &pSum, &qDiff)

	var sum, diff Fp2
	add(&sum, &t0, &t1)
	sub(&diff, &t0, &t1)
	sqr(&sum, &sum)
	sqr(&diff, &diff)

	var z3 Fp2
	mul(&z3, xMinus, &diff)
	return ProjectivePoint{X: sum, Z: z3}
}

// xDBLADD computes [2]P and P+Q simultaneously given the affine
// x-coordinate of Q-P, sharing work between the two (the inner loop of
// the three-point ladder).
func xDBLADD(p, q *ProjectivePoint, xMinus *Fp2, A24, C24 *Fp2) (dbl, sum ProjectivePoint) {
	var t0, t1, t2 Fp2
	add(&t0, &p.X, &p.Z)
	sub(&t1, &p.X, &p.Z)
	sqr(&t2, &t0)

	var qSum, qDiff Fp2
	add(&qSum, &q.X, &q.Z)
	sub(&qDiff, &q.X, &q.Z)
	var t4, t5 Fp2
	mul(&t4, &t0, &qDiff)
	mul(&t5, &t1, &qSum)

	var dblX, dblZ, t6 Fp2
	sqr(&t6, &t1)
	mul(&dblZ, C24, &t6)
	mul(&dblX, &dblZ, &t2)
	sub(&t2, &t2, &t6)
	var t7 Fp2
	mul(&t7, A24, &t2)
	add(&dblZ, &dblZ, &t7)
	mul(&dblZ, &dblZ, &t2)

	var sumX, sumZ, sumT0, sumT1 Fp2
	add(&sumT0, &t4, &t5)
	sub(&sumT1, &t4, &t5)
	sqr(&sumX, &sumT0)
	sqr(&sumZ, &sumT1)
	mul(&sumZ, &sumZ, xMinus)

	return ProjectivePoint{X: dblX, Z: dblZ}, ProjectivePoint{X: sumX, Z: sumZ}
}

// ladder3Pt computes x(P + m*Q) via Montgomery's three-point ladder given
// x(P), x(Q), x(Q-P), the scalar m (little-endian bytes) and its bit
// length. Constant time: the loop bound is the fixed bit length, not
// derived from m's value, and every step does both a double and an add,
// selected only by constant-time conditional swaps.
func ladder3Pt(curve *ProjectiveCurveParameters, xP, xQ, xQmP *Fp2, bitLen int, scalar []byte) ProjectivePoint {
	A24, C24 := curve.a24()

	var one Fp2
	one.A[0] = 1
	fpToMont(&one.A, &one.A)

	p0 := ProjectivePoint{X: *xQ, Z: one}   // [2^i]Q
	p1 := ProjectivePoint{X: *xP, Z: one}   // P + (m mod 2^i)Q
	p2 := ProjectivePoint{X: *xQmP, Z: one} // differs from p1 by p0, up to sign

	var prevBit uint8
	for i := 0; i < bitLen; i++ {
		bit := (scalar[i/8] >> uint(i%8)) & 1
		swap := bit ^ prevBit
		condSwap(&p1.X, &p1.Z, &p2.X, &p2.Z, swap)
		prevBit = bit

		p0, p2 = xDBLADD(&p0, &p2, &p1.X, &A24, &C24)
		mul(&p2.X, &p2.X, &p1.Z) // the difference p1 is projective
	}
	condSwap(&p1.X, &p1.Z, &p2.X, &p2.Z, prevBit)
	return p1
}

// jInvariant computes j = 256*(A^2-3C^2)^3 / (C^4*(A^2-4C^2)).
func jInvariant(curve *ProjectiveCurveParameters) Fp2 {
	a, c := curve.A, curve.C

	var c2, threeC2, fourC2, a2 Fp2
	sqr(&c2, &c)
	add(&threeC2, &c2, &c2)
	add(&threeC2, &threeC2, &c2)
	add(&fourC2, &threeC2, &c2)
	sqr(&a2, &a)

	var aMin3c2, aMin4c2 Fp2
	sub(&aMin3c2, &a2, &threeC2)
	sub(&aMin4c2, &a2, &fourC2)

	var num Fp2
	sqr(&num, &aMin3c2)
	mul(&num, &num, &aMin3c2) // (A^2-3C^2)^3

	var c4, den Fp2
	sqr(&c4, &c2)
	mul(&den, &c4, &aMin4c2) // C^4*(A^2-4C^2)

	var invDen Fp2
	inv(&invDen, &den)

	var j Fp2
	mul(&j, &num, &invDen)

	var twoFiveSix Fp2
	twoFiveSix.A[0] = 256
	fpToMont(&twoFiveSix.A, &twoFiveSix.A)
	mul(&j, &j, &twoFiveSix)
	return j
}

// recoverA reconstructs the curve coefficient A (with C=1) from three
// affine x-coordinates (x(P), x(Q), x(Q-P)) known to lie on that curve:
//
//	A = (1 - xP*xQ - xP*xQmP - xQ*xQmP)^2 / (4*xP*xQ*xQmP) - xP - xQ - xQmP
func recoverA(xp, xq, xqmp *Fp2) ProjectiveCurveParameters {
	var one Fp2
	one.A[0] = 1
	fpToMont(&one.A, &one.A)

	var num, den Fp2
	computeRecoverA(xp, xq, xqmp, &num, &den)

	var invDen, ratio, sumPts, a Fp2
	inv(&invDen, &den)
	mul(&ratio, &num, &invDen)

	add(&sumPts, xp, xq)
	add(&sumPts, &sumPts, xqmp)
	sub(&a, &ratio, &sumPts)

	return ProjectiveCurveParameters{A: a, C: one}
}

// computeRecoverA implements the standard three-x-coordinate curve
// recovery formula:
//
//	A = (1 - xP*xQ - xP*xQmP - xQ*xQmP)^2 / (4*xP*xQ*xQmP) - xP - xQ - xQmP
//
// split into numerator/denominator to defer the single division.
func computeRecoverA(xp, xq, xqmp *Fp2, num, den *Fp2) {
	var one, t0, t1, t2, sumXY Fp2
	one.A[0] = 1
	fpToMont(&one.A, &one.A)

	mul(&t0, xp, xq)
	mul(&t1, xp, xqmp)
	mul(&t2, xq, xqmp)
	add(&sumXY, &t0, &t1)
	add(&sumXY, &sumXY, &t2)
	sub(&sumXY, &one, &sumXY)
	sqr(num, &sumXY)

	mul(den, &t0, xqmp)
	add(den, den, den)
	add(den, den, den) // 4*xP*xQ*xQmP
}
