package sidh

// GF(p751) arithmetic, Montgomery form throughout. Montgomery's R is
// 2^(64*FP_WORDS); every Fp value handed between exported functions is
// understood to be x*R mod p unless a comment says otherwise.

// Fp is an element of GF(p751), little-endian limb order, in [0, 2p).
type Fp [FP_WORDS]uint64

// FpX2 is the double-width accumulator used by fpMul/fpMontRdc.
type FpX2 [2 * FP_WORDS]uint64

// fpAddRdc computes z = x + y (mod p), for x, y in [0, 2p).
func fpAddRdc(z, x, y *Fp) {
	var carry uint64
	for i := 0; i < FP_WORDS; i++ {
		z[i], carry = addc64(carry, x[i], y[i])
	}
	carry = 0
	for i := 0; i < FP_WORDS; i++ {
		z[i], carry = subc64(carry, z[i], p751x2[i])
	}
	mask := uint64(0 - carry)
	carry = 0
	for i := 0; i < FP_WORDS; i++ {
		z[i], carry = addc64(carry, z[i], p751x2[i]&mask)
	}
}

// fpSubRdc computes z = x - y (mod p).
func fpSubRdc(z, x, y *Fp) {
	var borrow uint64
	for i := 0; i < FP_WORDS; i++ {
		z[i], borrow = subc64(borrow, x[i], y[i])
	}
	mask := uint64(0 - borrow)
	borrow = 0
	for i := 0; i < FP_WORDS; i++ {
		z[i], borrow = addc64(borrow, z[i], p751x2[i]&mask)
	}
}

// fpNeg computes z = -x (mod 2p), for x in [0, 2p).
func fpNeg(z, x *Fp) {
	var borrow uint64
	for i := 0; i < FP_WORDS; i++ {
		z[i], borrow = subc64(borrow, p751x2[i], x[i])
	}
}

// fpCorrection maps x in [0, 2p) to the unique representative in [0, p).
func fpCorrection(x *Fp) {
	var borrow, mask uint64
	for i := 0; i < FP_WORDS; i++ {
		x[i], borrow = subc64(borrow, x[i], p751[i])
	}
	mask = 0 - borrow
	borrow = 0
	for i := 0; i < FP_WORDS; i++ {
		x[i], borrow = addc64(borrow, x[i], p751[i]&mask)
	}
}

// fpDiv2 computes z = x/2 (mod p) via a conditional add-back of p on odd x.
func fpDiv2(z, x *Fp) {
	mask := uint64(0) - (x[0] & 1)
	var carry uint64
	for i := 0; i < FP_WORDS; i++ {
		z[i], carry = addc64(carry, x[i], p751[i]&mask)
	}
	for i := 0; i < FP_WORDS-1; i++ {
		z[i] = (z[i] >> 1) | (z[i+1] << 63)
	}
	z[FP_WORDS-1] = z[FP_WORDS-1] >> 1
}

// fpSwapCond is declared in arith.go; condSwap in fp2.go builds on it.

// fpMul computes the double-width product z = x*y (no reduction).
func fpMul(z *FpX2, x, y *Fp) {
	var u, v, t uint64
	var carry uint64
	var uv uint128

	for i := uint64(0); i < FP_WORDS; i++ {
		for j := uint64(0); j <= i; j++ {
			uv = mul64(x[j], y[i-j])
			v, carry = addc64(0, uv.L, v)
			u, carry = addc64(carry, uv.H, u)
			t += carry
		}
		z[i] = v
		v = u
		u = t
		t = 0
	}

	for i := uint64(FP_WORDS); i < (2*FP_WORDS)-1; i++ {
		for j := i - FP_WORDS + 1; j < FP_WORDS; j++ {
			uv = mul64(x[j], y[i-j])
			v, carry = addc64(0, uv.L, v)
			u, carry = addc64(carry, uv.H, u)
			t += carry
		}
		z[i] = v
		v = u
		u = t
		t = 0
	}
	z[2*FP_WORDS-1] = v
}

// fpMontRdc performs Montgomery reduction, mapping x = a*R^2 down to
// a*R (mod p); x is only read. p751+1 = 2^372 * 3^239 has its five
// lowest 64-bit limbs equal to zero, which fpp1ZeroWords exploits the same
// way the teacher's p503 reduction exploits p503's own zero prefix.
func fpMontRdc(z *Fp, x *FpX2) {
	var carry, t, u, v uint64
	var uv uint128

	count := fpp1ZeroWords

	for i := 0; i < FP_WORDS; i++ {
		for j := 0; j < i; j++ {
			if j < (i - count + 1) {
				uv = mul64(z[j], p751p1[i-j])
				v, carry = addc64(0, uv.L, v)
				u, carry = addc64(carry, uv.H, u)
				t += carry
			}
		}
		v, carry = addc64(0, v, x[i])
		u, carry = addc64(carry, u, 0)
		t += carry

		z[i] = v
		v = u
		u = t
		t = 0
	}

	for i := FP_WORDS; i < 2*FP_WORDS-1; i++ {
		if count > 0 {
			count--
		}
		for j := i - FP_WORDS + 1; j < FP_WORDS; j++ {
			if j < (FP_WORDS - count) {
				uv = mul64(z[j], p751p1[i-j])
				v, carry = addc64(0, uv.L, v)
				u, carry = addc64(carry, uv.H, u)
				t += carry
			}
		}
		v, carry = addc64(0, v, x[i])
		u, carry = addc64(carry, u, 0)
		t += carry

		z[i-FP_WORDS] = v
		v = u
		u = t
		t = 0
	}
	v, carry = addc64(0, v, x[2*FP_WORDS-1])
	z[FP_WORDS-1] = v
}

// fpMulRdc computes dest = lhs*rhs*R^-1 (mod p); inputs and output are in
// Montgomery form.
func fpMulRdc(dest, lhs, rhs *Fp) {
	var ab FpX2
	fpMul(&ab, lhs, rhs)
	fpMontRdc(dest, &ab)
}

// fpToMont converts a from plain to Montgomery form: a |-> a*R mod p.
func fpToMont(dest, a *Fp) {
	fpMulRdc(dest, a, &p751R2)
}

// fpFromMont converts a from Montgomery to plain form: a |-> a*R^-1 mod p.
func fpFromMont(dest, a *Fp) {
	var one Fp
	one[0] = 1
	fpMulRdc(dest, a, &one)
}

// p34 sets dest = x^((p-3)/4) using the sliding-window addition chain
// computed for p751's own exponent (window size 5, same shape as the
// teacher's p503 chain but re-derived for this prime — see
// fp34PowStrategy/fp34MulStrategy in params_p751.go). If x is a nonzero
// square, dest is 1/sqrt(x). Allowed to overlap x with dest.
func p34(dest, x *Fp) {
	pow2k := func(dest, x *Fp, k uint16) {
		fpMulRdc(dest, x, x)
		for i := uint16(1); i < k; i++ {
			fpMulRdc(dest, dest, dest)
		}
	}

	var lookup [16]Fp
	var xx Fp
	fpMulRdc(&xx, x, x)
	lookup[0] = *x
	for i := 1; i < 16; i++ {
		fpMulRdc(&lookup[i], &lookup[i-1], &xx)
	}

	*dest = lookup[fp34MulStrategy[0]]
	for i := 1; i < len(fp34PowStrategy); i++ {
		pow2k(dest, dest, fp34PowStrategy[i])
		fpMulRdc(dest, dest, &lookup[fp34MulStrategy[i]])
	}
}

// fpInvMont sets x = x^-1 (mod p), constant time. Used on secret values.
// p751 = 4k+3 with k=(p-3)/4, so x^-1 = x^(p-2) = (x^(2k))^2 * x =
// ((x^2)^k)^2 * x; p34 supplies x^k.
func fpInvMont(x *Fp) {
	var t Fp
	fpMulRdc(&t, x, x) // t = x^2
	p34(&t, &t)        // t = (x^2)^k = x^(p-3)/2
	fpMulRdc(&t, &t, &t)
	fpMulRdc(&t, &t, x) // t = x^(p-3) * x = x^(p-2)
	*x = t
}

// fpInvMontBinGCD sets x = x^-1 (mod p) using the binary-GCD method. NOT
// constant time: restricted by the constant-time contract (spec §5) to
// values derived solely from public inputs.
func fpInvMontBinGCD(x *Fp) {
	var a, b, u, v Fp
	fpFromMont(&a, x) // work in plain (non-Montgomery) domain
	b = p751
	u[0] = 1
	v = Fp{}

	isOdd := func(f *Fp) bool { return f[0]&1 == 1 }
	isZero := func(f *Fp) bool {
		for _, w := range f {
			if w != 0 {
				return false
			}
		}
		return true
	}
	halveModP := func(f *Fp) {
		fpDiv2(f, f)
	}
	subFull := func(dst, x, y *Fp) { fpSubRdc(dst, x, y) }

	for !isZero(&a) {
		for !isOdd(&a) {
			fpDiv2(&a, &a)
			halveModP(&u)
		}
		for !isOdd(&b) {
			fpDiv2(&b, &b)
			halveModP(&v)
		}
		if greaterOrEqual(&a, &b) {
			subFull(&a, &a, &b)
			subFull(&u, &u, &v)
		} else {
			subFull(&b, &b, &a)
			subFull(&v, &v, &u)
		}
	}
	fpCorrection(&v)
	fpToMont(x, &v)
}

// greaterOrEqual reports whether a >= b as unsigned big integers.
func greaterOrEqual(a, b *Fp) bool {
	for i := FP_WORDS - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return true
}
