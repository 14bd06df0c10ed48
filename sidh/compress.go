package sidh

import (
	"bytes"
	"math/big"

	"github.com/icza/bitio"
)

// Public-key compression (spec.md §4.6). [EXPANSION]: no teacher
// precedent — the teacher's retrieved slice only ever transmits
// uncompressed (A, xP, xQ, xQmP) public keys. This module expresses a
// party's public points as coefficients against a fixed torsion basis of
// the *other* party's torsion group (the standard De Feo-Jao-Plut
// compression idea), recovering the coefficients via the Tate pairing
// (pairing.go) and Pohlig-Hellman (dlog.go) built for this purpose, then
// normalizing per spec.md §4.6 step 5 to the 3-scalar-plus-branch-bit
// form: phi(P) = a0*R1+b0*R2, phi(Q) = a1*R1+b1*R2; whichever of a0, b0
// is invertible mod l^e is divided out of all four coefficients, leaving
// 3 scalars and a bit recording which branch was taken. Dividing a
// kernel-spanning pair by a unit scalar yields another generator of the
// *same* l^e-order cyclic subgroup, which is all the subsequent isogeny
// walk ever needs — the exact point phi(P) itself is not recoverable
// from the normalized form, and decompression never reconstructs it.

// CompressedPublicKey is a public key re-expressed against a fixed
// torsion basis of the counterparty's isogeny degree, trading two full
// Fp2 coordinates for three bounded scalars and a branch bit (spec.md
// §4.6 step 5 / §6).
type CompressedPublicKey struct {
	Variant Variant
	A       Fp2
	Branch  uint8 // 0: divided by a0 (phi_P's R1 coefficient); 1: divided by b0
	S1      *big.Int
	S2      *big.Int
	S3      *big.Int
}

// counterpartyTorsion returns the (e, l) of the torsion group a party's
// public key is compressed against: always the *other* party's degree,
// since that is the torsion the counterparty will need a basis of in
// order to complete the key exchange against a compressed key.
func counterpartyTorsion(variant Variant) (e, l int) {
	if variant == Alice {
		return eB, 3
	}
	return eA, 2
}

// counterpartyDomainParams is domainParams of the *other* party, the same
// pairing counterpartyTorsion expresses in (e,l) form; used to size the
// wire-format scalars to that party's own SecretByteLen.
func counterpartyDomainParams(variant Variant) *DomainParams {
	if variant == Alice {
		return &P751.B
	}
	return &P751.A
}

// recoverAffineY lifts an x-only coordinate to a full affine point by
// recovering one of its two y-coordinates; used only by compression,
// where the x-coordinates handed in are already known to lie on the
// curve (they are genuine public-key coordinates).
func recoverAffineY(curve *ProjectiveCurveParameters, x Fp2) affinePoint {
	rhs := curveRHS(curve, &x)
	var y Fp2
	fp2Sqrt(&y, &rhs)
	return affinePoint{x: x, y: y}
}

// fromWeierstrassX inverts toWeierstrassPoint's x = X + A/3 map.
func fromWeierstrassX(curve *ProjectiveCurveParameters, xWeier Fp2) Fp2 {
	var invC, a, three, threeInv, aOver3, x Fp2
	inv(&invC, &curve.C)
	mul(&a, &curve.A, &invC)
	three.A[0] = 3
	fpToMont(&three.A, &three.A)
	invBinGCD(&threeInv, &three)
	mul(&aOver3, &a, &threeInv)
	sub(&x, &xWeier, &aOver3)
	return x
}

// pairingOrder returns the public big.Int order l^e and its bit length,
// plus its little-endian byte encoding (millerLoop walks bits LSB-index
// via byte/bit indexing, so big.Int's big-endian Bytes() must be
// reversed).
func pairingOrder(e, l int) (order *big.Int, bitLen int, leBytes []byte) {
	order = new(big.Int).Exp(big.NewInt(int64(l)), big.NewInt(int64(e)), nil)
	bitLen = order.BitLen()
	be := order.Bytes()
	leBytes = make([]byte, len(be))
	for i, b := range be {
		leBytes[len(be)-1-i] = b
	}
	return
}

// compressPublicKey re-expresses (xP, xQ) on curve against a fixed basis
// (R1, R2) of the counterparty's l^e-torsion, recovers the raw
// Pohlig-Hellman coefficients (a0,b0,a1,b1), and normalizes them to
// spec.md §4.6 step 5's 3-scalar-plus-branch form.
func compressPublicKey(variant Variant, curve ProjectiveCurveParameters, xP, xQ Fp2) CompressedPublicKey {
	e, l := counterpartyTorsion(variant)
	r1, r2 := generateTorsionBasisAffine(&curve, e, l)
	phiP := recoverAffineY(&curve, xP)
	phiQ := recoverAffineY(&curve, xQ)

	order, bitLen, leBytes := pairingOrder(e, l)
	pSq := new(big.Int).Mul(p751Big, p751Big)
	finalExp := new(big.Int).Div(new(big.Int).Sub(pSq, big.NewInt(1)), order)

	zeta := tatePairing(&curve, r1, r2, leBytes, bitLen, finalExp)
	var zetaInv Fp2
	cyclotomicInv(&zetaInv, &zeta)

	eP1 := tatePairing(&curve, phiP, r1, leBytes, bitLen, finalExp)
	eP2 := tatePairing(&curve, phiP, r2, leBytes, bitLen, finalExp)
	eQ1 := tatePairing(&curve, phiQ, r1, leBytes, bitLen, finalExp)
	eQ2 := tatePairing(&curve, phiQ, r2, leBytes, bitLen, finalExp)

	// phi_P = a0*R1 + b0*R2, phi_Q = a1*R1 + b1*R2.
	// e(phi_P,R1) = e(a0*R1+b0*R2,R1) = e(R2,R1)^b0 = zeta^{-b0}
	// e(phi_P,R2) = e(a0*R1+b0*R2,R2) = e(R1,R2)^a0 = zeta^{a0}
	b0 := pohligHellman(zetaInv, eP1, l, e)
	a0 := pohligHellman(zeta, eP2, l, e)
	b1 := pohligHellman(zetaInv, eQ1, l, e)
	a1 := pohligHellman(zeta, eQ2, l, e)

	branch, s1, s2, s3 := normalizeCompression(order, a0, b0, a1, b1)
	return CompressedPublicKey{Variant: variant, A: curve.A, Branch: branch, S1: s1, S2: s2, S3: s3}
}

// normalizeCompression implements spec.md §4.6 step 5: divide the four
// raw DLP coefficients by whichever of a0 or b0 is invertible mod order,
// collapsing (a0,b0,a1,b1) to 3 scalars plus a branch bit. For a genuine
// kernel-spanning pair, a0 and b0 can't both be divisible by l (that
// would make phi_P's order a proper divisor of l^e), so one of the two
// branches always applies.
func normalizeCompression(order, a0, b0, a1, b1 *big.Int) (branch uint8, s1, s2, s3 *big.Int) {
	if inv := new(big.Int).ModInverse(a0, order); inv != nil {
		s1 = new(big.Int).Mod(new(big.Int).Mul(b0, inv), order)
		s2 = new(big.Int).Mod(new(big.Int).Mul(a1, inv), order)
		s3 = new(big.Int).Mod(new(big.Int).Mul(b1, inv), order)
		return 0, s1, s2, s3
	}
	inv := new(big.Int).ModInverse(b0, order)
	s1 = new(big.Int).Mod(new(big.Int).Mul(a0, inv), order)
	s2 = new(big.Int).Mod(new(big.Int).Mul(a1, inv), order)
	s3 = new(big.Int).Mod(new(big.Int).Mul(b1, inv), order)
	return 1, s1, s2, s3
}

// decompressPublicKey reconstructs the x-only (xP, xQ, xQmP) triple that
// the uncompressed key-exchange operations expect from a compressed key.
// Per the normalization's own invariant (see normalizeCompression), the
// reconstructed points are scalar multiples of the true phi(P)/phi(Q) by
// a unit mod l^e, not the original points themselves — but they generate
// the identical kernel subgroup, which is all the subsequent three-point
// ladder and isogeny walk depend on, so the derived shared secret is
// unaffected.
func decompressPublicKey(c CompressedPublicKey) (xP, xQ, xQmP Fp2) {
	curve := ProjectiveCurveParameters{A: c.A, C: P751.OneFp2}
	e, l := counterpartyTorsion(c.Variant)
	r1, r2 := generateTorsionBasisAffine(&curve, e, l)

	w := toWeierstrass(&curve)
	wr1 := toWeierstrassPoint(&curve, r1)
	wr2 := toWeierstrassPoint(&curve, r2)

	// branch 0: phi_P/a0 = R1 + s1*R2, phi_Q/a0 = s2*R1 + s3*R2.
	// branch 1: phi_P/b0 = s1*R1 + R2, phi_Q/b0 = s2*R1 + s3*R2.
	var wp affinePoint
	if c.Branch == 0 {
		wp = wAdd(wr1, wScalarMul(&w, wr2, c.S1))
	} else {
		wp = wAdd(wScalarMul(&w, wr1, c.S1), wr2)
	}
	wq := wAdd(wScalarMul(&w, wr1, c.S2), wScalarMul(&w, wr2, c.S3))
	wqmp := wAdd(wq, wNeg(wp))

	xP = fromWeierstrassX(&curve, wp.x)
	xQ = fromWeierstrassX(&curve, wq.x)
	xQmP = fromWeierstrassX(&curve, wqmp.x)
	return
}

// Encode packs a compressed public key into its wire form per spec.md
// §6: the codomain curve coefficient A (two Fp2 field elements), then the
// three scalars, each packed little-endian into the counterparty's own
// SecretByteLen octets (the same width the uncompressed-private-key
// ladder buffer uses for that side — 48 octets against Bob's torsion,
// 47 against Alice's). The branch bit is stowed in S3's top bit: S3 is
// always strictly below the l^e order, whose bit length is a handful of
// bits short of the full octet width, leaving room. Each scalar is written
// through github.com/icza/bitio in 64-bit chunks, least-significant word
// first, the last chunk shorter (384 or 376 bits in all).
func (c CompressedPublicKey) Encode() []byte {
	dp := counterpartyDomainParams(c.Variant)
	scalarBytes := dp.SecretByteLen

	var buf bytes.Buffer
	aBytes := make([]byte, 2*P751.Bytelen)
	convFp2ToBytes(aBytes, &c.A)
	buf.Write(aBytes)

	w := bitio.NewWriter(&buf)

	writeScalar := func(v *big.Int, width int) {
		remaining := width
		words := v.Bits()
		idx := 0
		for remaining > 0 {
			chunk := remaining
			if chunk > 64 {
				chunk = 64
			}
			var word uint64
			if idx < len(words) {
				word = uint64(words[idx])
			}
			w.WriteBits(word, uint8(chunk))
			remaining -= chunk
			idx++
		}
	}

	width := scalarBytes * 8
	writeScalar(c.S1, width)
	writeScalar(c.S2, width)

	s3 := new(big.Int).Set(c.S3)
	if c.Branch != 0 {
		s3.SetBit(s3, width-1, 1)
	}
	writeScalar(s3, width)

	w.Close()
	return buf.Bytes()
}

// DecodeCompressedPublicKey is the inverse of Encode.
func DecodeCompressedPublicKey(variant Variant, data []byte) CompressedPublicKey {
	dp := counterpartyDomainParams(variant)
	scalarBytes := dp.SecretByteLen
	width := scalarBytes * 8

	fpWidth := 2 * P751.Bytelen
	var a Fp2
	convBytesToFp2(&a, data[:fpWidth])

	r := bitio.NewReader(bytes.NewReader(data[fpWidth:]))

	readScalar := func() *big.Int {
		v := new(big.Int)
		remaining := width
		shift := uint(0)
		for remaining > 0 {
			n := remaining
			if n > 64 {
				n = 64
			}
			word, _ := r.ReadBits(uint8(n))
			chunk := new(big.Int).Lsh(new(big.Int).SetUint64(word), shift)
			v.Or(v, chunk)
			shift += uint(n)
			remaining -= n
		}
		return v
	}

	s1 := readScalar()
	s2 := readScalar()
	s3 := readScalar()

	order, _, _ := pairingOrder(counterpartyTorsion(variant))
	branch := uint8(0)
	if s3.Bit(width-1) == 1 {
		branch = 1
	}
	s3.SetBit(s3, width-1, 0)
	s3.Mod(s3, order)

	return CompressedPublicKey{Variant: variant, A: a, Branch: branch, S1: s1, S2: s2, S3: s3}
}
