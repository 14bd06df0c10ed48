package sidh

import "io"

// Key generation and shared-secret derivation (spec.md §4.4-§4.5).
// Grounded on the teacher's publicKeyGenA/B, deriveSecretA/B and the
// traverseTreePublicKeyA/B, traverseTreeSharedKeyA/B tree walks in
// sike.go, generalized from the teacher's p503 (eA=372 happens to match
// this module's eA, but the teacher's own e2/e3 differ) to this module's
// Variant-parameterized eA/eB and to this module's own isogeny4/isogeny3
// and xDBLe/xTPLe/ladder3Pt naming (curve.go).

// PrivateKey is a scalar in one party's key space, plus which variant
// (Alice's 2^eA or Bob's 3^eB subgroup) it belongs to.
type PrivateKey struct {
	Variant Variant
	Scalar  []byte
}

// PublicKey is the three x-only coordinates (phi(P), phi(Q), phi(Q-P))
// that fully determine the isogenous codomain curve via recoverA.
type PublicKey struct {
	Variant    Variant
	AffineXP   Fp2
	AffineXQ   Fp2
	AffineXQmP Fp2
}

func domainParams(v Variant) *DomainParams {
	if v == Alice {
		return &P751.A
	}
	return &P751.B
}

// NewPrivateKey allocates a private key's scalar buffer at the correct
// size for its variant.
func NewPrivateKey(v Variant) *PrivateKey {
	dp := domainParams(v)
	return &PrivateKey{Variant: v, Scalar: make([]byte, dp.SecretByteLen)}
}

// NewPublicKey allocates an empty public key of the given variant.
func NewPublicKey(v Variant) *PublicKey {
	return &PublicKey{Variant: v}
}

// Generate fills prv.Scalar with a random value from the party's key
// space: little-endian, SecretBitLen bits, with the top bit forced to 1
// so every generated scalar uses its full intended length.
func (prv *PrivateKey) Generate(rand io.Reader) error {
	dp := domainParams(prv.Variant)
	if _, err := io.ReadFull(rand, prv.Scalar); err != nil {
		return err
	}
	top := dp.SecretBitLen % 8
	if top == 0 {
		top = 8
	}
	prv.Scalar[len(prv.Scalar)-1] &= (1 << uint(top)) - 1
	prv.Scalar[len(prv.Scalar)-1] |= 1 << uint(top-1)
	return nil
}

// privateKeyWireSize is the uniform external private-key encoding length
// spec.md §6 fixes for both variants (oA_bytes = oB_bytes = 48), which is
// one byte wider than Alice's own ladder buffer (SecretByteLen=47): the
// ladder only ever reads SecretBitLen bits, so the wire padding lives
// here, in Export/Import, rather than in the scalar buffer Generate and
// ladder3Pt actually operate on.
const privateKeyWireSize = 48

// Size returns the private key's external encoded length in bytes.
func (prv *PrivateKey) Size() int { return privateKeyWireSize }

// Export serializes the private key's scalar into the spec's uniform
// 48-octet little-endian encoding, zero-padding above SecretByteLen.
func (prv *PrivateKey) Export() []byte {
	out := make([]byte, privateKeyWireSize)
	copy(out, prv.Scalar)
	return out
}

// Import loads a private key's scalar from the spec's uniform 48-octet
// encoding, replacing the buffer currently held. Bytes above the
// variant's own SecretByteLen must be zero padding and are discarded, not
// carried into the ladder buffer. Doesn't validate that the scalar lies
// in-range for its variant.
func (prv *PrivateKey) Import(v Variant, input []byte) error {
	dp := domainParams(v)
	if len(input) != privateKeyWireSize {
		return ErrWrongKeySize
	}
	prv.Variant = v
	prv.Scalar = make([]byte, dp.SecretByteLen)
	copy(prv.Scalar, input[:dp.SecretByteLen])
	return nil
}

// Size returns the public key's encoded length in bytes.
func (pub *PublicKey) Size() int { return P751.PublicKeySize }

// Export serializes the public key as (xP || xQ || xQmP), each field
// element packed little-endian over Bytelen bytes.
func (pub *PublicKey) Export() []byte {
	out := make([]byte, P751.PublicKeySize)
	ssSz := P751.SharedSecretSize
	convFp2ToBytes(out[0:ssSz], &pub.AffineXP)
	convFp2ToBytes(out[ssSz:2*ssSz], &pub.AffineXQ)
	convFp2ToBytes(out[2*ssSz:3*ssSz], &pub.AffineXQmP)
	return out
}

// Import deserializes a public key previously produced by Export and
// checks that the decoded coordinates actually lie on some curve (rather
// than being arbitrary bytes that would later make DeriveSecret silently
// compute garbage).
func (pub *PublicKey) Import(v Variant, input []byte) error {
	if len(input) != P751.PublicKeySize {
		return ErrWrongKeySize
	}
	pub.Variant = v
	ssSz := P751.SharedSecretSize
	convBytesToFp2(&pub.AffineXP, input[0:ssSz])
	convBytesToFp2(&pub.AffineXQ, input[ssSz:2*ssSz])
	convBytesToFp2(&pub.AffineXQmP, input[2*ssSz:3*ssSz])
	return pub.Validate()
}

// Validate reports whether pub's three x-coordinates are each the
// x-coordinate of an actual point on the curve recoverA derives from
// them, the same on-curve check findPointOfOrder's liftCandidate performs
// during basis generation, applied here to untrusted input instead of a
// candidate the basis search picked itself.
func (pub *PublicKey) Validate() error {
	curve := recoverA(&pub.AffineXP, &pub.AffineXQ, &pub.AffineXQmP)
	for _, x := range [...]Fp2{pub.AffineXP, pub.AffineXQ, pub.AffineXQmP} {
		rhs := curveRHS(&curve, &x)
		var root, sq Fp2
		fp2Sqrt(&root, &rhs)
		sqr(&sq, &root)
		if !sq.equal(rhs) {
			return ErrPublicKeyValidation
		}
	}
	return nil
}

// convFp2ToBytes writes fp2 (Montgomery form) little-endian into output,
// which must be at least 2*Bytelen bytes.
func convFp2ToBytes(output []byte, fp2 *Fp2) {
	if len(output) < 2*P751.Bytelen {
		panic("sidh: output byte slice too short")
	}
	var a Fp2
	fpFromMont(&a.A, &fp2.A)
	fpFromMont(&a.B, &fp2.B)
	for i := 0; i < P751.Bytelen; i++ {
		j := i / 8
		k := uint(i % 8)
		output[i] = byte(a.A[j] >> (8 * k))
		output[i+P751.Bytelen] = byte(a.B[j] >> (8 * k))
	}
}

// convBytesToFp2 is the inverse of convFp2ToBytes.
func convBytesToFp2(fp2 *Fp2, input []byte) {
	if len(input) < 2*P751.Bytelen {
		panic("sidh: input byte slice too short")
	}
	var plain Fp2
	for i := 0; i < P751.Bytelen; i++ {
		j := i / 8
		k := uint(i % 8)
		plain.A[j] |= uint64(input[i]) << (8 * k)
		plain.B[j] |= uint64(input[i+P751.Bytelen]) << (8 * k)
	}
	fpToMont(&fp2.A, &plain.A)
	fpToMont(&fp2.B, &plain.B)
}

// traverseTreePublicKeyA walks the 4-isogeny tree rooted at xR, pushing
// every intermediate kernel point through the resulting chain of
// 4-isogenies, and carries the counterparty's basis points (phiP, phiQ,
// phiR) along for the ride — the standard optimal-strategy stack walk
// (spec.md §4.5), grounded on the teacher's traverseTreePublicKeyA.
func traverseTreePublicKeyA(curve *ProjectiveCurveParameters, xR, phiP, phiQ, phiR *ProjectivePoint, strategy []int) {
	points := make([]ProjectivePoint, 0, 8)
	indices := make([]int, 0, 8)
	var i, sidx int

	cparam := *curve
	phi := newIsogeny4()
	stratSz := len(strategy)

	for j := 1; j <= stratSz; j++ {
		for i <= stratSz-j {
			points = append(points, *xR)
			indices = append(indices, i)

			k := strategy[sidx]
			sidx++
			*xR = xDBLe(xR, &cparam, 2*k)
			i += k
		}

		cparam = phi.generateCurve(xR)
		for k := range points {
			points[k] = phi.evaluatePoint(&points[k])
		}
		*phiP = phi.evaluatePoint(phiP)
		*phiQ = phi.evaluatePoint(phiQ)
		*phiR = phi.evaluatePoint(phiR)

		*xR, points = points[len(points)-1], points[:len(points)-1]
		i, indices = indices[len(indices)-1], indices[:len(indices)-1]
	}
}

// traverseTreeSharedKeyA is traverseTreePublicKeyA without the
// counterparty basis points, used once the shared j-invariant is all
// that remains to be computed.
func traverseTreeSharedKeyA(curve *ProjectiveCurveParameters, xR *ProjectivePoint, strategy []int) {
	points := make([]ProjectivePoint, 0, 8)
	indices := make([]int, 0, 8)
	var i, sidx int

	cparam := *curve
	phi := newIsogeny4()
	stratSz := len(strategy)

	for j := 1; j <= stratSz; j++ {
		for i <= stratSz-j {
			points = append(points, *xR)
			indices = append(indices, i)

			k := strategy[sidx]
			sidx++
			*xR = xDBLe(xR, &cparam, 2*k)
			i += k
		}

		cparam = phi.generateCurve(xR)
		for k := range points {
			points[k] = phi.evaluatePoint(&points[k])
		}

		*xR, points = points[len(points)-1], points[:len(points)-1]
		i, indices = indices[len(indices)-1], indices[:len(indices)-1]
	}
}

// traverseTreePublicKeyB is traverseTreePublicKeyA's 3-isogeny analogue.
func traverseTreePublicKeyB(curve *ProjectiveCurveParameters, xR, phiP, phiQ, phiR *ProjectivePoint, strategy []int) {
	points := make([]ProjectivePoint, 0, 8)
	indices := make([]int, 0, 8)
	var i, sidx int

	cparam := *curve
	phi := newIsogeny3()
	stratSz := len(strategy)

	for j := 1; j <= stratSz; j++ {
		for i <= stratSz-j {
			points = append(points, *xR)
			indices = append(indices, i)

			k := strategy[sidx]
			sidx++
			*xR = xTPLe(xR, &cparam, k)
			i += k
		}

		cparam = phi.generateCurve(xR)
		for k := range points {
			points[k] = phi.evaluatePoint(&points[k])
		}
		*phiP = phi.evaluatePoint(phiP)
		*phiQ = phi.evaluatePoint(phiQ)
		*phiR = phi.evaluatePoint(phiR)

		*xR, points = points[len(points)-1], points[:len(points)-1]
		i, indices = indices[len(indices)-1], indices[:len(indices)-1]
	}
}

// traverseTreeSharedKeyB is traverseTreeSharedKeyA's 3-isogeny analogue.
func traverseTreeSharedKeyB(curve *ProjectiveCurveParameters, xR *ProjectivePoint, strategy []int) {
	points := make([]ProjectivePoint, 0, 8)
	indices := make([]int, 0, 8)
	var i, sidx int

	cparam := *curve
	phi := newIsogeny3()
	stratSz := len(strategy)

	for j := 1; j <= stratSz; j++ {
		for i <= stratSz-j {
			points = append(points, *xR)
			indices = append(indices, i)

			k := strategy[sidx]
			sidx++
			*xR = xTPLe(xR, &cparam, k)
			i += k
		}

		cparam = phi.generateCurve(xR)
		for k := range points {
			points[k] = phi.evaluatePoint(&points[k])
		}

		*xR, points = points[len(points)-1], points[:len(points)-1]
		i, indices = indices[len(indices)-1], indices[:len(indices)-1]
	}
}

// publicKeyGenA computes Alice's public key: the counterparty's (Bob's)
// basis points pushed through Alice's secret 2^eA-isogeny.
func publicKeyGenA(prv *PrivateKey) *PublicKey {
	var xPA, xQA, xRA, xR ProjectivePoint
	var xPB, xQB, xRB ProjectivePoint
	var invZP, invZQ, invZR Fp2
	var tmp ProjectiveCurveParameters

	one := P751.OneFp2
	xPA = ProjectivePoint{X: P751.A.AffineP, Z: one}
	xQA = ProjectivePoint{X: P751.A.AffineQ, Z: one}
	xRA = ProjectivePoint{X: P751.A.AffineR, Z: one}

	xPB = ProjectivePoint{X: P751.B.AffineP, Z: one}
	xQB = ProjectivePoint{X: P751.B.AffineQ, Z: one}
	xRB = ProjectivePoint{X: P751.B.AffineR, Z: one}

	tmp.C = one
	xR = ladder3Pt(&tmp, &xPA.X, &xQA.X, &xRA.X, P751.A.SecretBitLen, prv.Scalar)

	tmp.C = one
	zeroize(&tmp.A)
	traverseTreePublicKeyA(&tmp, &xR, &xPB, &xQB, &xRB, P751.A.IsogenyStrategy)

	phi := newIsogeny4()
	phi.generateCurve(&xR)
	xPA = phi.evaluatePoint(&xPB)
	xQA = phi.evaluatePoint(&xQB)
	xRA = phi.evaluatePoint(&xRB)
	fp2Batch3Inv(&xPA.Z, &xQA.Z, &xRA.Z, &invZP, &invZQ, &invZR)

	pub := NewPublicKey(Alice)
	mul(&pub.AffineXP, &xPA.X, &invZP)
	mul(&pub.AffineXQ, &xQA.X, &invZQ)
	mul(&pub.AffineXQmP, &xRA.X, &invZR)
	return pub
}

// publicKeyGenB is publicKeyGenA's 3-isogeny analogue.
func publicKeyGenB(prv *PrivateKey) *PublicKey {
	var xPB, xQB, xRB, xR ProjectivePoint
	var xPA, xQA, xRA ProjectivePoint
	var invZP, invZQ, invZR Fp2
	var tmp ProjectiveCurveParameters

	one := P751.OneFp2
	xPB = ProjectivePoint{X: P751.B.AffineP, Z: one}
	xQB = ProjectivePoint{X: P751.B.AffineQ, Z: one}
	xRB = ProjectivePoint{X: P751.B.AffineR, Z: one}

	xPA = ProjectivePoint{X: P751.A.AffineP, Z: one}
	xQA = ProjectivePoint{X: P751.A.AffineQ, Z: one}
	xRA = ProjectivePoint{X: P751.A.AffineR, Z: one}

	tmp.C = one
	xR = ladder3Pt(&tmp, &xPB.X, &xQB.X, &xRB.X, P751.B.SecretBitLen, prv.Scalar)

	tmp.C = one
	zeroize(&tmp.A)
	traverseTreePublicKeyB(&tmp, &xR, &xPA, &xQA, &xRA, P751.B.IsogenyStrategy)

	phi := newIsogeny3()
	phi.generateCurve(&xR)
	xPB = phi.evaluatePoint(&xPA)
	xQB = phi.evaluatePoint(&xQA)
	xRB = phi.evaluatePoint(&xRA)
	fp2Batch3Inv(&xPB.Z, &xQB.Z, &xRB.Z, &invZP, &invZQ, &invZR)

	pub := NewPublicKey(Bob)
	mul(&pub.AffineXP, &xPB.X, &invZP)
	mul(&pub.AffineXQ, &xQB.X, &invZQ)
	mul(&pub.AffineXQmP, &xRB.X, &invZR)
	return pub
}

// GeneratePublicKey derives the public key matching prv.
func (prv *PrivateKey) GeneratePublicKey() *PublicKey {
	if prv.Variant == Alice {
		return publicKeyGenA(prv)
	}
	return publicKeyGenB(prv)
}

// deriveSecretA walks Alice's private isogeny over Bob's public key and
// returns the shared j-invariant, encoded as bytes.
func deriveSecretA(prv *PrivateKey, pub *PublicKey) []byte {
	var cparam ProjectiveCurveParameters
	var xP, xQ, xQmP, xR ProjectivePoint

	cparam = recoverA(&pub.AffineXP, &pub.AffineXQ, &pub.AffineXQmP)

	xP = ProjectivePoint{X: pub.AffineXP, Z: P751.OneFp2}
	xQ = ProjectivePoint{X: pub.AffineXQ, Z: P751.OneFp2}
	xQmP = ProjectivePoint{X: pub.AffineXQmP, Z: P751.OneFp2}
	xR = ladder3Pt(&cparam, &xP.X, &xQ.X, &xQmP.X, P751.A.SecretBitLen, prv.Scalar)

	traverseTreeSharedKeyA(&cparam, &xR, P751.A.IsogenyStrategy)

	phi := newIsogeny4()
	c := phi.generateCurve(&xR)
	jInv := jInvariant(&c)

	secret := make([]byte, P751.SharedSecretSize)
	convFp2ToBytes(secret, &jInv)
	return secret
}

// deriveSecretB is deriveSecretA's 3-isogeny analogue.
func deriveSecretB(prv *PrivateKey, pub *PublicKey) []byte {
	var cparam ProjectiveCurveParameters
	var xP, xQ, xQmP, xR ProjectivePoint

	cparam = recoverA(&pub.AffineXP, &pub.AffineXQ, &pub.AffineXQmP)

	xP = ProjectivePoint{X: pub.AffineXP, Z: P751.OneFp2}
	xQ = ProjectivePoint{X: pub.AffineXQ, Z: P751.OneFp2}
	xQmP = ProjectivePoint{X: pub.AffineXQmP, Z: P751.OneFp2}
	xR = ladder3Pt(&cparam, &xP.X, &xQ.X, &xQmP.X, P751.B.SecretBitLen, prv.Scalar)

	traverseTreeSharedKeyB(&cparam, &xR, P751.B.IsogenyStrategy)

	phi := newIsogeny3()
	c := phi.generateCurve(&xR)
	jInv := jInvariant(&c)

	secret := make([]byte, P751.SharedSecretSize)
	convFp2ToBytes(secret, &jInv)
	return secret
}

// DeriveSecret computes the shared j-invariant between prv and the
// counterparty's public key pub. prv and pub must belong to opposite
// variants (Alice/Bob).
func DeriveSecret(prv *PrivateKey, pub *PublicKey) ([]byte, error) {
	if prv == nil || pub == nil {
		return nil, ErrInvalidArgument
	}
	if prv.Variant == pub.Variant {
		return nil, ErrIncompatibleVariants
	}
	if prv.Variant == Alice {
		return deriveSecretA(prv, pub), nil
	}
	return deriveSecretB(prv, pub), nil
}
