package sidh

// zeroize clears a field element's limbs, grounded on the teacher's own
// zeroize(fp *Fp2) in sike.go (two separate loops, so the compiler lowers
// each to a runtime.memclr rather than a byte-at-a-time store).
func zeroize(fp *Fp2) {
	for i := range fp.A {
		fp.A[i] = 0
	}
	for i := range fp.B {
		fp.B[i] = 0
	}
}

// Zeroize clears prv's scalar, rendering the private key unusable. Callers
// that generate an ephemeral PrivateKey for a single Agree call should
// defer this immediately after GeneratePublicKey.
func (prv *PrivateKey) Zeroize() {
	for i := range prv.Scalar {
		prv.Scalar[i] = 0
	}
}
