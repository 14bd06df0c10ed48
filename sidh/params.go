package sidh

import "math/big"

// Parameter set p751 (eA=372, eB=239). Generalizes the teacher's
// `prv.params.A.*`/`pub.params.B.*` field-access pattern seen throughout
// sike.go (traverseTreePublicKeyA etc. dereference exactly this shape)
// into an explicit DomainParams/Params pair; only the call sites, not the
// teacher's own declarations, survived retrieval, so the types are
// reconstructed here.
//
// [EXPANSION] Variant replaces the teacher's `KeyVariant`/`AliceOrBob int`
// pattern with a small closed enum, per spec.md §9's design note.

// Variant selects which of the two parties' isogeny degree a key or
// operation belongs to.
type Variant uint8

const (
	Alice Variant = iota
	Bob
)

func (v Variant) String() string {
	if v == Alice {
		return "alice"
	}
	return "bob"
}

// eA, eB are p751's isogeny-tree depths: p751 = 2^eA * 3^eB - 1.
const (
	eA = 372
	eB = 239
)

// DomainParams bundles one party's torsion basis and secret-key shape.
type DomainParams struct {
	AffineP Fp2 // x(P)
	AffineQ Fp2 // x(Q)
	AffineR Fp2 // x(Q-P)

	IsogenyStrategy []int
	SecretBitLen    int
	SecretByteLen   int
}

// Params bundles both parties' domain parameters plus shared constants.
type Params struct {
	A, B             DomainParams
	OneFp2           Fp2
	Bytelen          int
	PublicKeySize    int
	SharedSecretSize int
}

// bytelen is the number of bytes needed to hold an Fp751 element.
const bytelen = (751 + 7) / 8

// P751 is the module's single supported parameter bundle. Its torsion
// basis constants are bootstrapped at init() time by generateTorsionBasis (see
// basis.go and params_p751.go), rather than transcribed from an
// externally sourced byte table, per the Open Question resolution
// recorded in DESIGN.md.
var P751 Params

func init() {
	var one Fp2
	one.A[0] = 1
	fpToMont(&one.A, &one.A)

	P751 = Params{
		OneFp2:  one,
		Bytelen: bytelen,
		A: DomainParams{
			IsogenyStrategy: strategyA,
			SecretBitLen:    eA - 2,
			SecretByteLen:   (eA - 2 + 7) / 8,
		},
		B: DomainParams{
			IsogenyStrategy: strategyB,
			SecretBitLen:    bobSecretBitLen,
			SecretByteLen:   (bobSecretBitLen + 7) / 8,
		},
	}
	P751.SharedSecretSize = 2 * bytelen
	P751.PublicKeySize = 3 * P751.SharedSecretSize
}

// bobSecretBitLen is the bit length of 3^eB (floor(log2(3^eB))+1 = 379),
// the key-space bit length for Bob's
// secret scalar (spec.md §3).
var bobSecretBitLen = new(big.Int).Exp(big.NewInt(3), big.NewInt(eB), nil).BitLen()
