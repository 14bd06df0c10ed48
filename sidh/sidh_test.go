package sidh

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestKeyExchangeSharedSecretsMatch(t *testing.T) {
	require := require.New(t)

	prvA, pubA, err := KeyGenA(rand.Reader)
	require.NoError(err)
	prvB, pubB, err := KeyGenB(rand.Reader)
	require.NoError(err)

	secretA, err := Agree(prvA, pubB)
	require.NoError(err)
	secretB, err := Agree(prvB, pubA)
	require.NoError(err)

	require.NoError(VerifyAgreement(secretA, secretB), "both parties must derive the same shared secret")
	require.Len(secretA, P751.SharedSecretSize)
}

func TestVerifyAgreementDetectsMismatch(t *testing.T) {
	require := require.New(t)
	require.ErrorIs(VerifyAgreement([]byte{1, 2, 3}, []byte{1, 2, 4}), ErrSharedKeyMismatch)
}

// TestConcurrentKeyGeneration exercises keypair generation for both
// parties concurrently via errgroup, the way a TLS-style handshake would
// overlap each side's independent key generation rather than serialize it.
func TestConcurrentKeyGeneration(t *testing.T) {
	require := require.New(t)

	var prvA *PrivateKey
	var pubA *PublicKey
	var prvB *PrivateKey
	var pubB *PublicKey

	var g errgroup.Group
	g.Go(func() (err error) {
		prvA, pubA, err = KeyGenA(rand.Reader)
		return err
	})
	g.Go(func() (err error) {
		prvB, pubB, err = KeyGenB(rand.Reader)
		return err
	})
	require.NoError(g.Wait())

	secretA, err := Agree(prvA, pubB)
	require.NoError(err)
	secretB, err := Agree(prvB, pubA)
	require.NoError(err)
	require.True(bytes.Equal(secretA, secretB))
}

func TestAgreeRejectsSameVariant(t *testing.T) {
	require := require.New(t)

	prvA1, _, err := KeyGenA(rand.Reader)
	require.NoError(err)
	_, pubA2, err := KeyGenA(rand.Reader)
	require.NoError(err)

	_, err = Agree(prvA1, pubA2)
	require.ErrorIs(err, ErrIncompatibleVariants)
}

func TestPublicKeyExportImportRoundTrip(t *testing.T) {
	require := require.New(t)

	_, pubA, err := KeyGenA(rand.Reader)
	require.NoError(err)

	encoded := pubA.Export()
	require.Len(encoded, P751.PublicKeySize)

	var decoded PublicKey
	require.NoError(decoded.Import(Alice, encoded))
	require.True(decoded.AffineXP.equal(pubA.AffineXP))
	require.True(decoded.AffineXQ.equal(pubA.AffineXQ))
	require.True(decoded.AffineXQmP.equal(pubA.AffineXQmP))
}

// TestPublicKeyExportImportDiff uses go-cmp instead of field-by-field
// assertions, so a mismatch prints exactly which coordinate diverged
// rather than just "not equal".
func TestPublicKeyExportImportDiff(t *testing.T) {
	require := require.New(t)

	_, pubB, err := KeyGenB(rand.Reader)
	require.NoError(err)

	encoded := pubB.Export()
	var decoded PublicKey
	require.NoError(decoded.Import(Bob, encoded))

	if diff := cmp.Diff(*pubB, decoded, cmp.Comparer(func(a, b Fp2) bool { return a.equal(b) })); diff != "" {
		t.Fatalf("decoded public key differs from original (-want +got):\n%s", diff)
	}
}

// TestPrivateKeyWireSizeIsUniform48 pins spec.md §6's oA_bytes=oB_bytes=48
// external private-key encoding, which is wider than Alice's own ladder
// buffer (47 bytes) and equal to Bob's (48 bytes).
func TestPrivateKeyWireSizeIsUniform48(t *testing.T) {
	require := require.New(t)

	prvA, _, err := KeyGenA(rand.Reader)
	require.NoError(err)
	require.Len(prvA.Scalar, 47, "Alice's ladder buffer must hold exactly SecretBitLen bits, no more")
	require.Equal(48, prvA.Size())
	require.Len(prvA.Export(), 48)

	prvB, _, err := KeyGenB(rand.Reader)
	require.NoError(err)
	require.Len(prvB.Scalar, 48, "Bob's ladder buffer must hold exactly SecretBitLen bits, no more")
	require.Equal(48, prvB.Size())
	require.Len(prvB.Export(), 48)
}

func TestPrivateKeyExportImportRoundTrip(t *testing.T) {
	require := require.New(t)

	prvA, _, err := KeyGenA(rand.Reader)
	require.NoError(err)

	encoded := prvA.Export()
	require.Len(encoded, 48)
	require.True(bytes.Equal(encoded[len(prvA.Scalar):], make([]byte, 48-len(prvA.Scalar))), "bytes above SecretByteLen must be zero padding")

	var decoded PrivateKey
	require.NoError(decoded.Import(Alice, encoded))
	require.Equal(prvA.Scalar, decoded.Scalar)
}

func TestPrivateKeyZeroize(t *testing.T) {
	require := require.New(t)

	prv, _, err := KeyGenA(rand.Reader)
	require.NoError(err)

	allZero := make([]byte, len(prv.Scalar))
	require.NotEqual(allZero, prv.Scalar, "freshly generated scalar should not already be all zero")

	prv.Zeroize()
	require.Equal(allZero, prv.Scalar)
}
