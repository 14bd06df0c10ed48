package sidh

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPublicKeyCompressionPreservesAgreement checks the property
// compression actually needs to preserve. Spec.md §4.6 step 5's
// normalization reconstructs a unit-scalar multiple of the original
// torsion points, not the points themselves, so decompressed
// xP/xQ/xQmP are not expected to match the original public key's
// coordinates bit-for-bit — only the resulting shared secret is.
func TestPublicKeyCompressionPreservesAgreement(t *testing.T) {
	require := require.New(t)

	prvB, _, err := KeyGenB(rand.Reader)
	require.NoError(err)
	_, pubA, err := KeyGenA(rand.Reader)
	require.NoError(err)

	plainSecret, err := Agree(prvB, pubA)
	require.NoError(err)

	compressed := PKCompress(pubA)
	require.Equal(Alice, compressed.Variant)

	compressedSecret, err := AgreeCompressed(prvB, compressed)
	require.NoError(err)
	require.Equal(plainSecret, compressedSecret)
}

func TestCompressedPublicKeyEncodeDecode(t *testing.T) {
	require := require.New(t)

	_, pubB, err := KeyGenB(rand.Reader)
	require.NoError(err)

	compressed := PKCompress(pubB)
	wire := compressed.Encode()
	require.NotEmpty(wire)

	decoded := DecodeCompressedPublicKey(Bob, wire)
	require.True(decoded.A.equal(compressed.A))
	require.Equal(compressed.Branch, decoded.Branch)
	require.Zero(decoded.S1.Cmp(compressed.S1))
	require.Zero(decoded.S2.Cmp(compressed.S2))
	require.Zero(decoded.S3.Cmp(compressed.S3))
}

// TestCompressedPublicKeyEncodeDecodeBothVariants exercises both
// counterparty-torsion widths (Alice's key is packed against Bob's
// 48-octet-scalar torsion; Bob's against Alice's 47-octet one).
func TestCompressedPublicKeyEncodeDecodeBothVariants(t *testing.T) {
	require := require.New(t)

	_, pubA, err := KeyGenA(rand.Reader)
	require.NoError(err)
	compressedA := PKCompress(pubA)
	decodedA := DecodeCompressedPublicKey(Alice, compressedA.Encode())
	require.Zero(decodedA.S1.Cmp(compressedA.S1))

	_, pubB, err := KeyGenB(rand.Reader)
	require.NoError(err)
	compressedB := PKCompress(pubB)
	decodedB := DecodeCompressedPublicKey(Bob, compressedB.Encode())
	require.Zero(decodedB.S1.Cmp(compressedB.S1))
}

// TestAgreeCompressedMatchesUncompressed exercises the other direction
// from TestPublicKeyCompressionPreservesAgreement (Bob's key compressed,
// Alice agreeing against it), covering both counterparty-torsion widths.
func TestAgreeCompressedMatchesUncompressed(t *testing.T) {
	require := require.New(t)

	prvA, _, err := KeyGenA(rand.Reader)
	require.NoError(err)
	_, pubB, err := KeyGenB(rand.Reader)
	require.NoError(err)

	plainSecret, err := Agree(prvA, pubB)
	require.NoError(err)

	compressedB := PKCompress(pubB)
	compressedSecret, err := AgreeCompressed(prvA, compressedB)
	require.NoError(err)

	require.Equal(plainSecret, compressedSecret)
}
