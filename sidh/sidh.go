// Package sidh implements the SIDH key-exchange core over GF(p751):
// key generation, shared-secret agreement, and public-key
// compression/decompression for both the Alice (2^372) and Bob (3^239)
// isogeny classes.
//
// This package implements the key-exchange primitive only (spec.md
// Non-goals): it deliberately does not implement the Fujisaki-Okamoto
// transform, encapsulation/decapsulation, or any authenticated KEM
// framing the teacher's sike.go built on top of this primitive — see
// DESIGN.md for why that layer was dropped rather than adapted.
package sidh

import (
	"bytes"
	"io"

	"github.com/rs/zerolog/log"
)

// KeyGenA generates an Alice (2^eA-isogeny) keypair.
func KeyGenA(rand io.Reader) (*PrivateKey, *PublicKey, error) {
	prv := NewPrivateKey(Alice)
	if err := prv.Generate(rand); err != nil {
		log.Error().Err(err).Str("variant", "alice").Msg("key generation failed")
		return nil, nil, err
	}
	pub := prv.GeneratePublicKey()
	log.Debug().Str("variant", "alice").Msg("generated keypair")
	return prv, pub, nil
}

// KeyGenB generates a Bob (3^eB-isogeny) keypair.
func KeyGenB(rand io.Reader) (*PrivateKey, *PublicKey, error) {
	prv := NewPrivateKey(Bob)
	if err := prv.Generate(rand); err != nil {
		log.Error().Err(err).Str("variant", "bob").Msg("key generation failed")
		return nil, nil, err
	}
	pub := prv.GeneratePublicKey()
	log.Debug().Str("variant", "bob").Msg("generated keypair")
	return prv, pub, nil
}

// Agree computes the shared secret between prv and the counterparty's
// public key pub. prv and pub must be of opposite variants.
func Agree(prv *PrivateKey, pub *PublicKey) ([]byte, error) {
	secret, err := DeriveSecret(prv, pub)
	if err != nil {
		log.Error().Err(err).Msg("shared secret derivation failed")
		return nil, err
	}
	if len(secret) != P751.SharedSecretSize {
		// DeriveSecret's own byte-packing guarantees this length; a
		// mismatch here means an invariant elsewhere in the package
		// broke, not a caller error.
		log.Error().Msg("derived secret has unexpected length")
		return nil, ErrGeneric
	}
	log.Debug().Str("variant", prv.Variant.String()).Msg("derived shared secret")
	return secret, nil
}

// VerifyAgreement reports ErrSharedKeyMismatch if the two sides of a
// completed handshake disagree, the check a protocol built on top of this
// package runs once both Agree calls have returned.
func VerifyAgreement(secretA, secretB []byte) error {
	if !bytes.Equal(secretA, secretB) {
		return ErrSharedKeyMismatch
	}
	return nil
}

// PKCompress compresses pub for transmission, expressing it against a
// fixed basis of the counterparty's torsion group (spec.md §4.6).
func PKCompress(pub *PublicKey) CompressedPublicKey {
	curve := recoverA(&pub.AffineXP, &pub.AffineXQ, &pub.AffineXQmP)
	compressed := compressPublicKey(pub.Variant, curve, pub.AffineXP, pub.AffineXQ)
	log.Debug().Str("variant", pub.Variant.String()).Msg("compressed public key")
	return compressed
}

// PKDecompress reconstructs an uncompressed PublicKey from its
// compressed form.
func PKDecompress(c CompressedPublicKey) *PublicKey {
	xP, xQ, xQmP := decompressPublicKey(c)
	return &PublicKey{Variant: c.Variant, AffineXP: xP, AffineXQ: xQ, AffineXQmP: xQmP}
}

// AgreeCompressed is Agree, taking the counterparty's public key in
// compressed form (the decoded CompressedPublicKey, not its Encode bytes).
func AgreeCompressed(prv *PrivateKey, compressed CompressedPublicKey) ([]byte, error) {
	if prv.Variant == compressed.Variant {
		return nil, ErrIncompatibleVariants
	}
	pub := PKDecompress(compressed)
	return Agree(prv, pub)
}
