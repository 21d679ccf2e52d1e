// Package schnorr provides the key material and signing primitives for
// P2PK spending conditions: parity-agnostic x-only verification keys and
// secret-scalar signing keys producing BIP-340 Schnorr signatures.
//
// The signing convention of this package is local to the P2PK engine:
// the message bytes are hashed with SHA-256 and the signature is produced
// over the 32-byte digest. Other spending-condition kinds use different,
// tagged-hash conventions and must not share this code.
package schnorr

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	bip340 "github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

const (
	// VerifyingKeySize is the size, in bytes, of an x-only public key.
	VerifyingKeySize = 32
	// CompressedKeySize is the size, in bytes, of a parity-prefixed
	// compressed public key.
	CompressedKeySize = 33
	// SigningKeySize is the size, in bytes, of a secret scalar.
	SigningKeySize = 32
	// SignatureSize is the size, in bytes, of a Schnorr signature.
	SignatureSize = 64
)

var (
	ErrInvalidVerifyingKey = errors.New("schnorr: invalid verifying key")
	ErrInvalidSigningKey   = errors.New("schnorr: invalid signing key")
	ErrInvalidSignature    = errors.New("schnorr: invalid signature")
)

// VerifyingKey is a parity-agnostic x-only secp256k1 public key.
// Verification does not depend on which of the two curve points with the
// key's x-coordinate a signer intended.
type VerifyingKey struct {
	key *btcec.PublicKey
}

// ParseVerifyingKey parses a verifying key from either its 32-byte x-only
// encoding or its 33-byte compressed encoding. The leading parity byte of
// a compressed key is dropped; it does not survive the conversion.
func ParseVerifyingKey(b []byte) (VerifyingKey, error) {
	switch len(b) {
	case CompressedKeySize:
		b = b[1:]
	case VerifyingKeySize:
	default:
		return VerifyingKey{}, errors.WithMessagef(ErrInvalidVerifyingKey, "bad length %d", len(b))
	}

	key, err := bip340.ParsePubKey(b)
	if err != nil {
		return VerifyingKey{}, errors.WithMessage(ErrInvalidVerifyingKey, err.Error())
	}
	return VerifyingKey{key: key}, nil
}

// ParseVerifyingKeyHex parses a verifying key from the hex form of either
// accepted encoding.
func ParseVerifyingKeyHex(s string) (VerifyingKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return VerifyingKey{}, errors.WithMessage(ErrInvalidVerifyingKey, err.Error())
	}
	return ParseVerifyingKey(b)
}

// Serialize returns the 32-byte x-only encoding of the key.
func (k VerifyingKey) Serialize() []byte {
	return bip340.SerializePubKey(k.key)
}

// SerializeCompressed returns the key in the standard 33-byte compressed
// display form with an explicit even parity byte. The conversion is lossy
// and one-directional: the original signer's parity is not recoverable.
func (k VerifyingKey) SerializeCompressed() []byte {
	return k.key.SerializeCompressed()
}

// String returns the hex of the compressed display form; this is the
// encoding written into secrets and tags.
func (k VerifyingKey) String() string {
	return hex.EncodeToString(k.SerializeCompressed())
}

// XOnlyHex returns the hex of the x-only encoding. Two keys are the same
// signer exactly when their x-only encodings are equal.
func (k VerifyingKey) XOnlyHex() string {
	return hex.EncodeToString(k.Serialize())
}

// Equal reports whether both keys have the same x-coordinate.
func (k VerifyingKey) Equal(other VerifyingKey) bool {
	return k.key.IsEqual(other.key)
}

// Verify checks sig over msg: msg is hashed with SHA-256 and the
// signature is verified against the digest.
func (k VerifyingKey) Verify(msg []byte, sig *Signature) bool {
	digest := sha256.Sum256(msg)
	return sig.sig.Verify(digest[:], k.key)
}

// Signature is a 64-byte BIP-340 Schnorr signature.
type Signature struct {
	sig *bip340.Signature
}

// ParseSignature parses a signature from its 64-byte encoding.
func ParseSignature(b []byte) (*Signature, error) {
	sig, err := bip340.ParseSignature(b)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidSignature, err.Error())
	}
	return &Signature{sig: sig}, nil
}

// ParseSignatureHex parses a signature from its hex encoding.
func ParseSignatureHex(s string) (*Signature, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidSignature, err.Error())
	}
	if len(b) != SignatureSize {
		return nil, errors.WithMessagef(ErrInvalidSignature, "bad length %d", len(b))
	}
	return ParseSignature(b)
}

// Serialize returns the 64-byte encoding of the signature.
func (s *Signature) Serialize() []byte {
	return s.sig.Serialize()
}

// String returns the hex encoding of the signature; this is the form
// carried in witnesses.
func (s *Signature) String() string {
	return hex.EncodeToString(s.Serialize())
}

// SigningKey is a secret scalar with its cached public key material.
// It is never serialized onto the wire.
type SigningKey struct {
	key *btcec.PrivateKey
	pub VerifyingKey
}

// GenerateSigningKey creates a new random signing key.
func GenerateSigningKey() (*SigningKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: generate signing key")
	}
	return newSigningKey(key), nil
}

// ParseSigningKey parses a signing key from its 32-byte scalar encoding.
func ParseSigningKey(b []byte) (*SigningKey, error) {
	if len(b) != SigningKeySize {
		return nil, errors.WithMessagef(ErrInvalidSigningKey, "bad length %d", len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	if key.Key.IsZero() {
		return nil, errors.WithMessage(ErrInvalidSigningKey, "zero scalar")
	}
	return newSigningKey(key), nil
}

// ParseSigningKeyHex parses a signing key from its hex encoding.
func ParseSigningKeyHex(s string) (*SigningKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidSigningKey, err.Error())
	}
	return ParseSigningKey(b)
}

func newSigningKey(key *secp256k1.PrivateKey) *SigningKey {
	// Normalize the cached public key to the even-Y lift so the display
	// form never leaks the scalar's parity.
	pub, err := bip340.ParsePubKey(bip340.SerializePubKey(key.PubKey()))
	if err != nil {
		panic("schnorr: x-only round trip failed: " + err.Error())
	}
	return &SigningKey{
		key: key,
		pub: VerifyingKey{key: pub},
	}
}

// Sign hashes msg with SHA-256 and produces a Schnorr signature over the
// digest with the key's scalar.
func (k *SigningKey) Sign(msg []byte) (*Signature, error) {
	digest := sha256.Sum256(msg)
	sig, err := bip340.Sign(k.key, digest[:])
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: sign")
	}
	return &Signature{sig: sig}, nil
}

// VerifyingKey returns the verification half of the key.
func (k *SigningKey) VerifyingKey() VerifyingKey {
	return k.pub
}

// Serialize returns the 32-byte scalar encoding of the key, for storage
// in a keystore only.
func (k *SigningKey) Serialize() []byte {
	return k.key.Serialize()
}
