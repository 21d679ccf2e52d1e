package schnorr

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	core "github.com/mr-shifu/ecash-lib/core/schnorr"
	comm_schnorr "github.com/mr-shifu/ecash-lib/pkg/common/cryptosuite/schnorr"
)

// SchnorrKeyImpl holds a Schnorr key pair for P2PK spending conditions
// and implements the SchnorrKey interface. sk is nil for a public-only
// key.
type SchnorrKeyImpl struct {
	sk *core.SigningKey
	pk core.VerifyingKey
}

var _ comm_schnorr.SchnorrKey = (*SchnorrKeyImpl)(nil)

// keyRaw is the CBOR storage record of a key.
type keyRaw struct {
	Private bool   `cbor:"private"`
	Key     []byte `cbor:"key"`
}

// GenerateKey creates a new Schnorr key pair.
func GenerateKey() (comm_schnorr.SchnorrKey, error) {
	sk, err := core.GenerateSigningKey()
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: failed to generate key")
	}
	return &SchnorrKeyImpl{sk: sk, pk: sk.VerifyingKey()}, nil
}

// FromSigningKey wraps an existing signing key.
func FromSigningKey(sk *core.SigningKey) *SchnorrKeyImpl {
	return &SchnorrKeyImpl{sk: sk, pk: sk.VerifyingKey()}
}

// FromVerifyingKey wraps verification-only key material.
func FromVerifyingKey(pk core.VerifyingKey) *SchnorrKeyImpl {
	return &SchnorrKeyImpl{pk: pk}
}

// Bytes returns the CBOR storage record of the key: the secret scalar for
// a private key, the x-only public encoding otherwise.
func (k *SchnorrKeyImpl) Bytes() ([]byte, error) {
	raw := keyRaw{}
	if k.sk != nil {
		raw.Private = true
		raw.Key = k.sk.Serialize()
	} else {
		raw.Key = k.pk.Serialize()
	}
	return cbor.Marshal(raw)
}

// SKI returns the serialized key identifier: the blake3 hash of the
// x-only public key.
func (k *SchnorrKeyImpl) SKI() []byte {
	h := blake3.New()
	h.Write(k.pk.Serialize())
	return h.Sum(nil)
}

// Private returns true if the key holds the secret scalar.
func (k *SchnorrKeyImpl) Private() bool {
	return k.sk != nil
}

// PublicKey returns the public half of the key.
func (k *SchnorrKeyImpl) PublicKey() comm_schnorr.SchnorrKey {
	return &SchnorrKeyImpl{pk: k.pk}
}

// VerifyingKey returns the key's verification material for use in
// spending conditions.
func (k *SchnorrKeyImpl) VerifyingKey() core.VerifyingKey {
	return k.pk
}

// FromBytes restores a key from its CBOR storage record.
func (k *SchnorrKeyImpl) FromBytes(data []byte) error {
	var raw keyRaw
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "schnorr: failed to decode key record")
	}

	if raw.Private {
		sk, err := core.ParseSigningKey(raw.Key)
		if err != nil {
			return errors.WithMessage(err, "schnorr: failed to parse signing key")
		}
		k.sk = sk
		k.pk = sk.VerifyingKey()
		return nil
	}

	pk, err := core.ParseVerifyingKey(raw.Key)
	if err != nil {
		return errors.WithMessage(err, "schnorr: failed to parse verifying key")
	}
	k.sk = nil
	k.pk = pk
	return nil
}
