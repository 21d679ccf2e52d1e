package schnorr

import (
	core "github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/token"
	"github.com/mr-shifu/ecash-lib/pkg/common/keyopts"
)

type SchnorrKey interface {
	// Bytes returns the byte representation of the key.
	Bytes() ([]byte, error)

	// SKI returns the serialized key identifier.
	SKI() []byte

	// Private returns true if the key holds the secret scalar.
	Private() bool

	// PublicKey returns the public half of the key.
	PublicKey() SchnorrKey

	// VerifyingKey returns the key's verification material for use in
	// spending conditions.
	VerifyingKey() core.VerifyingKey
}

// SchnorrKeyManager stores and uses Schnorr keys through a keystore. The
// signing operations resolve the key named by opts and append witness
// signatures in place.
type SchnorrKeyManager interface {
	GenerateKey(opts keyopts.Options) (SchnorrKey, error)

	// ImportKey imports a key from its byte representation or from a
	// SchnorrKey instance.
	ImportKey(raw interface{}, opts keyopts.Options) (SchnorrKey, error)

	GetKey(opts keyopts.Options) (SchnorrKey, error)

	DeleteKey(opts keyopts.Options) error

	// SignProof signs the proof's secret bytes with the key named by
	// opts and appends the signature to the proof's witness.
	SignProof(p *token.Proof, opts keyopts.Options) error

	// SignBlindedMessage signs the output's blinded point with the key
	// named by opts and appends the signature to the output's witness.
	SignBlindedMessage(m *token.BlindedMessage, opts keyopts.Options) error
}
