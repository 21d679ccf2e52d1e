package schnorr

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mr-shifu/ecash-lib/core/p2pk"
	core "github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/token"
	comm_schnorr "github.com/mr-shifu/ecash-lib/pkg/common/cryptosuite/schnorr"
	"github.com/mr-shifu/ecash-lib/pkg/common/keyopts"
	"github.com/mr-shifu/ecash-lib/pkg/common/keystore"
)

var ErrNotPrivate = errors.New("schnorr: key is not private")

// SchnorrKeyManagerImpl stores Schnorr keys in a keystore and signs
// redemption candidates with them.
type SchnorrKeyManagerImpl struct {
	keystore keystore.Keystore
}

var _ comm_schnorr.SchnorrKeyManager = (*SchnorrKeyManagerImpl)(nil)

func NewSchnorrKeyManagerImpl(store keystore.Keystore) *SchnorrKeyManagerImpl {
	return &SchnorrKeyManagerImpl{
		keystore: store,
	}
}

// ensureKeyID assigns a fresh key ID when opts does not carry one.
func ensureKeyID(opts keyopts.Options) (keyopts.Options, error) {
	if _, ok := opts.Get("id"); ok {
		return opts, nil
	}
	return opts.Set("id", uuid.New().String())
}

// GenerateKey generates a new Schnorr key pair and stores it under the
// coordinates in opts, assigning a key ID when opts has none.
func (mgr *SchnorrKeyManagerImpl) GenerateKey(opts keyopts.Options) (comm_schnorr.SchnorrKey, error) {
	k, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	return mgr.store(k, opts)
}

// ImportKey imports a key from its CBOR record bytes or a SchnorrKey
// instance.
func (mgr *SchnorrKeyManagerImpl) ImportKey(raw interface{}, opts keyopts.Options) (comm_schnorr.SchnorrKey, error) {
	k := new(SchnorrKeyImpl)
	switch tt := raw.(type) {
	case []byte:
		if err := k.FromBytes(tt); err != nil {
			return nil, errors.WithMessage(err, "schnorr: failed to import key")
		}
	case comm_schnorr.SchnorrKey:
		key, ok := tt.(*SchnorrKeyImpl)
		if !ok {
			return nil, errors.New("schnorr: invalid key type")
		}
		k = key
	default:
		return nil, errors.New("schnorr: invalid key type")
	}

	return mgr.store(k, opts)
}

func (mgr *SchnorrKeyManagerImpl) store(k comm_schnorr.SchnorrKey, opts keyopts.Options) (comm_schnorr.SchnorrKey, error) {
	kb, err := k.Bytes()
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: failed to serialize key")
	}

	opts, err = ensureKeyID(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: failed to assign key ID")
	}

	ski := hex.EncodeToString(k.SKI())
	if err := mgr.keystore.Import(ski, kb, opts); err != nil {
		return nil, errors.WithMessage(err, "schnorr: failed to import key to keystore")
	}

	return k, nil
}

// GetKey returns the key stored under the coordinates in opts.
func (mgr *SchnorrKeyManagerImpl) GetKey(opts keyopts.Options) (comm_schnorr.SchnorrKey, error) {
	kb, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "schnorr: failed to get key from keystore")
	}

	k := new(SchnorrKeyImpl)
	if err := k.FromBytes(kb); err != nil {
		return nil, errors.WithMessage(err, "schnorr: failed to decode key")
	}

	return k, nil
}

// DeleteKey removes the key stored under the coordinates in opts.
func (mgr *SchnorrKeyManagerImpl) DeleteKey(opts keyopts.Options) error {
	return mgr.keystore.Delete(opts)
}

// SignProof signs the proof's secret bytes with the key named by opts and
// appends the signature to the proof's witness.
func (mgr *SchnorrKeyManagerImpl) SignProof(p *token.Proof, opts keyopts.Options) error {
	sk, err := mgr.signingKey(opts)
	if err != nil {
		return err
	}
	return p2pk.SignProof(p, sk)
}

// SignBlindedMessage signs the output's blinded point with the key named
// by opts and appends the signature to the output's witness.
func (mgr *SchnorrKeyManagerImpl) SignBlindedMessage(m *token.BlindedMessage, opts keyopts.Options) error {
	sk, err := mgr.signingKey(opts)
	if err != nil {
		return err
	}
	return p2pk.SignBlindedMessage(m, sk)
}

func (mgr *SchnorrKeyManagerImpl) signingKey(opts keyopts.Options) (*core.SigningKey, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	key, ok := k.(*SchnorrKeyImpl)
	if !ok || key.sk == nil {
		return nil, ErrNotPrivate
	}
	return key.sk, nil
}
