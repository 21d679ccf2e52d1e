package keystore

import (
	"github.com/mr-shifu/ecash-lib/pkg/common/keyopts"
)

// Keystore stores raw key material in a vault under its SKI and the key's
// metadata in a KeyOpts repository under the coordinates in opts.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Update(key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	DeleteAll(opts keyopts.Options) error
	KeyAccessor(ski string, opts keyopts.Options) KeyAccessor
}

// KeyAccessor is a Keystore bound to one key.
type KeyAccessor interface {
	Import(key []byte) error
	Get() ([]byte, error)
	Delete() error
}
