package keystore

import "github.com/mr-shifu/ecash-lib/pkg/common/keyopts"

// InMemoryKeyAccessor is a keystore handle bound to one key's SKI and
// lookup coordinates.
type InMemoryKeyAccessor struct {
	opts keyopts.Options
	ski  string
	ks   *InMemoryKeystore
}

func NewInMemoryKeyAccessor(ski string, opts keyopts.Options, ks *InMemoryKeystore) *InMemoryKeyAccessor {
	return &InMemoryKeyAccessor{ski: ski, opts: opts, ks: ks}
}

func (ka *InMemoryKeyAccessor) Import(key []byte) error {
	return ka.ks.Import(ka.ski, key, ka.opts)
}

func (ka *InMemoryKeyAccessor) Get() ([]byte, error) {
	return ka.ks.Get(ka.opts)
}

func (ka *InMemoryKeyAccessor) Delete() error {
	return ka.ks.Delete(ka.opts)
}
