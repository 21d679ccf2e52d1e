package keystore

import (
	"github.com/mr-shifu/ecash-lib/pkg/common/keystore"
	"github.com/mr-shifu/ecash-lib/pkg/keyopts"
	"github.com/mr-shifu/ecash-lib/pkg/vault"
)

type InmemoryKeystoreFactory struct{}

// NewKeystore creates an in-memory Keystore backed by a fresh in-memory
// vault and KeyOpts repository; cfg is ignored.
func (f InmemoryKeystoreFactory) NewKeystore(cfg interface{}) keystore.Keystore {
	return NewInMemoryKeystore(vault.NewInMemoryVault(), keyopts.NewInMemoryKeyOpts())
}
