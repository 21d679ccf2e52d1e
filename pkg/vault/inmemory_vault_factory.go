package vault

import "github.com/mr-shifu/ecash-lib/pkg/common/vault"

type InmemoryVaultFactory struct{}

// NewVault creates a new in-memory Vault; cfg is ignored.
func (f InmemoryVaultFactory) NewVault(cfg interface{}) vault.Vault {
	return NewInMemoryVault()
}
