package vault

// VaultFactory creates Vault instances.
type VaultFactory interface {
	// NewVault creates a Vault for the given configuration.
	NewVault(cfg interface{}) Vault
}
