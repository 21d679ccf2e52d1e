package keystore

// KeystoreFactory creates Keystore instances.
type KeystoreFactory interface {
	// NewKeystore creates a Keystore for the given configuration.
	NewKeystore(cfg interface{}) Keystore
}
