package vault

// Vault is the raw key-byte store, keyed by SKI. It knows nothing about
// key metadata; the keystore layers that on top.
type Vault interface {
	Import(ski string, key []byte) error
	Get(ski string) ([]byte, error)
	Delete(ski string) error
}
