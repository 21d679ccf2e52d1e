package keyopts

// KeyData is the stored metadata of one key: the wallet that owns it and
// the subject key identifier under which the raw material lives in the
// vault.
type KeyData struct {
	WalletID string
	SKI      string
}

// Options carries the lookup coordinates of a key as loose key/value
// pairs. The canonical keys are "id" (key ID) and "walletid".
type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the storage of key metadata referred to by a key ID.
type KeyOpts interface {
	// Import records metadata for a key. data is the SKI; opts names the
	// key ID and the wallet it belongs to.
	Import(data interface{}, opts Options) error

	// Get returns the metadata of the key named by opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns the metadata of every wallet's key under the key ID
	// named by opts, keyed by wallet ID.
	GetAll(opts Options) (map[string]*KeyData, error)

	// DeleteAll removes all metadata under the key ID named by opts.
	DeleteAll(opts Options) error

	Delete(opts Options) error
}
