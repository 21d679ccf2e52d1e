package keyopts

// KeyOptsFactory creates KeyOpts instances.
type KeyOptsFactory interface {
	// NewKeyOpts creates a KeyOpts from a repository configuration.
	NewKeyOpts(cfg interface{}) KeyOpts
}
