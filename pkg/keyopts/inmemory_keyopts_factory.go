package keyopts

import "github.com/mr-shifu/ecash-lib/pkg/common/keyopts"

type InMemoryKeyOptsFactory struct{}

// NewKeyOpts creates a new in-memory KeyOpts; cfg is ignored.
func (f *InMemoryKeyOptsFactory) NewKeyOpts(cfg interface{}) keyopts.KeyOpts {
	return NewInMemoryKeyOpts()
}
