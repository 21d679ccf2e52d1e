package keyopts

import (
	"errors"
	"sync"

	"github.com/mr-shifu/ecash-lib/pkg/common/keyopts"
)

var (
	ErrInvalidParamsWalletID = errors.New("keyopts: invalid walletID")
	ErrInvalidParamsKeyID    = errors.New("keyopts: invalid keyID")
	ErrKeyNotFound           = errors.New("keyopts: key not found")
)

type Keys map[string]*keyopts.KeyData

type KeyOpts struct {
	lock sync.RWMutex

	// keys is a map of key ID to a map of wallet ID to key metadata{SKI}.
	keys map[string]Keys
}

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]Keys),
	}
}

// coordinates extracts the key ID and wallet ID from opts.
func coordinates(opts keyopts.Options) (kid, wid string, err error) {
	ID, ok := opts.Get("id")
	if !ok {
		return "", "", ErrInvalidParamsKeyID
	}
	kid, ok = ID.(string)
	if !ok {
		return "", "", ErrInvalidParamsKeyID
	}

	walletID, ok := opts.Get("walletid")
	if !ok {
		return "", "", ErrInvalidParamsWalletID
	}
	wid, ok = walletID.(string)
	if !ok {
		return "", "", ErrInvalidParamsWalletID
	}

	return kid, wid, nil
}

func (kr *KeyOpts) Import(data interface{}, opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, wid, err := coordinates(opts)
	if err != nil {
		return err
	}

	ski, ok := data.(string)
	if !ok {
		return errors.New("keyopts: invalid data")
	}

	if _, ok := kr.keys[kid]; !ok {
		kr.keys[kid] = make(Keys)
	}
	kr.keys[kid][wid] = &keyopts.KeyData{
		SKI:      ski,
		WalletID: wid,
	}

	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	kid, wid, err := coordinates(opts)
	if err != nil {
		return nil, err
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	k, ok := ks[wid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return k, nil
}

func (kr *KeyOpts) GetAll(opts keyopts.Options) (map[string]*keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	ID, ok := opts.Get("id")
	if !ok {
		return nil, ErrInvalidParamsKeyID
	}
	kid, ok := ID.(string)
	if !ok {
		return nil, ErrInvalidParamsKeyID
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	result := make(map[string]*keyopts.KeyData)
	for walletID, key := range ks {
		result[walletID] = key
	}
	return result, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, wid, err := coordinates(opts)
	if err != nil {
		return err
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return ErrKeyNotFound
	}

	delete(ks, wid)

	return nil
}

func (kr *KeyOpts) DeleteAll(opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	ID, ok := opts.Get("id")
	if !ok {
		return ErrInvalidParamsKeyID
	}
	kid, ok := ID.(string)
	if !ok {
		return ErrInvalidParamsKeyID
	}

	delete(kr.keys, kid)

	return nil
}
