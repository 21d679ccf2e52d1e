// Package secret implements the generic two-part spending-condition
// commitment carried inside an ecash token. A well-known secret is a
// two-element JSON sequence [kind, {nonce, data, tags}]; its exact byte
// serialization is the message that witness signatures commit to, so
// encoding is deterministic: fields keep their order and tags are never
// re-ordered or normalized.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
)

// Kind identifies the spending-condition family of a well-known secret.
type Kind string

const (
	// KindP2PK locks a token to one or more public keys.
	KindP2PK Kind = "P2PK"
)

var (
	ErrInvalidSecretFormat = errors.New("secret: not a well-known secret")
)

// Data is the second element of the secret sequence.
type Data struct {
	// Nonce is a unique random string making the commitment unique.
	Nonce string `json:"nonce"`
	// Data expresses the spending condition specific to each kind; for
	// P2PK it is the hex-encoded primary verification key.
	Data string `json:"data"`
	// Tags hold additional committed data used for feature extensions.
	// Each tag is a string array whose first element names its kind.
	Tags [][]string `json:"tags,omitempty"`
}

// Secret is a well-known spending-condition secret.
type Secret struct {
	Kind Kind
	Data Data
}

// New creates a secret with a fresh random nonce.
func New(kind Kind, data string, tags [][]string) Secret {
	return Secret{
		Kind: kind,
		Data: Data{
			Nonce: newNonce(),
			Data:  data,
			Tags:  tags,
		},
	}
}

func newNonce() string {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("secret: rand failed: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// Serialize returns the canonical wire form of the secret. The returned
// string is the message committed to by witness signatures.
func (s Secret) Serialize() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", errors.WithMessage(err, "secret: serialize")
	}
	return string(b), nil
}

// Parse decodes a well-known secret from its wire form.
func Parse(raw string) (Secret, error) {
	var s Secret
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Secret{}, errors.WithMessage(ErrInvalidSecretFormat, err.Error())
	}
	return s, nil
}

// MarshalJSON encodes the secret as the two-element sequence
// [kind, secret data].
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{s.Kind, s.Data})
}

// UnmarshalJSON decodes the two-element sequence form. A sequence of any
// other length is rejected.
func (s *Secret) UnmarshalJSON(b []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return err
	}
	if len(elems) != 2 {
		return ErrInvalidSecretFormat
	}
	if err := json.Unmarshal(elems[0], &s.Kind); err != nil {
		return err
	}
	return json.Unmarshal(elems[1], &s.Data)
}
