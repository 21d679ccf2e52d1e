// Package token defines the redemption candidates a mint is asked to
// accept: proofs carrying a spending-condition secret, and blinded
// messages (the outputs of the blind-signature exchange) that may be
// co-signed when the spending condition demands signatures on outputs.
package token

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	ErrInvalidBlindedPoint = errors.New("token: invalid blinded point")
)

// Witness is the ordered list of hex-encoded signatures attached to a
// redemption candidate. On the wire it is serialized to a JSON string and
// embedded as a string value inside the candidate (double-encoded, not
// nested), matching the encoding used across the protocol.
type Witness struct {
	Signatures []string
}

type witnessJSON struct {
	Signatures []string `json:"signatures"`
}

// AddSignatures appends signatures to the witness. Each co-signer appends
// exactly one entry; order is preserved.
func (w *Witness) AddSignatures(sigs ...string) {
	w.Signatures = append(w.Signatures, sigs...)
}

// IsEmpty reports whether the witness holds no signatures.
func (w *Witness) IsEmpty() bool {
	return w == nil || len(w.Signatures) == 0
}

// MarshalJSON double-encodes the witness: the signatures object is
// serialized to a string which is then emitted as a JSON string value.
func (w Witness) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(witnessJSON{Signatures: w.Signatures})
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

// UnmarshalJSON decodes the double-encoded form.
func (w *Witness) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var inner witnessJSON
	if err := json.Unmarshal([]byte(raw), &inner); err != nil {
		return err
	}
	w.Signatures = inner.Signatures
	return nil
}

// Proof is a token presented for redemption. Secret is kept as the raw
// received string: the witness signatures commit to its exact bytes, so
// it must never be re-serialized before verification.
type Proof struct {
	Amount  uint64   `json:"amount"`
	ID      string   `json:"id"`
	Secret  string   `json:"secret"`
	C       string   `json:"C"`
	Witness *Witness `json:"witness,omitempty"`
}

// BlindedMessage is an output being requested from the mint, carrying the
// blinded point to be signed and an optional co-signing witness.
type BlindedMessage struct {
	Amount  uint64   `json:"amount"`
	ID      string   `json:"id"`
	B       string   `json:"B_"`
	Witness *Witness `json:"witness,omitempty"`
}

// BlindedPointBytes returns the compressed blinded-point bytes, the
// canonical message for output co-signing.
func (m *BlindedMessage) BlindedPointBytes() ([]byte, error) {
	b, err := hex.DecodeString(m.B)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidBlindedPoint, err.Error())
	}
	if len(b) != 33 {
		return nil, errors.WithMessagef(ErrInvalidBlindedPoint, "bad length %d", len(b))
	}
	return b, nil
}
