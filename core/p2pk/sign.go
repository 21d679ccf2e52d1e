package p2pk

import (
	"github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/token"
)

// SignProof signs the proof's canonical message, the raw secret bytes,
// and appends the signature to the proof's witness, creating the witness
// if absent. The append targets the proof's own witness field so the
// signature is never lost to a temporary.
func SignProof(p *token.Proof, key *schnorr.SigningKey) error {
	sig, err := key.Sign([]byte(p.Secret))
	if err != nil {
		return err
	}
	if p.Witness == nil {
		p.Witness = &token.Witness{}
	}
	p.Witness.AddSignatures(sig.String())
	return nil
}

// SignBlindedMessage co-signs an output under SIG_ALL. The canonical
// message is the compressed blinded-point bytes.
func SignBlindedMessage(m *token.BlindedMessage, key *schnorr.SigningKey) error {
	msg, err := m.BlindedPointBytes()
	if err != nil {
		return err
	}
	sig, err := key.Sign(msg)
	if err != nil {
		return err
	}
	if m.Witness == nil {
		m.Witness = &token.Witness{}
	}
	m.Witness.AddSignatures(sig.String())
	return nil
}
