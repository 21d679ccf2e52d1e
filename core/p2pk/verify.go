package p2pk

import (
	"github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/secret"
	"github.com/mr-shifu/ecash-lib/core/token"
)

// witnessSignatures parses every witness entry up front. A single
// malformed signature makes the whole candidate structurally invalid.
// A nil witness is an empty signature list, which matters for expired
// locks with no refund keys.
func witnessSignatures(w *token.Witness) ([]*schnorr.Signature, error) {
	if w == nil {
		return nil, nil
	}
	sigs := make([]*schnorr.Signature, 0, len(w.Signatures))
	for _, s := range w.Signatures {
		sig, err := schnorr.ParseSignatureHex(s)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// validSigners returns the number of distinct keys in keys for which at
// least one signature in sigs verifies msg. A repeated signature, or two
// signatures from the same key, count once: the threshold compares
// against distinct signers, never raw (signature, key) pairs. A key
// listed twice is one signer.
func validSigners(msg []byte, keys []schnorr.VerifyingKey, sigs []*schnorr.Signature) uint64 {
	verified := make(map[string]struct{})
	for _, sig := range sigs {
		matched := false
		for _, key := range keys {
			if key.Verify(msg, sig) {
				matched = true
				verified[key.XOnlyHex()] = struct{}{}
			}
		}
		if !matched {
			log.Debugf("signature %s does not verify under any candidate key", sig)
		}
	}
	return uint64(len(verified))
}

// VerifyProof decides whether the proof's witness satisfies the P2PK
// policy committed in its secret. The decision has exactly two accepting
// branches, tried in order:
//
//  1. Enough distinct valid signers among the authorized keys. This
//     branch is never gated by the locktime: primary authorization stays
//     valid forever; a locktime only ever adds a fallback path.
//  2. The locktime is set and strictly in the past. With refund keys,
//     enough distinct refund signers accept; without refund keys the
//     lock is abandoned and the proof is spendable with no signatures.
//
// Anything else is ErrSpendConditionsNotMet. Malformed secrets, keys, or
// signatures fail with their structural error before any branch is
// tried.
func VerifyProof(p *token.Proof) error {
	s, err := secret.Parse(p.Secret)
	if err != nil {
		return err
	}
	conditions, err := ConditionsFromSecret(s)
	if err != nil {
		return err
	}

	sigs, err := witnessSignatures(p.Witness)
	if err != nil {
		return err
	}

	// The message is the exact received secret bytes, not a
	// re-serialization.
	msg := []byte(p.Secret)

	if validSigners(msg, conditions.Pubkeys, sigs) >= conditions.requiredSigs() {
		return nil
	}

	if conditions.Locktime != nil && *conditions.Locktime < unixTime() {
		if conditions.RefundKeys == nil {
			// No refund key after expiry is an explicit "abandon the
			// lock": anyone may redeem.
			return nil
		}
		if validSigners(msg, conditions.RefundKeys, sigs) >= conditions.requiredRefundSigs() {
			return nil
		}
	}

	return ErrSpendConditionsNotMet
}

// VerifyBlindedMessage checks output co-signing under SIG_ALL: a flat
// distinct-signer count against an explicitly supplied key set, with no
// locktime or refund branching.
func VerifyBlindedMessage(m *token.BlindedMessage, keys []schnorr.VerifyingKey, requiredSigs uint64) error {
	msg, err := m.BlindedPointBytes()
	if err != nil {
		return err
	}
	sigs, err := witnessSignatures(m.Witness)
	if err != nil {
		return err
	}
	if requiredSigs == 0 {
		requiredSigs = 1
	}
	if validSigners(msg, keys, sigs) >= requiredSigs {
		return nil
	}
	return ErrSpendConditionsNotMet
}
