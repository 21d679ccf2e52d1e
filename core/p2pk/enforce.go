package p2pk

import (
	"github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/secret"
	"github.com/mr-shifu/ecash-lib/core/token"
)

// SigFlagEnforcement is what a request validator must hold a proof set
// to: the strictest flag any input demands, the union of keys that may
// co-sign outputs, and the highest signature threshold among the inputs.
type SigFlagEnforcement struct {
	SigFlag      SigFlag
	Pubkeys      []schnorr.VerifyingKey
	SigsRequired uint64
}

// EnforceSigFlag inspects a set of input proofs and aggregates their
// co-signing requirements. Proofs whose secrets are not well-formed P2PK
// secrets contribute nothing; they are judged individually by
// VerifyProof.
func EnforceSigFlag(proofs []token.Proof) SigFlagEnforcement {
	enforced := SigFlagEnforcement{
		SigFlag:      SigInputs,
		SigsRequired: 1,
	}
	seen := make(map[string]struct{})
	add := func(key schnorr.VerifyingKey) {
		id := key.XOnlyHex()
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		enforced.Pubkeys = append(enforced.Pubkeys, key)
	}

	for i := range proofs {
		s, err := secret.Parse(proofs[i].Secret)
		if err != nil {
			continue
		}
		conditions, err := ConditionsFromSecret(s)
		if err != nil {
			continue
		}

		for _, key := range conditions.Pubkeys {
			add(key)
		}
		if conditions.SigFlag == SigAll {
			enforced.SigFlag = SigAll
		}
		if conditions.NumSigs > enforced.SigsRequired {
			enforced.SigsRequired = conditions.NumSigs
		}
	}

	return enforced
}
