// Package p2pk implements the Pay-to-Public-Key spending-condition
// engine: the codec between a structured multisig/timelock policy and
// the committed secret form, the witness signer, and the authorization
// decision procedure applied at redemption time.
package p2pk

import (
	"time"

	"github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/secret"
)

// unixTime is the clock consulted by the refund branch; a variable so
// boundary behavior can be pinned in tests.
var unixTime = func() uint64 {
	return uint64(time.Now().Unix())
}

// Conditions is a P2PK spending policy. Pubkeys is never empty: its
// first element is the primary key, which is always the key committed in
// the secret's data field.
//
// A nil Locktime means the refund branch is unreachable for the lifetime
// of the token. NumSigs and NumSigsRefund of zero mean the default
// threshold of one.
type Conditions struct {
	Locktime      *uint64
	Pubkeys       []schnorr.VerifyingKey
	RefundKeys    []schnorr.VerifyingKey
	NumSigs       uint64
	NumSigsRefund uint64
	SigFlag       SigFlag
}

// NewConditions builds a policy, rejecting a locktime that has already
// passed. The guard exists only here: an expired locktime on a decoded
// secret is not an error, it just selects the refund branch at
// verification time.
func NewConditions(
	locktime *uint64,
	pubkeys []schnorr.VerifyingKey,
	refundKeys []schnorr.VerifyingKey,
	numSigs uint64,
	sigFlag SigFlag,
	numSigsRefund uint64,
) (Conditions, error) {
	if locktime != nil && *locktime < unixTime() {
		return Conditions{}, ErrLocktimeInPast
	}
	if len(pubkeys) == 0 {
		return Conditions{}, ErrPrimaryKeyRequired
	}
	if sigFlag == "" {
		sigFlag = SigInputs
	}
	return Conditions{
		Locktime:      locktime,
		Pubkeys:       pubkeys,
		RefundKeys:    refundKeys,
		NumSigs:       numSigs,
		NumSigsRefund: numSigsRefund,
		SigFlag:       sigFlag,
	}, nil
}

// requiredSigs returns the primary threshold with the default applied.
func (c Conditions) requiredSigs() uint64 {
	if c.NumSigs == 0 {
		return 1
	}
	return c.NumSigs
}

// requiredRefundSigs returns the refund threshold with the default
// applied.
func (c Conditions) requiredRefundSigs() uint64 {
	if c.NumSigsRefund == 0 {
		return 1
	}
	return c.NumSigsRefund
}

// ToSecret encodes the policy into a fresh secret with a new nonce. The
// primary key becomes the data field; the remaining keys and the
// optional clauses become tags in a fixed order, sigflag always last and
// always present. Tag order is part of the commitment.
func (c Conditions) ToSecret() (secret.Secret, error) {
	if len(c.Pubkeys) == 0 {
		return secret.Secret{}, ErrPrimaryKeyRequired
	}

	var tags [][]string
	if len(c.Pubkeys) > 1 {
		tags = append(tags, PubkeysTag(c.Pubkeys[1:]).Vec())
	}
	if c.Locktime != nil {
		tags = append(tags, LocktimeTag(*c.Locktime).Vec())
	}
	if c.NumSigs != 0 {
		tags = append(tags, NSigsTag(c.NumSigs).Vec())
	}
	if len(c.RefundKeys) > 0 {
		tags = append(tags, RefundTag(c.RefundKeys).Vec())
	}
	if c.NumSigsRefund != 0 {
		tags = append(tags, NSigsRefundTag(c.NumSigsRefund).Vec())
	}
	flag := c.SigFlag
	if flag == "" {
		flag = SigInputs
	}
	tags = append(tags, SigFlagTag(flag).Vec())

	return secret.New(secret.KindP2PK, c.Pubkeys[0].String(), tags), nil
}

// ConditionsFromSecret decodes the policy committed in a P2PK secret.
// Every recognized tag is parsed exactly once; a recognized kind that
// appears twice makes the policy ambiguous and is rejected. Unknown tag
// kinds are skipped. The primary key from the data field is always
// prepended to the key set, whether or not a pubkeys tag exists.
func ConditionsFromSecret(s secret.Secret) (Conditions, error) {
	if s.Kind != secret.KindP2PK {
		return Conditions{}, ErrIncorrectSecretKind
	}

	primary, err := schnorr.ParseVerifyingKeyHex(s.Data.Data)
	if err != nil {
		return Conditions{}, err
	}

	seen := make(map[TagKind]Tag)
	for _, raw := range s.Data.Tags {
		tag, ok, err := parseTag(raw)
		if err != nil {
			return Conditions{}, err
		}
		if !ok {
			continue
		}
		if _, dup := seen[tag.Kind()]; dup {
			return Conditions{}, ErrDuplicateTag
		}
		seen[tag.Kind()] = tag
	}

	c := Conditions{
		Pubkeys: []schnorr.VerifyingKey{primary},
		SigFlag: SigInputs,
	}
	if tag, ok := seen[TagPubkeys]; ok {
		c.Pubkeys = append(c.Pubkeys, tag.keys...)
	}
	if tag, ok := seen[TagLocktime]; ok {
		locktime := tag.num
		c.Locktime = &locktime
	}
	if tag, ok := seen[TagNSigs]; ok {
		c.NumSigs = tag.num
	}
	if tag, ok := seen[TagRefund]; ok {
		c.RefundKeys = tag.keys
	}
	if tag, ok := seen[TagNSigsRefund]; ok {
		c.NumSigsRefund = tag.num
	}
	if tag, ok := seen[TagSigFlag]; ok {
		c.SigFlag = tag.flag
	}

	return c, nil
}
