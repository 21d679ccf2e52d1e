package p2pk

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/mr-shifu/ecash-lib/core/schnorr"
)

// TagKind names a policy clause inside a P2PK secret. Kinds outside the
// recognized set are preserved opaquely by the codec but never parsed
// into Conditions.
type TagKind string

const (
	TagSigFlag     TagKind = "sigflag"
	TagNSigs       TagKind = "n_sigs"
	TagLocktime    TagKind = "locktime"
	TagRefund      TagKind = "refund"
	TagPubkeys     TagKind = "pubkeys"
	TagNSigsRefund TagKind = "n_sigs_refund"
)

// Known reports whether the kind belongs to the closed recognized set.
func (k TagKind) Known() bool {
	switch k {
	case TagSigFlag, TagNSigs, TagLocktime, TagRefund, TagPubkeys, TagNSigsRefund:
		return true
	}
	return false
}

// SigFlag states which parts of a request a spending condition requires
// signatures on. Values outside the two defined flags are carried
// verbatim as custom flags.
type SigFlag string

const (
	// SigInputs requires valid signatures on all inputs. It is the
	// default and applies even when the sigflag tag is absent.
	SigInputs SigFlag = "SIG_INPUTS"
	// SigAll requires valid signatures on all inputs and all outputs.
	SigAll SigFlag = "SIG_ALL"
)

// Tag is one parsed policy clause. The zero Tag is invalid; construct
// through the typed constructors or parseTag.
type Tag struct {
	kind TagKind
	num  uint64
	flag SigFlag
	keys []schnorr.VerifyingKey
}

// SigFlagTag builds a sigflag clause.
func SigFlagTag(flag SigFlag) Tag { return Tag{kind: TagSigFlag, flag: flag} }

// NSigsTag builds an n_sigs threshold clause.
func NSigsTag(n uint64) Tag { return Tag{kind: TagNSigs, num: n} }

// LocktimeTag builds a locktime clause.
func LocktimeTag(t uint64) Tag { return Tag{kind: TagLocktime, num: t} }

// RefundTag builds a refund-keys clause.
func RefundTag(keys []schnorr.VerifyingKey) Tag { return Tag{kind: TagRefund, keys: keys} }

// PubkeysTag builds an additional-keys clause.
func PubkeysTag(keys []schnorr.VerifyingKey) Tag { return Tag{kind: TagPubkeys, keys: keys} }

// NSigsRefundTag builds a refund threshold clause.
func NSigsRefundTag(n uint64) Tag { return Tag{kind: TagNSigsRefund, num: n} }

// Kind returns the clause kind.
func (t Tag) Kind() TagKind { return t.kind }

// Vec returns the wire form of the tag: the kind followed by its values,
// keys in compressed display form.
func (t Tag) Vec() []string {
	switch t.kind {
	case TagSigFlag:
		return []string{string(TagSigFlag), string(t.flag)}
	case TagNSigs, TagLocktime, TagNSigsRefund:
		return []string{string(t.kind), strconv.FormatUint(t.num, 10)}
	case TagRefund, TagPubkeys:
		out := make([]string, 0, len(t.keys)+1)
		out = append(out, string(t.kind))
		for _, k := range t.keys {
			out = append(out, k.String())
		}
		return out
	}
	return nil
}

// parseTag parses one wire tag. Unknown kinds return ok=false with no
// error so the codec can skip them; recognized kinds with the wrong
// arity or unparseable values are structural errors.
func parseTag(raw []string) (Tag, bool, error) {
	if len(raw) == 0 {
		return Tag{}, false, ErrTagKindRequired
	}
	kind := TagKind(raw[0])
	if !kind.Known() {
		return Tag{}, false, nil
	}

	switch kind {
	case TagSigFlag:
		if len(raw) != 2 {
			return Tag{}, false, errors.WithMessagef(ErrTagMalformed, "%s wants one value, got %d", kind, len(raw)-1)
		}
		return SigFlagTag(SigFlag(raw[1])), true, nil

	case TagNSigs, TagLocktime, TagNSigsRefund:
		if len(raw) != 2 {
			return Tag{}, false, errors.WithMessagef(ErrTagMalformed, "%s wants one value, got %d", kind, len(raw)-1)
		}
		n, err := strconv.ParseUint(raw[1], 10, 64)
		if err != nil {
			return Tag{}, false, errors.WithMessagef(ErrTagMalformed, "%s: %v", kind, err)
		}
		return Tag{kind: kind, num: n}, true, nil

	case TagRefund, TagPubkeys:
		if len(raw) < 2 {
			return Tag{}, false, errors.WithMessagef(ErrTagMalformed, "%s wants at least one key", kind)
		}
		keys := make([]schnorr.VerifyingKey, 0, len(raw)-1)
		for _, s := range raw[1:] {
			key, err := schnorr.ParseVerifyingKeyHex(s)
			if err != nil {
				return Tag{}, false, errors.WithMessagef(ErrTagMalformed, "%s: %v", kind, err)
			}
			keys = append(keys, key)
		}
		return Tag{kind: kind, keys: keys}, true, nil
	}

	return Tag{}, false, nil
}
