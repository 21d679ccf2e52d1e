package p2pk

import "github.com/pkg/errors"

// Structural errors mean the candidate is malformed and is rejected
// before any authorization decision. ErrSpendConditionsNotMet means the
// candidate is well formed but insufficiently signed; outside the mint a
// caller in a collaborative signing flow may treat it as "not everyone
// has signed yet". ErrLocktimeInPast is construction-time only.
var (
	ErrIncorrectSecretKind   = errors.New("p2pk: secret is not a p2pk secret")
	ErrSpendConditionsNotMet = errors.New("p2pk: spend conditions are not met")
	ErrLocktimeInPast        = errors.New("p2pk: locktime in past")
	ErrPrimaryKeyRequired    = errors.New("p2pk: verification key required in secret data")
	ErrTagKindRequired       = errors.New("p2pk: tag kind not found")
	ErrTagMalformed          = errors.New("p2pk: malformed tag")
	ErrDuplicateTag          = errors.New("p2pk: duplicate tag kind")
)
