package p2pk

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mr-shifu/ecash-lib/core/token"
)

// VerifyProofs verifies each proof independently and concurrently,
// returning one result per candidate in input order. Verification is
// pure and shares no state, so no ordering exists between candidates.
// Whether a batch is all-or-nothing is the caller's decision; this
// function never aggregates the results.
func VerifyProofs(ctx context.Context, proofs []*token.Proof) []error {
	results := make([]error, len(proofs))

	g, ctx := errgroup.WithContext(ctx)
	for i := range proofs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = err
				return nil
			}
			results[i] = VerifyProof(proofs[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}
