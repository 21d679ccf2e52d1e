package p2pk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/ecash-lib/core/schnorr"
	"github.com/mr-shifu/ecash-lib/core/token"
)

// withClock pins the authorizer's clock for locktime branch tests.
func withClock(t *testing.T, now uint64) {
	t.Helper()
	prev := unixTime
	unixTime = func() uint64 { return now }
	t.Cleanup(func() { unixTime = prev })
}

func newSigner(t *testing.T, hexKey string) *schnorr.SigningKey {
	t.Helper()
	key, err := schnorr.ParseSigningKeyHex(hexKey)
	require.NoError(t, err)
	return key
}

func proofFor(t *testing.T, c Conditions) *token.Proof {
	t.Helper()
	s, err := c.ToSecret()
	require.NoError(t, err)
	raw, err := s.Serialize()
	require.NoError(t, err)
	return &token.Proof{
		Amount: 1,
		ID:     "009a1f293253e41e",
		Secret: raw,
		C:      "02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904",
	}
}

func TestVerifyProofVector(t *testing.T) {
	// Known-good proof: single primary key, SIG_INPUTS, one valid
	// signature over the exact secret bytes.
	valid := `{
		"amount":1,
		"secret":"[\"P2PK\",{\"nonce\":\"859d4935c4907062a6297cf4e663e2835d90d97ecdd510745d32f6816323a41f\",\"data\":\"0249098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\",\"tags\":[[\"sigflag\",\"SIG_INPUTS\"]]}]",
		"C":"02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904",
		"id":"009a1f293253e41e",
		"witness":"{\"signatures\":[\"60f3c9b766770b46caac1d27e1ae6b77c8866ebaeba0b9489fe6a15a837eaa6fcd6eaa825499c72ac342983983fd3ba3a8a41f56677cc99ffd73da68b59e1383\"]}"
	}`
	var p token.Proof
	require.NoError(t, json.Unmarshal([]byte(valid), &p))
	assert.NoError(t, VerifyProof(&p))

	// Same secret, but the witness signature was produced over a
	// different message: well formed, insufficiently signed.
	invalid := `{"amount":1,"secret":"[\"P2PK\",{\"nonce\":\"859d4935c4907062a6297cf4e663e2835d90d97ecdd510745d32f6816323a41f\",\"data\":\"0249098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\",\"tags\":[[\"sigflag\",\"SIG_INPUTS\"]]}]","C":"02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904","id":"009a1f293253e41e","witness":"{\"signatures\":[\"3426df9730d365a9d18d79bed2f3e78e9172d7107c55306ac5ddd1b2d065893366cfa24ff3c874ebf1fc22360ba5888ddf6ff5dbcb9e5f2f5a1368f7afc64f15\"]}"}`
	var q token.Proof
	require.NoError(t, json.Unmarshal([]byte(invalid), &q))
	assert.ErrorIs(t, VerifyProof(&q), ErrSpendConditionsNotMet)
}

func TestVerifyProofMultisigVector(t *testing.T) {
	// 2-of-3 with two valid signatures from distinct keys.
	valid := `{"amount":0,"secret":"[\"P2PK\",{\"nonce\":\"0ed3fcb22c649dd7bbbdcca36e0c52d4f0187dd3b6a19efcc2bfbebb5f85b2a1\",\"data\":\"0249098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\",\"tags\":[[\"pubkeys\",\"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798\",\"02142715675faf8da1ecc4d51e0b9e539fa0d52fdd96ed60dbe99adb15d6b05ad9\"],[\"n_sigs\",\"2\"],[\"sigflag\",\"SIG_INPUTS\"]]}]","C":"02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904","id":"009a1f293253e41e","witness":"{\"signatures\":[\"83564aca48c668f50d022a426ce0ed19d3a9bdcffeeaee0dc1e7ea7e98e9eff1840fcc821724f623468c94f72a8b0a7280fa9ef5a54a1b130ef3055217f467b3\",\"9a72ca2d4d5075be5b511ee48dbc5e45f259bcf4a4e8bf18587f433098a9cd61ff9737dc6e8022de57c76560214c4568377792d4c2c6432886cc7050487a1f22\"]}"}`
	var p token.Proof
	require.NoError(t, json.Unmarshal([]byte(valid), &p))
	assert.NoError(t, VerifyProof(&p))

	// Only one of the two required signatures.
	invalid := `{"amount":0,"secret":"[\"P2PK\",{\"nonce\":\"0ed3fcb22c649dd7bbbdcca36e0c52d4f0187dd3b6a19efcc2bfbebb5f85b2a1\",\"data\":\"0249098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\",\"tags\":[[\"pubkeys\",\"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798\",\"02142715675faf8da1ecc4d51e0b9e539fa0d52fdd96ed60dbe99adb15d6b05ad9\"],[\"n_sigs\",\"2\"],[\"sigflag\",\"SIG_INPUTS\"]]}]","C":"02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904","id":"009a1f293253e41e","witness":"{\"signatures\":[\"83564aca48c668f50d022a426ce0ed19d3a9bdcffeeaee0dc1e7ea7e98e9eff1840fcc821724f623468c94f72a8b0a7280fa9ef5a54a1b130ef3055217f467b3\"]}"}`
	var q token.Proof
	require.NoError(t, json.Unmarshal([]byte(invalid), &q))
	assert.ErrorIs(t, VerifyProof(&q), ErrSpendConditionsNotMet)
}

func TestVerifyProofRefundVector(t *testing.T) {
	// Expired locktime, one valid refund-key signature: the refund
	// branch accepts even though n_sigs=2 primary signers are missing.
	valid := `{"amount":0,"secret":"[\"P2PK\",{\"nonce\":\"3eff971bb1ca70b16be3446a4d3feedf2f37f054c5c8621d832744df71b028f0\",\"data\":\"0249098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\",\"tags\":[[\"pubkeys\",\"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798\",\"02142715675faf8da1ecc4d51e0b9e539fa0d52fdd96ed60dbe99adb15d6b05ad9\"],[\"locktime\",\"21\"],[\"n_sigs\",\"2\"],[\"refund\",\"49098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\"],[\"sigflag\",\"SIG_INPUTS\"]]}]","C":"02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904","id":"009a1f293253e41e","witness":"{\"signatures\":[\"94c6355461ca88e5d22c4e65e920b2e8253ccb4dd084675453a7bba7044e580246bd05e2520691afeccb2a88784cc56064353aec8b6a61e172727ba9cb3054a1\"]}"}`
	var p token.Proof
	require.NoError(t, json.Unmarshal([]byte(valid), &p))
	assert.NoError(t, VerifyProof(&p))

	// Locktime far in the future: the same witness cannot reach the
	// refund branch and the primary threshold is unmet.
	invalid := `{"amount":0,"secret":"[\"P2PK\",{\"nonce\":\"d14cf9be9d9438d548b6b9d29bf800611136d053421b0f48c38d1447a7a92fc8\",\"data\":\"0249098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\",\"tags\":[[\"pubkeys\",\"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798\",\"02142715675faf8da1ecc4d51e0b9e539fa0d52fdd96ed60dbe99adb15d6b05ad9\"],[\"locktime\",\"2100000000000\"],[\"n_sigs\",\"2\"],[\"refund\",\"49098aa8b9d2fbec49ff8598feb17b592b986e62319a4fa488a3dc36387157a7\"],[\"sigflag\",\"SIG_INPUTS\"]]}]","C":"02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904","id":"009a1f293253e41e","witness":"{\"signatures\":[\"c3079dccf828e9d38bbbb17edf19c7915ee11920cf271c36b8780fdeb88b16fbfbe0328c7dcbe80e56cdc8f85c5831c79df77b27e81e5630a4dd392601fab9eb\"]}"}`
	var q token.Proof
	require.NoError(t, json.Unmarshal([]byte(invalid), &q))
	assert.ErrorIs(t, VerifyProof(&q), ErrSpendConditionsNotMet)
}

func TestVerifySingleKey(t *testing.T) {
	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	mallory := newSigner(t, "7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f")

	c := Conditions{Pubkeys: []schnorr.VerifyingKey{alice.VerifyingKey()}}

	// No signatures at all.
	p := proofFor(t, c)
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)

	// Signature from the primary key.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	assert.NoError(t, VerifyProof(p))

	// Signature from an unrelated key.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, mallory))
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)

	// Valid signature from the primary key, but over different bytes.
	p = proofFor(t, c)
	other := proofFor(t, c)
	require.NoError(t, SignProof(other, alice))
	p.Witness = other.Witness
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)
}

func TestVerifyMultisigDistinctSigners(t *testing.T) {
	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	bob := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000002")
	carol := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000003")

	c := Conditions{
		Pubkeys: []schnorr.VerifyingKey{
			alice.VerifyingKey(), bob.VerifyingKey(), carol.VerifyingKey(),
		},
		NumSigs: 2,
	}

	// Any two distinct authorized signers accept.
	p := proofFor(t, c)
	require.NoError(t, SignProof(p, bob))
	require.NoError(t, SignProof(p, carol))
	assert.NoError(t, VerifyProof(p))

	// One signer is not enough.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)

	// Two signatures from the same key count as one signer, not two.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	require.NoError(t, SignProof(p, alice))
	require.Len(t, p.Witness.Signatures, 2)
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)

	// The same signature string repeated also counts once.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	p.Witness.AddSignatures(p.Witness.Signatures[0])
	require.Len(t, p.Witness.Signatures, 2)
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)
}

func TestVerifyLocktimeFuture(t *testing.T) {
	withClock(t, 1_000_000)
	locktime := uint64(2_000_000)

	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	refund := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000002")

	c := Conditions{
		Locktime:   &locktime,
		Pubkeys:    []schnorr.VerifyingKey{alice.VerifyingKey()},
		RefundKeys: []schnorr.VerifyingKey{refund.VerifyingKey()},
	}

	// Primary key accepts before expiry.
	p := proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	assert.NoError(t, VerifyProof(p))

	// Refund key alone does not, with zero primary signatures.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, refund))
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)
}

func TestVerifyLocktimePast(t *testing.T) {
	withClock(t, 3_000_000)
	locktime := uint64(2_000_000)

	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	refund := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000002")

	c := Conditions{
		Locktime:   &locktime,
		Pubkeys:    []schnorr.VerifyingKey{alice.VerifyingKey()},
		RefundKeys: []schnorr.VerifyingKey{refund.VerifyingKey()},
	}

	// Refund key alone accepts after expiry.
	p := proofFor(t, c)
	require.NoError(t, SignProof(p, refund))
	assert.NoError(t, VerifyProof(p))

	// Primary authorization is locktime-independent: it still accepts
	// even though the lock has expired.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	assert.NoError(t, VerifyProof(p))
}

func TestVerifyLocktimePastNoRefundKeys(t *testing.T) {
	withClock(t, 3_000_000)
	locktime := uint64(2_000_000)

	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")

	c := Conditions{
		Locktime: &locktime,
		Pubkeys:  []schnorr.VerifyingKey{alice.VerifyingKey()},
	}

	// Abandoned lock: a candidate with no witness at all accepts.
	p := proofFor(t, c)
	assert.NoError(t, VerifyProof(p))

	// An empty witness container behaves the same.
	p = proofFor(t, c)
	p.Witness = &token.Witness{}
	assert.NoError(t, VerifyProof(p))
}

func TestVerifyLocktimeBoundary(t *testing.T) {
	// Expiry is strict: at locktime == now the refund branch is not yet
	// reachable.
	locktime := uint64(2_000_000)
	withClock(t, locktime)

	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	refund := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000002")

	c := Conditions{
		Locktime:   &locktime,
		Pubkeys:    []schnorr.VerifyingKey{alice.VerifyingKey()},
		RefundKeys: []schnorr.VerifyingKey{refund.VerifyingKey()},
	}

	p := proofFor(t, c)
	require.NoError(t, SignProof(p, refund))
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)

	// One second later the refund branch opens.
	withClock(t, locktime+1)
	assert.NoError(t, VerifyProof(p))

	// The primary branch is unaffected either way.
	withClock(t, locktime)
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, alice))
	assert.NoError(t, VerifyProof(p))
}

func TestVerifyRefundThreshold(t *testing.T) {
	withClock(t, 3_000_000)
	locktime := uint64(2_000_000)

	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	r1 := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000002")
	r2 := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000003")

	c := Conditions{
		Locktime:      &locktime,
		Pubkeys:       []schnorr.VerifyingKey{alice.VerifyingKey()},
		NumSigs:       1,
		RefundKeys:    []schnorr.VerifyingKey{r1.VerifyingKey(), r2.VerifyingKey()},
		NumSigsRefund: 2,
	}

	// One refund signer is below the refund threshold.
	p := proofFor(t, c)
	require.NoError(t, SignProof(p, r1))
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)

	// Two distinct refund signers meet it.
	require.NoError(t, SignProof(p, r2))
	assert.NoError(t, VerifyProof(p))

	// The same refund key twice does not.
	p = proofFor(t, c)
	require.NoError(t, SignProof(p, r1))
	require.NoError(t, SignProof(p, r1))
	assert.ErrorIs(t, VerifyProof(p), ErrSpendConditionsNotMet)
}

func TestVerifyStructuralErrors(t *testing.T) {
	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	c := Conditions{Pubkeys: []schnorr.VerifyingKey{alice.VerifyingKey()}}

	// Malformed witness signature rejects before any branch is tried.
	p := proofFor(t, c)
	p.Witness = &token.Witness{Signatures: []string{"zz"}}
	assert.ErrorIs(t, VerifyProof(p), schnorr.ErrInvalidSignature)

	p = proofFor(t, c)
	p.Witness = &token.Witness{Signatures: []string{"abcd"}}
	assert.ErrorIs(t, VerifyProof(p), schnorr.ErrInvalidSignature)

	// A non-P2PK secret is the wrong kind.
	p = proofFor(t, c)
	p.Secret = `["HTLC",{"nonce":"859d4935","data":"5c23fc3aec9d985bd5fc88ca8bceaccc52cf892715dd94b42b84f1b43350751e"}]`
	assert.ErrorIs(t, VerifyProof(p), ErrIncorrectSecretKind)

	// A secret that is not a well-known secret at all.
	p = proofFor(t, c)
	p.Secret = "857cd279f6976d5c0cbb4bd6b04b212a"
	assert.Error(t, VerifyProof(p))
}

func TestVerifyBlindedMessage(t *testing.T) {
	alice := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000001")
	bob := newSigner(t, "0000000000000000000000000000000000000000000000000000000000000002")
	keys := []schnorr.VerifyingKey{alice.VerifyingKey(), bob.VerifyingKey()}

	m := &token.BlindedMessage{
		Amount: 8,
		ID:     "009a1f293253e41e",
		B:      "02698c4e2b5f9534cd0687d87513c759790cf829aa5739184a3e3735471fbda904",
	}

	// No witness yet.
	assert.ErrorIs(t, VerifyBlindedMessage(m, keys, 2), ErrSpendConditionsNotMet)

	require.NoError(t, SignBlindedMessage(m, alice))
	assert.NoError(t, VerifyBlindedMessage(m, keys, 1))
	assert.ErrorIs(t, VerifyBlindedMessage(m, keys, 2), ErrSpendConditionsNotMet)

	require.NoError(t, SignBlindedMessage(m, bob))
	assert.NoError(t, VerifyBlindedMessage(m, keys, 2))

	// Duplicate signer never double-counts on outputs either.
	d := &token.BlindedMessage{B: m.B}
	require.NoError(t, SignBlindedMessage(d, alice))
	require.NoError(t, SignBlindedMessage(d, alice))
	assert.ErrorIs(t, VerifyBlindedMessage(d, keys, 2), ErrSpendConditionsNotMet)

	// Malformed blinded point is structural.
	bad := &token.BlindedMessage{B: "02ab"}
	assert.ErrorIs(t, VerifyBlindedMessage(bad, keys, 1), token.ErrInvalidBlindedPoint)
}
