// Package pedersen implements the commitment engine hiding transferred
// amounts: C = v·G + r·H over the protocol's fixed generators, with the
// homomorphic combination rules settlement layers rely on to verify
// conservation of value without learning the amounts.
package pedersen

import (
	"github.com/sipprotocol/sip/crypto"
)

// Commitment is a commitment point. The blinding factor that opens it is
// carried separately as a crypto.PrivateKey scalar and is the only secret.
type Commitment struct {
	point crypto.PublicKey
}

// Commit hides value under a fresh random blinding factor. The curve's key
// generation loops until the scalar is non-zero, since a zero blinding
// degrades the commitment to v·G and gives up hiding entirely.
func Commit(c crypto.Curve, value uint64) (*Commitment, crypto.PrivateKey) {
	blinding := c.GeneratePrivateKey()
	commitment, err := CommitWithBlinding(c, value, blinding)
	if err != nil {
		panic(err)
	}
	return commitment, blinding
}

// CommitWithBlinding recomputes a commitment from a caller-supplied blinding
// factor, for opening proofs and reconstruction.
func CommitWithBlinding(c crypto.Curve, value uint64, blinding crypto.PrivateKey) (*Commitment, error) {
	if blinding == nil {
		return nil, crypto.ErrZeroScalar
	}
	// r·H first: a zero value still commits to a full point, so C never
	// hits the identity and never betrays value == 0 structurally.
	point := blinding.ScalarMult(c.GeneratorH())
	if value != 0 {
		point = point.AddPublic(c.ScalarFromUint64(value).Public())
	}
	return &Commitment{point: point}, nil
}

// VerifyOpening recomputes the commitment from (value, blinding) and compares
// encodings in constant time. There is no partial-match signal.
func VerifyOpening(commitment *Commitment, value uint64, blinding crypto.PrivateKey) bool {
	if commitment == nil || blinding == nil {
		return false
	}
	expected, err := CommitWithBlinding(blinding.Curve(), value, blinding)
	if err != nil {
		return false
	}
	return crypto.PublicKeysEqual(commitment.point, expected.point)
}

// AddCommitments exploits the homomorphic property:
// Commit(v1,r1) + Commit(v2,r2) = Commit(v1+v2, r1+r2).
func AddCommitments(a, b *Commitment) *Commitment {
	return &Commitment{point: a.point.AddPublic(b.point)}
}

func SubCommitments(a, b *Commitment) *Commitment {
	return &Commitment{point: a.point.SubPublic(b.point)}
}

// AddBlindings combines blinding scalars modulo the group order so the
// opening of a combined commitment stays independently reproducible.
func AddBlindings(a, b crypto.PrivateKey) crypto.PrivateKey {
	return a.AddPrivate(b)
}

func SubBlindings(a, b crypto.PrivateKey) crypto.PrivateKey {
	return a.SubPrivate(b)
}

// VerifyBalance checks that inputs and outputs commit to the same total,
// proving conservation of value without opening anything.
func VerifyBalance(inputs, outputs []*Commitment) bool {
	if len(inputs) == 0 || len(outputs) == 0 {
		return false
	}
	inputSum := inputs[0]
	for _, in := range inputs[1:] {
		inputSum = AddCommitments(inputSum, in)
	}
	outputSum := outputs[0]
	for _, out := range outputs[1:] {
		outputSum = AddCommitments(outputSum, out)
	}
	return crypto.PublicKeysEqual(inputSum.point, outputSum.point)
}

func (c *Commitment) Bytes() []byte {
	return c.point.Bytes()
}

func (c *Commitment) String() string {
	return crypto.EncodeHex(c.Bytes())
}

func (c *Commitment) Equal(other *Commitment) bool {
	if other == nil {
		return false
	}
	return crypto.PublicKeysEqual(c.point, other.point)
}

// Hash is the commitment's identifier in intent records and indexes.
func (c *Commitment) Hash() crypto.Hash {
	return crypto.NewHash(c.Bytes())
}

func CommitmentFromBytes(c crypto.Curve, b []byte) (*Commitment, error) {
	point, err := c.PublicKeyFromBytes(b)
	if err != nil {
		return nil, err
	}
	return &Commitment{point: point}, nil
}
