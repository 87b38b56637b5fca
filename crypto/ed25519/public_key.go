package ed25519

import (
	"crypto/subtle"

	"filippo.io/edwards25519"
	"github.com/sipprotocol/sip/crypto"
)

type publicKey struct {
	point *edwards25519.Point
}

func (p *publicKey) String() string {
	return crypto.EncodeHex(p.Bytes())
}

func (p *publicKey) Bytes() []byte {
	return p.point.Bytes()
}

func (p *publicKey) Curve() crypto.Curve {
	return instance
}

func (p *publicKey) AddPublic(other crypto.PublicKey) crypto.PublicKey {
	sum := new(edwards25519.Point).Add(p.point, pointOf(other))
	if sum.Equal(edwards25519.NewIdentityPoint()) == 1 {
		panic("point addition reached the identity")
	}
	return &publicKey{point: sum}
}

func (p *publicKey) SubPublic(other crypto.PublicKey) crypto.PublicKey {
	diff := new(edwards25519.Point).Subtract(p.point, pointOf(other))
	if diff.Equal(edwards25519.NewIdentityPoint()) == 1 {
		panic("point subtraction reached the identity")
	}
	return &publicKey{point: diff}
}

func (p *publicKey) Verify(message []byte, sig crypto.Signature) bool {
	if _, err := new(edwards25519.Point).SetBytes(sig[:32]); err != nil {
		return false
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	k := challengeScalar(sig[:32], p.point.Bytes(), message)
	negK := edwards25519.NewScalar().Negate(k)
	// s·B - k·A must land back on the nonce commitment.
	expected := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(negK, p.point, s)
	return subtle.ConstantTimeCompare(expected.Bytes(), sig[:32]) == 1
}

func pointOf(p crypto.PublicKey) *edwards25519.Point {
	if ep, ok := p.(*publicKey); ok {
		return ep.point
	}
	point, err := new(edwards25519.Point).SetBytes(p.Bytes())
	if err != nil {
		panic(err)
	}
	return point
}
