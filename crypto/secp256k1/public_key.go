package secp256k1

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/sipprotocol/sip/crypto"
)

type publicKey struct {
	point *secp256k1.PublicKey
}

func (p *publicKey) String() string {
	return crypto.EncodeHex(p.Bytes())
}

func (p *publicKey) Bytes() []byte {
	return p.point.SerializeCompressed()
}

func (p *publicKey) Curve() crypto.Curve {
	return instance
}

func (p *publicKey) AddPublic(other crypto.PublicKey) crypto.PublicKey {
	var a, b, sum secp256k1.JacobianPoint
	p.point.AsJacobian(&a)
	pointOf(other).AsJacobian(&b)
	secp256k1.AddNonConst(&a, &b, &sum)
	if sum.Z.IsZero() {
		panic("point addition reached the point at infinity")
	}
	sum.ToAffine()
	return &publicKey{point: secp256k1.NewPublicKey(&sum.X, &sum.Y)}
}

func (p *publicKey) SubPublic(other crypto.PublicKey) crypto.PublicKey {
	var a, b, diff secp256k1.JacobianPoint
	p.point.AsJacobian(&a)
	pointOf(other).AsJacobian(&b)
	b.Y.Negate(1)
	b.Y.Normalize()
	secp256k1.AddNonConst(&a, &b, &diff)
	if diff.Z.IsZero() {
		panic("point subtraction reached the point at infinity")
	}
	diff.ToAffine()
	return &publicKey{point: secp256k1.NewPublicKey(&diff.X, &diff.Y)}
}

func (p *publicKey) Verify(message []byte, sig crypto.Signature) bool {
	parsed, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	digest := crypto.NewHash(message)
	return parsed.Verify(digest[:], p.point)
}

func pointOf(p crypto.PublicKey) *secp256k1.PublicKey {
	if sp, ok := p.(*publicKey); ok {
		return sp.point
	}
	pub, err := secp256k1.ParsePubKey(p.Bytes())
	if err != nil {
		panic(err)
	}
	return pub
}
