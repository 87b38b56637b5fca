package secp256k1

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/sipprotocol/sip/crypto"
)

type privateKey struct {
	scalar secp256k1.ModNScalar
}

func (p *privateKey) String() string {
	return p.Key().String()
}

func (p *privateKey) Key() crypto.Key {
	return crypto.Key(p.scalar.Bytes())
}

func (p *privateKey) Curve() crypto.Curve {
	return instance
}

func (p *privateKey) Public() crypto.PublicKey {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&p.scalar, &result)
	result.ToAffine()
	return &publicKey{point: secp256k1.NewPublicKey(&result.X, &result.Y)}
}

func (p *privateKey) AddPrivate(other crypto.PrivateKey) crypto.PrivateKey {
	var sum secp256k1.ModNScalar
	sum.Set(&p.scalar)
	o := scalarOf(other)
	sum.Add(&o)
	return &privateKey{scalar: sum}
}

func (p *privateKey) SubPrivate(other crypto.PrivateKey) crypto.PrivateKey {
	var neg secp256k1.ModNScalar
	o := scalarOf(other)
	neg.NegateVal(&o)
	neg.Add(&p.scalar)
	return &privateKey{scalar: neg}
}

func (p *privateKey) ScalarMult(pub crypto.PublicKey) crypto.PublicKey {
	var point, result secp256k1.JacobianPoint
	pointOf(pub).AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&p.scalar, &point, &result)
	if result.Z.IsZero() {
		panic("scalar mult reached the point at infinity")
	}
	result.ToAffine()
	return &publicKey{point: secp256k1.NewPublicKey(&result.X, &result.Y)}
}

func (p *privateKey) Sign(message []byte) crypto.Signature {
	digest := crypto.NewHash(message)
	sig, err := schnorr.Sign(secp256k1.NewPrivateKey(&p.scalar), digest[:])
	if err != nil {
		panic(err)
	}
	var out crypto.Signature
	copy(out[:], sig.Serialize())
	return out
}

func scalarOf(p crypto.PrivateKey) secp256k1.ModNScalar {
	if sp, ok := p.(*privateKey); ok {
		return sp.scalar
	}
	var s secp256k1.ModNScalar
	k := p.Key()
	s.SetBytes((*[32]byte)(&k))
	return s
}
