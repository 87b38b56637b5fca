package ed25519

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
	"github.com/sipprotocol/sip/crypto"
)

type privateKey struct {
	scalar *edwards25519.Scalar
}

func (p *privateKey) String() string {
	return p.Key().String()
}

func (p *privateKey) Key() crypto.Key {
	var k crypto.Key
	copy(k[:], p.scalar.Bytes())
	return k
}

func (p *privateKey) Curve() crypto.Curve {
	return instance
}

func (p *privateKey) Public() crypto.PublicKey {
	return &publicKey{point: new(edwards25519.Point).ScalarBaseMult(p.scalar)}
}

func (p *privateKey) AddPrivate(other crypto.PrivateKey) crypto.PrivateKey {
	sum := edwards25519.NewScalar().Add(p.scalar, scalarOf(other))
	return &privateKey{scalar: sum}
}

func (p *privateKey) SubPrivate(other crypto.PrivateKey) crypto.PrivateKey {
	diff := edwards25519.NewScalar().Subtract(p.scalar, scalarOf(other))
	return &privateKey{scalar: diff}
}

func (p *privateKey) ScalarMult(pub crypto.PublicKey) crypto.PublicKey {
	result := new(edwards25519.Point).ScalarMult(p.scalar, pointOf(pub))
	if result.Equal(edwards25519.NewIdentityPoint()) == 1 {
		panic("scalar mult reached the identity")
	}
	return &publicKey{point: result}
}

// Sign produces a Schnorr signature with a derandomized nonce: the nonce is
// hashed from the scalar and the message, so a broken entropy source can
// never repeat a nonce across two messages.
func (p *privateKey) Sign(message []byte) crypto.Signature {
	nonceDigest := sha512.New()
	nonceDigest.Write(p.scalar.Bytes())
	nonceDigest.Write(message)
	r, err := edwards25519.NewScalar().SetUniformBytes(nonceDigest.Sum(nil))
	if err != nil {
		panic(err)
	}

	R := new(edwards25519.Point).ScalarBaseMult(r)
	A := new(edwards25519.Point).ScalarBaseMult(p.scalar)

	k := challengeScalar(R.Bytes(), A.Bytes(), message)
	s := edwards25519.NewScalar().MultiplyAdd(k, p.scalar, r)

	var sig crypto.Signature
	copy(sig[:32], R.Bytes())
	copy(sig[32:], s.Bytes())
	return sig
}

func challengeScalar(R, A, message []byte) *edwards25519.Scalar {
	digest := sha512.New()
	digest.Write(R)
	digest.Write(A)
	digest.Write(message)
	k, err := edwards25519.NewScalar().SetUniformBytes(digest.Sum(nil))
	if err != nil {
		panic(err)
	}
	return k
}

func scalarOf(p crypto.PrivateKey) *edwards25519.Scalar {
	if ep, ok := p.(*privateKey); ok {
		return ep.scalar
	}
	k := p.Key()
	s, err := edwards25519.NewScalar().SetCanonicalBytes(k[:])
	if err != nil {
		panic(err)
	}
	return s
}
