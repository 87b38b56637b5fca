package crypto

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding  = errors.New("invalid encoding")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrZeroScalar       = errors.New("zero scalar where non-zero required")
)

type (
	// PrivateKey is a non-zero scalar reduced modulo the group order.
	PrivateKey interface {
		String() string
		Key() Key
		Curve() Curve
		Public() PublicKey
		AddPrivate(p PrivateKey) PrivateKey
		SubPrivate(p PrivateKey) PrivateKey
		ScalarMult(pub PublicKey) PublicKey
		Sign(message []byte) Signature
	}

	// PublicKey is a validated group element, never the identity.
	PublicKey interface {
		String() string
		Bytes() []byte
		Curve() Curve
		AddPublic(p PublicKey) PublicKey
		SubPublic(p PublicKey) PublicKey
		Verify(message []byte, sig Signature) bool
	}

	Curve interface {
		Name() string
		PointSize() int
		GeneratePrivateKey() PrivateKey
		PrivateKeyFromSeed(seed []byte) (PrivateKey, error)
		PrivateKeyFromKey(k Key) (PrivateKey, error)
		PublicKeyFromBytes(b []byte) (PublicKey, error)
		ScalarFromUint64(v uint64) PrivateKey
		ScalarFromHash(h Hash) PrivateKey
		GeneratorH() PublicKey
	}
)

// GeneratorDomain seeds the nothing-up-my-sleeve construction of the
// independent Pedersen generator H. The candidate for counter i is
// hash(GeneratorDomain || uint32be(i)); the first candidate that decodes
// as a valid curve point wins. Fixed across all implementations.
const GeneratorDomain = "SIP Protocol Pedersen Generator H"

// GeneratorRetryBudget bounds the NUMS counter search. Exhausting it means
// the curve integration is broken, not bad luck.
const GeneratorRetryBudget = 256

var curves = map[string]Curve{}

// RegisterCurve is called from curve backend init functions only.
func RegisterCurve(c Curve) {
	if _, found := curves[c.Name()]; found {
		panic(c.Name())
	}
	curves[c.Name()] = c
}

func CurveByName(name string) (Curve, error) {
	c := curves[name]
	if c == nil {
		return nil, fmt.Errorf("unknown curve %s", name)
	}
	return c, nil
}

// PublicKeysEqual compares two public keys by their encodings in constant
// time. Keys from different curves never compare equal.
func PublicKeysEqual(a, b PublicKey) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Curve().Name() != b.Curve().Name() {
		return false
	}
	return subtle.ConstantTimeCompare(a.Bytes(), b.Bytes()) == 1
}
