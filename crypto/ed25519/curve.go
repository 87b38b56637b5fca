package ed25519

import (
	"encoding/binary"
	"fmt"
	"sync"

	"filippo.io/edwards25519"
	"github.com/sipprotocol/sip/crypto"
)

const CurveName = "ed25519"

// PointSize is the compressed edwards encoding length.
const PointSize = 32

type curveImpl struct {
	generatorH     crypto.PublicKey
	generatorHOnce sync.Once
}

var instance = &curveImpl{}

func init() {
	crypto.RegisterCurve(instance)
}

func Curve() crypto.Curve {
	return instance
}

func (c *curveImpl) Name() string {
	return CurveName
}

func (c *curveImpl) PointSize() int {
	return PointSize
}

func (c *curveImpl) GeneratePrivateKey() crypto.PrivateKey {
	for {
		var seed [64]byte
		crypto.ReadRand(seed[:])
		s, err := edwards25519.NewScalar().SetUniformBytes(seed[:])
		if err != nil {
			panic(err)
		}
		if s.Equal(edwards25519.NewScalar()) == 1 {
			continue
		}
		return &privateKey{scalar: s}
	}
}

func (c *curveImpl) PrivateKeyFromSeed(seed []byte) (crypto.PrivateKey, error) {
	if len(seed) != 64 {
		return nil, crypto.ErrInvalidEncoding
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(seed)
	if err != nil {
		return nil, crypto.ErrInvalidEncoding
	}
	if s.Equal(edwards25519.NewScalar()) == 1 {
		return nil, crypto.ErrZeroScalar
	}
	return &privateKey{scalar: s}, nil
}

func (c *curveImpl) PrivateKeyFromKey(k crypto.Key) (crypto.PrivateKey, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(k[:])
	if err != nil {
		return nil, crypto.ErrInvalidEncoding
	}
	if s.Equal(edwards25519.NewScalar()) == 1 {
		return nil, crypto.ErrZeroScalar
	}
	return &privateKey{scalar: s}, nil
}

func (c *curveImpl) PublicKeyFromBytes(b []byte) (crypto.PublicKey, error) {
	if len(b) != PointSize {
		return nil, crypto.ErrInvalidEncoding
	}
	point, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, crypto.ErrInvalidPublicKey
	}
	if point.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, crypto.ErrInvalidPublicKey
	}
	// Reject small-order and mixed-order points so ECDH secrets always
	// live in the prime-order subgroup.
	cleared := new(edwards25519.Point).MultByCofactor(point)
	if cleared.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, crypto.ErrInvalidPublicKey
	}
	return &publicKey{point: point}, nil
}

func (c *curveImpl) ScalarFromUint64(v uint64) crypto.PrivateKey {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], v)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return &privateKey{scalar: s}
}

// ScalarFromHash reduces a digest modulo the group order, little-endian per
// the curve's native convention.
func (c *curveImpl) ScalarFromHash(h crypto.Hash) crypto.PrivateKey {
	var wide [64]byte
	copy(wide[:32], h[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return &privateKey{scalar: s}
}

// GeneratorH builds the independent Pedersen generator: the first NUMS
// candidate that decodes as a curve point, cleared of its cofactor and
// rejected if that lands on the identity. Shared vector: counter 0.
func (c *curveImpl) GeneratorH() crypto.PublicKey {
	c.generatorHOnce.Do(func() {
		for counter := uint32(0); counter < crypto.GeneratorRetryBudget; counter++ {
			digest := crypto.DomainHash(crypto.GeneratorDomain, crypto.CounterBytes(counter))
			point, err := new(edwards25519.Point).SetBytes(digest[:])
			if err != nil {
				continue
			}
			point.MultByCofactor(point)
			if point.Equal(edwards25519.NewIdentityPoint()) == 1 {
				continue
			}
			c.generatorH = &publicKey{point: point}
			return
		}
		panic(fmt.Errorf("ed25519 generator H retry budget exhausted"))
	})
	return c.generatorH
}
