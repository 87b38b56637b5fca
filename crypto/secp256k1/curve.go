package secp256k1

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sipprotocol/sip/crypto"
)

const CurveName = "secp256k1"

// PointSize is the compressed point encoding length, parity byte plus the
// 32-byte x coordinate.
const PointSize = 33

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
		var seed [32]byte
		crypto.ReadRand(seed[:])
		var s secp256k1.ModNScalar
		if overflow := s.SetBytes(&seed); overflow != 0 || s.IsZero() {
			continue
		}
		return &privateKey{scalar: s}
	}
}

// seedFold is 2^256 mod n, the weight of the high half when a 64-byte
// big-endian seed is folded into the scalar field.
var seedFold = func() secp256k1.ModNScalar {
	b := [32]byte{
		15: 0x01,
		16: 0x45, 17: 0x51, 18: 0x23, 19: 0x19, 20: 0x50, 21: 0xb7, 22: 0x5f, 23: 0xc4,
		24: 0x40, 25: 0x2d, 26: 0xa1, 27: 0x73, 28: 0x2f, 29: 0xc9, 30: 0xbe, 31: 0xbf,
	}
	var s secp256k1.ModNScalar
	s.SetBytes(&b)
	return s
}()

// PrivateKeyFromSeed reduces a 64-byte seed modulo the group order. Used for
// deterministic derivations, never for fresh identities. The seed is secret
// material, so the reduction runs as hi·2^256 + lo over constant-time field
// scalars, never through variable-time bignum division.
func (c *curveImpl) PrivateKeyFromSeed(seed []byte) (crypto.PrivateKey, error) {
	if len(seed) != 64 {
		return nil, crypto.ErrInvalidEncoding
	}
	var hb, lb [32]byte
	copy(hb[:], seed[:32])
	copy(lb[:], seed[32:])
	var hi, lo, s secp256k1.ModNScalar
	hi.SetBytes(&hb)
	lo.SetBytes(&lb)
	s.Mul2(&hi, &seedFold).Add(&lo)
	if s.IsZero() {
		return nil, crypto.ErrZeroScalar
	}
	return &privateKey{scalar: s}, nil
}

func (c *curveImpl) PrivateKeyFromKey(k crypto.Key) (crypto.PrivateKey, error) {
	var s secp256k1.ModNScalar
	if overflow := s.SetBytes((*[32]byte)(&k)); overflow != 0 {
		return nil, crypto.ErrInvalidEncoding
	}
	if s.IsZero() {
		return nil, crypto.ErrZeroScalar
	}
	return &privateKey{scalar: s}, nil
}

func (c *curveImpl) PublicKeyFromBytes(b []byte) (crypto.PublicKey, error) {
	if len(b) != PointSize {
		return nil, crypto.ErrInvalidEncoding
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, crypto.ErrInvalidPublicKey
	}
	return &publicKey{point: pub}, nil
}

func (c *curveImpl) ScalarFromUint64(v uint64) crypto.PrivateKey {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], v)
	var s secp256k1.ModNScalar
	s.SetBytes(&b)
	return &privateKey{scalar: s}
}

// ScalarFromHash reduces a digest modulo the group order, big-endian per the
// curve's native convention.
func (c *curveImpl) ScalarFromHash(h crypto.Hash) crypto.PrivateKey {
	var s secp256k1.ModNScalar
	s.SetBytes((*[32]byte)(&h))
	return &privateKey{scalar: s}
}

// GeneratorH builds the independent Pedersen generator: the first NUMS
// candidate x coordinate that decodes as a compressed point with even y.
// Shared vector: counter 2. Built once per process.
func (c *curveImpl) GeneratorH() crypto.PublicKey {
	c.generatorHOnce.Do(func() {
		for counter := uint32(0); counter < crypto.GeneratorRetryBudget; counter++ {
			digest := crypto.DomainHash(crypto.GeneratorDomain, crypto.CounterBytes(counter))
			candidate := append([]byte{0x02}, digest[:]...)
			pub, err := secp256k1.ParsePubKey(candidate)
			if err != nil {
				continue
			}
			c.generatorH = &publicKey{point: pub}
			return
		}
		panic(fmt.Errorf("secp256k1 generator H retry budget exhausted"))
	})
	return c.generatorH
}
