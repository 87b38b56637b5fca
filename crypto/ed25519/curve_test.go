package ed25519

import (
	"testing"

	"github.com/sipprotocol/sip/crypto"
	"github.com/stretchr/testify/assert"
)

// Shared cross-implementation vector for the NUMS generator.
const generatorHVector = "0xadf4e68d5441302adba69fffa535b14c59d31d89109b4455d43d94512c51869c"

func TestGeneratorH(t *testing.T) {
	assert := assert.New(t)

	H := Curve().GeneratorH()
	assert.Equal(generatorHVector, H.String())
	assert.Same(H, Curve().GeneratorH())
}

func TestCurveRegistration(t *testing.T) {
	assert := assert.New(t)

	c, err := crypto.CurveByName("ed25519")
	assert.Nil(err)
	assert.Equal(Curve(), c)
	assert.Equal("ed25519", c.Name())
	assert.Equal(32, c.PointSize())
}

func TestPrivateKey(t *testing.T) {
	assert := assert.New(t)
	c := Curve()

	a := c.GeneratePrivateKey()
	b := c.GeneratePrivateKey()
	assert.NotEqual(a.Key(), b.Key())

	sum := a.AddPrivate(b)
	assert.Equal(a.Key(), sum.SubPrivate(b).Key())
	assert.Equal(sum.Public().Bytes(), a.Public().AddPublic(b.Public()).Bytes())
	assert.Equal(a.Public().Bytes(), sum.Public().SubPublic(b.Public()).Bytes())

	restored, err := c.PrivateKeyFromKey(a.Key())
	assert.Nil(err)
	assert.Equal(a.Public().Bytes(), restored.Public().Bytes())

	_, err = c.PrivateKeyFromKey(crypto.Key{})
	assert.Equal(crypto.ErrZeroScalar, err)
}

func TestPrivateKeyFromSeed(t *testing.T) {
	assert := assert.New(t)
	c := Curve()

	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(255 - i)
	}
	a, err := c.PrivateKeyFromSeed(seed)
	assert.Nil(err)
	b, err := c.PrivateKeyFromSeed(seed)
	assert.Nil(err)
	assert.Equal(a.Key(), b.Key())

	// shared vector: the seed interpreted as a little-endian integer mod l
	assert.Equal("0x73a62f1f0d47e15bcd0cc7fd31ed06180c5d2154bf52595463b97a073770260e", a.String())

	_, err = c.PrivateKeyFromSeed(seed[:32])
	assert.Equal(crypto.ErrInvalidEncoding, err)
}

func TestPublicKeyFromBytes(t *testing.T) {
	assert := assert.New(t)
	c := Curve()

	pub := c.GeneratePrivateKey().Public()
	parsed, err := c.PublicKeyFromBytes(pub.Bytes())
	assert.Nil(err)
	assert.Equal(pub.Bytes(), parsed.Bytes())

	_, err = c.PublicKeyFromBytes(pub.Bytes()[:31])
	assert.Equal(crypto.ErrInvalidEncoding, err)

	// identity encoding
	identity := make([]byte, 32)
	identity[0] = 1
	_, err = c.PublicKeyFromBytes(identity)
	assert.Equal(crypto.ErrInvalidPublicKey, err)

	// canonical small-order point, must be rejected by the cofactor check
	smallOrder := make([]byte, 32)
	smallOrder[31] = 0x80
	_, err = c.PublicKeyFromBytes(smallOrder)
	assert.Equal(crypto.ErrInvalidPublicKey, err)
}

func TestScalarFromUint64(t *testing.T) {
	assert := assert.New(t)
	c := Curve()

	two := c.ScalarFromUint64(2)
	three := c.ScalarFromUint64(3)
	assert.Equal(c.ScalarFromUint64(5).Key(), two.AddPrivate(three).Key())
}

func TestSignVerify(t *testing.T) {
	assert := assert.New(t)
	c := Curve()

	priv := c.GeneratePrivateKey()
	msg := []byte("announcement payload")
	sig := priv.Sign(msg)
	assert.True(priv.Public().Verify(msg, sig))
	assert.False(priv.Public().Verify([]byte("announcement payloae"), sig))

	sig[63] ^= 1
	assert.False(priv.Public().Verify(msg, sig))

	other := c.GeneratePrivateKey()
	assert.False(other.Public().Verify(msg, priv.Sign(msg)))
}
