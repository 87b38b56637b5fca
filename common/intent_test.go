package common

import (
	"testing"

	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/crypto/secp256k1"
	"github.com/stretchr/testify/assert"
)

func testIntent() *Intent {
	intent := NewIntent(PrivacyCompliant)
	intent.StealthAddress = crypto.NewHash([]byte("stealth"))
	intent.ViewingKeyHash = crypto.NewHash([]byte("viewing"))
	intent.ViewTag = 0x7f
	for i := range intent.SenderCommitment {
		intent.SenderCommitment[i] = byte(i)
		intent.EphemeralPublicKey[i] = byte(i + 1)
		intent.AmountCommitment[i] = byte(i + 2)
	}
	return intent
}

func TestIntentCodec(t *testing.T) {
	assert := assert.New(t)

	intent := testIntent()
	data := intent.Marshal()
	assert.Len(data, IntentSize)

	decoded, err := UnmarshalIntent(data)
	assert.Nil(err)
	assert.Equal(intent, decoded)
	assert.Equal(intent.Hash(), decoded.Hash())

	_, err = UnmarshalIntent(data[:IntentSize-1])
	assert.Equal(crypto.ErrInvalidEncoding, err)
	_, err = UnmarshalIntent(append(data, 0))
	assert.Equal(crypto.ErrInvalidEncoding, err)

	data[0] = 9
	_, err = UnmarshalIntent(data)
	assert.NotNil(err)

	data[0] = IntentVersion
	data[1] = 200
	_, err = UnmarshalIntent(data)
	assert.Equal(crypto.ErrInvalidEncoding, err)
}

func TestIntentSignature(t *testing.T) {
	assert := assert.New(t)
	c := secp256k1.Curve()

	intent := testIntent()
	priv := c.GeneratePrivateKey()
	intent.SignWith(priv)
	assert.True(intent.VerifySignature(priv.Public()))

	// the signature survives the codec
	decoded, err := UnmarshalIntent(intent.Marshal())
	assert.Nil(err)
	assert.True(decoded.VerifySignature(priv.Public()))

	decoded.Timestamp++
	assert.False(decoded.VerifySignature(priv.Public()))
	assert.False(intent.VerifySignature(c.GeneratePrivateKey().Public()))
}

func TestIntentNonce(t *testing.T) {
	assert := assert.New(t)

	a := NewIntent(PrivacyShielded)
	b := NewIntent(PrivacyShielded)
	assert.NotEqual(a.Nonce, b.Nonce)
	assert.Equal(uint8(IntentVersion), a.Version)
}

func TestPrivacyLevel(t *testing.T) {
	assert := assert.New(t)

	for _, l := range []PrivacyLevel{PrivacyTransparent, PrivacyShielded, PrivacyCompliant} {
		parsed, err := PrivacyLevelFromString(l.String())
		assert.Nil(err)
		assert.Equal(l, parsed)
	}
	_, err := PrivacyLevelFromString("opaque")
	assert.NotNil(err)
	assert.Equal("invalid:0", PrivacyLevel(0).String())
}
