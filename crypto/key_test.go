package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexConvention(t *testing.T) {
	assert := assert.New(t)

	b := []byte{0xab, 0x00, 0xff}
	assert.Equal("0xab00ff", EncodeHex(b))

	d, err := DecodeHex("0xab00ff")
	assert.Nil(err)
	assert.Equal(b, d)

	_, err = DecodeHex("ab00ff")
	assert.Equal(ErrInvalidEncoding, err)
	_, err = DecodeHex("0xab0")
	assert.Equal(ErrInvalidEncoding, err)
	_, err = DecodeHex("0xzz")
	assert.Equal(ErrInvalidEncoding, err)
	// the boundary convention is lowercase only
	_, err = DecodeHex("0xAB00FF")
	assert.Equal(ErrInvalidEncoding, err)
	_, err = DecodeHex("0xab00fF")
	assert.Equal(ErrInvalidEncoding, err)
}

func TestKey(t *testing.T) {
	assert := assert.New(t)

	var key Key
	assert.False(key.HasValue())
	key[7] = 1
	assert.True(key.HasValue())
	assert.Len(key.String(), 66)

	parsed, err := KeyFromString(key.String())
	assert.Nil(err)
	assert.Equal(key, parsed)

	_, err = KeyFromString("0xab00ff")
	assert.NotNil(err)

	data, err := json.Marshal(key)
	assert.Nil(err)
	var back Key
	assert.Nil(json.Unmarshal(data, &back))
	assert.Equal(key, back)
}

func TestHash(t *testing.T) {
	assert := assert.New(t)

	h := NewHash([]byte("sip"))
	assert.True(h.HasValue())
	assert.Len(h.String(), 66)

	parsed, err := HashFromString(h.String())
	assert.Nil(err)
	assert.Equal(h, parsed)

	// DomainHash(d, a, b) must equal hashing the concatenation by hand.
	dh := DomainHash("domain", []byte("aa"), []byte("bb"))
	assert.Equal(NewHash([]byte("domainaabb")), dh)
	assert.NotEqual(dh, DomainHash("domain2", []byte("aa"), []byte("bb")))
}

func TestCounterBytes(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]byte{0, 0, 0, 0}, CounterBytes(0))
	assert.Equal([]byte{0, 0, 1, 2}, CounterBytes(258))
}
