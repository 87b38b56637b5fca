package crypto

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const KeySize = 32

// Key is the fixed 32-byte scalar encoding shared by all supported curves.
// Point encodings are curve specific and travel as byte slices.
type Key [KeySize]byte

func KeyFromString(src string) (Key, error) {
	var key Key
	data, err := DecodeHex(src)
	if err != nil {
		return key, err
	}
	if len(data) != len(key) {
		return key, fmt.Errorf("invalid key length %d", len(data))
	}
	copy(key[:], data)
	return key, nil
}

func (k Key) HasValue() bool {
	zero := Key{}
	return k != zero
}

func (k Key) String() string {
	return EncodeHex(k[:])
}

func (k Key) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

func (k *Key) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	key, err := KeyFromString(unquoted)
	if err != nil {
		return err
	}
	copy(k[:], key[:])
	return nil
}

// EncodeHex renders b in the protocol boundary convention, 0x-prefixed
// lowercase hex.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// DecodeHex parses a 0x-prefixed lowercase hex string. A missing prefix,
// an odd length or an uppercase digit is an encoding error, never a silent
// default.
func DecodeHex(src string) ([]byte, error) {
	if !strings.HasPrefix(src, "0x") {
		return nil, ErrInvalidEncoding
	}
	for _, c := range src[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, ErrInvalidEncoding
		}
	}
	data, err := hex.DecodeString(src[2:])
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return data, nil
}
