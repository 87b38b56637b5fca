package crypto

import (
	"fmt"
	"strconv"
)

// Signature is a 64-byte Schnorr signature: the nonce commitment followed by
// the response scalar. Both supported curves fit this layout, secp256k1 via
// its x-only commitment form and ed25519 via the compressed point.
type Signature [64]byte

func SignatureFromString(src string) (Signature, error) {
	var sig Signature
	data, err := DecodeHex(src)
	if err != nil {
		return sig, err
	}
	if len(data) != len(sig) {
		return sig, fmt.Errorf("invalid signature length %d", len(data))
	}
	copy(sig[:], data)
	return sig, nil
}

func (s Signature) String() string {
	return EncodeHex(s[:])
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

func (s *Signature) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	sig, err := SignatureFromString(unquoted)
	if err != nil {
		return err
	}
	copy(s[:], sig[:])
	return nil
}
