package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
)

type Hash [32]byte

// NewHash is the single protocol hash, SHA-256. Shared-secret digests, view
// tags, viewing-key hashes and NUMS candidates all go through it; mixing
// hash functions across the protocol would break the shared vectors.
func NewHash(data []byte) Hash {
	return sha256.Sum256(data)
}

// DomainHash prefixes the input with a domain string so digests from
// different protocol roles can never collide.
func DomainHash(domain string, data ...[]byte) Hash {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, d := range data {
		h.Write(d)
	}
	var out Hash
	h.Sum(out[:0])
	return out
}

// CounterBytes encodes a NUMS search counter, big-endian uint32.
func CounterBytes(counter uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], counter)
	return b[:]
}

func HashFromString(src string) (Hash, error) {
	var hash Hash
	data, err := DecodeHex(src)
	if err != nil {
		return hash, err
	}
	if len(data) != len(hash) {
		return hash, fmt.Errorf("invalid hash length %d", len(data))
	}
	copy(hash[:], data)
	return hash, nil
}

func (h Hash) HasValue() bool {
	zero := Hash{}
	return h != zero
}

func (h Hash) String() string {
	return EncodeHex(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(h.String())), nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	hash, err := HashFromString(unquoted)
	if err != nil {
		return err
	}
	copy(h[:], hash[:])
	return nil
}
