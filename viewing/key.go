// Package viewing implements the disclosure side of the protocol: a key
// hierarchy that grants controlled read access to payments without ever
// granting spending authority, authenticated encryption keyed from those
// keys, and the sharing and ownership-proof flows auditors rely on.
package viewing

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sipprotocol/sip/crypto"
	"golang.org/x/crypto/hkdf"
)

type KeyType uint8

const (
	KeyTypeIncoming KeyType = iota + 1
	KeyTypeOutgoing
	KeyTypeFull
	KeyTypeTimeBounded
)

// Capability is the fixed permission matrix per key type. The type set is
// closed; there is no way to mint a capability combination outside it.
type Capability uint8

const (
	CapIdentifyIncoming Capability = 1 << iota
	CapDecryptIncoming
	CapIdentifyOutgoing
	CapDecryptOutgoing
)

const (
	labelIncoming = "SIP/viewing/incoming"
	labelOutgoing = "SIP/viewing/outgoing"
	labelWindow   = "SIP/viewing/%d-%d"
)

var ErrNotMasterKey = errors.New("derivation requires a full viewing key")

// Key is one node of the viewing-key hierarchy. It can identify and decrypt
// what its capabilities allow, and nothing else; spending authority never
// flows through it.
type Key struct {
	Type       KeyType
	Label      string
	PrivateKey crypto.PrivateKey
	PublicKey  crypto.PublicKey
	CreatedAt  time.Time
	ValidFrom  time.Time
	ValidUntil time.Time
}

// GenerateKey draws a fresh random master (full) viewing key.
func GenerateKey(c crypto.Curve, label string) *Key {
	priv := c.GeneratePrivateKey()
	return &Key{
		Type:       KeyTypeFull,
		Label:      label,
		PrivateKey: priv,
		PublicKey:  priv.Public(),
		CreatedAt:  time.Now(),
	}
}

// DeriveIncomingKey derives the inbound-only key, a pure function of the
// master secret and its label, reproducible forever from the same master.
func DeriveIncomingKey(master *Key) (*Key, error) {
	return deriveKey(master, KeyTypeIncoming, labelIncoming, time.Time{}, time.Time{})
}

func DeriveOutgoingKey(master *Key) (*Key, error) {
	return deriveKey(master, KeyTypeOutgoing, labelOutgoing, time.Time{}, time.Time{})
}

// DeriveTimeBoundedKey derives a full-capability key scoped to a validity
// window. The engine records the window; enforcing wall-clock time against
// it is the caller's concern.
func DeriveTimeBoundedKey(master *Key, from, until time.Time) (*Key, error) {
	if !until.After(from) {
		return nil, fmt.Errorf("invalid validity window %s %s", from, until)
	}
	label := fmt.Sprintf(labelWindow, from.Unix(), until.Unix())
	return deriveKey(master, KeyTypeTimeBounded, label, from, until)
}

func deriveKey(master *Key, typ KeyType, label string, from, until time.Time) (*Key, error) {
	if master == nil || master.Type != KeyTypeFull {
		return nil, ErrNotMasterKey
	}
	secret := master.PrivateKey.Key()
	reader := hkdf.New(sha256.New, secret[:], nil, []byte(label))
	var seed [64]byte
	if _, err := io.ReadFull(reader, seed[:]); err != nil {
		return nil, err
	}
	priv, err := master.PrivateKey.Curve().PrivateKeyFromSeed(seed[:])
	if err != nil {
		return nil, err
	}
	return &Key{
		Type:       typ,
		Label:      label,
		PrivateKey: priv,
		PublicKey:  priv.Public(),
		CreatedAt:  time.Now(),
		ValidFrom:  from,
		ValidUntil: until,
	}, nil
}

func (k *Key) Capabilities() Capability {
	switch k.Type {
	case KeyTypeIncoming:
		return CapIdentifyIncoming | CapDecryptIncoming
	case KeyTypeOutgoing:
		return CapIdentifyOutgoing | CapDecryptOutgoing
	case KeyTypeFull, KeyTypeTimeBounded:
		return CapIdentifyIncoming | CapDecryptIncoming | CapIdentifyOutgoing | CapDecryptOutgoing
	}
	return 0
}

func (k *Key) Can(c Capability) bool {
	return k.Capabilities()&c == c
}

// Valid reports whether the key's window covers the given instant. Keys
// without a window are always valid.
func (k *Key) Valid(at time.Time) bool {
	if k.Type != KeyTypeTimeBounded {
		return true
	}
	return !at.Before(k.ValidFrom) && at.Before(k.ValidUntil)
}

// Hash is the one-way commitment to the key's identity, safe to publish
// on-chain for auditor discovery without revealing the key.
func (k *Key) Hash() crypto.Hash {
	return ComputeKeyHash(k.PublicKey)
}

func ComputeKeyHash(pub crypto.PublicKey) crypto.Hash {
	return crypto.NewHash(pub.Bytes())
}

func (t KeyType) String() string {
	switch t {
	case KeyTypeIncoming:
		return "incoming"
	case KeyTypeOutgoing:
		return "outgoing"
	case KeyTypeFull:
		return "full"
	case KeyTypeTimeBounded:
		return "time-bounded"
	}
	return fmt.Sprintf("invalid:%d", uint8(t))
}
