// Package common carries the settlement boundary: the canonical intent
// record exchanged with a settlement layer, the privacy level contract, and
// fixed-precision decimal amounts.
package common

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/sipprotocol/sip/crypto"
)

const (
	IntentVersion = 1

	// IntentSize is the fixed record length. Every field sits at a fixed
	// offset; there is no framing and no padding.
	IntentSize = 270
)

type PrivacyLevel uint8

const (
	// PrivacyTransparent hides nothing; the record is a plain transfer.
	PrivacyTransparent PrivacyLevel = iota + 1
	// PrivacyShielded hides amount and recipient with no disclosure path.
	PrivacyShielded
	// PrivacyCompliant hides like shielded but publishes the viewing key
	// hash so an authorized auditor can discover and request access.
	PrivacyCompliant
)

// Intent is the 270-byte settlement record:
// version(1) || privacyLevel(1) || senderCommitment(33) || stealthAddress(32)
// || ephemeralPublicKey(33) || viewTag(1) || amountCommitment(33)
// || viewingKeyHash(32) || timestamp(8 BE) || nonce(32) || signature(64).
type Intent struct {
	Version            uint8
	PrivacyLevel       PrivacyLevel
	SenderCommitment   [33]byte
	StealthAddress     crypto.Hash
	EphemeralPublicKey [33]byte
	ViewTag            byte
	AmountCommitment   [33]byte
	ViewingKeyHash     crypto.Hash
	Timestamp          uint64
	Nonce              [32]byte
	Signature          crypto.Signature
}

const (
	offPrivacyLevel     = 1
	offSenderCommitment = 2
	offStealthAddress   = 35
	offEphemeral        = 67
	offViewTag          = 100
	offAmountCommitment = 101
	offViewingKeyHash   = 134
	offTimestamp        = 166
	offNonce            = 174
	offSignature        = 206
)

// NewIntent fills the non-cryptographic envelope: current timestamp, fresh
// nonce, current version. Commitments, addresses and the signature are the
// caller's to set.
func NewIntent(level PrivacyLevel) *Intent {
	intent := &Intent{
		Version:      IntentVersion,
		PrivacyLevel: level,
		Timestamp:    uint64(time.Now().Unix()),
	}
	crypto.ReadRand(intent.Nonce[:])
	return intent
}

// Marshal renders the fixed 270-byte form.
func (t *Intent) Marshal() []byte {
	data := make([]byte, IntentSize)
	data[0] = t.Version
	data[offPrivacyLevel] = byte(t.PrivacyLevel)
	copy(data[offSenderCommitment:], t.SenderCommitment[:])
	copy(data[offStealthAddress:], t.StealthAddress[:])
	copy(data[offEphemeral:], t.EphemeralPublicKey[:])
	data[offViewTag] = t.ViewTag
	copy(data[offAmountCommitment:], t.AmountCommitment[:])
	copy(data[offViewingKeyHash:], t.ViewingKeyHash[:])
	binary.BigEndian.PutUint64(data[offTimestamp:], t.Timestamp)
	copy(data[offNonce:], t.Nonce[:])
	copy(data[offSignature:], t.Signature[:])
	return data
}

func UnmarshalIntent(data []byte) (*Intent, error) {
	if len(data) != IntentSize {
		return nil, crypto.ErrInvalidEncoding
	}
	if data[0] != IntentVersion {
		return nil, fmt.Errorf("unsupported intent version %d", data[0])
	}
	t := &Intent{
		Version:      data[0],
		PrivacyLevel: PrivacyLevel(data[offPrivacyLevel]),
		ViewTag:      data[offViewTag],
		Timestamp:    binary.BigEndian.Uint64(data[offTimestamp:]),
	}
	switch t.PrivacyLevel {
	case PrivacyTransparent, PrivacyShielded, PrivacyCompliant:
	default:
		return nil, crypto.ErrInvalidEncoding
	}
	copy(t.SenderCommitment[:], data[offSenderCommitment:])
	copy(t.StealthAddress[:], data[offStealthAddress:])
	copy(t.EphemeralPublicKey[:], data[offEphemeral:])
	copy(t.AmountCommitment[:], data[offAmountCommitment:])
	copy(t.ViewingKeyHash[:], data[offViewingKeyHash:])
	copy(t.Nonce[:], data[offNonce:])
	copy(t.Signature[:], data[offSignature:])
	return t, nil
}

// PayloadHash commits to every field before the signature; the signature
// signs this hash.
func (t *Intent) PayloadHash() crypto.Hash {
	return crypto.NewHash(t.Marshal()[:offSignature])
}

func (t *Intent) SignWith(priv crypto.PrivateKey) {
	h := t.PayloadHash()
	t.Signature = priv.Sign(h[:])
}

func (t *Intent) VerifySignature(pub crypto.PublicKey) bool {
	h := t.PayloadHash()
	return pub.Verify(h[:], t.Signature)
}

// Hash identifies the full record, signature included.
func (t *Intent) Hash() crypto.Hash {
	return crypto.NewHash(t.Marshal())
}

func (l PrivacyLevel) String() string {
	switch l {
	case PrivacyTransparent:
		return "transparent"
	case PrivacyShielded:
		return "shielded"
	case PrivacyCompliant:
		return "compliant"
	}
	return fmt.Sprintf("invalid:%d", uint8(l))
}

func PrivacyLevelFromString(s string) (PrivacyLevel, error) {
	switch s {
	case "transparent":
		return PrivacyTransparent, nil
	case "shielded":
		return PrivacyShielded, nil
	case "compliant":
		return PrivacyCompliant, nil
	}
	return 0, fmt.Errorf("unknown privacy level %s", s)
}
