package stealth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/sipprotocol/sip/crypto"
)

var ErrNotRecipient = errors.New("not the intended recipient")

// Announcement is what a sender publishes alongside a transfer: the one-time
// address identifier, the ephemeral public key the recipient needs for the
// ECDH exchange, and the one-byte view tag that lets scanners drop roughly
// 255 of 256 foreign announcements before any curve arithmetic.
type Announcement struct {
	Address            crypto.Hash
	EphemeralPublicKey []byte
	ViewTag            byte
}

// Recovery carries the recovered spending authority over one one-time
// address. Calling code must never persist it in plaintext.
type Recovery struct {
	Address            crypto.Hash
	EphemeralPublicKey []byte
	PrivateKey         crypto.PrivateKey
}

// GenerateStealthAddress derives a fresh one-time address for the recipient.
// A fresh ephemeral secret is drawn per call; reusing one across transfers
// links the payments together.
func GenerateStealthAddress(meta *MetaAddress) (*Announcement, crypto.Hash) {
	r := meta.PublicSpendKey.Curve().GeneratePrivateKey()
	return DeriveStealthAddress(r, meta)
}

// DeriveStealthAddress is the deterministic inner step of
// GenerateStealthAddress, split out for protocol test vectors.
func DeriveStealthAddress(r crypto.PrivateKey, meta *MetaAddress) (*Announcement, crypto.Hash) {
	stealthPub, shared := crypto.DeriveStealthPublicKey(r, meta.PublicSpendKey, meta.PublicViewKey)
	return &Announcement{
		Address:            crypto.NewHash(stealthPub.Bytes()),
		EphemeralPublicKey: r.Public().Bytes(),
		ViewTag:            crypto.ViewTag(shared),
	}, shared
}

// CheckStealthAddress reports whether the announcement belongs to the holder
// of the given private keys. The view tag is compared first as the cheap
// rejection path; only on a tag match is the full one-time key recomputed
// and compared in constant time. Any parse failure is a non-match, never an
// error, since scans must tolerate malformed third-party announcements.
func CheckStealthAddress(a *Announcement, spend, view crypto.PrivateKey) bool {
	if a == nil || spend == nil || view == nil {
		return false
	}
	c := spend.Curve()
	R, err := c.PublicKeyFromBytes(a.EphemeralPublicKey)
	if err != nil {
		return false
	}
	shared := crypto.SharedSecretHash(spend, R)
	if crypto.ViewTag(shared) != a.ViewTag {
		return false
	}
	return addressMatches(shared, view, a.Address)
}

// addressMatches finishes a check from an already derived shared-secret
// digest, so callers holding one never redo the ECDH multiplication.
func addressMatches(shared crypto.Hash, view crypto.PrivateKey, address crypto.Hash) bool {
	expected := view.Curve().ScalarFromHash(shared).Public().AddPublic(view.Public())
	expectedAddress := crypto.NewHash(expected.Bytes())
	return subtle.ConstantTimeCompare(expectedAddress[:], address[:]) == 1
}

// DeriveStealthPrivateKey recovers the one-time private key, the only scalar
// whose public image is the announced address. It fails rather than hand
// back a key for an announcement that is not ours.
func DeriveStealthPrivateKey(a *Announcement, spend, view crypto.PrivateKey) (*Recovery, error) {
	c := spend.Curve()
	R, err := c.PublicKeyFromBytes(a.EphemeralPublicKey)
	if err != nil {
		return nil, err
	}
	priv := crypto.DeriveStealthPrivateKey(R, spend, view)
	address := crypto.NewHash(priv.Public().Bytes())
	if subtle.ConstantTimeCompare(address[:], a.Address[:]) != 1 {
		return nil, ErrNotRecipient
	}
	return &Recovery{
		Address:            a.Address,
		EphemeralPublicKey: a.EphemeralPublicKey,
		PrivateKey:         priv,
	}, nil
}

// Marshal renders the fixed wire form address(32) || viewTag(1) || ephemeral.
func (a *Announcement) Marshal() []byte {
	data := make([]byte, 0, len(a.Address)+1+len(a.EphemeralPublicKey))
	data = append(data, a.Address[:]...)
	data = append(data, a.ViewTag)
	return append(data, a.EphemeralPublicKey...)
}

func UnmarshalAnnouncement(data []byte) (*Announcement, error) {
	if len(data) < 33+32 {
		return nil, crypto.ErrInvalidEncoding
	}
	a := &Announcement{ViewTag: data[32]}
	copy(a.Address[:], data[:32])
	a.EphemeralPublicKey = append([]byte{}, data[33:]...)
	return a, nil
}

type announcementJSON struct {
	Address            crypto.Hash `json:"address"`
	EphemeralPublicKey string      `json:"ephemeral"`
	ViewTag            byte        `json:"viewTag"`
}

func (a Announcement) MarshalJSON() ([]byte, error) {
	return json.Marshal(announcementJSON{
		Address:            a.Address,
		EphemeralPublicKey: crypto.EncodeHex(a.EphemeralPublicKey),
		ViewTag:            a.ViewTag,
	})
}

func (a *Announcement) UnmarshalJSON(b []byte) error {
	var aj announcementJSON
	if err := json.Unmarshal(b, &aj); err != nil {
		return err
	}
	eph, err := crypto.DecodeHex(aj.EphemeralPublicKey)
	if err != nil {
		return err
	}
	a.Address = aj.Address
	a.EphemeralPublicKey = eph
	a.ViewTag = aj.ViewTag
	return nil
}
