// Package stealth implements reusable meta-addresses and the one-time
// addresses derived from them: a recipient publishes a (spend, view) key
// pair once, senders derive a fresh unlinkable address per transfer, and
// the recipient scans announcements to detect ownership and recover
// spending authority.
package stealth

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/sipprotocol/sip/crypto"
)

// Scheme is the literal URI scheme tag of serialized meta-addresses.
const Scheme = "sip"

// CompactPrefix marks the base58 compact encoding, in the network-id style
// of chain address formats.
const CompactPrefix = "SIP"

// DefaultCurveName is assumed when a meta-address URI carries no curve
// parameter.
const DefaultCurveName = "secp256k1"

var ErrInvalidMetaAddress = errors.New("invalid stealth meta address")

// MetaAddress is a recipient's reusable, publicly shared identity. It never
// expires; rotating to a fresh one never invalidates addresses already
// derived from it.
type MetaAddress struct {
	Chain          string
	Label          string
	PublicSpendKey crypto.PublicKey
	PublicViewKey  crypto.PublicKey
}

// GenerateMetaAddress draws two independent secret scalars for a fresh
// recipient identity. The private keys are returned once and never retained.
func GenerateMetaAddress(c crypto.Curve, chain string) (*MetaAddress, crypto.PrivateKey, crypto.PrivateKey) {
	spend := c.GeneratePrivateKey()
	view := c.GeneratePrivateKey()
	meta := &MetaAddress{
		Chain:          chain,
		PublicSpendKey: spend.Public(),
		PublicViewKey:  view.Public(),
	}
	return meta, spend, view
}

// NewMetaAddressFromSeed derives both keys deterministically from one seed,
// the view key from the double hash of it, for single-seed wallet backups.
func NewMetaAddressFromSeed(c crypto.Curve, chain string, seed []byte) (*MetaAddress, crypto.PrivateKey, crypto.PrivateKey, error) {
	hash1 := crypto.NewHash(seed)
	hash2 := crypto.NewHash(hash1[:])
	spend, err := c.PrivateKeyFromSeed(append(hash1[:], hash2[:]...))
	if err != nil {
		return nil, nil, nil, err
	}
	hash3 := crypto.NewHash(hash2[:])
	view, err := c.PrivateKeyFromSeed(append(hash2[:], hash3[:]...))
	if err != nil {
		return nil, nil, nil, err
	}
	meta := &MetaAddress{
		Chain:          chain,
		PublicSpendKey: spend.Public(),
		PublicViewKey:  view.Public(),
	}
	return meta, spend, view, nil
}

// String serializes to the URI form
// sip:<chain>:<spendKeyHex>:<viewKeyHex>[?curve=...&label=...].
func (m *MetaAddress) String() string {
	s := fmt.Sprintf("%s:%s:%s:%s", Scheme, m.Chain, m.PublicSpendKey.String(), m.PublicViewKey.String())
	query := url.Values{}
	if name := m.PublicSpendKey.Curve().Name(); name != DefaultCurveName {
		query.Set("curve", name)
	}
	if m.Label != "" {
		query.Set("label", m.Label)
	}
	if len(query) > 0 {
		s = s + "?" + query.Encode()
	}
	return s
}

// MetaAddressFromString parses the URI form. Anything other than exactly
// four colon-separated fields under a literal sip scheme is rejected.
func MetaAddressFromString(s string) (*MetaAddress, error) {
	base, rawQuery, _ := strings.Cut(s, "?")
	parts := strings.Split(base, ":")
	if len(parts) != 4 || parts[0] != Scheme {
		return nil, ErrInvalidMetaAddress
	}
	chain := parts[1]
	if chain == "" {
		return nil, ErrInvalidMetaAddress
	}

	curveName := DefaultCurveName
	var label string
	if rawQuery != "" {
		query, err := url.ParseQuery(rawQuery)
		if err != nil {
			return nil, ErrInvalidMetaAddress
		}
		if name := query.Get("curve"); name != "" {
			curveName = name
		}
		label = query.Get("label")
	}
	c, err := crypto.CurveByName(curveName)
	if err != nil {
		return nil, ErrInvalidMetaAddress
	}

	spendBytes, err := crypto.DecodeHex(parts[2])
	if err != nil {
		return nil, err
	}
	viewBytes, err := crypto.DecodeHex(parts[3])
	if err != nil {
		return nil, err
	}
	spend, err := c.PublicKeyFromBytes(spendBytes)
	if err != nil {
		return nil, err
	}
	view, err := c.PublicKeyFromBytes(viewBytes)
	if err != nil {
		return nil, err
	}
	return &MetaAddress{
		Chain:          chain,
		Label:          label,
		PublicSpendKey: spend,
		PublicViewKey:  view,
	}, nil
}

// PublicKeyBytes is the concatenated (spend, view) encoding used by the
// compact form and the meta-address hash.
func (m *MetaAddress) PublicKeyBytes() []byte {
	return append(m.PublicSpendKey.Bytes(), m.PublicViewKey.Bytes()...)
}

func (m *MetaAddress) Hash() crypto.Hash {
	return crypto.NewHash(m.PublicKeyBytes())
}

// Compact renders the chain-less base58 form with a 4-byte checksum,
// SIP<base58(spend||view||checksum)>.
func (m *MetaAddress) Compact() string {
	keyBts := m.PublicKeyBytes()
	data := append([]byte(CompactPrefix), keyBts...)
	checksum := crypto.NewHash(data)
	data = append(keyBts, checksum[:4]...)
	return CompactPrefix + base58.Encode(data)
}

// MetaAddressFromCompact reverses Compact for a known curve and chain.
func MetaAddressFromCompact(c crypto.Curve, chain, s string) (*MetaAddress, error) {
	if !strings.HasPrefix(s, CompactPrefix) {
		return nil, ErrInvalidMetaAddress
	}
	data := base58.Decode(s[len(CompactPrefix):])
	if len(data) != c.PointSize()*2+4 {
		return nil, ErrInvalidMetaAddress
	}
	payload := data[:c.PointSize()*2]
	checksum := crypto.NewHash(append([]byte(CompactPrefix), payload...))
	if !bytes.Equal(checksum[:4], data[len(payload):]) {
		return nil, ErrInvalidMetaAddress
	}
	spend, err := c.PublicKeyFromBytes(payload[:c.PointSize()])
	if err != nil {
		return nil, err
	}
	view, err := c.PublicKeyFromBytes(payload[c.PointSize():])
	if err != nil {
		return nil, err
	}
	return &MetaAddress{
		Chain:          chain,
		PublicSpendKey: spend,
		PublicViewKey:  view,
	}, nil
}
