package stealth

import (
	"encoding/json"
	"testing"

	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/crypto/ed25519"
	"github.com/sipprotocol/sip/crypto/secp256k1"
	"github.com/stretchr/testify/assert"
)

func testCurves() []crypto.Curve {
	return []crypto.Curve{secp256k1.Curve(), ed25519.Curve()}
}

func TestStealthOwnership(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			meta, spend, view := GenerateMetaAddress(c, "ethereum")
			announcement, _ := GenerateStealthAddress(meta)

			assert.True(CheckStealthAddress(announcement, spend, view))

			_, wrongSpend, wrongView := GenerateMetaAddress(c, "ethereum")
			assert.False(CheckStealthAddress(announcement, wrongSpend, wrongView))
			assert.False(CheckStealthAddress(announcement, spend, wrongView))
			assert.False(CheckStealthAddress(announcement, wrongSpend, view))
			assert.False(CheckStealthAddress(nil, spend, view))
		})
	}
}

func TestStealthRecovery(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			meta, spend, view := GenerateMetaAddress(c, "ethereum")
			announcement, _ := GenerateStealthAddress(meta)

			recovery, err := DeriveStealthPrivateKey(announcement, spend, view)
			assert.Nil(err)
			// the recovered key's public image is the announced address
			assert.Equal(announcement.Address, crypto.NewHash(recovery.PrivateKey.Public().Bytes()))

			_, otherSpend, otherView := GenerateMetaAddress(c, "ethereum")
			_, err = DeriveStealthPrivateKey(announcement, otherSpend, otherView)
			assert.Equal(ErrNotRecipient, err)
		})
	}
}

func TestStealthUnlinkability(t *testing.T) {
	assert := assert.New(t)
	c := secp256k1.Curve()

	meta, _, _ := GenerateMetaAddress(c, "ethereum")
	a1, _ := GenerateStealthAddress(meta)
	a2, _ := GenerateStealthAddress(meta)
	assert.NotEqual(a1.Address, a2.Address)
	assert.NotEqual(a1.EphemeralPublicKey, a2.EphemeralPublicKey)
}

func TestDeriveStealthAddressDeterministic(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			meta, _, _ := GenerateMetaAddress(c, "ethereum")
			r := c.GeneratePrivateKey()
			a1, s1 := DeriveStealthAddress(r, meta)
			a2, s2 := DeriveStealthAddress(r, meta)
			assert.Equal(a1.Address, a2.Address)
			assert.Equal(s1, s2)
			assert.Equal(crypto.ViewTag(s1), a1.ViewTag)
		})
	}
}

// Fixed cross-implementation vectors: constant ephemeral, spending and
// viewing scalars pin the announcement encoding, the view tag and the
// recovered one-time key per curve.
func TestStealthVectors(t *testing.T) {
	for _, tc := range []struct {
		curve     string
		spend     string
		view      string
		ephemeral string
		ephPublic string
		address   string
		viewTag   byte
		recovered string
	}{
		{
			curve:     "secp256k1",
			spend:     "0x78c0da8e440b75f547f194f3fa67c29412a1551292ee397cde8f4f0067ccf241",
			view:      "0xaa8986f4aa34f5cfbdd910725cf9bdd1e702da6481ade71d08790e37947b1da0",
			ephemeral: "0x583c890bb5d03a61aaec7b468d0ad708489a33627ffdcb639a24ce474f1489a0",
			ephPublic: "0x03f96238012a781fc4ac45bfe6494a3c7cb6a3521a4e3d82f492b2fffbe03045bd",
			address:   "0x434a465009926e2aef09d1cdd2ce88700dc9fdd3f4afca850abace7be3a6af78",
			viewTag:   0x30,
			recovered: "0xdafe4c78fabea88c95303ef858dfb46f5f11f5b00c3725c9bdfe5ec604d91b0f",
		},
		{
			curve:     "ed25519",
			spend:     "0xc470031bdb7e2b95ee7db6678080464112a1551292ee397cde8f4f0067ccf201",
			view:      "0x6842ec52a3553d5f5eb96414aa360801e702da6481ade71d08790e37947b1d00",
			ephemeral: "0x16f5ee69adf182f04acccfe8da472138479a33627ffdcb639a24ce474f148900",
			ephPublic: "0x89afe4878be7d65f8e8a74fd2ae200ea94d290cccb2ab77d727d7214bedfbbc9",
			address:   "0x26f5e37ae6509ee34b30477a942ef79952ed42551fe899ea5dd121ab609cc885",
			viewTag:   0x58,
			recovered: "0x1fdb2e3aceb4df151fb37c17fc7533eea3816665dc20625b548f704d792c2c02",
		},
	} {
		t.Run(tc.curve, func(t *testing.T) {
			assert := assert.New(t)

			c, err := crypto.CurveByName(tc.curve)
			assert.Nil(err)
			spend := vectorKey(c, tc.spend)
			view := vectorKey(c, tc.view)
			meta := &MetaAddress{
				Chain:          "ethereum",
				PublicSpendKey: spend.Public(),
				PublicViewKey:  view.Public(),
			}

			announcement, shared := DeriveStealthAddress(vectorKey(c, tc.ephemeral), meta)
			assert.Equal(tc.address, announcement.Address.String())
			assert.Equal(tc.ephPublic, crypto.EncodeHex(announcement.EphemeralPublicKey))
			assert.Equal(tc.viewTag, announcement.ViewTag)
			assert.Equal(tc.viewTag, crypto.ViewTag(shared))

			assert.True(CheckStealthAddress(announcement, spend, view))
			recovery, err := DeriveStealthPrivateKey(announcement, spend, view)
			assert.Nil(err)
			assert.Equal(tc.recovered, recovery.PrivateKey.String())
		})
	}
}

func vectorKey(c crypto.Curve, s string) crypto.PrivateKey {
	k, err := crypto.KeyFromString(s)
	if err != nil {
		panic(err)
	}
	priv, err := c.PrivateKeyFromKey(k)
	if err != nil {
		panic(err)
	}
	return priv
}

func TestMetaAddressURI(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			meta, _, _ := GenerateMetaAddress(c, "ethereum")
			meta.Label = "alice"

			decoded, err := MetaAddressFromString(meta.String())
			assert.Nil(err)
			assert.Equal("ethereum", decoded.Chain)
			assert.Equal("alice", decoded.Label)
			assert.Equal(meta.PublicSpendKey.Bytes(), decoded.PublicSpendKey.Bytes())
			assert.Equal(meta.PublicViewKey.Bytes(), decoded.PublicViewKey.Bytes())
			assert.Equal(c.Name(), decoded.PublicSpendKey.Curve().Name())
		})
	}
}

func TestMetaAddressURIRejections(t *testing.T) {
	assert := assert.New(t)

	meta, _, _ := GenerateMetaAddress(secp256k1.Curve(), "ethereum")
	uri := meta.String()

	for _, s := range []string{
		"",
		"ethereum:0xab:0xcd",
		"sip:ethereum:0xab",
		"sip::0xab:0xcd",
		"eip:ethereum:0xab:0xcd",
		"sip:ethereum:0xab:0xcd:extra",
		uri + "?curve=unknown",
	} {
		_, err := MetaAddressFromString(s)
		assert.NotNil(err, s)
	}
}

func TestMetaAddressFromSeed(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			seed := []byte("a deterministic wallet seed")
			m1, s1, v1, err := NewMetaAddressFromSeed(c, "ethereum", seed)
			assert.Nil(err)
			m2, s2, v2, err := NewMetaAddressFromSeed(c, "ethereum", seed)
			assert.Nil(err)
			assert.Equal(m1.Hash(), m2.Hash())
			assert.Equal(s1.Key(), s2.Key())
			assert.Equal(v1.Key(), v2.Key())
			assert.NotEqual(s1.Key(), v1.Key())
		})
	}
}

func TestMetaAddressCompact(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			meta, _, _ := GenerateMetaAddress(c, "ethereum")
			compact := meta.Compact()
			assert.Equal(CompactPrefix, compact[:3])

			decoded, err := MetaAddressFromCompact(c, "ethereum", compact)
			assert.Nil(err)
			assert.Equal(meta.Hash(), decoded.Hash())

			_, err = MetaAddressFromCompact(c, "ethereum", "XYZ"+compact[3:])
			assert.Equal(ErrInvalidMetaAddress, err)
			corrupted := compact[:len(compact)-1] + "2"
			if corrupted == compact {
				corrupted = compact[:len(compact)-1] + "3"
			}
			_, err = MetaAddressFromCompact(c, "ethereum", corrupted)
			assert.NotNil(err)
		})
	}
}

func TestAnnouncementMarshal(t *testing.T) {
	for _, c := range testCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			assert := assert.New(t)

			meta, spend, view := GenerateMetaAddress(c, "ethereum")
			announcement, _ := GenerateStealthAddress(meta)

			decoded, err := UnmarshalAnnouncement(announcement.Marshal())
			assert.Nil(err)
			assert.True(CheckStealthAddress(decoded, spend, view))

			_, err = UnmarshalAnnouncement(announcement.Marshal()[:32])
			assert.Equal(crypto.ErrInvalidEncoding, err)

			data, err := json.Marshal(announcement)
			assert.Nil(err)
			var back Announcement
			assert.Nil(json.Unmarshal(data, &back))
			assert.True(CheckStealthAddress(&back, spend, view))
		})
	}
}
