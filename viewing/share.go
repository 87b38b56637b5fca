package viewing

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/sipprotocol/sip/crypto"
	"golang.org/x/crypto/chacha20poly1305"
)

const labelShare = "SIP/share/v1"

// Package is a viewing key sealed to a recipient's public key. The ephemeral
// key is fresh per package, so sharing the same viewing key with two auditors
// produces unlinkable packages.
type Package struct {
	EphemeralPublicKey []byte
	Payload            *EncryptedPayload
}

// EncryptToPublicKey seals plaintext so only the holder of the matching
// private key can open it, via an ephemeral ECDH exchange.
func EncryptToPublicKey(recipient crypto.PublicKey, plaintext []byte) (*Package, error) {
	eph := recipient.Curve().GeneratePrivateKey()
	shared := crypto.SharedSecretHash(eph, recipient)
	aead, err := newAEADFromSecret(shared[:], labelShare)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	crypto.ReadRand(nonce)
	return &Package{
		EphemeralPublicKey: eph.Public().Bytes(),
		Payload: &EncryptedPayload{
			Nonce:      nonce,
			Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
		},
	}, nil
}

func DecryptWithPrivateKey(priv crypto.PrivateKey, pkg *Package) ([]byte, error) {
	if pkg == nil || pkg.Payload == nil || len(pkg.Payload.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrDecryptionFailed
	}
	eph, err := priv.Curve().PublicKeyFromBytes(pkg.EphemeralPublicKey)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	shared := crypto.SharedSecretHash(priv, eph)
	aead, err := newAEADFromSecret(shared[:], labelShare)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, pkg.Payload.Nonce, pkg.Payload.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// ShareKey packages a viewing key for a recipient. The sealed material is
// type(1) || key(32) || from(8) || until(8) || label, enough to reconstruct
// the key node on the recipient side.
func ShareKey(k *Key, recipient crypto.PublicKey) (*Package, error) {
	return EncryptToPublicKey(recipient, marshalKeyMaterial(k))
}

// DecryptKeyPackage opens a shared viewing key. The curve of the recipient's
// private key decides how the key material is interpreted.
func DecryptKeyPackage(priv crypto.PrivateKey, pkg *Package) (*Key, error) {
	material, err := DecryptWithPrivateKey(priv, pkg)
	if err != nil {
		return nil, err
	}
	return unmarshalKeyMaterial(priv.Curve(), material)
}

func marshalKeyMaterial(k *Key) []byte {
	key := k.PrivateKey.Key()
	material := make([]byte, 0, 1+len(key)+16+len(k.Label))
	material = append(material, byte(k.Type))
	material = append(material, key[:]...)
	material = binary.BigEndian.AppendUint64(material, uint64(k.ValidFrom.Unix()))
	material = binary.BigEndian.AppendUint64(material, uint64(k.ValidUntil.Unix()))
	return append(material, k.Label...)
}

func unmarshalKeyMaterial(c crypto.Curve, material []byte) (*Key, error) {
	if len(material) < 1+32+16 {
		return nil, crypto.ErrInvalidEncoding
	}
	var key crypto.Key
	copy(key[:], material[1:33])
	priv, err := c.PrivateKeyFromKey(key)
	if err != nil {
		return nil, err
	}
	k := &Key{
		Type:       KeyType(material[0]),
		Label:      string(material[49:]),
		PrivateKey: priv,
		PublicKey:  priv.Public(),
		CreatedAt:  time.Now(),
	}
	switch k.Type {
	case KeyTypeIncoming, KeyTypeOutgoing, KeyTypeFull, KeyTypeTimeBounded:
	default:
		return nil, crypto.ErrInvalidEncoding
	}
	from := int64(binary.BigEndian.Uint64(material[33:41]))
	until := int64(binary.BigEndian.Uint64(material[41:49]))
	if k.Type == KeyTypeTimeBounded {
		k.ValidFrom = time.Unix(from, 0)
		k.ValidUntil = time.Unix(until, 0)
	}
	return k, nil
}

type packageJSON struct {
	EphemeralPublicKey string           `json:"ephemeral"`
	Payload            EncryptedPayload `json:"payload"`
}

func (p Package) MarshalJSON() ([]byte, error) {
	return json.Marshal(packageJSON{
		EphemeralPublicKey: crypto.EncodeHex(p.EphemeralPublicKey),
		Payload:            *p.Payload,
	})
}

func (p *Package) UnmarshalJSON(b []byte) error {
	var pj packageJSON
	if err := json.Unmarshal(b, &pj); err != nil {
		return err
	}
	eph, err := crypto.DecodeHex(pj.EphemeralPublicKey)
	if err != nil {
		return err
	}
	p.EphemeralPublicKey = eph
	p.Payload = &pj.Payload
	return nil
}
