package viewing

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"

	"github.com/sipprotocol/sip/crypto"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// ErrDecryptionFailed covers every authentication failure uniformly; a wrong
// key and a tampered ciphertext are indistinguishable by design.
var ErrDecryptionFailed = errors.New("decryption failed")

const labelAEAD = "SIP/aead/v1"

// EncryptedPayload is an XChaCha20-Poly1305 box. Decryption fails closed:
// an authentication mismatch never releases partial plaintext.
type EncryptedPayload struct {
	Nonce      []byte
	Ciphertext []byte
}

// Encrypt seals plaintext under a symmetric key derived from the viewing
// key's secret. A fresh random nonce is drawn per call; the extended nonce
// makes random nonces safe at any volume.
func Encrypt(k *Key, plaintext []byte) (*EncryptedPayload, error) {
	aead, err := newAEAD(k)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	crypto.ReadRand(nonce)
	return &EncryptedPayload{
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

func Decrypt(k *Key, payload *EncryptedPayload) ([]byte, error) {
	if payload == nil || len(payload.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrDecryptionFailed
	}
	aead, err := newAEAD(k)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, payload.Nonce, payload.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newAEAD(k *Key) (aeadCipher, error) {
	secret := k.PrivateKey.Key()
	return newAEADFromSecret(secret[:], labelAEAD)
}

type aeadCipher interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

func newAEADFromSecret(secret []byte, label string) (aeadCipher, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(label))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

// Marshal renders nonce || ciphertext; the nonce length is fixed by the
// cipher.
func (p *EncryptedPayload) Marshal() []byte {
	return append(append([]byte{}, p.Nonce...), p.Ciphertext...)
}

func UnmarshalEncryptedPayload(data []byte) (*EncryptedPayload, error) {
	if len(data) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, crypto.ErrInvalidEncoding
	}
	return &EncryptedPayload{
		Nonce:      append([]byte{}, data[:chacha20poly1305.NonceSizeX]...),
		Ciphertext: append([]byte{}, data[chacha20poly1305.NonceSizeX:]...),
	}, nil
}

type encryptedPayloadJSON struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

func (p EncryptedPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(encryptedPayloadJSON{
		Nonce:      crypto.EncodeHex(p.Nonce),
		Ciphertext: crypto.EncodeHex(p.Ciphertext),
	})
}

func (p *EncryptedPayload) UnmarshalJSON(b []byte) error {
	var pj encryptedPayloadJSON
	if err := json.Unmarshal(b, &pj); err != nil {
		return err
	}
	nonce, err := crypto.DecodeHex(pj.Nonce)
	if err != nil {
		return err
	}
	ciphertext, err := crypto.DecodeHex(pj.Ciphertext)
	if err != nil {
		return err
	}
	p.Nonce = nonce
	p.Ciphertext = ciphertext
	return nil
}
