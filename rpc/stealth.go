package rpc

import (
	"errors"
	"fmt"

	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/stealth"
)

// derivestealthaddress params: [metaAddressURI]
// The ephemeral secret is drawn server-side and never returned.
func deriveStealthAddress(params []any) (map[string]any, error) {
	if len(params) != 1 {
		return nil, errors.New("invalid params count")
	}
	meta, err := stealth.MetaAddressFromString(fmt.Sprint(params[0]))
	if err != nil {
		return nil, err
	}
	announcement, _ := stealth.GenerateStealthAddress(meta)
	return map[string]any{
		"address":   announcement.Address.String(),
		"ephemeral": crypto.EncodeHex(announcement.EphemeralPublicKey),
		"viewTag":   announcement.ViewTag,
	}, nil
}
