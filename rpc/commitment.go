package rpc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/pedersen"
)

// verifycommitment params: [curve, commitmentHex, value, blindingHex]
func verifyCommitment(params []any) (map[string]any, error) {
	if len(params) != 4 {
		return nil, errors.New("invalid params count")
	}
	c, err := crypto.CurveByName(fmt.Sprint(params[0]))
	if err != nil {
		return nil, err
	}
	raw, err := crypto.DecodeHex(fmt.Sprint(params[1]))
	if err != nil {
		return nil, err
	}
	commitment, err := pedersen.CommitmentFromBytes(c, raw)
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseUint(fmt.Sprint(params[2]), 10, 64)
	if err != nil {
		return nil, err
	}
	key, err := crypto.KeyFromString(fmt.Sprint(params[3]))
	if err != nil {
		return nil, err
	}
	blinding, err := c.PrivateKeyFromKey(key)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"valid": pedersen.VerifyOpening(commitment, value, blinding),
	}, nil
}
