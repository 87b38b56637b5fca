package rpc

import (
	"errors"
	"fmt"

	"github.com/sipprotocol/sip/common"
	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/storage"
)

// submitintent params: [recordHex] where the record is the fixed 270 bytes
func submitIntent(store *storage.BadgerStore, params []any) (map[string]any, error) {
	if len(params) != 1 {
		return nil, errors.New("invalid params count")
	}
	raw, err := crypto.DecodeHex(fmt.Sprint(params[0]))
	if err != nil {
		return nil, err
	}
	intent, err := common.UnmarshalIntent(raw)
	if err != nil {
		return nil, err
	}
	hash, err := store.WriteIntent(intent)
	if err != nil {
		return nil, err
	}
	return map[string]any{"hash": hash.String()}, nil
}

// getintent params: [hashHex]
func getIntent(store *storage.BadgerStore, params []any) (map[string]any, error) {
	if len(params) != 1 {
		return nil, errors.New("invalid params count")
	}
	hash, err := crypto.HashFromString(fmt.Sprint(params[0]))
	if err != nil {
		return nil, err
	}
	intent, err := store.ReadIntent(hash)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, errors.New("intent not found")
	}
	return map[string]any{
		"hash":        hash.String(),
		"version":     intent.Version,
		"privacy":     intent.PrivacyLevel.String(),
		"address":     intent.StealthAddress.String(),
		"ephemeral":   crypto.EncodeHex(intent.EphemeralPublicKey[:]),
		"viewTag":     intent.ViewTag,
		"viewKeyHash": intent.ViewingKeyHash.String(),
		"timestamp":   intent.Timestamp,
		"raw":         crypto.EncodeHex(intent.Marshal()),
	}, nil
}
