package rpc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/stealth"
	"github.com/sipprotocol/sip/storage"
)

// submitannouncement params: [addressHex, ephemeralHex, viewTag]
func submitAnnouncement(store *storage.BadgerStore, params []any) (map[string]any, error) {
	if len(params) != 3 {
		return nil, errors.New("invalid params count")
	}
	address, err := crypto.HashFromString(fmt.Sprint(params[0]))
	if err != nil {
		return nil, err
	}
	ephemeral, err := crypto.DecodeHex(fmt.Sprint(params[1]))
	if err != nil {
		return nil, err
	}
	tag, err := strconv.ParseUint(fmt.Sprint(params[2]), 10, 8)
	if err != nil {
		return nil, err
	}
	seq, err := store.WriteAnnouncement(&stealth.Announcement{
		Address:            address,
		EphemeralPublicKey: ephemeral,
		ViewTag:            byte(tag),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"sequence": seq}, nil
}

// listannouncements params: [offset, limit]
func listAnnouncements(store *storage.BadgerStore, params []any) ([]*stealth.Announcement, error) {
	if len(params) != 2 {
		return nil, errors.New("invalid params count")
	}
	offset, err := strconv.ParseUint(fmt.Sprint(params[0]), 10, 64)
	if err != nil {
		return nil, err
	}
	limit, err := strconv.ParseUint(fmt.Sprint(params[1]), 10, 16)
	if err != nil {
		return nil, err
	}
	return store.ListAnnouncements(offset, int(limit))
}
