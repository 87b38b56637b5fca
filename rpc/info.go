package rpc

import (
	"github.com/sipprotocol/sip/config"
	"github.com/sipprotocol/sip/storage"
)

func getInfo(store *storage.BadgerStore) (map[string]any, error) {
	announcements, err := store.ListAnnouncements(0, 1)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"version": config.BuildVersion,
		"empty":   len(announcements) == 0,
	}, nil
}
