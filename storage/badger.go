// Package storage persists announcements and intent records for the scanning
// daemon. Only public protocol values are stored; secret material never
// reaches this package.
package storage

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/sipprotocol/sip/config"
	"github.com/sipprotocol/sip/logger"
)

type BadgerStore struct {
	custom *config.Custom
	db     *badger.DB
}

func NewBadgerStore(custom *config.Custom, dir string) (*BadgerStore, error) {
	db, err := openDB(dir, true, custom)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{
		custom: custom,
		db:     db,
	}, nil
}

func (store *BadgerStore) Close() error {
	return store.db.Close()
}

func openDB(dir string, sync bool, custom *config.Custom) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	opts = opts.WithSyncWrites(sync)
	opts = opts.WithCompression(options.None)
	opts = opts.WithBlockCacheSize(0)
	opts = opts.WithIndexCacheSize(0)
	opts = opts.WithMetricsEnabled(false)
	opts = opts.WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	if custom != nil && custom.Storage.ValueLogGC {
		go func() {
			for {
				lsm, vlog := db.Size()
				logger.Printf("Badger LSM %d VLOG %d\n", lsm, vlog)
				if lsm > 1024*1024*8 || vlog > 1024*1024*32 {
					err := db.RunValueLogGC(0.5)
					logger.Printf("Badger RunValueLogGC %v\n", err)
				}
				time.Sleep(5 * time.Minute)
			}
		}()
	}

	return db, nil
}
