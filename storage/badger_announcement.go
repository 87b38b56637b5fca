package storage

import (
	"encoding/binary"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/stealth"
)

const (
	prefixAnnouncement        = "ANNOUNCEMENT" // sequence to announcement wire form
	prefixAnnouncementAddress = "ANNADDRESS"   // stealth address to sequence
	prefixAnnouncementMatched = "ANNMATCHED"   // stealth address, set when recognized as ours
)

// WriteAnnouncement appends an announcement under a monotonic sequence. The
// same stealth address is never written twice.
func (s *BadgerStore) WriteAnnouncement(a *stealth.Announcement) (uint64, error) {
	var seq uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		key := announcementAddressKey(a.Address)
		_, err := txn.Get(key)
		if err == nil {
			return badger.ErrConflict
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		seq = announcementNextSeq(txn)
		var sb [8]byte
		binary.BigEndian.PutUint64(sb[:], seq)
		err = txn.Set(announcementKey(seq), a.Marshal())
		if err != nil {
			return err
		}
		return txn.Set(key, sb[:])
	})
	return seq, err
}

// ListAnnouncements returns up to limit announcements starting at the given
// sequence, in sequence order.
func (s *BadgerStore) ListAnnouncements(offset uint64, limit int) ([]*stealth.Announcement, error) {
	announcements := make([]*stealth.Announcement, 0)

	txn := s.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	key := announcementKey(offset)
	prefix := []byte(prefixAnnouncement)
	for it.Seek(key); it.ValidForPrefix(prefix) && len(announcements) < limit; it.Next() {
		v, err := it.Item().ValueCopy(nil)
		if err != nil {
			return announcements, err
		}
		a, err := stealth.UnmarshalAnnouncement(v)
		if err != nil {
			return announcements, err
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}

// MarkMatched records that the announcement for the address was recognized by
// a local scan, with the recognition time.
func (s *BadgerStore) MarkMatched(address crypto.Hash) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var tb [8]byte
		binary.BigEndian.PutUint64(tb[:], uint64(time.Now().UnixNano()))
		return txn.Set(announcementMatchedKey(address), tb[:])
	})
}

func (s *BadgerStore) IsMatched(address crypto.Hash) (bool, error) {
	txn := s.db.NewTransaction(false)
	defer txn.Discard()

	_, err := txn.Get(announcementMatchedKey(address))
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func announcementNextSeq(txn *badger.Txn) uint64 {
	it := txn.NewIterator(badger.IteratorOptions{Reverse: true})
	defer it.Close()

	prefix := []byte(prefixAnnouncement)
	it.Seek(announcementKey(^uint64(0)))
	if !it.ValidForPrefix(prefix) {
		return 0
	}
	k := it.Item().Key()
	return binary.BigEndian.Uint64(k[len(prefix):]) + 1
}

func announcementKey(seq uint64) []byte {
	key := []byte(prefixAnnouncement)
	return binary.BigEndian.AppendUint64(key, seq)
}

func announcementAddressKey(address crypto.Hash) []byte {
	return append([]byte(prefixAnnouncementAddress), address[:]...)
}

func announcementMatchedKey(address crypto.Hash) []byte {
	return append([]byte(prefixAnnouncementMatched), address[:]...)
}
