package storage

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/sipprotocol/sip/common"
	"github.com/sipprotocol/sip/crypto"
)

const prefixIntent = "INTENT" // intent hash to the fixed 270-byte record

// WriteIntent stores the record keyed by its hash; rewriting the identical
// record is a no-op.
func (s *BadgerStore) WriteIntent(intent *common.Intent) (crypto.Hash, error) {
	hash := intent.Hash()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(intentKey(hash), intent.Marshal())
	})
	return hash, err
}

// ReadIntent returns nil without error when the hash is unknown.
func (s *BadgerStore) ReadIntent(hash crypto.Hash) (*common.Intent, error) {
	txn := s.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(intentKey(hash))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return common.UnmarshalIntent(v)
}

func intentKey(hash crypto.Hash) []byte {
	return append([]byte(prefixIntent), hash[:]...)
}
