package stealth

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sipprotocol/sip/crypto"
	"golang.org/x/sync/errgroup"
)

// Scanner checks batches of announcements against one recipient's keys.
// Every check is an independent pure derivation, so batches are partitioned
// across workers with no ordering requirement; the view-tag pre-filter keeps
// the expensive path to roughly one announcement in 256.
type Scanner struct {
	spend   crypto.PrivateKey
	view    crypto.PrivateKey
	workers int
	cache   *ristretto.Cache[[]byte, crypto.Hash]
}

// Match reports one owned announcement in a scanned batch.
type Match struct {
	Index        int
	Announcement *Announcement
	Recovery     *Recovery
}

func NewScanner(spend, view crypto.PrivateKey, workers int) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{spend: spend, view: view, workers: workers}
}

// EnableCache memoizes ECDH shared-secret digests by ephemeral key, so a
// daemon rescanning a feed never redoes the curve multiplication for an
// announcement it has already seen.
func (s *Scanner) EnableCache(entries int64) error {
	cache, err := ristretto.NewCache(&ristretto.Config[[]byte, crypto.Hash]{
		NumCounters: entries * 10,
		MaxCost:     entries,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}
	s.cache = cache
	return nil
}

func (s *Scanner) Close() {
	if s.cache != nil {
		s.cache.Close()
		s.cache = nil
	}
}

func (s *Scanner) sharedSecretHash(R crypto.PublicKey, raw []byte) crypto.Hash {
	if s.cache != nil {
		if shared, found := s.cache.Get(raw); found {
			return shared
		}
	}
	shared := crypto.SharedSecretHash(s.spend, R)
	if s.cache != nil {
		s.cache.Set(raw, shared, 1)
	}
	return shared
}

// Check is the single-announcement path, parse failures included as
// non-matches.
func (s *Scanner) Check(a *Announcement) bool {
	if a == nil {
		return false
	}
	R, err := s.spend.Curve().PublicKeyFromBytes(a.EphemeralPublicKey)
	if err != nil {
		return false
	}
	shared := s.sharedSecretHash(R, a.EphemeralPublicKey)
	if crypto.ViewTag(shared) != a.ViewTag {
		return false
	}
	return addressMatches(shared, s.view, a.Address)
}

// ScanBatch partitions the batch across the scanner's workers and returns
// the matches ordered by their batch index. A malformed entry never aborts
// the scan; cancellation of ctx stops the remaining work.
func (s *Scanner) ScanBatch(ctx context.Context, batch []*Announcement, recover bool) ([]*Match, error) {
	var (
		mtx     sync.Mutex
		matches []*Match
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, a := range batch {
		i, a := i, a
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if !s.Check(a) {
				return nil
			}
			match := &Match{Index: i, Announcement: a}
			if recover {
				recovery, err := DeriveStealthPrivateKey(a, s.spend, s.view)
				if err != nil {
					return nil
				}
				match.Recovery = recovery
			}
			mtx.Lock()
			matches = append(matches, match)
			mtx.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})
	return matches, nil
}
