package filter

import (
	"hash/fnv"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/bloomfilter/v2"
	"github.com/reactorlabs/pumpfun-sniper/types"
	"github.com/syndtr/goleveldb/leveldb"
)

// SeenMints is the concurrent set of mints that have already passed all
// filters once: a mint is inserted the first time its event passes, and
// every subsequent event for that mint is rejected as Duplicate. It is
// unbounded; a bounded eviction policy is left as a noted refinement.
//
// A bloom filter sits in front of the exact set: the overwhelming
// majority of lookups are "definitely never seen", and the bloom filter
// answers those without taking the set's lock or touching the optional
// on-disk journal.
type SeenMints struct {
	mu     sync.Mutex
	exact  mapset.Set[types.PublicKey]
	bloom  *bloomfilter.Filter
	journal *leveldb.DB // nil when persistence is disabled
}

// NewSeenMints builds an empty seen-mints set sized for roughly
// expectedCount elements at a 1% false-positive rate for the bloom
// front-filter. journal may be nil to disable the write-through journal.
func NewSeenMints(expectedCount uint64, journal *leveldb.DB) (*SeenMints, error) {
	if expectedCount == 0 {
		expectedCount = 1_000_000
	}
	bloom, err := bloomfilter.NewOptimal(expectedCount, 0.01)
	if err != nil {
		return nil, err
	}
	return &SeenMints{
		exact:   mapset.NewSet[types.PublicKey](),
		bloom:   bloom,
		journal: journal,
	}, nil
}

// LoadJournal replays a previously-opened leveldb journal into the
// in-memory set, so a restart does not immediately re-admit mints
// bought in a prior process lifetime.
func (s *SeenMints) LoadJournal() error {
	if s.journal == nil {
		return nil
	}
	iter := s.journal.NewIterator(nil, nil)
	defer iter.Release()

	loaded := 0
	for iter.Next() {
		key, err := types.ParsePublicKey(string(iter.Key()))
		if err != nil {
			continue
		}
		s.insertLocal(key)
		loaded++
	}
	if err := iter.Error(); err != nil {
		return err
	}
	log.Info("Loaded seen-mints journal", "count", loaded)
	return nil
}

// Contains reports whether mint has already passed filters.
func (s *SeenMints) Contains(mint types.PublicKey) bool {
	if !s.bloom.Contains(hashKey(mint)) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exact.Contains(mint)
}

// Insert records mint as seen. Safe to call concurrently; the caller is
// responsible for inserting exactly once per mint. The main loop
// inserts before doing further work, so two concurrent events for the
// same mint cannot both proceed.
func (s *SeenMints) Insert(mint types.PublicKey) {
	s.mu.Lock()
	s.insertLocal(mint)
	s.mu.Unlock()

	if s.journal != nil {
		if err := s.journal.Put([]byte(mint.String()), []byte{1}, nil); err != nil {
			log.Warn("Failed to journal seen mint", "mint", mint.String(), "err", err)
		}
	}
}

// insertLocal updates the bloom filter and exact set; caller holds mu.
func (s *SeenMints) insertLocal(mint types.PublicKey) {
	s.bloom.Add(hashKey(mint))
	s.exact.Add(mint)
}

func hashKey(mint types.PublicKey) uint64 {
	h := fnv.New64a()
	h.Write(mint[:])
	return h.Sum64()
}
