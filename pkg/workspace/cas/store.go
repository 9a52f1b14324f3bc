// Package cas implements a read-only, directory-backed content-addressable
// store: a pool of files keyed by the lowercase hex representation of a
// cryptographic digest. Population of the store is external to the engine;
// this package only locates and reads existing objects.
//
// The sharded layout (a two-character prefix directory per object) mirrors
// a common staging-pool convention, adapted here from an ephemeral
// write-side pool to a read-only lookup pool.
package cas

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// minimumHashLength is the shortest hex digest this store will accept; it
// guards against accidentally sharding on an empty or truncated hash.
const minimumHashLength = 4

// Store is a read-only content-addressable file pool rooted at a directory
// on disk.
type Store struct {
	root string
}

// New creates a Store rooted at the given directory. The directory need not
// exist yet; a Store over a missing root simply reports every object as
// absent, matching the "never throws for not found" contract FileOperations
// requires of CAS lookups.
func New(root string) *Store {
	return &Store{root: root}
}

// objectPath computes the sharded on-disk path for a given lowercase hex
// digest, without checking for its existence.
func (s *Store) objectPath(hash string) (string, error) {
	if len(hash) < minimumHashLength {
		return "", errors.Errorf("hash too short for CAS lookup: %q", hash)
	}
	prefix := hash[:2]
	return filepath.Join(s.root, prefix, hash), nil
}

// Locate returns the absolute path of the CAS object identified by hash, or
// os.ErrNotExist (optionally wrapped) if the object is absent. It never
// returns any other kind of error for a missing object, per the "never
// throws for not found" CAS contract.
func (s *Store) Locate(hash string) (string, error) {
	candidate, err := s.objectPath(hash)
	if err != nil {
		return "", err
	}
	if _, err := os.Lstat(candidate); err != nil {
		if os.IsNotExist(err) {
			return "", os.ErrNotExist
		}
		return "", errors.Wrap(err, "unable to query CAS object metadata")
	}
	return candidate, nil
}

// Has reports whether an object with the given hash exists in the store.
func (s *Store) Has(hash string) bool {
	_, err := s.Locate(hash)
	return err == nil
}
