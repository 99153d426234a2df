package ldbstore

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-efg"
	"github.com/timpalpant/go-efg/internal/probs"
)

// PolicyTable is a tabular policy that keeps the action distribution of
// every InfoSet on disk in a LevelDB database. PolicyTable implements efg.Policy.
//
// It is functionally equivalent to an efg.PolicyTable. In practice, it is significantly
// slower but will use constant amount of memory since all policies are kept on disk.
// It is safe for concurrent use.
type PolicyTable struct {
	path string
	db   *leveldb.DB
	// Used for infosets that are not in the database, if non-nil.
	fallback efg.Policy

	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// New creates a new PolicyTable backed by a LevelDB database at the given path.
func New(path string, opts *opt.Options) (*PolicyTable, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	return &PolicyTable{
		path: path,
		db:   db,
	}, nil
}

// SetFallback sets the Policy used for infosets missing from the database.
func (pt *PolicyTable) SetFallback(p efg.Policy) {
	pt.fallback = p
}

// Close implements io.Closer.
func (pt *PolicyTable) Close() error {
	return pt.db.Close()
}

// Put stores the action distribution of player at the InfoSet with the given key.
func (pt *PolicyTable) Put(player int, key string, p efg.ActionProbs) error {
	if err := pt.db.Put(probs.Key(player, key), probs.MarshalBinary(p), pt.wOpts); err != nil {
		return errors.Wrapf(err, "writing infoset %q", key)
	}

	return nil
}

// Import copies every distribution in table into the database.
func (pt *PolicyTable) Import(table *efg.PolicyTable) error {
	batch := new(leveldb.Batch)
	for _, id := range table.Keys() {
		p, _ := table.Get(id.Player, id.Key)
		batch.Put(probs.Key(id.Player, id.Key), probs.MarshalBinary(p))
	}

	if err := pt.db.Write(batch, pt.wOpts); err != nil {
		return errors.Wrap(err, "writing policy table")
	}

	glog.V(1).Infof("Imported %d strategies into %s", table.Len(), pt.path)
	return nil
}

// Get returns the action distribution of player stored for the given key.
func (pt *PolicyTable) Get(player int, key string) (efg.ActionProbs, bool, error) {
	buf, err := pt.db.Get(probs.Key(player, key), pt.rOpts)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, errors.Wrapf(err, "reading infoset %q", key)
	}

	p, err := probs.UnmarshalBinary(buf)
	if err != nil {
		return nil, false, errors.Wrapf(err, "decoding infoset %q", key)
	}

	return p, true, nil
}

// ActionProbabilities implements efg.Policy.
func (pt *PolicyTable) ActionProbabilities(node efg.GameNode, player int) (efg.ActionProbs, error) {
	key := node.InfoSetKey(player)
	p, ok, err := pt.Get(player, key)
	if err != nil {
		return nil, err
	} else if !ok {
		if pt.fallback != nil {
			return pt.fallback.ActionProbabilities(node, player)
		}

		return nil, errors.Errorf("no policy for player %d infoset %q", player, key)
	}

	return p, nil
}
