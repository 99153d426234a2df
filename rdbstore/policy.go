package rdbstore

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	rocksdb "github.com/tecbot/gorocksdb"

	"github.com/timpalpant/go-efg"
	"github.com/timpalpant/go-efg/internal/probs"
)

// PolicyTable is a tabular policy that keeps the action distribution of
// every InfoSet on disk in a RocksDB database. PolicyTable implements efg.Policy.
//
// It is functionally equivalent to an efg.PolicyTable. In practice, it is significantly
// slower but will use constant amount of memory since all policies are kept on disk.
// It is safe for concurrent use.
type PolicyTable struct {
	params Params
	db     *rocksdb.DB
	// Used for infosets that are not in the database, if non-nil.
	fallback efg.Policy
}

// New creates a new PolicyTable backed by a RocksDB database at the given path.
func New(params Params) (*PolicyTable, error) {
	db, err := rocksdb.OpenDb(params.Options, params.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", params.Path)
	}

	return &PolicyTable{
		params: params,
		db:     db,
	}, nil
}

// SetFallback sets the Policy used for infosets missing from the database.
func (pt *PolicyTable) SetFallback(p efg.Policy) {
	pt.fallback = p
}

// Close implements io.Closer.
func (pt *PolicyTable) Close() error {
	pt.db.Close()
	return nil
}

// Put stores the action distribution of player at the InfoSet with the given key.
func (pt *PolicyTable) Put(player int, key string, p efg.ActionProbs) error {
	buf := probs.MarshalBinary(p)
	if err := pt.db.Put(pt.params.WriteOptions, probs.Key(player, key), buf); err != nil {
		return errors.Wrapf(err, "writing infoset %q", key)
	}

	return nil
}

// Import copies every distribution in table into the database.
func (pt *PolicyTable) Import(table *efg.PolicyTable) error {
	batch := rocksdb.NewWriteBatch()
	defer batch.Destroy()

	for _, id := range table.Keys() {
		p, _ := table.Get(id.Player, id.Key)
		batch.Put(probs.Key(id.Player, id.Key), probs.MarshalBinary(p))
	}

	if err := pt.db.Write(pt.params.WriteOptions, batch); err != nil {
		return errors.Wrap(err, "writing policy table")
	}

	glog.V(1).Infof("Imported %d strategies into %s", table.Len(), pt.params.Path)
	return nil
}

// Get returns the action distribution of player stored for the given key.
func (pt *PolicyTable) Get(player int, key string) (efg.ActionProbs, bool, error) {
	result, err := pt.db.Get(pt.params.ReadOptions, probs.Key(player, key))
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading infoset %q", key)
	}
	defer result.Free()

	if len(result.Data()) == 0 {
		return nil, false, nil
	}

	p, err := probs.UnmarshalBinary(result.Data())
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
