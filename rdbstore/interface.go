// Package rdbstore implements a tabular policy whose action distributions
// are read from a RocksDB database, so that policies written by an external
// solver can be evaluated without loading them into memory.
//
// Lookups are substantially slower than an in-memory efg.PolicyTable.
package rdbstore

import (
	rocksdb "github.com/tecbot/gorocksdb"
)

// Params are the options used to open and access a policy database.
type Params struct {
	// Directory of the database.
	Path string

	Options      *rocksdb.Options
	ReadOptions  *rocksdb.ReadOptions
	WriteOptions *rocksdb.WriteOptions
}

// DefaultParams returns Params for a policy database at path, which is
// created if it does not already exist.
func DefaultParams(path string) Params {
	opts := rocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)

	return Params{
		Path:         path,
		Options:      opts,
		ReadOptions:  rocksdb.NewDefaultReadOptions(),
		WriteOptions: rocksdb.NewDefaultWriteOptions(),
	}
}

// Close releases the RocksDB option handles. It must be called after the
// PolicyTable using them is closed.
func (p Params) Close() {
	p.Options.Destroy()
	p.ReadOptions.Destroy()
	p.WriteOptions.Destroy()
}
