// Script to compute the expected returns of a fixed policy in the coin game,
// along with the policy played at every information state reached.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-efg"
	"github.com/timpalpant/go-efg/coingame"
	"github.com/timpalpant/go-efg/ldbstore"
	"github.com/timpalpant/go-efg/rdbstore"
	"github.com/timpalpant/go-efg/turnbased"
)

type RunParams struct {
	PolicyFile      string
	RocksDBPath     string
	LevelDBPath     string
	UniformFallback bool
	TurnBased       bool
	OutputFile      string
	Params          efg.Params
}

type output struct {
	ExpectedReturns efg.UtilityVector `json:"expected_returns"`
	Catalogue       *efg.Catalogue    `json:"catalogue"`
}

func main() {
	var params RunParams
	flag.StringVar(&params.PolicyFile, "policy", "", "Policy table saved with MarshalTo (default: uniform policy)")
	flag.StringVar(&params.RocksDBPath, "rocksdb", "", "Read the policy from a RocksDB database. If -policy is also given, it is imported first")
	flag.StringVar(&params.LevelDBPath, "leveldb", "", "Read the policy from a LevelDB database. If -policy is also given, it is imported first")
	flag.BoolVar(&params.UniformFallback, "uniform_fallback", false, "Play uniformly at infosets missing from the policy table")
	flag.BoolVar(&params.TurnBased, "turnbased", false, "Evaluate the turn-based version of the game")
	flag.StringVar(&params.OutputFile, "output", "", "Output file for results (default: stdout)")
	flag.Float64Var(&params.Params.Tolerance, "tolerance", efg.DefaultTolerance, "Tolerance for policy normalization")
	flag.IntVar(&params.Params.MaxDepth, "max_depth", 0, "Maximum depth of the game tree (0 for unlimited)")
	flag.IntVar(&params.Params.Parallelism, "parallelism", runtime.NumCPU(), "Number of subtrees to evaluate concurrently")
	flag.Parse()

	params.Params.ParseInfoSet = coingame.Fields
	if err := run(params); err != nil {
		glog.Fatal(err)
	}
}

func run(params RunParams) error {
	policy, closer, err := loadPolicy(params)
	if err != nil {
		return err
	}
	defer closer.Close()

	var root efg.GameNode = coingame.NewGame()
	if params.TurnBased {
		root = turnbased.Wrap(root)
	}

	glog.Infof("Evaluating policy with params: %+v", params.Params)
	result, err := efg.New(params.Params).Evaluate(root, policy)
	if err != nil {
		return err
	}

	glog.Infof("Expected returns: %v (%d infosets, %d terminal nodes)",
		result.Utilities, result.Catalogue.Len(), result.NumTerminals)
	return writeOutput(params.OutputFile, output{
		ExpectedReturns: result.Utilities,
		Catalogue:       result.Catalogue,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type policyStore interface {
	efg.Policy
	io.Closer
	Import(table *efg.PolicyTable) error
	SetFallback(p efg.Policy)
}

func loadPolicy(params RunParams) (efg.Policy, io.Closer, error) {
	var table *efg.PolicyTable
	if params.PolicyFile != "" {
		var err error
		table, err = loadPolicyTable(params.PolicyFile)
		if err != nil {
			return nil, nil, err
		}

		glog.Infof("Loaded %d strategies from %s", table.Len(), params.PolicyFile)
		if params.UniformFallback {
			table.SetFallback(efg.UniformPolicy)
		}
	}

	store, err := openStore(params)
	if err != nil {
		return nil, nil, err
	} else if store == nil {
		if table == nil {
			glog.Info("Using uniform random policy")
			return efg.UniformPolicy, nopCloser{}, nil
		}

		return table, nopCloser{}, nil
	}

	if table != nil {
		if err := store.Import(table); err != nil {
			store.Close()
			return nil, nil, err
		}
	}

	if params.UniformFallback {
		store.SetFallback(efg.UniformPolicy)
	}

	return store, store, nil
}

func openStore(params RunParams) (policyStore, error) {
	switch {
	case params.RocksDBPath != "" && params.LevelDBPath != "":
		return nil, errors.New("at most one of -rocksdb and -leveldb may be given")
	case params.RocksDBPath != "":
		return rdbstore.New(rdbstore.DefaultParams(params.RocksDBPath))
	case params.LevelDBPath != "":
		return ldbstore.New(params.LevelDBPath, &opt.Options{})
	}

	return nil, nil
}

func loadPolicyTable(filename string) (*efg.PolicyTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	table, err := efg.LoadPolicyTable(r)
	if err != nil {
		return nil, errors.Wrapf(err, "loading policy from %s", filename)
	}

	return table, nil
}

func writeOutput(filename string, result output) error {
	var w io.Writer = os.Stdout
	if filename != "" {
		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
