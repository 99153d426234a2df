package efg

import (
	"encoding/gob"
	"io"
)

// LoadPolicyTable reads a PolicyTable previously written with MarshalTo.
func LoadPolicyTable(r io.Reader) (*PolicyTable, error) {
	dec := gob.NewDecoder(r)
	var nStrategies int64
	if err := dec.Decode(&nStrategies); err != nil {
		return nil, err
	}

	strategies := make(map[InfoSetID]ActionProbs, nStrategies)
	for i := int64(0); i < nStrategies; i++ {
		var id InfoSetID
		if err := dec.Decode(&id); err != nil {
			return nil, err
		}

		var probs ActionProbs
		if err := dec.Decode(&probs); err != nil {
			return nil, err
		}

		strategies[id] = probs
	}

	return &PolicyTable{strategies: strategies}, nil
}

// MarshalTo writes the table (without its fallback) to w, in key order.
func (pt *PolicyTable) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(int64(len(pt.strategies))); err != nil {
		return err
	}

	for _, id := range pt.Keys() {
		if err := enc.Encode(id); err != nil {
			return err
		}

		if err := enc.Encode(pt.strategies[id]); err != nil {
			return err
		}
	}

	return nil
}
