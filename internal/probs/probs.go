// Package probs implements the binary encoding of action distributions
// shared by the on-disk policy stores.
package probs

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-efg"
)

// Key returns the database key of the given player's InfoSet: the player
// as a varint followed by the InfoSet key.
func Key(player int, infoSet string) []byte {
	buf := make([]byte, 0, binary.MaxVarintLen64+len(infoSet))
	buf = binary.AppendVarint(buf, int64(player))
	return append(buf, infoSet...)
}

// MarshalBinary encodes probs as a count followed by (action, probability)
// pairs in increasing action order, so that equal distributions have
// identical encodings.
func MarshalBinary(probs efg.ActionProbs) []byte {
	actions := make([]efg.Action, 0, len(probs))
	for a := range probs {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	buf := make([]byte, 0, binary.MaxVarintLen64*(2*len(actions)+1))
	buf = binary.AppendUvarint(buf, uint64(len(actions)))
	for _, a := range actions {
		buf = binary.AppendVarint(buf, int64(a))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(probs[a]))
	}

	return buf
}

// UnmarshalBinary decodes a distribution encoded with MarshalBinary.
func UnmarshalBinary(buf []byte) (efg.ActionProbs, error) {
	r := bytes.NewReader(buf)
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, errors.Wrap(err, "invalid action count")
	}

	if n > uint64(len(buf)) {
		return nil, errors.Errorf("action count %d exceeds buffer size %d", n, len(buf))
	}

	result := make(efg.ActionProbs, n)
	for i := uint64(0); i < n; i++ {
		a, err := binary.ReadVarint(r)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid action %d", i)
		}

		var bits uint64
		if err := binary.Read(r, binary.BigEndian, &bits); err != nil {
			return nil, errors.Wrapf(err, "invalid probability %d", i)
		}

		result[efg.Action(a)] = math.Float64frombits(bits)
	}

	if r.Len() != 0 {
		return nil, errors.Errorf("%d trailing bytes", r.Len())
	}

	return result, nil
}
