package efg

import (
	"encoding/json"
)

// ActionProb is the probability of one action in a catalogued distribution.
type ActionProb struct {
	Action      Action
	Label       string
	Probability float64
}

// Record is the policy observed at one information state, at one depth.
type Record struct {
	Player  int
	InfoSet string
	Depth   int
	// Actions holds the distribution over every legal action, in legal order.
	Actions []ActionProb
	// Fields are optional semantic fields parsed from the InfoSet key.
	Fields map[string]interface{}
}

// Total returns the probability mass of the record's distribution.
func (r *Record) Total() float64 {
	var total float64
	for _, ap := range r.Actions {
		total += ap.Probability
	}
	return total
}

// MarshalJSON implements json.Marshaler. Parsed fields are flattened into
// the record alongside "player", "infoset", "depth" and an "actions" object
// mapping action label to probability.
func (r Record) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, len(r.Fields)+4)
	for k, v := range r.Fields {
		obj[k] = v
	}

	actions := make(map[string]float64, len(r.Actions))
	for _, ap := range r.Actions {
		actions[ap.Label] = ap.Probability
	}

	obj["player"] = r.Player
	obj["infoset"] = r.InfoSet
	obj["depth"] = r.Depth
	obj["actions"] = actions
	return json.Marshal(obj)
}

type recordKey struct {
	player  int
	infoSet string
	depth   int
}

// Catalogue is a deduplicated, ordered collection of Records: one per
// distinct (player, infoset, depth), in first-visit order.
type Catalogue struct {
	records []Record
	seen    map[recordKey]struct{}
}

// NewCatalogue creates an empty Catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		seen: make(map[recordKey]struct{}),
	}
}

// Contains returns true if a record exists for the given information state and depth.
func (c *Catalogue) Contains(player int, infoSet string, depth int) bool {
	_, ok := c.seen[recordKey{player, infoSet, depth}]
	return ok
}

// Record adds r unless a record with the same player, infoset and depth is
// already present. It returns true if r was added.
func (c *Catalogue) Record(r Record) bool {
	k := recordKey{r.Player, r.InfoSet, r.Depth}
	if _, ok := c.seen[k]; ok {
		return false
	}

	c.seen[k] = struct{}{}
	c.records = append(c.records, r)
	return true
}

// Merge adds all records of other that are not already present, preserving
// their order. Existing records win.
func (c *Catalogue) Merge(other *Catalogue) {
	for _, r := range other.records {
		c.Record(r)
	}
}

// Len returns the number of records.
func (c *Catalogue) Len() int {
	return len(c.records)
}

// Entries returns the records in first-visit order.
func (c *Catalogue) Entries() []Record {
	result := make([]Record, len(c.records))
	copy(result, c.records)
	return result
}

// MarshalJSON implements json.Marshaler, encoding the catalogue as an
// ordered array of records.
func (c *Catalogue) MarshalJSON() ([]byte, error) {
	if c.records == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(c.records)
}
