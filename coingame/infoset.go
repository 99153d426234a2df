package coingame

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// InfoSet is the parsed form of a coin game InfoSetKey.
type InfoSet struct {
	Player           int
	Round            int
	CoinChoices      []int
	EstimatorGuesses []int
}

// ParseInfoSet parses a key produced by GameNode.InfoSetKey.
func ParseInfoSet(key string) (*InfoSet, error) {
	lines := strings.Split(key, "\n")
	if len(lines) != 3 {
		return nil, errors.Errorf("expected 3 lines in infoset, got %d: %q", len(lines), key)
	}

	var is InfoSet
	round, err := parseField(lines[0], "Round")
	if err != nil {
		return nil, err
	}

	is.Round, err = strconv.Atoi(round)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid round in infoset %q", key)
	}

	for i, line := range lines[1:] {
		label, history, err := splitField(line)
		if err != nil {
			return nil, err
		}

		values, err := parseHistory(history)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s in infoset %q", label, key)
		}

		switch label {
		case coinChoicesLabel:
			is.CoinChoices = values
			if i == 0 {
				is.Player = CoinPlayer
			}
		case estimatorGuessesLabel:
			is.EstimatorGuesses = values
			if i == 0 {
				is.Player = Estimator
			}
		default:
			return nil, errors.Errorf("unexpected field %q in infoset %q", label, key)
		}
	}

	return &is, nil
}

// Fields returns the infoset as a flat map of semantic fields, suitable for
// efg.Params.ParseInfoSet. Keys that fail to parse yield no fields.
func Fields(key string) map[string]interface{} {
	is, err := ParseInfoSet(key)
	if err != nil {
		return nil
	}

	return map[string]interface{}{
		"player":              is.Player,
		"round":               is.Round,
		"coin_player_choices": is.CoinChoices,
		"estimator_guesses":   is.EstimatorGuesses,
	}
}

func splitField(line string) (string, string, error) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", errors.Errorf("missing ':' in infoset line %q", line)
	}

	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), nil
}

func parseField(line, label string) (string, error) {
	got, value, err := splitField(line)
	if err != nil {
		return "", err
	}

	if got != label {
		return "", errors.Errorf("expected %q field, got %q", label, got)
	}

	return value, nil
}

func parseHistory(s string) ([]int, error) {
	fields := strings.Fields(s)
	result := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}

	return result, nil
}
