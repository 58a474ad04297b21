package services

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// MaxExcludeLength bounds the raw exclude query parameter.
	MaxExcludeLength = 1000
	// MaxExcludeIDs bounds how many session ids a caller may pass.
	MaxExcludeIDs = 100
)

// ExclusionSet is the set of recipe ids a feed must not return.
type ExclusionSet map[uint]struct{}

func (s ExclusionSet) Contains(id uint) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in no particular order.
func (s ExclusionSet) IDs() []uint {
	out := make([]uint, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// ParseExclude parses a comma separated list of recipe ids. Blank tokens are
// skipped; any other token that is not an integer rejects the whole list.
// Ids that can never exist (zero, negative or beyond int64) are accepted and
// dropped.
func ParseExclude(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	if len(raw) > MaxExcludeLength {
		return nil, invalid("", "Exclude parameter too long (max %d chars).", MaxExcludeLength)
	}

	var tokens []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) > MaxExcludeIDs {
		return nil, invalid("", "Too many excluded IDs (max %d).", MaxExcludeIDs)
	}

	ids := make([]uint, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseInt(tok, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			// well-formed but beyond any stored id
			continue
		}
		if err != nil {
			return nil, invalid("", "Exclude parameter must contain valid integer IDs.")
		}
		if n > 0 {
			ids = append(ids, uint(n))
		}
	}
	return ids, nil
}

// BuildExclusionSet merges the user's liked recipes with the session
// exclusions parsed from raw.
func BuildExclusionSet(liked []uint, raw string) (ExclusionSet, error) {
	session, err := ParseExclude(raw)
	if err != nil {
		return nil, err
	}
	return mergeExclusions(liked, session), nil
}
