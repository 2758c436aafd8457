package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cardlab/cardlab/pkg/schema"
)

// ParamError reports a malformed query parameter.
type ParamError struct {
	Param string
	Value string
	Msg   string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("query parameter %s=%q: %s", e.Param, e.Value, e.Msg)
}

// ParseCard builds a card filter from query parameters. Singular and
// plural forms of a dimension are merged, list parameters accept both
// repeats and comma separated values.
func ParseCard(q url.Values) (Card, error) {
	var res Card
	var err error

	res.Pantheons = list(q, "pantheon", "pantheons")
	res.Archetypes = list(q, "archetype", "archetypes")
	res.Tags = list(q, "tag", "tags")
	res.CardTypes = list(q, "type", "card_types")
	res.SpellSpeeds = list(q, "spell_speeds")
	res.Search = strings.TrimSpace(q.Get("search"))

	for _, v := range res.CardTypes {
		if _, ok := schema.ParseCardType(v); !ok {
			return res, &ParamError{Param: "card_types", Value: v, Msg: "unknown card type"}
		}
	}

	if res.Mode, err = parseMode(q); err != nil {
		return res, err
	}

	ranges := []struct {
		name string
		r    *Range
	}{
		{"cost", &res.Cost},
		{"fi", &res.Fi},
		{"hp", &res.Hp},
		{"god_dmg", &res.GodDmg},
		{"creature_dmg", &res.CreatureDmg},
	}
	for _, v := range ranges {
		if *v.r, err = parseRange(q, v.name); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ParseLocation builds a location filter from query parameters.
func ParseLocation(q url.Values) (Location, error) {
	var res Location
	var err error
	res.Pantheons = list(q, "pantheon", "pantheons")
	res.Archetypes = list(q, "archetype", "archetypes")
	res.Search = strings.TrimSpace(q.Get("search"))
	res.Mode, err = parseMode(q)
	return res, err
}

func parseMode(q url.Values) (Mode, error) {
	s := strings.ToLower(strings.TrimSpace(q.Get("filter_mode")))
	switch s {
	case "", string(ModeAnd):
		return ModeAnd, nil
	case string(ModeOr):
		return ModeOr, nil
	default:
		return "", &ParamError{Param: "filter_mode", Value: s, Msg: "must be 'and' or 'or'"}
	}
}

func parseRange(q url.Values, name string) (Range, error) {
	var res Range
	var err error
	if res.Min, err = parseInt(q, "min_"+name); err != nil {
		return res, err
	}
	if res.Max, err = parseInt(q, "max_"+name); err != nil {
		return res, err
	}
	return res, nil
}

func parseInt(q url.Values, param string) (*int, error) {
	s := strings.TrimSpace(q.Get(param))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &ParamError{Param: param, Value: s, Msg: "must be an integer"}
	}
	return &n, nil
}

func list(q url.Values, params ...string) []string {
	var res []string
	for _, p := range params {
		for _, v := range q[p] {
			res = append(res, strings.Split(v, ",")...)
		}
	}
	return schema.NormSet(res)
}
