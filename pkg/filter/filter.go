// Package filter implements the card and location query model. It is
// pure: filters are parsed from query parameters and matched against
// already loaded entities.
package filter

import (
	"strings"

	"github.com/cardlab/cardlab/pkg/schema"
)

// Mode decides how active set dimensions combine.
type Mode string

const (
	ModeAnd Mode = "and"
	ModeOr  Mode = "or"
)

// Range is an inclusive numeric bound; nil ends are open.
type Range struct {
	Min *int
	Max *int
}

// IsZero is true for an unbounded range.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether v is inside the range. A missing value
// counts as 0.
func (r Range) Contains(v *int) bool {
	var n int
	if v != nil {
		n = *v
	}
	if r.Min != nil && n < *r.Min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

// Card selects cards.
type Card struct {
	Pantheons   []string
	Archetypes  []string
	Tags        []string
	CardTypes   []string
	SpellSpeeds []string
	Search      string
	Mode        Mode

	Cost        Range
	Fi          Range
	Hp          Range
	GodDmg      Range
	CreatureDmg Range
}

// IsEmpty is true when the filter selects every card.
func (f Card) IsEmpty() bool {
	return len(f.Pantheons) == 0 && len(f.Archetypes) == 0 &&
		len(f.Tags) == 0 && len(f.CardTypes) == 0 &&
		len(f.SpellSpeeds) == 0 && f.Search == "" &&
		f.Cost.IsZero() && f.Fi.IsZero() && f.Hp.IsZero() &&
		f.GodDmg.IsZero() && f.CreatureDmg.IsZero()
}

// Match reports whether c satisfies the filter.
func (f Card) Match(c *schema.Card) bool {
	if !matchSearch(f.Search, c.Name) {
		return false
	}
	cost := c.Cost
	ranges := []struct {
		r Range
		v *int
	}{
		{f.Cost, &cost},
		{f.Fi, c.Fi},
		{f.Hp, c.Hp},
		{f.GodDmg, c.GodDmg},
		{f.CreatureDmg, c.CreatureDmg},
	}
	for _, v := range ranges {
		if !v.r.Contains(v.v) {
			return false
		}
	}

	var dims []bool
	if len(f.Pantheons) > 0 {
		dims = append(dims, containsFold(f.Pantheons, c.Pantheon))
	}
	if len(f.Archetypes) > 0 {
		dims = append(dims, containsFold(f.Archetypes, c.Archetype))
	}
	if len(f.Tags) > 0 {
		dims = append(dims, anyTag(f.Tags, c))
	}
	if len(f.CardTypes) > 0 {
		t := string(c.Type)
		dims = append(dims, containsFold(f.CardTypes, &t))
	}
	if len(f.SpellSpeeds) > 0 {
		dims = append(dims, containsFold(f.SpellSpeeds, c.Speed))
	}
	return combine(f.Mode, dims)
}

// Location selects locations.
type Location struct {
	Pantheons  []string
	Archetypes []string
	Search     string
	Mode       Mode
}

// Match reports whether l satisfies the filter.
func (f Location) Match(l *schema.Location) bool {
	if !matchSearch(f.Search, l.Name) {
		return false
	}
	var dims []bool
	if len(f.Pantheons) > 0 {
		dims = append(dims, containsFold(f.Pantheons, l.Pantheon))
	}
	if len(f.Archetypes) > 0 {
		dims = append(dims, containsFold(f.Archetypes, l.Archetype))
	}
	return combine(f.Mode, dims)
}

// Cards keeps the cards matching f, preserving their order.
func Cards(f Card, cards []schema.Card) []schema.Card {
	if f.IsEmpty() {
		return cards
	}
	res := make([]schema.Card, 0, len(cards))
	for i := range cards {
		if f.Match(&cards[i]) {
			res = append(res, cards[i])
		}
	}
	return res
}

// Locations keeps the locations matching f, preserving their order.
func Locations(f Location, locs []schema.Location) []schema.Location {
	res := make([]schema.Location, 0, len(locs))
	for i := range locs {
		if f.Match(&locs[i]) {
			res = append(res, locs[i])
		}
	}
	return res
}

func combine(mode Mode, dims []bool) bool {
	if len(dims) == 0 {
		return true
	}
	if mode == ModeOr {
		for _, v := range dims {
			if v {
				return true
			}
		}
		return false
	}
	for _, v := range dims {
		if !v {
			return false
		}
	}
	return true
}

func matchSearch(search, name string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

func containsFold(set []string, val *string) bool {
	if val == nil {
		return false
	}
	for _, v := range set {
		if strings.EqualFold(v, *val) {
			return true
		}
	}
	return false
}

func anyTag(tags []string, c *schema.Card) bool {
	for _, v := range tags {
		if c.HasTag(v) {
			return true
		}
	}
	return false
}
