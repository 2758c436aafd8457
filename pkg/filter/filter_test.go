package filter_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func deck() []schema.Card {
	return []schema.Card{
		{ID: 1, Name: "Zeus", Type: schema.TypeGod, Cost: 5, Pantheon: ptr("Greek"),
			Fi: ptr(4), Hp: ptr(12), Tags: []string{"Destroy"}},
		{ID: 2, Name: "Odin", Type: schema.TypeGod, Cost: 6, Pantheon: ptr("Norse"),
			Fi: ptr(5), Hp: ptr(10), Tags: []string{"Buff"}},
		{ID: 3, Name: "Hoplite", Type: schema.TypeCreature, Cost: 2, Pantheon: ptr("Greek"),
			Hp: ptr(3), Dmg: ptr(2), Archetype: ptr("Warrior")},
		{ID: 4, Name: "Bolt of Zeus", Type: schema.TypeSpell, Cost: 1, Pantheon: ptr("Greek"),
			Speed: ptr("Fast"), Tags: []string{"destroy"}},
		{ID: 5, Name: "Ritual", Type: schema.TypeSpell, Cost: 3, Speed: ptr("Slow")},
	}
}

func ids(cards []schema.Card) []uint {
	res := make([]uint, 0, len(cards))
	for _, v := range cards {
		res = append(res, v.ID)
	}
	return res
}

func TestCards(t *testing.T) {
	tests := []struct {
		msg string
		f   filter.Card
		out []uint
	}{
		{"empty", filter.Card{}, []uint{1, 2, 3, 4, 5}},
		{"pantheons or",
			filter.Card{Pantheons: []string{"Greek", "Norse"}, Mode: filter.ModeOr},
			[]uint{1, 2, 3, 4}},
		{"pantheon ignores case",
			filter.Card{Pantheons: []string{"norse"}},
			[]uint{2}},
		{"and pantheon tag",
			filter.Card{Pantheons: []string{"Greek"}, Tags: []string{"Destroy"}, Mode: filter.ModeAnd},
			[]uint{1, 4}},
		{"or pantheon tag",
			filter.Card{Pantheons: []string{"Norse"}, Tags: []string{"Destroy"}, Mode: filter.ModeOr},
			[]uint{1, 2, 4}},
		{"default mode is and",
			filter.Card{Pantheons: []string{"Greek"}, CardTypes: []string{"god"}},
			[]uint{1}},
		{"spell speeds",
			filter.Card{SpellSpeeds: []string{"slow"}},
			[]uint{5}},
		{"search",
			filter.Card{Search: "zeus"},
			[]uint{1, 4}},
		{"search narrows or",
			filter.Card{Search: "zeus", Pantheons: []string{"Norse"}, Tags: []string{"destroy"}, Mode: filter.ModeOr},
			[]uint{1, 4}},
		{"cost range",
			filter.Card{Cost: filter.Range{Min: ptr(2), Max: ptr(5)}},
			[]uint{1, 3, 5}},
		{"missing stat is zero",
			filter.Card{Fi: filter.Range{Max: ptr(0)}},
			[]uint{3, 4, 5}},
		{"hp min",
			filter.Card{Hp: filter.Range{Min: ptr(10)}},
			[]uint{1, 2}},
		{"no match",
			filter.Card{Archetypes: []string{"Mage"}},
			[]uint{}},
	}

	for _, v := range tests {
		res := filter.Cards(v.f, deck())
		assert.Equal(t, v.out, ids(res), v.msg)
	}
}

func TestParseCard(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	q, err := url.ParseQuery(
		"pantheon=Greek&pantheons=Norse,greek&tags=Destroy&tags=Buff" +
			"&type=God&card_types=Spell&filter_mode=OR&search=+ze+" +
			"&min_cost=1&max_god_dmg=4",
	)
	require.NoError(err)

	f, err := filter.ParseCard(q)
	require.NoError(err)
	assert.Equal([]string{"Greek", "Norse"}, f.Pantheons)
	assert.Equal([]string{"Destroy", "Buff"}, f.Tags)
	assert.Equal([]string{"God", "Spell"}, f.CardTypes)
	assert.Equal(filter.ModeOr, f.Mode)
	assert.Equal("ze", f.Search)
	assert.Equal(1, *f.Cost.Min)
	assert.Nil(f.Cost.Max)
	assert.Equal(4, *f.GodDmg.Max)
	assert.Empty(f.SpellSpeeds)
}

func TestParseCardErrors(t *testing.T) {
	tests := []struct {
		msg, query, param string
	}{
		{"bad int", "min_hp=abc", "min_hp"},
		{"bad mode", "filter_mode=xor", "filter_mode"},
		{"bad type", "type=Planet", "card_types"},
	}

	for _, v := range tests {
		q, err := url.ParseQuery(v.query)
		require.NoError(t, err)
		_, err = filter.ParseCard(q)
		var perr *filter.ParamError
		require.True(t, errors.As(err, &perr), v.msg)
		assert.Equal(t, v.param, perr.Param, v.msg)
	}
}

func TestLocations(t *testing.T) {
	locs := []schema.Location{
		{ID: 1, Name: "Olympus", Pantheon: ptr("Greek")},
		{ID: 2, Name: "Asgard", Pantheon: ptr("Norse"), Archetype: ptr("Fortress")},
		{ID: 3, Name: "Hades Gate", Pantheon: ptr("Greek"), Archetype: ptr("Fortress")},
	}

	q, err := url.ParseQuery("pantheons=greek&archetype=fortress")
	require.NoError(t, err)
	f, err := filter.ParseLocation(q)
	require.NoError(t, err)
	res := filter.Locations(f, locs)
	require.Len(t, res, 1)
	assert.Equal(t, uint(3), res[0].ID)

	f.Mode = filter.ModeOr
	assert.Len(t, filter.Locations(f, locs), 3)

	f = filter.Location{Search: "as"}
	res = filter.Locations(f, locs)
	require.Len(t, res, 1)
	assert.Equal(t, "Asgard", res[0].Name)
}
