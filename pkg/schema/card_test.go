package schema_test

import (
	"errors"
	"testing"

	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseCardType(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg, in string
		out     schema.CardType
		ok      bool
	}{
		{"god", "God", schema.TypeGod, true},
		{"lower", "creature", schema.TypeCreature, true},
		{"spaces", "  enchanted item ", schema.TypeEnchantedItem, true},
		{"unknown", "Planet", "", false},
		{"empty", "", "", false},
	}

	for _, v := range tests {
		res, ok := schema.ParseCardType(v.in)
		assert.Equal(v.ok, ok, v.msg)
		assert.Equal(v.out, res, v.msg)
	}
}

func TestCardStatTotal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	card := schema.Card{
		Name:        "Hel",
		Type:        schema.TypeGod,
		Fi:          ptr(5),
		Hp:          ptr(10),
		GodDmg:      ptr(3),
		CreatureDmg: ptr(2),
	}
	require.NoError(card.Prepare())
	assert.Equal(20, card.StatTotal)

	card.Hp = ptr(15)
	require.NoError(card.Prepare())
	assert.Equal(25, card.StatTotal)

	creature := schema.Card{
		Name: "Wolf", Type: schema.TypeCreature, Hp: ptr(4), Dmg: ptr(3),
	}
	require.NoError(creature.Prepare())
	assert.Equal(7, creature.StatTotal)
}

func TestCardNormalize(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	card := schema.Card{
		Name:      "  Zeus ",
		Type:      "god",
		Pantheon:  ptr(" Greek "),
		Archetype: ptr("   "),
		Tags:      []string{"Destroy", "destroy", " ", "Buff"},
		Abilities: []schema.Ability{
			{Name: "Bolt", Text: "Deal 3"},
			{},
		},
		Passives: []schema.PassiveRef{
			{Name: " Rage ", Group: ptr("")},
			{},
		},
	}
	require.NoError(card.Prepare())
	assert.Equal("Zeus", card.Name)
	assert.Equal(schema.TypeGod, card.Type)
	assert.Equal("Greek", *card.Pantheon)
	assert.Nil(card.Archetype)
	assert.Equal([]string{"Destroy", "Buff"}, card.Tags)
	assert.Len(card.Abilities, 1)
	assert.Len(card.Passives, 1)
	assert.Equal("Rage", card.Passives[0].Name)
	assert.Nil(card.Passives[0].Group)
}

func TestSpellDefaultSpeed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	spell := schema.Card{Name: "Flash", Type: schema.TypeSpell}
	require.NoError(spell.Prepare())
	require.NotNil(spell.Speed)
	assert.Equal(schema.DefaultSpellSpeed, *spell.Speed)

	slow := schema.Card{Name: "Ritual", Type: schema.TypeSpell, Speed: ptr("Slow")}
	require.NoError(slow.Prepare())
	assert.Equal("Slow", *slow.Speed)
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		msg    string
		card   schema.Card
		fields []string
	}{
		{
			msg:  "valid god",
			card: schema.Card{Name: "Odin", Type: schema.TypeGod, Fi: ptr(1)},
		},
		{
			msg:  "valid weapon",
			card: schema.Card{Name: "Axe", Type: schema.TypeWeapon, Cost: 2, CardText: ptr("+2")},
		},
		{
			msg:    "no name",
			card:   schema.Card{Type: schema.TypeArmor},
			fields: []string{"name"},
		},
		{
			msg:    "unknown type",
			card:   schema.Card{Name: "X", Type: "Planet"},
			fields: []string{"type"},
		},
		{
			msg:    "god with card text",
			card:   schema.Card{Name: "Odin", Type: schema.TypeGod, CardText: ptr("no")},
			fields: []string{"cardText"},
		},
		{
			msg: "creature with god fields",
			card: schema.Card{
				Name: "Wolf", Type: schema.TypeCreature,
				GodDmg:   ptr(1),
				Passives: []schema.PassiveRef{{Name: "Rage"}},
			},
			fields: []string{"godDmg", "passives"},
		},
		{
			msg:    "negative stats",
			card:   schema.Card{Name: "Wolf", Type: schema.TypeCreature, Cost: -1, Hp: ptr(-2)},
			fields: []string{"cost", "hp"},
		},
		{
			msg:    "weapon with speed",
			card:   schema.Card{Name: "Axe", Type: schema.TypeWeapon, Speed: ptr("Fast")},
			fields: []string{"speed"},
		},
		{
			msg: "spell with abilities",
			card: schema.Card{
				Name: "Flash", Type: schema.TypeSpell,
				CardAbilities: []schema.AbilityRef{{Name: "Flying"}},
			},
			fields: []string{"cardAbilities"},
		},
		{
			msg: "passive text without name",
			card: schema.Card{
				Name: "Odin", Type: schema.TypeGod,
				Passives: []schema.PassiveRef{{Text: "orphan"}},
			},
			fields: []string{"passives[0].name"},
		},
	}

	for _, v := range tests {
		err := v.card.Prepare()
		if len(v.fields) == 0 {
			assert.NoError(t, err, v.msg)
			continue
		}
		var verr *schema.ValidationError
		require.True(t, errors.As(err, &verr), v.msg)
		var fields []string
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.Equal(t, v.fields, fields, v.msg)
	}
}

func TestCardReferences(t *testing.T) {
	card := schema.Card{
		ID: 7,
		Passives: []schema.PassiveRef{
			{PassiveID: ptr(uint(1)), Name: "a"},
			{PassiveID: ptr(uint(1)), Name: "a again"},
			{Name: "unlinked"},
		},
		CardAbilities: []schema.AbilityRef{
			{AbilityID: ptr(uint(1)), Name: "Flying"},
		},
	}
	refs := card.References()
	assert.Equal(t, []schema.CardReference{
		{CardID: 7, Kind: schema.KindPassive, RefID: 1},
		{CardID: 7, Kind: schema.KindKeywordAbility, RefID: 1},
	}, refs)
}

func TestCardSetContent(t *testing.T) {
	assert := assert.New(t)
	card := schema.Card{ID: 3, Name: "Old", Type: schema.TypeArmor, Version: 4}
	card.SetContent(schema.Card{ID: 99, Name: "New", Type: schema.TypeWeapon, Version: 1})
	assert.Equal(uint(3), card.ID)
	assert.Equal(4, card.Version)
	assert.Equal("New", card.Name)
	assert.Equal(schema.TypeWeapon, card.Type)
}

func TestHasTag(t *testing.T) {
	card := schema.Card{Tags: []string{"Destroy"}}
	assert.True(t, card.HasTag("destroy"))
	assert.False(t, card.HasTag("buff"))
}
