// Package schema provides the domain models of cardlab together with
// their GORM mappings. Models normalise and validate themselves in
// Prepare, so every storage backend enforces the same shape rules.
package schema

import (
	"slices"
	"strings"
	"time"
)

// CardType is one of the fixed card families.
type CardType string

const (
	TypeGod           CardType = "God"
	TypeCreature      CardType = "Creature"
	TypeWeapon        CardType = "Weapon"
	TypeArmor         CardType = "Armor"
	TypeEnchantedItem CardType = "Enchanted Item"
	TypeSpell         CardType = "Spell"
)

// DefaultSpellSpeed is assigned to spells saved without a speed.
const DefaultSpellSpeed = "Fast"

// CardTypes lists all card types in display order.
var CardTypes = []CardType{
	TypeGod, TypeCreature, TypeWeapon, TypeArmor, TypeEnchantedItem, TypeSpell,
}

// ParseCardType matches s case-insensitively against the known types.
func ParseCardType(s string) (CardType, bool) {
	s = strings.TrimSpace(s)
	for _, v := range CardTypes {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

// Ability is a God ability line.
type Ability struct {
	Name string `json:"name"   yaml:"name"`
	// Timing comes from the ability timings registry, may be empty.
	Timing *string `json:"timing" yaml:"timing,omitempty"`
	Text   string  `json:"text"   yaml:"text"`
}

// PassiveRef is a denormalised snapshot of a Passive embedded into a God
// card. PassiveID points back at the source of truth; the rest is a cache.
type PassiveRef struct {
	PassiveID *uint   `json:"passive_id,omitempty" yaml:"passive_id,omitempty"`
	Group     *string `json:"group"                yaml:"group,omitempty"`
	Name      string  `json:"name"                 yaml:"name"`
	Text      string  `json:"text"                 yaml:"text"`
}

// AbilityRef is a denormalised snapshot of a KeywordAbility attached to a
// Creature card.
type AbilityRef struct {
	AbilityID *uint  `json:"ability_id,omitempty" yaml:"ability_id,omitempty"`
	Name      string `json:"name"                 yaml:"name"`
	Text      string `json:"text"                 yaml:"text"`
}

// Card is a designed game card.
type Card struct {
	ID          uint     `gorm:"primaryKey"                json:"id"          yaml:"-"`
	Name        string   `gorm:"type:varchar(255);not null" json:"name"        yaml:"name"`
	Type        CardType `gorm:"type:varchar(32);not null"  json:"type"        yaml:"type"`
	Cost        int      `gorm:"not null;default:0"         json:"cost"        yaml:"cost"`
	Fi          *int     `json:"fi"          yaml:"fi,omitempty"`
	Hp          *int     `json:"hp"          yaml:"hp,omitempty"`
	GodDmg      *int     `json:"godDmg"      yaml:"godDmg,omitempty"`
	CreatureDmg *int     `json:"creatureDmg" yaml:"creatureDmg,omitempty"`
	Dmg         *int     `json:"dmg"         yaml:"dmg,omitempty"`
	Speed       *string  `gorm:"type:varchar(64)"           json:"speed"       yaml:"speed,omitempty"`
	StatTotal   int      `gorm:"not null;default:0"         json:"statTotal"   yaml:"-"`
	Pantheon    *string  `gorm:"type:varchar(255);index"    json:"pantheon"    yaml:"pantheon,omitempty"`
	Archetype   *string  `gorm:"type:varchar(255);index"    json:"archetype"   yaml:"archetype,omitempty"`
	Tags        []string `gorm:"serializer:json"            json:"tags"        yaml:"tags,omitempty"`
	CardText    *string  `gorm:"type:text"                  json:"cardText"    yaml:"cardText,omitempty"`

	Abilities     []Ability    `gorm:"serializer:json" json:"abilities"     yaml:"abilities,omitempty"`
	Passives      []PassiveRef `gorm:"serializer:json" json:"passives"      yaml:"passives,omitempty"`
	CardAbilities []AbilityRef `gorm:"serializer:json" json:"cardAbilities" yaml:"cardAbilities,omitempty"`

	Version   int       `gorm:"not null;default:1" json:"version"    yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (c *Card) EntityKind() Kind    { return KindCard }
func (c *Card) EntityID() uint      { return c.ID }
func (c *Card) CurrentVersion() int { return c.Version }
func (c *Card) SetVersion(v int)    { c.Version = v }

// SetContent copies every authored field of src into c, keeping identity,
// version and timestamps of c.
func (c *Card) SetContent(src Card) {
	src.ID, src.Version = c.ID, c.Version
	src.CreatedAt, src.UpdatedAt = c.CreatedAt, c.UpdatedAt
	*c = src
}

// Prepare normalises the card, validates its type-specific shape and
// recomputes StatTotal.
func (c *Card) Prepare() error {
	c.normalize()
	if err := c.validate(); err != nil {
		return err
	}
	c.StatTotal = c.computeStatTotal()
	return nil
}

// References lists the versioned entities this card embeds by id.
func (c *Card) References() []CardReference {
	var res []CardReference
	seen := make(map[CardReference]struct{})
	add := func(kind Kind, id *uint) {
		if id == nil {
			return
		}
		ref := CardReference{CardID: c.ID, Kind: kind, RefID: *id}
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		res = append(res, ref)
	}
	for _, v := range c.Passives {
		add(KindPassive, v.PassiveID)
	}
	for _, v := range c.CardAbilities {
		add(KindKeywordAbility, v.AbilityID)
	}
	return res
}

// HasTag reports whether the card carries tag, ignoring case.
func (c *Card) HasTag(tag string) bool {
	return slices.ContainsFunc(c.Tags, func(s string) bool {
		return strings.EqualFold(s, tag)
	})
}

func (c *Card) computeStatTotal() int {
	var res int
	for _, v := range []*int{c.Fi, c.Hp, c.GodDmg, c.CreatureDmg, c.Dmg} {
		if v != nil {
			res += *v
		}
	}
	return res
}

func (c *Card) normalize() {
	c.Name = NormText(c.Name)
	if t, ok := ParseCardType(string(c.Type)); ok {
		c.Type = t
	}
	c.Speed = NormPtr(c.Speed)
	c.Pantheon = NormPtr(c.Pantheon)
	c.Archetype = NormPtr(c.Archetype)
	c.CardText = NormPtr(c.CardText)
	c.Tags = NormSet(c.Tags)

	abilities := make([]Ability, 0, len(c.Abilities))
	for _, v := range c.Abilities {
		v.Name = NormText(v.Name)
		v.Text = NormText(v.Text)
		v.Timing = NormPtr(v.Timing)
		if v.Name == "" && v.Text == "" && v.Timing == nil {
			continue
		}
		abilities = append(abilities, v)
	}
	c.Abilities = abilities

	passives := make([]PassiveRef, 0, len(c.Passives))
	for _, v := range c.Passives {
		v.Name = NormText(v.Name)
		v.Text = NormText(v.Text)
		v.Group = NormPtr(v.Group)
		if v.Name == "" && v.Text == "" && v.Group == nil && v.PassiveID == nil {
			continue
		}
		passives = append(passives, v)
	}
	c.Passives = passives

	cardAbilities := make([]AbilityRef, 0, len(c.CardAbilities))
	for _, v := range c.CardAbilities {
		v.Name = NormText(v.Name)
		v.Text = NormText(v.Text)
		if v.Name == "" && v.Text == "" && v.AbilityID == nil {
			continue
		}
		cardAbilities = append(cardAbilities, v)
	}
	c.CardAbilities = cardAbilities

	if c.Type == TypeSpell && c.Speed == nil {
		speed := DefaultSpellSpeed
		c.Speed = &speed
	}
}
