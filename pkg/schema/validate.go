package schema

import (
	"fmt"
	"strings"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError collects every shape violation of an entity, so the
// caller sees all problems of a save at once.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, v := range e.Fields {
		msgs[i] = v.Field + ": " + v.Msg
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(msgs, "; "))
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// cardShape lists which optional fields a card type may carry.
type cardShape struct {
	fi, hp, godDmg, creatureDmg, dmg bool
	speed, cardText                  bool
	abilities, passives              bool
	cardAbilities                    bool
}

var cardShapes = map[CardType]cardShape{
	TypeGod: {
		fi: true, hp: true, godDmg: true, creatureDmg: true,
		abilities: true, passives: true,
	},
	TypeCreature: {
		fi: true, hp: true, dmg: true,
		cardText: true, cardAbilities: true,
	},
	TypeSpell:         {speed: true, cardText: true},
	TypeWeapon:        {cardText: true},
	TypeArmor:         {cardText: true},
	TypeEnchantedItem: {cardText: true},
}

func (c *Card) validate() error {
	verr := &ValidationError{Entity: "card"}

	if c.Name == "" {
		verr.add("name", "is required")
	}
	if c.Cost < 0 {
		verr.add("cost", "cannot be negative")
	}

	shape, ok := cardShapes[c.Type]
	if !ok {
		verr.add("type", "unknown card type %q", c.Type)
		return verr
	}

	stats := []struct {
		field   string
		val     *int
		allowed bool
	}{
		{"fi", c.Fi, shape.fi},
		{"hp", c.Hp, shape.hp},
		{"godDmg", c.GodDmg, shape.godDmg},
		{"creatureDmg", c.CreatureDmg, shape.creatureDmg},
		{"dmg", c.Dmg, shape.dmg},
	}
	for _, v := range stats {
		if v.val == nil {
			continue
		}
		if !v.allowed {
			verr.add(v.field, "not allowed for %s cards", c.Type)
			continue
		}
		if *v.val < 0 {
			verr.add(v.field, "cannot be negative")
		}
	}

	if c.Speed != nil && !shape.speed {
		verr.add("speed", "not allowed for %s cards", c.Type)
	}
	if c.CardText != nil && !shape.cardText {
		verr.add("cardText", "not allowed for %s cards", c.Type)
	}
	if len(c.Abilities) > 0 && !shape.abilities {
		verr.add("abilities", "not allowed for %s cards", c.Type)
	}
	if len(c.Passives) > 0 && !shape.passives {
		verr.add("passives", "not allowed for %s cards", c.Type)
	}
	if len(c.CardAbilities) > 0 && !shape.cardAbilities {
		verr.add("cardAbilities", "not allowed for %s cards", c.Type)
	}

	for i, v := range c.Abilities {
		if v.Name == "" {
			verr.add(fmt.Sprintf("abilities[%d].name", i), "is required")
		}
	}
	for i, v := range c.Passives {
		if v.Name == "" {
			verr.add(fmt.Sprintf("passives[%d].name", i), "is required")
		}
	}
	for i, v := range c.CardAbilities {
		if v.Name == "" {
			verr.add(fmt.Sprintf("cardAbilities[%d].name", i), "is required")
		}
	}

	return verr.orNil()
}
