// Package lab defines the operations of the card lab: versioned CRUD of
// cards, passives and keyword abilities, restores, cascades, dynamic
// registries and locations. Implementations live in internal/iolab.
package lab

import (
	"context"

	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/schema"
)

// Cards manages versioned cards.
type Cards interface {
	// QueryCards returns cards matching f in creation order.
	QueryCards(ctx context.Context, f filter.Card) ([]schema.Card, error)
	Card(ctx context.Context, id uint) (*schema.Card, error)

	// CreateCard resolves passive and keyword ability references, then
	// stores the card as version 1.
	CreateCard(ctx context.Context, c schema.Card) (*schema.Card, error)

	// UpdateCard replaces the content of a card, creating a new version.
	UpdateCard(ctx context.Context, id uint, c schema.Card) (*schema.Card, error)
	DeleteCard(ctx context.Context, id uint) error

	CardVersions(ctx context.Context, id uint) ([]schema.VersionEntry[schema.Card], error)
	CardVersion(ctx context.Context, id uint, v int) (*schema.VersionEntry[schema.Card], error)

	// RestoreCard copies version v into a new current version with
	// references re-resolved to the current text of their referents.
	RestoreCard(ctx context.Context, id uint, v int) (*schema.Card, error)
}

// Passives manages versioned passives. Updates and restores cascade into
// the cards that embed the passive.
type Passives interface {
	Passives(ctx context.Context) ([]schema.Passive, error)
	Passive(ctx context.Context, id uint) (*schema.Passive, error)

	// EnsurePassive returns the passive with the same group and name or
	// creates it. The flag is true when a new passive was created.
	EnsurePassive(ctx context.Context, p schema.Passive) (*schema.Passive, bool, error)
	UpdatePassive(ctx context.Context, id uint, p schema.Passive) (*schema.Passive, *schema.CascadeReport, error)
	DeletePassive(ctx context.Context, id uint) error

	PassiveVersions(ctx context.Context, id uint) ([]schema.VersionEntry[schema.Passive], error)
	PassiveVersion(ctx context.Context, id uint, v int) (*schema.VersionEntry[schema.Passive], error)
	RestorePassive(ctx context.Context, id uint, v int) (*schema.Passive, *schema.CascadeReport, error)
}

// Abilities manages versioned keyword abilities.
type Abilities interface {
	Abilities(ctx context.Context) ([]schema.KeywordAbility, error)
	Ability(ctx context.Context, id uint) (*schema.KeywordAbility, error)
	EnsureAbility(ctx context.Context, a schema.KeywordAbility) (*schema.KeywordAbility, bool, error)
	UpdateAbility(ctx context.Context, id uint, a schema.KeywordAbility) (*schema.KeywordAbility, *schema.CascadeReport, error)
	DeleteAbility(ctx context.Context, id uint) error

	AbilityVersions(ctx context.Context, id uint) ([]schema.VersionEntry[schema.KeywordAbility], error)
	AbilityVersion(ctx context.Context, id uint, v int) (*schema.VersionEntry[schema.KeywordAbility], error)
	RestoreAbility(ctx context.Context, id uint, v int) (*schema.KeywordAbility, *schema.CascadeReport, error)
}

// Registries manages pantheons, archetypes, tags and ability timings.
type Registries interface {
	Categories(ctx context.Context, kind schema.CategoryKind) ([]schema.Category, error)

	// EnsureCategory returns the entry with the same name or creates it.
	EnsureCategory(ctx context.Context, c schema.Category) (*schema.Category, bool, error)

	// UpdateCategory renames an entry. Renaming a pantheon or archetype
	// carries the new name into cards, passives and locations.
	UpdateCategory(ctx context.Context, c schema.Category) (*schema.Category, *schema.CascadeReport, error)

	// DeleteCategory removes an entry. Deleting a tag removes it from
	// every card that carries it.
	DeleteCategory(ctx context.Context, kind schema.CategoryKind, id uint) (*schema.CascadeReport, error)
}

// Locations manages unversioned location cards.
type Locations interface {
	QueryLocations(ctx context.Context, f filter.Location) ([]schema.Location, error)
	Location(ctx context.Context, id uint) (*schema.Location, error)
	CreateLocation(ctx context.Context, l schema.Location) (*schema.Location, error)
	UpdateLocation(ctx context.Context, id uint, l schema.Location) (*schema.Location, error)
	DeleteLocation(ctx context.Context, id uint) error
	LocationSummary(ctx context.Context) (*schema.LocationSummary, error)
}

// Lab is the complete card lab.
type Lab interface {
	Cards
	Passives
	Abilities
	Registries
	Locations
}
