package schema

// CategoryKind names one of the open-ended registries.
type CategoryKind string

const (
	CategoryPantheon      CategoryKind = "pantheon"
	CategoryArchetype     CategoryKind = "archetype"
	CategoryTag           CategoryKind = "tag"
	CategoryAbilityTiming CategoryKind = "ability_timing"
)

// Category is an entry of a dynamic registry: pantheons, archetypes,
// tags and ability timings all grow on first use and dedup by name
// ignoring case.
type Category struct {
	ID          uint         `gorm:"primaryKey" json:"id" yaml:"-"`
	Kind        CategoryKind `gorm:"type:varchar(32);not null;uniqueIndex:idx_categories_key,priority:1" json:"-" yaml:"-"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name" yaml:"name"`
	NameKey     string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_key,priority:2" json:"-" yaml:"-"`
	Description *string      `gorm:"type:text" json:"description,omitempty" yaml:"description,omitempty"`
}

func (c *Category) Prepare() error {
	c.Name = NormText(c.Name)
	c.NameKey = NormKey(c.Name)
	c.Description = NormPtr(c.Description)

	verr := &ValidationError{Entity: string(c.Kind)}
	if c.Name == "" {
		verr.add("name", "is required")
	}
	return verr.orNil()
}
