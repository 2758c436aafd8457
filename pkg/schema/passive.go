package schema

import "time"

// Passive is a reusable named effect embedded into God cards.
// (GroupName, Name) compared case-insensitively is its natural key.
type Passive struct {
	ID        uint    `gorm:"primaryKey"                json:"id"         yaml:"-"`
	GroupName string  `gorm:"type:varchar(255);not null" json:"group_name" yaml:"group_name"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"       yaml:"name"`
	Text      string  `gorm:"type:text"                  json:"text"       yaml:"text"`
	Pantheon  *string `gorm:"type:varchar(255)"          json:"pantheon"   yaml:"pantheon,omitempty"`
	Archetype *string `gorm:"type:varchar(255)"          json:"archetype"  yaml:"archetype,omitempty"`

	GroupKey string `gorm:"type:varchar(255);not null;uniqueIndex:idx_passives_key,priority:1" json:"-" yaml:"-"`
	NameKey  string `gorm:"type:varchar(255);not null;uniqueIndex:idx_passives_key,priority:2" json:"-" yaml:"-"`

	Version   int       `gorm:"not null;default:1" json:"version"    yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (p *Passive) EntityKind() Kind    { return KindPassive }
func (p *Passive) EntityID() uint      { return p.ID }
func (p *Passive) CurrentVersion() int { return p.Version }
func (p *Passive) SetVersion(v int)    { p.Version = v }

// SetContent copies authored fields of src into p.
func (p *Passive) SetContent(src Passive) {
	p.GroupName = src.GroupName
	p.Name = src.Name
	p.Text = src.Text
	p.Pantheon = src.Pantheon
	p.Archetype = src.Archetype
}

// Prepare normalises the passive and fills its natural key.
func (p *Passive) Prepare() error {
	p.GroupName = NormText(p.GroupName)
	p.Name = NormText(p.Name)
	p.Text = NormText(p.Text)
	p.Pantheon = NormPtr(p.Pantheon)
	p.Archetype = NormPtr(p.Archetype)
	p.GroupKey = NormKey(p.GroupName)
	p.NameKey = NormKey(p.Name)

	verr := &ValidationError{Entity: "passive"}
	if p.Name == "" {
		verr.add("name", "is required")
	}
	return verr.orNil()
}

// Group returns GroupName as the optional group of a PassiveRef.
func (p *Passive) Group() *string {
	if p.GroupName == "" {
		return nil
	}
	g := p.GroupName
	return &g
}

// Ref builds the snapshot a card embeds for this passive.
func (p *Passive) Ref() PassiveRef {
	id := p.ID
	return PassiveRef{
		PassiveID: &id,
		Group:     p.Group(),
		Name:      p.Name,
		Text:      p.Text,
	}
}
