package schema

import "time"

// KeywordAbility is a reusable creature mechanic, unique by name.
type KeywordAbility struct {
	ID      uint   `gorm:"primaryKey"                                   json:"id"   yaml:"-"`
	Name    string `gorm:"type:varchar(255);not null"                    json:"name" yaml:"name"`
	NameKey string `gorm:"type:varchar(255);not null;uniqueIndex"        json:"-"    yaml:"-"`
	Text    string `gorm:"type:text"                                     json:"text" yaml:"text"`

	Version   int       `gorm:"not null;default:1" json:"version"    yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (KeywordAbility) TableName() string { return "keyword_abilities" }

func (a *KeywordAbility) EntityKind() Kind    { return KindKeywordAbility }
func (a *KeywordAbility) EntityID() uint      { return a.ID }
func (a *KeywordAbility) CurrentVersion() int { return a.Version }
func (a *KeywordAbility) SetVersion(v int)    { a.Version = v }

// SetContent copies authored fields of src into a.
func (a *KeywordAbility) SetContent(src KeywordAbility) {
	a.Name = src.Name
	a.Text = src.Text
}

func (a *KeywordAbility) Prepare() error {
	a.Name = NormText(a.Name)
	a.Text = NormText(a.Text)
	a.NameKey = NormKey(a.Name)

	verr := &ValidationError{Entity: "keyword ability"}
	if a.Name == "" {
		verr.add("name", "is required")
	}
	return verr.orNil()
}

// Ref builds the snapshot a creature card embeds for this ability.
func (a *KeywordAbility) Ref() AbilityRef {
	id := a.ID
	return AbilityRef{AbilityID: &id, Name: a.Name, Text: a.Text}
}
