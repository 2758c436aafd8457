package schema

import "time"

// Location is an unversioned place card.
type Location struct {
	ID        uint      `gorm:"primaryKey"                json:"id"         yaml:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"       yaml:"name"`
	Text      string    `gorm:"type:text"                  json:"text"       yaml:"text"`
	Pantheon  *string   `gorm:"type:varchar(255);index"    json:"pantheon"   yaml:"pantheon,omitempty"`
	Archetype *string   `gorm:"type:varchar(255);index"    json:"archetype"  yaml:"archetype,omitempty"`
	ImageURL  *string   `gorm:"type:text"                  json:"image_url"  yaml:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (l *Location) Prepare() error {
	l.Name = NormText(l.Name)
	l.Text = NormText(l.Text)
	l.Pantheon = NormPtr(l.Pantheon)
	l.Archetype = NormPtr(l.Archetype)
	l.ImageURL = NormPtr(l.ImageURL)

	verr := &ValidationError{Entity: "location"}
	if l.Name == "" {
		verr.add("name", "is required")
	}
	return verr.orNil()
}

// LocationSummary lists the distinct pantheons and archetypes used by
// locations, for building filter menus.
type LocationSummary struct {
	Pantheons  []string `json:"pantheons"`
	Archetypes []string `json:"archetypes"`
	Total      int      `json:"total"`
}
