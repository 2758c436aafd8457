package schema

// Kind identifies a versioned entity type in the ledger.
type Kind string

const (
	KindCard           Kind = "card"
	KindPassive        Kind = "passive"
	KindKeywordAbility Kind = "keyword_ability"
)

// Versioned is implemented by every entity that keeps a version history.
type Versioned interface {
	EntityKind() Kind
	EntityID() uint
	CurrentVersion() int
	SetVersion(int)
	// Prepare normalises the entity, validates it and derives computed
	// fields. It returns *ValidationError on invalid content.
	Prepare() error
}

// CardReference records that a card embeds a passive or keyword ability.
type CardReference struct {
	CardID uint `gorm:"primaryKey;autoIncrement:false"`
	Kind   Kind `gorm:"primaryKey;type:varchar(32);index:idx_card_refs_target,priority:1"`
	RefID  uint `gorm:"primaryKey;autoIncrement:false;index:idx_card_refs_target,priority:2"`
}

func (CardReference) TableName() string { return "card_references" }
