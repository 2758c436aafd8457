package schema

// Seed is the content of an import/export YAML file. References inside
// cards are written without database ids and are linked by natural key
// on import.
type Seed struct {
	Pantheons        []Category       `yaml:"pantheons,omitempty"`
	Archetypes       []Category       `yaml:"archetypes,omitempty"`
	Tags             []Category       `yaml:"tags,omitempty"`
	AbilityTimings   []Category       `yaml:"ability_timings,omitempty"`
	KeywordAbilities []KeywordAbility `yaml:"keyword_abilities,omitempty"`
	Passives         []Passive        `yaml:"passives,omitempty"`
	Cards            []Card           `yaml:"cards,omitempty"`
	Locations        []Location       `yaml:"locations,omitempty"`
}

// Categories returns the registries of the seed keyed by kind.
func (s *Seed) Categories() map[CategoryKind][]Category {
	return map[CategoryKind][]Category{
		CategoryPantheon:      s.Pantheons,
		CategoryArchetype:     s.Archetypes,
		CategoryTag:           s.Tags,
		CategoryAbilityTiming: s.AbilityTimings,
	}
}

// Total counts all entities of the seed.
func (s *Seed) Total() int {
	res := len(s.KeywordAbilities) + len(s.Passives) +
		len(s.Cards) + len(s.Locations)
	for _, v := range s.Categories() {
		res += len(v)
	}
	return res
}

// StripIDs removes database ids from card references.
func (s *Seed) StripIDs() {
	for i := range s.Cards {
		for j := range s.Cards[i].Passives {
			s.Cards[i].Passives[j].PassiveID = nil
		}
		for j := range s.Cards[i].CardAbilities {
			s.Cards[i].CardAbilities[j].AbilityID = nil
		}
	}
}
