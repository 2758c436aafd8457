package schema

// CascadeFailure is a dependent card that could not be re-versioned.
type CascadeFailure struct {
	CardID uint   `json:"card_id"`
	Error  string `json:"error"`
}

// CascadeReport summarises the propagation of a change in a shared
// entity into the cards that embed it.
type CascadeReport struct {
	Trigger        string           `json:"trigger"`
	TriggerID      uint             `json:"trigger_id"`
	UpdatedCardIDs []uint           `json:"updated_card_ids"`
	Failures       []CascadeFailure `json:"failures"`
}

// NewCascadeReport creates an empty report with non-nil lists.
func NewCascadeReport(trigger string, id uint) *CascadeReport {
	return &CascadeReport{
		Trigger:        trigger,
		TriggerID:      id,
		UpdatedCardIDs: []uint{},
		Failures:       []CascadeFailure{},
	}
}

// Merge appends the results of other to r.
func (r *CascadeReport) Merge(other *CascadeReport) {
	if other == nil {
		return
	}
	r.UpdatedCardIDs = append(r.UpdatedCardIDs, other.UpdatedCardIDs...)
	r.Failures = append(r.Failures, other.Failures...)
}

// OK is true when every dependent card was updated.
func (r *CascadeReport) OK() bool {
	return len(r.Failures) == 0
}
