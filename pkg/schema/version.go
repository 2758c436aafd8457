package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gnames/gnuuid"
)

// VersionRecord is one immutable row of the version ledger. Data keeps
// the JSON snapshot of the entity at that version. Only IsCurrent ever
// changes after insert.
type VersionRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Kind      Kind   `gorm:"type:varchar(32);not null;uniqueIndex:idx_versions_entity,priority:1"`
	EntityID  uint   `gorm:"not null;uniqueIndex:idx_versions_entity,priority:2"`
	Version   int    `gorm:"not null;uniqueIndex:idx_versions_entity,priority:3"`
	IsCurrent bool   `gorm:"not null;default:false;index"`
	Checksum  string `gorm:"type:varchar(36);not null"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (VersionRecord) TableName() string { return "versions" }

// snapshotMeta are snapshot keys that do not count as content.
var snapshotMeta = []string{"id", "version", "created_at", "updated_at"}

// NewVersionRecord snapshots ent as the current ledger row of its
// current version.
func NewVersionRecord(ent Versioned) (VersionRecord, error) {
	var res VersionRecord
	data, err := json.Marshal(ent)
	if err != nil {
		return res, fmt.Errorf("cannot encode %s snapshot: %w", ent.EntityKind(), err)
	}
	sum, err := Checksum(data)
	if err != nil {
		return res, err
	}
	res = VersionRecord{
		Kind:      ent.EntityKind(),
		EntityID:  ent.EntityID(),
		Version:   ent.CurrentVersion(),
		IsCurrent: true,
		Checksum:  sum,
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	return res, nil
}

// Checksum returns a UUIDv5 of a JSON snapshot ignoring identity and
// timestamps, so equal content always yields the same checksum.
func Checksum(snapshot []byte) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(snapshot, &m); err != nil {
		return "", fmt.Errorf("cannot decode snapshot: %w", err)
	}
	for _, k := range snapshotMeta {
		delete(m, k)
	}
	// map keys are marshalled sorted.
	content, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("cannot encode snapshot content: %w", err)
	}
	return gnuuid.New(string(content)).String(), nil
}

// VersionEntry is a decoded ledger row.
type VersionEntry[T any] struct {
	ID        uint
	EntityID  uint
	Version   int
	IsCurrent bool
	UpdatedAt time.Time
	Checksum  string
	Snapshot  T
}

// DecodeEntry restores the typed snapshot of rec.
func DecodeEntry[T any](rec VersionRecord) (VersionEntry[T], error) {
	res := VersionEntry[T]{
		ID:        rec.ID,
		EntityID:  rec.EntityID,
		Version:   rec.Version,
		IsCurrent: rec.IsCurrent,
		UpdatedAt: rec.UpdatedAt,
		Checksum:  rec.Checksum,
	}
	if err := json.Unmarshal([]byte(rec.Data), &res.Snapshot); err != nil {
		return res, fmt.Errorf(
			"cannot decode %s %d version %d: %w",
			rec.Kind, rec.EntityID, rec.Version, err,
		)
	}
	return res, nil
}

// MarshalJSON flattens the snapshot fields next to the ledger fields.
func (e VersionEntry[T]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.Snapshot)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m["id"] = e.ID
	m["entity_id"] = e.EntityID
	m["version"] = e.Version
	m["is_current"] = e.IsCurrent
	m["updated_at"] = e.UpdatedAt
	m["checksum"] = e.Checksum
	return json.Marshal(m)
}
