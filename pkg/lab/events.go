package lab

import (
	"context"
	"time"
)

// Action names a committed mutation.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionRestore Action = "restore"
	ActionCascade Action = "cascade"
	ActionDelete  Action = "delete"
)

// Event announces a committed change so editors can refresh.
type Event struct {
	Entity  string    `json:"entity"`
	Action  Action    `json:"action"`
	ID      uint      `json:"id"`
	Version int       `json:"version,omitempty"`
	Time    time.Time `json:"time"`
}

// Publisher delivers events. Publishing is best effort, a failure never
// undoes the change it reports.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
