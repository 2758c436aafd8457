package ioevents

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
)

func ConnectionError(addr string, err error) error {
	msg := `Cannot connect to Redis at <em>%s</em>

<em>How to fix:</em>
  1. Start Redis or fix <em>events.redis_addr</em>
  2. Or disable Redis events: <em>CARDLAB_EVENTS_REDIS_ENABLED=false</em>`

	return &gn.Error{
		Code: errcode.EventsConnectionError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("cannot connect to redis %s: %w", addr, err),
	}
}

func PublishError(channel string, err error) error {
	return &gn.Error{
		Code: errcode.EventsPublishError,
		Msg:  "Cannot publish event to <em>%s</em>",
		Vars: []any{channel},
		Err:  fmt.Errorf("cannot publish to %s: %w", channel, err),
	}
}
