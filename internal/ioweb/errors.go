package ioweb

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
)

func BadRequestError(msg string, err error) error {
	return &gn.Error{
		Code: errcode.BadRequestError,
		Msg:  "%s",
		Vars: []any{msg},
		Err:  fmt.Errorf("bad request: %s: %w", msg, err),
	}
}

func ListenError(addr string, err error) error {
	msg := `Cannot serve the API on <em>%s</em>

<em>How to fix:</em>
  1. Stop the process that uses the port
  2. Or pick another one: <em>cardlab serve --port 8001</em>`

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("cannot listen on %s: %w", addr, err),
	}
}
