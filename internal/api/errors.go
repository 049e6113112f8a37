package api

import (
	"errors"
	"fmt"
)

// Error is a server-reported failure: the backend answered with a non-2xx
// status. Message carries the server's detail/message field when the error
// body had one, else the generic "Error <status>" form.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NetworkError is a transport failure: no connectivity, DNS, timeout. The
// request never produced a server response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrNoToken is returned by Login when the backend answered 2xx but the
// response carried no token in any of its known shapes.
var ErrNoToken = errors.New("no token received")
