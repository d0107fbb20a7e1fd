package client

import "errors"

// ErrBadRequest marks a message that is not a valid request. The connection
// is still usable.
var ErrBadRequest = errors.New("client: Bad request")
