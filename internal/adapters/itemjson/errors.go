package itemjson

import "errors"

// ErrInvalidItem reports an item document that cannot be decoded.
var ErrInvalidItem = errors.New("invalid item document")
