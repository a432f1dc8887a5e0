package pricestore

import "errors"

// Sentinel kinds for price store errors.
var (
	ErrNoSnapshot  = errors.New("no price snapshot published")
	ErrSourceLoad  = errors.New("price source load failed")
	ErrInvalidData = errors.New("invalid price data")
)
