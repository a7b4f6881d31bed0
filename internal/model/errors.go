package model

import "errors"

// User precondition violations. They abort the action with no state change.
var (
	ErrUnknownDepot    = errors.New("unknown depot")
	ErrEmptySyndicate  = errors.New("enter syndicate and at least one shop ID")
	ErrNoShopIDs       = errors.New("enter syndicate and at least one shop ID")
	ErrLastProduct     = errors.New("at least one product must remain")
	ErrEmptyDepot      = errors.New("no data found in the table for this depot")
	ErrInvalidDocument = errors.New("invalid file")
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidPeriod   = errors.New("invalid month or year")
)
