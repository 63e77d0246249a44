// /internal/smuckles/errors.go
package smuckles

import "errors"

// Rejection reasons. The command layer maps these to chat replies; only
// ErrUnauthorized is worded generically there, so a rejection never reveals
// who the right actor would have been.
var (
	ErrUnauthorized  = errors.New("actor not authorized for this action")
	ErrWrongTarget   = errors.New("target is not the designated member")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrCooldown      = errors.New("action is on cooldown")
)
