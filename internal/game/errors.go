package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalAction       = errors.New("illegal action")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSupplyExhausted     = errors.New("card supply exhausted")
)

// IllegalActionError explains why a requested action was rejected for a hand.
type IllegalActionError struct {
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s: %s", e.Action, e.Reason)
}

func (e *IllegalActionError) Is(target error) bool { return target == ErrIllegalAction }

func illegal(a Action, reason string) error {
	return &IllegalActionError{Action: a, Reason: reason}
}
