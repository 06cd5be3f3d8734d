package game

import (
	"errors"
	"fmt"
)

// Rejection errors. Propose wraps them with detail; match with errors.Is.
var (
	ErrNotYourTurn        = errors.New("not your turn")
	ErrInvalidUnit        = errors.New("invalid unit")
	ErrInvalidPath        = errors.New("invalid path")
	ErrOutOfRange         = errors.New("out of range")
	ErrNotEnoughResources = errors.New("not enough resources")
	ErrIllegalAction      = errors.New("illegal action")
)

// ErrorKind classifies an error returned by Propose, for transports that
// need a code rather than a Go error.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotYourTurn
	KindInvalidUnit
	KindInvalidPath
	KindOutOfRange
	KindNotEnoughResources
	KindIllegalAction
	KindInternal
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotYourTurn:
		return "not_your_turn"
	case KindInvalidUnit:
		return "invalid_unit"
	case KindInvalidPath:
		return "invalid_path"
	case KindOutOfRange:
		return "out_of_range"
	case KindNotEnoughResources:
		return "not_enough_resources"
	case KindIllegalAction:
		return "illegal_action"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of err. Errors that are not rejections map to
// KindInternal; nil maps to KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotYourTurn):
		return KindNotYourTurn
	case errors.Is(err, ErrInvalidUnit):
		return KindInvalidUnit
	case errors.Is(err, ErrInvalidPath):
		return KindInvalidPath
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	case errors.Is(err, ErrNotEnoughResources):
		return KindNotEnoughResources
	case errors.Is(err, ErrIllegalAction):
		return KindIllegalAction
	default:
		return KindInternal
	}
}

func reject(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
