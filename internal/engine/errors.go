// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"errors"
	"fmt"
)

// Failure kinds. Every prediction failure wraps exactly one of these, so
// callers can branch with errors.Is. None of them is ever replaced by a
// placeholder prediction.
var (
	// ErrUnknownWeddingType: the normalised input matches no active wedding type.
	ErrUnknownWeddingType = errors.New("unknown wedding type")
	// ErrInvalidColourInput: neither a #RRGGBB literal nor a name with a known RGB.
	ErrInvalidColourInput = errors.New("invalid colour input")
	// ErrNoEligibleColours: every cultural colour of the wedding type is restricted.
	ErrNoEligibleColours = errors.New("no eligible colours")
	// ErrNoRuleData: the wedding type has no usable colour rule at all.
	ErrNoRuleData = errors.New("no rule data")
)

// Error is the typed failure returned by Predict and Resolve.
type Error struct {
	Kind        error
	WeddingType string
	Input       string
	Message     string
}

func newError(kind error, weddingType, input, format string, args ...any) *Error {
	return &Error{
		Kind:        kind,
		WeddingType: weddingType,
		Input:       input,
		Message:     fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes Kind to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Code returns a stable machine-readable identifier for the failure kind.
func (e *Error) Code() string {
	switch e.Kind {
	case ErrUnknownWeddingType:
		return "UNKNOWN_WEDDING_TYPE"
	case ErrInvalidColourInput:
		return "INVALID_COLOUR_INPUT"
	case ErrNoEligibleColours:
		return "NO_ELIGIBLE_COLOURS"
	case ErrNoRuleData:
		return "NO_RULE_DATA"
	}
	return "ENGINE_ERROR"
}
