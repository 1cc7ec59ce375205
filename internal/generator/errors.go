package generator

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes why a generation attempt failed.
type ErrorKind int

const (
	// KindCall means the backend call itself failed (network, auth, quota).
	KindCall ErrorKind = iota
	// KindParse means the call succeeded but the payload did not match the
	// expected structured shape.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// GenerationError is the tagged failure returned by the generation client.
// A single failed attempt surfaces immediately: no retries are performed.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s error: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsParse reports whether err is a GenerationError of kind KindParse.
func IsParse(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge) && ge.Kind == KindParse
}

// IsCall reports whether err is a GenerationError of kind KindCall.
func IsCall(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge) && ge.Kind == KindCall
}
