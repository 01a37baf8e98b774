package encoding

import (
	"errors"
	"fmt"
)

// Buffer is a buffer of bytes
type Buffer []byte

// ErrFormat is returned when a value is structurally invalid.
type ErrFormat struct {
	Msg string
}

func (e ErrFormat) Error() string {
	return e.Msg
}

// ErrBufferOverflow is returned when a TLV-LENGTH runs past the end of its enclosing buffer.
var ErrBufferOverflow = errors.New("buffer overflow when parsing. One of the TLV Length is wrong")

// ErrBufferTooSmall is returned when an encoded packet does not fit in the output buffer.
// Nothing is written in that case.
var ErrBufferTooSmall = errors.New("output buffer is too small for the encoded packet")

// ErrCapacity is returned when a decoded element has more entries than the
// fixed-capacity storage supplied by the caller.
type ErrCapacity struct {
	Item string
	Max  int
}

func (e ErrCapacity) Error() string {
	return fmt.Sprintf("%s exceeds capacity of %d", e.Item, e.Max)
}

type ErrUnrecognizedField struct {
	TypeNum TLNum
}

func (e ErrUnrecognizedField) Error() string {
	return fmt.Sprintf("There exists an unrecognized field that has a critical type number: %d", e.TypeNum)
}

type ErrSkipRequired struct {
	Name    string
	TypeNum TLNum
}

func (e ErrSkipRequired) Error() string {
	return fmt.Sprintf("The required field %s(%d) is missing in the input", e.Name, e.TypeNum)
}

type ErrFailToParse struct {
	TypeNum TLNum
	Err     error
}

func (e ErrFailToParse) Error() string {
	return fmt.Sprintf("Failed to parse field %d: %v", e.TypeNum, e.Err)
}

func (e ErrFailToParse) Unwrap() error {
	return e.Err
}

type ErrUnexpected struct {
	Err error
}

func (e ErrUnexpected) Error() string {
	return fmt.Sprintf("Unexpected error happened in parsing: %v", e.Err)
}

func (e ErrUnexpected) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err belongs to the decode error family.
// These are always recoverable: the offending packet is dropped.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var (
		eFmt   ErrFormat
		eCap   ErrCapacity
		eUnrec ErrUnrecognizedField
		eSkip  ErrSkipRequired
		eParse ErrFailToParse
	)
	return errors.Is(err, ErrBufferOverflow) ||
		errors.As(err, &eFmt) ||
		errors.As(err, &eCap) ||
		errors.As(err, &eUnrec) ||
		errors.As(err, &eSkip) ||
		errors.As(err, &eParse)
}
