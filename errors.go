package basex

import (
	"errors"
	"fmt"
)

var (
	ErrAlphabetTooLong   = errors.New("alphabet too long")
	ErrAlphabetTooShort  = errors.New("alphabet too short")
	ErrAlphabetAmbiguous = errors.New("alphabet ambiguous")
	ErrNotInAlphabet     = errors.New("character not in alphabet")
	ErrUnknownAlphabet   = errors.New("unknown alphabet")
	ErrAlphabetNotASCII  = errors.New("alphabet not ascii")
)

// AmbiguousError reports a symbol that occurs twice in an alphabet.
type AmbiguousError struct {
	Symbol byte
	First  int // offset of the first occurrence
	Second int // offset of the repeat
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%v: %q at offsets %d and %d", ErrAlphabetAmbiguous, e.Symbol, e.First, e.Second)
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAlphabetAmbiguous
}

// NotInAlphabetError reports the first byte of a decode input that has no
// digit value.
type NotInAlphabetError struct {
	Char   byte
	Offset int
}

func (e *NotInAlphabetError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d", ErrNotInAlphabet, e.Char, e.Offset)
}

func (e *NotInAlphabetError) Is(target error) bool {
	return target == ErrNotInAlphabet
}
