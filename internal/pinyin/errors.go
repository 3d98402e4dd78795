package pinyin

import (
	"errors"
	"fmt"
)

var (
	// ErrRhymeNotFound is returned when a syllable match captured no rhyme.
	ErrRhymeNotFound = errors.New("missing vowels in the input text")
	// ErrInvalidInitial is returned when an initial has no IPA mapping.
	ErrInvalidInitial = errors.New("the initial is not valid")
	// ErrInvalidRhyme is returned when a rhyme has no IPA mapping.
	ErrInvalidRhyme = errors.New("the rhyme is not valid")
	// ErrToneConversion is returned for tone digits outside 0..5.
	ErrToneConversion = errors.New("there are tones messed up in your input")
	// ErrPattern wraps a failure to compile the tokenizer pattern.
	ErrPattern = errors.New("could not compile tokenizer pattern")
)

// SyllableError names the source syllable a conversion error came from.
type SyllableError struct {
	Syllable string
	Err      error
}

func (e *SyllableError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Syllable)
}

func (e *SyllableError) Unwrap() error { return e.Err }

func syllableErr(s Syllable, err error) error {
	return &SyllableError{Syllable: s.Full, Err: err}
}
