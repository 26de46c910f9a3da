package service

import "errors"

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyStatement    = errors.New("statement is empty")
	ErrInvalidCategory   = errors.New("invalid category")
)

// ClassificationError reports a failed call to the sentiment provider. The
// analysis returned alongside it carries the placeholder sentiment.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return "classification failed: " + e.Err.Error()
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was raised before any external call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrEmptyStatement) ||
		errors.Is(err, ErrInvalidCategory)
}
