package socials

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSocial is wrapped by every error this package returns.
var ErrSocial = errors.New("socials")

// NoNamesError is returned when a resolver is registered without any names.
type NoNamesError struct{}

func (e *NoNamesError) Error() string { return "no suffix names provided" }
func (e *NoNamesError) Unwrap() error { return ErrSocial }

// DuplicateNameError is returned when a suffix name is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("suffix %q is already registered", e.Name)
}
func (e *DuplicateNameError) Unwrap() error { return ErrSocial }

// NoMatchError is returned when the match function finds nothing for a {token}.
type NoMatchError struct {
	Token string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match for %q", e.Token)
}
func (e *NoMatchError) Unwrap() error { return ErrSocial }

// NoObjectError is returned when a directive refers to a perspective that
// isn't in the list. Index is 1-based, as written in the template.
type NoObjectError struct {
	Index int
}

func (e *NoObjectError) Error() string {
	return fmt.Sprintf("%d is not in the list of objects", e.Index)
}
func (e *NoObjectError) Unwrap() error { return ErrSocial }

// NoSuffixError is returned for an unregistered suffix name.
type NoSuffixError struct {
	Suffix string
	Valid  []string // sorted
}

func (e *NoSuffixError) Error() string {
	return fmt.Sprintf("%s is not a valid suffix. Valid suffixes: %s", e.Suffix, strings.Join(e.Valid, ", "))
}
func (e *NoSuffixError) Unwrap() error { return ErrSocial }

// Kind returns a short name for the kind of err, suitable for metric labels.
// Errors not produced by this package return "other".
func Kind(err error) string {
	var (
		noNames   *NoNamesError
		duplicate *DuplicateNameError
		noMatch   *NoMatchError
		noObject  *NoObjectError
		noSuffix  *NoSuffixError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &noNames):
		return "no_names"
	case errors.As(err, &duplicate):
		return "duplicate_name"
	case errors.As(err, &noMatch):
		return "no_match"
	case errors.As(err, &noObject):
		return "no_object"
	case errors.As(err, &noSuffix):
		return "no_suffix"
	default:
		return "other"
	}
}
