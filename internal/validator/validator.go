// Package validator provides a custom Validator type for accumulating
// field-level validation errors and returning them as a map.
package validator

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// TitleRX accepts any title that starts with a non-space character, up to 100 characters.
	TitleRX = regexp.MustCompile(`^\S.{0,99}$`)

	// NameRX accepts personal names: letters plus spaces, apostrophes, dots and hyphens.
	NameRX = regexp.MustCompile(`^\p{L}[\p{L} '.\-]{0,49}$`)

	// YearRX accepts a one to four digit year.
	YearRX = regexp.MustCompile(`^\d{1,4}$`)

	// IDRX accepts a positive decimal identifier without leading zeros.
	IDRX = regexp.MustCompile(`^[1-9]\d{0,17}$`)
)

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(title) > 0, "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Err returns nil when the Validator is valid, otherwise an *Error carrying
// a copy of the collected messages.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	errs := make(map[string]string, len(v.Errors))
	for k, msg := range v.Errors {
		errs[k] = msg
	}
	return &Error{Errors: errs}
}

// Error is returned by Validator.Err when at least one check failed.
type Error struct {
	Errors map[string]string
}

// Error renders the failures as "field: message" pairs sorted by field name.
func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Errors[k])
	}
	return strings.Join(parts, "; ")
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
