// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package crypto

import "errors"

// ErrHashFormat is matched by every [HashFormatError] via errors.Is.
var ErrHashFormat = errors.New("malformed password digest")

// HashFormatError reports a stored digest that is not a valid bcrypt hash.
// It points at corrupted storage, not at a wrong password.
type HashFormatError struct {
	Err error
}

func (e *HashFormatError) Error() string {
	return ErrHashFormat.Error() + ": " + e.Err.Error()
}

func (e *HashFormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrHashFormat) true for any HashFormatError.
func (e *HashFormatError) Is(target error) bool {
	return target == ErrHashFormat
}
