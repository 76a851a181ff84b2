// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package http

import "errors"

// Errors returned while reading a bearer token from the "Authorization"
// header.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)
