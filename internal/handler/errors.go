// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address is
// configured. The server cannot start without one.
var errNoHandlersAreCreated = errors.New("no handlers are created")
