// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

// Package client implements the chronos command line client.
//
// Its cobra commands sign up, sign in and inspect the session against a
// chronos server through an [adapter.ServerAdapter]. The session token is
// kept in a [TokenStore] between invocations.
package client
