// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/michaelhessen/chronos/internal/utils"
)

// CheckHTTPMethod is the router's MethodNotAllowed handler. A path that
// exists but does not accept the method answers 404 instead of chi's 405,
// so probing methods does not reveal which routes exist.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
