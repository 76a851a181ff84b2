package service

import (
	"fmt"
	"path"

	"github.com/gobwas/glob"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/models"
)

// DefaultPublicPaths are reachable without a session. Patterns are globs
// with '/' as separator: "*" stays within a segment, "**" crosses segments.
var DefaultPublicPaths = []string{
	"/api/auth",
	"/api/auth/**",
	"/api/signup",
	"/auth",
	"/auth/**",
	"/static/**",
	"/images/**",
	"/favicon.ico",
}

type gate struct {
	public    []glob.Glob
	loginPath string
	homePath  string
}

// NewGate compiles the default public patterns plus cfg.PublicPaths.
func NewGate(session config.Session, cfg config.Gate) (Gate, error) {
	patterns := append(append([]string{}, DefaultPublicPaths...), cfg.PublicPaths...)

	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling public path %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}

	return &gate{
		public:    compiled,
		loginPath: session.LoginPath,
		homePath:  session.HomePath,
	}, nil
}

// Authorize allows public paths unconditionally and any other path only with
// a session. Matching is on whole path segments, so "/authors" is protected
// even though "/auth/**" is public.
func (g *gate) Authorize(path string, authenticated bool) models.Decision {
	if authenticated || g.isPublic(path) {
		return models.Decision{Allow: true}
	}

	return models.Decision{RedirectTo: g.loginPath}
}

// AuthPage sends an authenticated caller away from the login and signup
// pages.
func (g *gate) AuthPage(authenticated bool) models.Decision {
	if authenticated {
		return models.Decision{RedirectTo: g.homePath}
	}

	return models.Decision{Allow: true}
}

// isPublic matches the cleaned path, so dot segments cannot climb out of a
// public prefix.
func (g *gate) isPublic(p string) bool {
	cleaned := path.Clean("/" + p)

	for _, pattern := range g.public {
		if pattern.Match(cleaned) {
			return true
		}
	}

	return false
}
