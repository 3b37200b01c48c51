package http

import (
	"context"

	"charlymatloc-backend/internal/domain"
)

type profileKey struct{}

func withProfile(ctx context.Context, profile domain.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

// ProfileFromContext returns the caller identity set by the auth middleware
func ProfileFromContext(ctx context.Context) (domain.Profile, bool) {
	p, ok := ctx.Value(profileKey{}).(domain.Profile)
	return p, ok
}
