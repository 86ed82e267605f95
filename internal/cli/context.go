package cli

import (
	"context"

	"github.com/thenoetrevino/quadro/internal/app"
	"github.com/thenoetrevino/quadro/internal/config"
)

type contextKey string

const appKey contextKey = "app"

// WithApp makes commands run against application instead of opening the
// configured database. Tests use it to point commands at an in-memory DB.
func WithApp(ctx context.Context, application *app.App) context.Context {
	return context.WithValue(ctx, appKey, application)
}

// GetCLIFromContext returns a CLI over the app stored in ctx, or a freshly
// initialized one when there is none.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if application, ok := ctx.Value(appKey).(*app.App); ok && application != nil {
		return &CLI{App: application, Config: config.Default(), ctx: ctx}, nil
	}
	return NewCLI(ctx)
}
