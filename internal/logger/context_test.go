package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFromContext verifies fallback to the global logger and round-tripping
// a scoped logger through the context.
func TestFromContext(t *testing.T) {
	t.Parallel()

	// No logger stored: the global one is returned.
	require.Same(t, Logger(), FromContext(context.Background()))

	// A named logger stored in the context is returned as-is.
	named := Logger().Named("test-component")
	ctx := ToContext(context.Background(), named)
	require.Same(t, named, FromContext(ctx))

	// WithName derives a new context without touching the parent's logger.
	child := WithName(ctx, "inner")
	require.NotSame(t, FromContext(ctx), FromContext(child))
}
