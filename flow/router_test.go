package flow

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) Handler {
	return func(ctx context.Context, s *Session, ev Event) (Render, error) {
		return Render{Text: name}, nil
	}
}

func dispatchText(t *testing.T, r *Router, trigger string) string {
	t.Helper()
	h, ok := r.Dispatch(trigger)
	require.True(t, ok, "expected a handler for %q", trigger)
	out, err := h(context.Background(), &Session{}, Event{})
	require.NoError(t, err)
	return out.Text
}

func TestRouterLiteralBeforePattern(t *testing.T) {
	r := NewRouter()
	r.HandlePrefix("alert_", named("prefix"))
	r.Handle("alert_confirm", named("literal"))

	// The literal wins even though the prefix was registered first.
	assert.Equal(t, "literal", dispatchText(t, r, "alert_confirm"))
	assert.Equal(t, "prefix", dispatchText(t, r, "alert_other"))
}

func TestRouterRegistrationOrderWithinClass(t *testing.T) {
	r := NewRouter()
	r.HandlePrefix("wl_", named("first"))
	r.HandlePrefix("wl_item_", named("second"))

	// Both match; the earlier registration wins.
	assert.Equal(t, "first", dispatchText(t, r, "wl_item_3"))
}

func TestRouterRegexp(t *testing.T) {
	r := NewRouter()
	r.HandleMatch(regexp.MustCompile(`^page_\d+$`), named("page"))

	assert.Equal(t, "page", dispatchText(t, r, "page_12"))
	_, ok := r.Dispatch("page_x")
	assert.False(t, ok)
}

func TestRouterMissIsNotAnError(t *testing.T) {
	r := NewRouter()
	r.Handle("known", named("known"))

	h, ok := r.Dispatch("unknown")
	assert.False(t, ok)
	assert.Nil(t, h)
}

func TestRouterIgnoresInvalidRegistrations(t *testing.T) {
	r := NewRouter()
	r.Handle("", named("x"))
	r.Handle("y", nil)
	r.HandlePrefix("", named("x"))
	assert.Equal(t, 0, r.Len())
}
