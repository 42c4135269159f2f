package serrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"sincromei/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrInvalidArgument,
		serrors.ErrRateLimited,
		serrors.ErrUpstream,
		serrors.ErrNotFound,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrInvalidArgument, "cnpj %q is malformed", "123")
	require.Equal(t, `cnpj "123" is malformed`, e1.Error())

	e2 := serrors.Wrap(serrors.ErrUpstream, base, "Error fetching data")
	require.Equal(t, "Error fetching data: connection refused", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrRateLimited)
	require.Equal(t, "RATE_LIMITED", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrUpstream, base, "fetching")

	require.ErrorIs(t, e, serrors.ErrUpstream)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrInvalidArgument)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrUpstream, base, "fetching")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrUpstream, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUpstream, base, "Error fetching data")
	require.Equal(t, serrors.ErrUpstream, e.Kind())
	require.Equal(t, "Error fetching data", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", serrors.With(serrors.ErrInvalidArgument, "Invalid CNPJ format"), http.StatusBadRequest},
		{"rate limited", serrors.KindOnly(serrors.ErrRateLimited), http.StatusTooManyRequests},
		{"upstream", serrors.Wrap(serrors.ErrUpstream, errors.New("x"), "y"), http.StatusInternalServerError},
		{"not found", serrors.KindOnly(serrors.ErrNotFound), http.StatusNotFound},
		{"bare kind", serrors.ErrInvalidArgument, http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped with fmt",
			fmt.Errorf("handler: %w", serrors.With(serrors.ErrInvalidArgument, "bad")),
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.StatusCode(tt.err))
		})
	}
}
