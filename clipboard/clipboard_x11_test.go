//go:build linux || freebsd

package clipboard

import (
	"errors"
	"testing"
)

func TestCheckSelectionType(t *testing.T) {
	const (
		utf8String Atom = 301
		incr       Atom = 302
	)

	cases := []struct {
		actual Atom
		incr   Atom
		want   error
	}{
		{actual: utf8String, incr: incr, want: nil},
		{actual: incr, incr: incr, want: ErrUnavailable},
		// INCR could not be interned.
		{actual: None, incr: None, want: nil},
	}

	for _, tc := range cases {
		err := checkSelectionType(tc.actual, tc.incr)
		if tc.want == nil && err != nil {
			t.Fatalf("checkSelectionType(%d, %d): unexpected error: %v", tc.actual, tc.incr, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("checkSelectionType(%d, %d): Expected %v, got %v", tc.actual, tc.incr, tc.want, err)
		}
	}
}
