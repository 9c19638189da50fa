package image

import (
	"testing"

	"github.com/arinmd/termcat/internal/theme"
)

func TestForDispatchesByCapability(t *testing.T) {
	cases := []struct {
		cap     theme.ImageCapability
		wantNil bool
	}{
		{theme.ImageKitty, false},
		{theme.ImageITerm2, false},
		{theme.ImageTerminology, false},
		{theme.ImageNone, true},
	}
	for _, tc := range cases {
		got := For(tc.cap)
		if tc.wantNil && got != nil {
			t.Fatalf("For(%v) = %v, want nil", tc.cap, got)
		}
		if !tc.wantNil && got == nil {
			t.Fatalf("For(%v) = nil, want a Protocol", tc.cap)
		}
	}
}
