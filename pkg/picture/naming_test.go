package picture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArtifactName(t *testing.T) {
	day := func(h, m, s int) time.Time {
		return time.Date(2024, time.May, 1, h, m, s, 0, time.UTC)
	}

	tests := []struct {
		name   string
		base   string
		at     time.Time
		suffix string
		want   string
	}{
		{"default base", "", day(14, 7, 9), ".jpg", "camera20709.jpg"},
		{"custom base", "porch", day(9, 5, 3), ".jpg", "porch90503.jpg"},
		{"midnight", "", day(0, 0, 5), ".jpg", "camera120005.jpg"},
		{"noon", "", day(12, 30, 0), ".png", "camera123000.png"},
		{"no suffix", "x", day(23, 59, 59), "", "x115959"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, artifactName(tc.base, tc.at, tc.suffix))
		})
	}
}
