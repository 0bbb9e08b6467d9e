package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/workforce/core"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{"same day", "2026-01-13", "2026-01-13", 0},
		{"leap february", "2024-02-28", "2024-03-01", 2},
		{"backwards", "2026-01-20", "2026-01-13", -7},
		{"beyond duration range", "0001-01-01", "9999-12-31", 3652058},
		{"beyond duration range backwards", "9999-12-31", "0001-01-01", -3652058},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.DaysBetween(core.MustParseDate(tt.from), core.MustParseDate(tt.to))
			assert.Equal(t, tt.want, got)
		})
	}
}
