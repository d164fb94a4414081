package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissStreak(t *testing.T) {
	const hit, miss = true, false

	tests := []struct {
		name   string
		events []bool
		want   int
	}{
		{name: "leading run beats trailing run", events: []bool{miss, miss, hit, miss}, want: 2},
		{name: "all misses", events: []bool{miss, miss, miss, miss, miss}, want: 5},
		{name: "empty", events: nil, want: 0},
		{name: "all hits", events: []bool{hit, hit}, want: 0},
		{name: "closed run in the middle", events: []bool{hit, miss, miss, miss, hit, miss}, want: 3},
		{name: "open run at the end", events: []bool{hit, miss, hit, miss, miss}, want: 2},
		{name: "single miss", events: []bool{miss}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissStreak(tt.events, func(happened bool) bool { return happened })
			assert.Equal(t, tt.want, got)
		})
	}
}
