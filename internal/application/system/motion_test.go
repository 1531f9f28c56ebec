package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/brawl/internal/domain/button"
)

func TestMatchMotion(t *testing.T) {
	const (
		n  = button.Neutral
		d  = button.Down
		df = button.DownForward
		f  = button.Forward
	)
	qcf := []button.Button{d, df, f}

	tests := []struct {
		name    string
		history []button.Button // newest first
		start   int
		limit   int
		want    bool
	}{
		{"exact", []button.Button{f, df, d}, 0, -1, true},
		{"held directions repeat", []button.Button{f, f, df, df, d, d}, 0, -1, true},
		{"gaps of four", []button.Button{f, n, n, n, df, n, n, n, d}, 0, -1, true},
		{"gap of five", []button.Button{f, n, n, n, n, df, d}, 0, -1, false},
		{"last direction three frames early", []button.Button{n, n, n, f, df, d}, 0, -1, true},
		{"last direction four frames early", []button.Button{n, n, n, n, f, df, d}, 0, -1, false},
		{"reversed", []button.Button{d, df, f}, 0, -1, false},
		{"missing step", []button.Button{f, d}, 0, -1, false},
		{"limit cuts history", []button.Button{f, df, d}, 0, 2, false},
		{"start offset", []button.Button{d, d, f, df, d}, 2, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := tt.limit
			if limit < 0 {
				limit = len(tt.history)
			}
			dir := func(i int) button.Button {
				if i < len(tt.history) {
					return tt.history[i]
				}
				return n
			}
			assert.Equal(t, tt.want, MatchMotion(qcf, tt.start, limit, dir))
		})
	}
}

func TestMatchMotion_EmptySequence(t *testing.T) {
	assert.True(t, MatchMotion(nil, 0, 0, func(int) button.Button { return button.Neutral }))
}
