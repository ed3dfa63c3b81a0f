package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  string
	}{
		{name: "no samples", width: 4, want: "▁▁▁▁"},
		{name: "all zeros", data: []float64{0, 0, 0}, width: 3, want: "▁▁▁"},
		{name: "padded left", data: []float64{100}, width: 4, want: "▁▁▁█"},
		{name: "all same", data: []float64{5, 5, 5}, width: 3, want: "███"},
		{name: "ramp", data: []float64{1, 2, 3, 4, 5, 6, 7, 8}, width: 8, want: "▁▂▃▄▅▆▇█"},
		{name: "keeps latest", data: []float64{80, 0, 10, 20}, width: 2, want: "▄█"},
		{name: "zero width", data: []float64{1}, width: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sparkline(tt.data, tt.width))
		})
	}
}
